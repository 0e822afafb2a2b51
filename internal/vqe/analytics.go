package vqe

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Analytics summarizes a convergence history. Population moments are
// used throughout: the history is the entire run, not a sample of one.
type Analytics struct {
	NumSamples int     `json:"num_samples"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Variance   float64 `json:"variance"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Range      float64 `json:"range"`
	Median     float64 `json:"median"`
	// ConvergenceRate is the population standard deviation of the final
	// tenth of the history, nil for histories of 10 samples or fewer.
	ConvergenceRate *float64 `json:"convergence_rate"`
	// FinalGradient is the last energy step, nil below 3 samples.
	FinalGradient *float64 `json:"final_gradient"`
	// EnergyImprovement is first minus last energy, nil below 2 samples.
	EnergyImprovement *float64 `json:"energy_improvement"`
}

// Analyze computes descriptive statistics over an iteration history.
// It never touches engine state, so stored runs can be re-analyzed at
// any time.
func Analyze(samples []IterationSample) (*Analytics, error) {
	if len(samples) == 0 {
		return nil, &ValidationError{Reason: "analytics requires a non-empty iteration history"}
	}

	energies := make([]float64, len(samples))
	for i, s := range samples {
		energies[i] = s.Energy
	}

	sorted := make([]float64, len(energies))
	copy(sorted, energies)
	sort.Float64s(sorted)

	a := &Analytics{
		NumSamples: len(energies),
		Mean:       stat.Mean(energies, nil),
		StdDev:     stat.PopStdDev(energies, nil),
		Variance:   stat.PopVariance(energies, nil),
		Min:        sorted[0],
		Max:        sorted[len(sorted)-1],
		Median:     stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	a.Range = a.Max - a.Min

	if n := len(energies); n > 10 {
		tail := energies[n-int(math.Ceil(float64(n)/10)):]
		rate := stat.PopStdDev(tail, nil)
		a.ConvergenceRate = &rate
	}
	if n := len(energies); n > 2 {
		grad := energies[n-1] - energies[n-2]
		a.FinalGradient = &grad
	}
	if n := len(energies); n > 1 {
		impr := energies[0] - energies[n-1]
		a.EnergyImprovement = &impr
	}
	return a, nil
}
