package vqe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesFrom(energies []float64) []IterationSample {
	out := make([]IterationSample, len(energies))
	for i, e := range energies {
		out[i] = IterationSample{Index: i + 1, Energy: e}
	}
	return out
}

func TestAnalyzeConvergenceFixture(t *testing.T) {
	// A typical descending history that flattens out.
	energies := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.35, 0.3, 0.26, 0.26}
	a, err := Analyze(samplesFrom(energies))
	require.NoError(t, err)

	assert.Equal(t, 11, a.NumSamples)
	require.NotNil(t, a.EnergyImprovement)
	assert.InDelta(t, 0.74, *a.EnergyImprovement, 1e-12)
	require.NotNil(t, a.FinalGradient)
	assert.InDelta(t, 0.0, *a.FinalGradient, 1e-12)
	require.NotNil(t, a.ConvergenceRate)
	assert.InDelta(t, 0.0, *a.ConvergenceRate, 1e-12)

	assert.InDelta(t, 0.26, a.Min, 1e-12)
	assert.InDelta(t, 1.0, a.Max, 1e-12)
	assert.InDelta(t, 0.74, a.Range, 1e-12)
}

func TestAnalyzeBasicMoments(t *testing.T) {
	a, err := Analyze(samplesFrom([]float64{2, 4, 4, 4, 5, 5, 7, 9}))
	require.NoError(t, err)

	assert.InDelta(t, 5.0, a.Mean, 1e-12)
	assert.InDelta(t, 2.0, a.StdDev, 1e-12)
	assert.InDelta(t, 4.0, a.Variance, 1e-12)
	assert.InDelta(t, 4.0, a.Median, 1e-12)
	// Too few samples for the convergence window.
	assert.Nil(t, a.ConvergenceRate)
}

func TestAnalyzeSingleSample(t *testing.T) {
	a, err := Analyze(samplesFrom([]float64{-1.1}))
	require.NoError(t, err)

	assert.InDelta(t, -1.1, a.Mean, 1e-12)
	assert.InDelta(t, 0.0, a.StdDev, 1e-12)
	assert.InDelta(t, -1.1, a.Median, 1e-12)
	assert.InDelta(t, 0.0, a.Range, 1e-12)
	assert.Nil(t, a.FinalGradient)
	assert.Nil(t, a.EnergyImprovement)
	assert.Nil(t, a.ConvergenceRate)
}

func TestAnalyzeTwoSamples(t *testing.T) {
	a, err := Analyze(samplesFrom([]float64{1.0, 0.4}))
	require.NoError(t, err)

	require.NotNil(t, a.EnergyImprovement)
	assert.InDelta(t, 0.6, *a.EnergyImprovement, 1e-12)
	// Final gradient needs three samples.
	assert.Nil(t, a.FinalGradient)
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	_, err := Analyze(nil)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAnalyzeIsPure(t *testing.T) {
	in := samplesFrom([]float64{3, 1, 2})
	_, err := Analyze(in)
	require.NoError(t, err)

	assert.Equal(t, samplesFrom([]float64{3, 1, 2}), in)
}
