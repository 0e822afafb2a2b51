package vqe

import (
	"math"
	"time"
)

// initialAngle seeds every variational parameter. Exactly zero leaves
// the trial state on the reference determinant where the gradient
// vanishes by symmetry, so the start is nudged off it.
const initialAngle = 0.1

// IterationSample is one recorded objective evaluation. Index starts
// at 1 and increases by one per evaluation; Energy is the total energy
// in Hartree, nuclear repulsion included.
type IterationSample struct {
	Index  int     `json:"iteration"`
	Energy float64 `json:"energy"`
}

// IterationSink receives samples synchronously as the optimizer
// evaluates the objective. Implementations that can block should buffer.
type IterationSink interface {
	Record(IterationSample)
}

// SinkFunc adapts a function to IterationSink.
type SinkFunc func(IterationSample)

func (f SinkFunc) Record(s IterationSample) { f(s) }

// TraceRecorder is an in-memory sink. The driver keeps one per run; a
// caller may also attach its own.
type TraceRecorder struct {
	samples []IterationSample
}

func (r *TraceRecorder) Record(s IterationSample) {
	r.samples = append(r.samples, s)
}

// Samples returns a copy of the recorded history.
func (r *TraceRecorder) Samples() []IterationSample {
	out := make([]IterationSample, len(r.samples))
	copy(out, r.samples)
	return out
}

// OptimizationResult is the outcome of one optimizer run for the
// current geometry.
type OptimizationResult struct {
	Optimizer        OptimizerKind     `json:"optimizer"`
	Energy           float64           `json:"energy"`
	ElectronicEnergy float64           `json:"electronic_energy"`
	ClassicalEnergy  float64           `json:"classical_energy"`
	NuclearRepulsion float64           `json:"nuclear_repulsion"`
	ErrorPercent     float64           `json:"error_percent"`
	Parameters       []float64         `json:"parameters"`
	Evaluations      int               `json:"evaluations"`
	Samples          []IterationSample `json:"samples"`
	Duration         time.Duration     `json:"duration_ns"`
	Err              string            `json:"error,omitempty"`
}

// Run optimizes with the policy-selected optimizer for the molecule's
// electron count. sink may be nil.
func (e *Engine) Run(maxIterations int, sink IterationSink) (*OptimizationResult, error) {
	return e.runWith(selectOptimizer(e.mol.Electrons, maxIterations, e.cfg.Optimization), sink)
}

// RunWith optimizes with an explicitly chosen optimizer, bypassing the
// policy.
func (e *Engine) RunWith(kind OptimizerKind, maxIterations int, sink IterationSink) (*OptimizationResult, error) {
	opt, err := optimizerFor(kind, maxIterations, e.cfg.Optimization)
	if err != nil {
		return nil, err
	}
	return e.runWith(opt, sink)
}

func (e *Engine) runWith(opt optimizer, sink IterationSink) (*OptimizationResult, error) {
	h := e.hamiltonian
	if h == nil {
		return nil, &ValidationError{Reason: "hamiltonian not built for current geometry"}
	}
	ansatz, err := e.CreateAnsatz()
	if err != nil {
		return nil, err
	}

	trace := &TraceRecorder{}
	evalIndex := 0
	var evalErr error

	// The objective reports total energy. This is the only place
	// electronic energy is converted, so history, result, and exports
	// all agree on the convention.
	objective := func(x []float64) float64 {
		if evalErr != nil {
			return math.Inf(1)
		}
		electronic, err := e.sim.Expectation(ansatz, x, h.Operator)
		if err != nil {
			evalErr = err
			return math.Inf(1)
		}
		evalIndex++
		sample := IterationSample{Index: evalIndex, Energy: electronic + h.NuclearRepulsion}
		trace.Record(sample)
		if sink != nil {
			sink.Record(sample)
		}
		return sample.Energy
	}

	initial := make([]float64, ansatz.NumParams)
	for i := range initial {
		initial[i] = initialAngle
	}

	start := time.Now()
	params, value, err := opt.Minimize(objective, initial)
	if evalErr != nil {
		return nil, &OptimizationError{Optimizer: string(opt.Kind()), Err: evalErr}
	}
	if err != nil {
		return nil, &OptimizationError{Optimizer: string(opt.Kind()), Err: err}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, &OptimizationError{Optimizer: string(opt.Kind()), Err: &ValidationError{Reason: "objective produced a non-finite energy"}}
	}

	result := &OptimizationResult{
		Optimizer:        opt.Kind(),
		Energy:           value,
		ElectronicEnergy: value - h.NuclearRepulsion,
		ClassicalEnergy:  h.ClassicalEnergy,
		NuclearRepulsion: h.NuclearRepulsion,
		ErrorPercent:     errorPercent(value, h.ClassicalEnergy),
		Parameters:       params,
		Evaluations:      evalIndex,
		Samples:          trace.Samples(),
		Duration:         time.Since(start),
	}
	e.lastResult = result
	e.log.Info("optimization finished",
		"optimizer", opt.Kind(),
		"energy", result.Energy,
		"evaluations", result.Evaluations,
		"error_percent", result.ErrorPercent,
		"duration", result.Duration)
	return result, nil
}

// RunComparison runs every optimizer kind sequentially on identical
// starting points. A failing optimizer yields a result carrying its
// error instead of aborting the remaining runs.
func (e *Engine) RunComparison(maxIterations int, sink IterationSink) ([]*OptimizationResult, error) {
	if e.hamiltonian == nil {
		return nil, &ValidationError{Reason: "hamiltonian not built for current geometry"}
	}
	out := make([]*OptimizationResult, 0, len(ComparisonKinds()))
	for _, kind := range ComparisonKinds() {
		opt, err := optimizerFor(kind, maxIterations, e.cfg.Optimization)
		if err != nil {
			return nil, err
		}
		res, err := e.runWith(opt, sink)
		if err != nil {
			e.log.Warn("comparison run failed", "optimizer", kind, "error", err)
			out = append(out, &OptimizationResult{Optimizer: kind, Err: err.Error()})
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

// errorPercent is the relative deviation of the variational energy from
// the classical reference, in percent.
func errorPercent(vqe, classical float64) float64 {
	if classical == 0 {
		return 0
	}
	return math.Abs(vqe-classical) / math.Abs(classical) * 100
}
