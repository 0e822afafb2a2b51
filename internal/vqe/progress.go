package vqe

import "fmt"

// ProgressStage identifies a phase of a streaming run.
type ProgressStage string

const (
	StageInitialize  ProgressStage = "initialize"
	StageHamiltonian ProgressStage = "hamiltonian"
	StageCircuit     ProgressStage = "circuit"
	StageOptimize    ProgressStage = "optimize"
	StageResults     ProgressStage = "results"
)

// ProgressEvent is one update from a streaming run. Percent is
// monotonically non-decreasing over the run.
type ProgressEvent struct {
	Stage   ProgressStage       `json:"stage"`
	Percent float64             `json:"percent"`
	Message string              `json:"message"`
	Sample  *IterationSample    `json:"sample,omitempty"`
	Result  *OptimizationResult `json:"result,omitempty"`
}

// EventBuffer hands progress events to a consumer goroutine over a
// buffered channel. Emit blocks when the buffer is full, so a slow
// consumer applies backpressure rather than losing events.
type EventBuffer struct {
	ch chan ProgressEvent
}

func NewEventBuffer(size int) *EventBuffer {
	return &EventBuffer{ch: make(chan ProgressEvent, size)}
}

func (b *EventBuffer) Emit(ev ProgressEvent) { b.ch <- ev }

// Events is the consumer side of the buffer.
func (b *EventBuffer) Events() <-chan ProgressEvent { return b.ch }

// Close signals the consumer that no further events arrive. Only the
// producer side may call it, after the run finishes.
func (b *EventBuffer) Close() { close(b.ch) }

// RunStreaming executes the full pipeline for the current geometry,
// emitting stage transitions and per-evaluation samples. emit is called
// synchronously; callers that forward events elsewhere should buffer.
// Optimization progress is interpolated across 40 to 90 percent from
// the evaluation count against the requested budget.
func (e *Engine) RunStreaming(maxIterations int, emit func(ProgressEvent)) (*OptimizationResult, error) {
	if emit == nil {
		emit = func(ProgressEvent) {}
	}

	emit(ProgressEvent{Stage: StageInitialize, Percent: 5,
		Message: fmt.Sprintf("Preparing %s calculation", e.mol.Name)})

	h, err := e.BuildHamiltonian()
	if err != nil {
		return nil, err
	}
	emit(ProgressEvent{Stage: StageHamiltonian, Percent: 20,
		Message: fmt.Sprintf("Hamiltonian built: %d qubits, %d terms", h.NumQubits, h.Operator.NumTerms())})

	ansatz, err := e.CreateAnsatz()
	if err != nil {
		return nil, err
	}
	emit(ProgressEvent{Stage: StageCircuit, Percent: 35,
		Message: fmt.Sprintf("Ansatz prepared: %d parameters", ansatz.NumParams)})

	emit(ProgressEvent{Stage: StageOptimize, Percent: 40, Message: "Optimizing"})

	percent := 40.0
	sink := SinkFunc(func(s IterationSample) {
		p := 40 + 50*float64(s.Index)/float64(maxIterations)
		if p > 90 {
			p = 90
		}
		// Gradient probes can make the raw estimate dip; never report
		// progress going backwards.
		if p > percent {
			percent = p
		}
		sample := s
		emit(ProgressEvent{Stage: StageOptimize, Percent: percent, Sample: &sample})
	})

	result, err := e.Run(maxIterations, sink)
	if err != nil {
		return nil, err
	}

	emit(ProgressEvent{Stage: StageResults, Percent: 100,
		Message: fmt.Sprintf("Ground state energy: %.6f Ha", result.Energy),
		Result:  result})
	return result, nil
}
