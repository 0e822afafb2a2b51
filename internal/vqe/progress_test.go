package vqe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStreamingEmitsStagesInOrder(t *testing.T) {
	e := newFakeEngine()

	var events []ProgressEvent
	res, err := e.RunStreaming(30, func(ev ProgressEvent) { events = append(events, ev) })
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, events)

	assert.Equal(t, StageInitialize, events[0].Stage)
	assert.Equal(t, StageHamiltonian, events[1].Stage)
	assert.Equal(t, StageCircuit, events[2].Stage)
	assert.Equal(t, StageOptimize, events[3].Stage)

	last := events[len(events)-1]
	assert.Equal(t, StageResults, last.Stage)
	assert.Equal(t, 100.0, last.Percent)
	require.NotNil(t, last.Result)
	assert.Equal(t, res.Energy, last.Result.Energy)
}

func TestRunStreamingPercentMonotonic(t *testing.T) {
	e := newFakeEngine()

	prev := 0.0
	sampleEvents := 0
	_, err := e.RunStreaming(30, func(ev ProgressEvent) {
		assert.GreaterOrEqual(t, ev.Percent, prev)
		prev = ev.Percent
		if ev.Sample != nil {
			assert.Equal(t, StageOptimize, ev.Stage)
			assert.LessOrEqual(t, ev.Percent, 90.0)
			sampleEvents++
		}
	})
	require.NoError(t, err)
	assert.Greater(t, sampleEvents, 0)
}

func TestRunStreamingBuildFailure(t *testing.T) {
	e := NewEngine(testMolecule(), &fakeSolver{failAbove: 0.1}, &fakeMapper{}, &fakeSim{}, nil)

	var events []ProgressEvent
	_, err := e.RunStreaming(30, func(ev ProgressEvent) { events = append(events, ev) })

	var solverErr *SolverError
	require.ErrorAs(t, err, &solverErr)
	// Only the initialize stage ran.
	require.Len(t, events, 1)
	assert.Equal(t, StageInitialize, events[0].Stage)
}

func TestEventBufferDeliversInOrder(t *testing.T) {
	buf := NewEventBuffer(8)

	go func() {
		for i := 1; i <= 5; i++ {
			sample := IterationSample{Index: i, Energy: float64(-i)}
			buf.Emit(ProgressEvent{Stage: StageOptimize, Sample: &sample})
		}
		buf.Close()
	}()

	var got []ProgressEvent
	for ev := range buf.Events() {
		got = append(got, ev)
	}
	require.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, i+1, ev.Sample.Index)
	}
}
