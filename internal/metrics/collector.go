package metrics

import (
	"sync"
	"time"
)

// Aggregation holds running min/max/mean statistics for one series.
type Aggregation struct {
	Count int64   `json:"count"`
	Sum   float64 `json:"sum"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (a *Aggregation) observe(v float64) {
	if a.Count == 0 || v < a.Min {
		a.Min = v
	}
	if a.Count == 0 || v > a.Max {
		a.Max = v
	}
	a.Count++
	a.Sum += v
}

// Mean returns the running average, 0 with no observations.
func (a *Aggregation) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// Snapshot is a point-in-time copy of all collected counters.
type Snapshot struct {
	Uptime         time.Duration           `json:"uptime_ns"`
	RunsStarted    int64                   `json:"runs_started"`
	RunsCompleted  int64                   `json:"runs_completed"`
	RunsFailed     int64                   `json:"runs_failed"`
	Evaluations    int64                   `json:"evaluations"`
	RunDurations   map[string]*Aggregation `json:"run_durations"`
	GroundEnergies map[string]*Aggregation `json:"ground_energies"`
}

// Collector aggregates calculation activity per molecule. Safe for
// concurrent use by multiple runs.
type Collector struct {
	mu sync.RWMutex

	startTime time.Time

	runsStarted   int64
	runsCompleted int64
	runsFailed    int64
	evaluations   int64

	// molecule name -> per-run duration in seconds
	runDurations map[string]*Aggregation
	// molecule name -> converged energy in Hartree
	groundEnergies map[string]*Aggregation
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		startTime:      time.Now(),
		runDurations:   make(map[string]*Aggregation),
		groundEnergies: make(map[string]*Aggregation),
	}
}

// RunStarted counts a newly admitted calculation.
func (c *Collector) RunStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runsStarted++
}

// RunCompleted records a successful calculation.
func (c *Collector) RunCompleted(molecule string, evaluations int, duration time.Duration, energy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.runsCompleted++
	c.evaluations += int64(evaluations)

	if c.runDurations[molecule] == nil {
		c.runDurations[molecule] = &Aggregation{}
	}
	c.runDurations[molecule].observe(duration.Seconds())

	if c.groundEnergies[molecule] == nil {
		c.groundEnergies[molecule] = &Aggregation{}
	}
	c.groundEnergies[molecule].observe(energy)
}

// RunFailed counts an aborted calculation.
func (c *Collector) RunFailed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runsFailed++
}

// Snapshot returns a deep copy of the current counters.
func (c *Collector) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := &Snapshot{
		Uptime:         time.Since(c.startTime),
		RunsStarted:    c.runsStarted,
		RunsCompleted:  c.runsCompleted,
		RunsFailed:     c.runsFailed,
		Evaluations:    c.evaluations,
		RunDurations:   make(map[string]*Aggregation, len(c.runDurations)),
		GroundEnergies: make(map[string]*Aggregation, len(c.groundEnergies)),
	}
	for k, v := range c.runDurations {
		agg := *v
		s.RunDurations[k] = &agg
	}
	for k, v := range c.groundEnergies {
		agg := *v
		s.GroundEnergies[k] = &agg
	}
	return s
}
