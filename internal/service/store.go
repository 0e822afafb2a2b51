package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/qsimlab/vqe-core/internal/vqe"
	"github.com/qsimlab/vqe-core/pkg/utils"
)

// RunStatus is the lifecycle state of a stored run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is the durable description of one submitted calculation.
type Run struct {
	ID              string    `json:"id"`
	Kind            RunKind   `json:"kind"`
	Molecule        string    `json:"molecule"`
	Optimizer       string    `json:"optimizer,omitempty"`
	MaxIterations   int       `json:"max_iterations"`
	Status          RunStatus `json:"status"`
	Error           string    `json:"error,omitempty"`
	CreatedAtUnixMs int64     `json:"created_at_unix_ms"`
	StartedAtUnixMs int64     `json:"started_at_unix_ms,omitempty"`
	EndedAtUnixMs   int64     `json:"ended_at_unix_ms,omitempty"`
}

// RunKind distinguishes the operation a run performed.
type RunKind string

const (
	RunKindVQE        RunKind = "vqe"
	RunKindComparison RunKind = "comparison"
	RunKindScan       RunKind = "scan"
)

// RunRecord pairs a run with whatever outputs its kind produced.
type RunRecord struct {
	Run        *Run                      `json:"run"`
	Result     *vqe.OptimizationResult   `json:"result,omitempty"`
	Comparison []*vqe.OptimizationResult `json:"comparison,omitempty"`
	Scan       *vqe.ScanResult           `json:"scan,omitempty"`
	Analytics  *vqe.Analytics            `json:"analytics,omitempty"`
}

// RunStore is an in-memory run index safe for concurrent use. Runs are
// never evicted; the process owns its history.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*RunRecord
}

func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]*RunRecord)}
}

func nowUnixMs() int64 {
	return time.Now().UTC().UnixMilli()
}

// Create registers a new pending run and returns its record.
func (s *RunStore) Create(kind RunKind, molecule, optimizer string, maxIterations int) *RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := utils.GenerateRunID()
	for s.runs[runID] != nil {
		runID = utils.GenerateRunID()
	}

	rec := &RunRecord{
		Run: &Run{
			ID:              runID,
			Kind:            kind,
			Molecule:        molecule,
			Optimizer:       optimizer,
			MaxIterations:   maxIterations,
			Status:          RunStatusPending,
			CreatedAtUnixMs: nowUnixMs(),
		},
	}
	s.runs[runID] = rec
	return rec
}

// Get returns the record for a run ID.
func (s *RunStore) Get(runID string) (*RunRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.runs[runID]
	return rec, ok
}

// List returns up to limit records, newest first.
func (s *RunStore) List(limit int) []*RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]*RunRecord, 0, len(s.runs))
	for _, rec := range s.runs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Run.CreatedAtUnixMs != out[j].Run.CreatedAtUnixMs {
			return out[i].Run.CreatedAtUnixMs > out[j].Run.CreatedAtUnixMs
		}
		return out[i].Run.ID > out[j].Run.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SetStatus advances a run's lifecycle, stamping start and end times.
func (s *RunStore) SetStatus(runID string, status RunStatus, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("run not found: %s", runID)
	}

	rec.Run.Status = status
	if errMsg != "" {
		rec.Run.Error = errMsg
	}
	switch status {
	case RunStatusRunning:
		if rec.Run.StartedAtUnixMs == 0 {
			rec.Run.StartedAtUnixMs = nowUnixMs()
		}
	case RunStatusCompleted, RunStatusFailed:
		rec.Run.EndedAtUnixMs = nowUnixMs()
	}
	return nil
}

// SetResult attaches a single-optimizer outcome.
func (s *RunStore) SetResult(runID string, result *vqe.OptimizationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("run not found: %s", runID)
	}
	rec.Result = result
	return nil
}

// SetComparison attaches a multi-optimizer outcome.
func (s *RunStore) SetComparison(runID string, results []*vqe.OptimizationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("run not found: %s", runID)
	}
	rec.Comparison = results
	return nil
}

// SetScan attaches a bond-length scan outcome.
func (s *RunStore) SetScan(runID string, scan *vqe.ScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("run not found: %s", runID)
	}
	rec.Scan = scan
	return nil
}

// SetAnalytics attaches derived statistics to a completed run.
func (s *RunStore) SetAnalytics(runID string, a *vqe.Analytics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("run not found: %s", runID)
	}
	rec.Analytics = a
	return nil
}
