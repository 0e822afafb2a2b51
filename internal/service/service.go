package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qsimlab/vqe-core/internal/backend/jw"
	"github.com/qsimlab/vqe-core/internal/backend/scf"
	"github.com/qsimlab/vqe-core/internal/backend/statevec"
	"github.com/qsimlab/vqe-core/internal/metrics"
	"github.com/qsimlab/vqe-core/internal/molecule"
	"github.com/qsimlab/vqe-core/internal/policy"
	"github.com/qsimlab/vqe-core/internal/vqe"
	"github.com/qsimlab/vqe-core/pkg/config"
	"github.com/qsimlab/vqe-core/pkg/logger"
)

// DefaultIterations is the optimization budget used when a request
// leaves it unset.
const DefaultIterations = 100

// defaultConcurrentRuns bounds simultaneous calculations.
const defaultConcurrentRuns = 4

// RunRequest submits a single VQE calculation.
type RunRequest struct {
	Molecule string `json:"molecule"`
	// Optimizer overrides the electron-count policy when set.
	Optimizer     string `json:"optimizer,omitempty"`
	MaxIterations int    `json:"max_iterations,omitempty"`
	// Export writes the result to disk after the run.
	Export bool `json:"export,omitempty"`
}

// ScanRequest submits a bond-length scan.
type ScanRequest struct {
	Molecule string  `json:"molecule"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Steps    int     `json:"steps"`
}

// Service is the facade over the VQE pipeline: it validates requests,
// builds a fresh engine per run, and records outcomes in the run store.
type Service struct {
	cfg      *config.Config
	registry *molecule.Registry
	store    *RunStore
	exporter *vqe.Exporter
	metrics  *metrics.Collector
	limiter  *policy.ConcurrencyLimiter
	log      *slog.Logger
}

// New wires a service over the default backends.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	registry, err := molecule.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load molecule registry: %w", err)
	}
	return &Service{
		cfg:      cfg,
		registry: registry,
		store:    NewRunStore(),
		exporter: vqe.NewExporter(cfg.Export),
		metrics:  metrics.NewCollector(),
		limiter:  policy.NewConcurrencyLimiter(defaultConcurrentRuns),
		log:      logger.With("component", "service"),
	}, nil
}

// newEngine builds a per-run engine. The backends are stateless, so
// sharing them across engines is safe; all mutability lives in the
// engine itself.
func (s *Service) newEngine(mol *molecule.Config) *vqe.Engine {
	return vqe.NewEngine(mol, scf.NewSolver(), jw.NewMapper(), statevec.NewSimulator(), s.cfg)
}

// ListMolecules returns the supported molecule catalog.
func (s *Service) ListMolecules() []*molecule.Config {
	return s.registry.List()
}

// GetMolecule returns one catalog entry.
func (s *Service) GetMolecule(name string) (*molecule.Config, error) {
	return s.registry.Get(name)
}

// BuildHamiltonian constructs the qubit Hamiltonian for a molecule at
// its catalog geometry, without running any optimization.
func (s *Service) BuildHamiltonian(name string) (*vqe.Hamiltonian, error) {
	mol, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return s.newEngine(mol).BuildHamiltonian()
}

func (s *Service) validateRun(req *RunRequest) (*molecule.Config, vqe.OptimizerKind, error) {
	mol, err := s.registry.Get(req.Molecule)
	if err != nil {
		return nil, "", err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = DefaultIterations
	}
	limits := s.cfg.Optimization
	if req.MaxIterations < limits.MinIterations || req.MaxIterations > limits.MaxIterations {
		return nil, "", &vqe.ValidationError{Reason: fmt.Sprintf(
			"max_iterations must be between %d and %d, got %d",
			limits.MinIterations, limits.MaxIterations, req.MaxIterations)}
	}
	var kind vqe.OptimizerKind
	if req.Optimizer != "" {
		if kind, err = vqe.ParseOptimizerKind(req.Optimizer); err != nil {
			return nil, "", err
		}
	}
	return mol, kind, nil
}

// RunVQE validates and executes one calculation, blocking until it
// finishes. The returned record is also retrievable by run ID.
func (s *Service) RunVQE(ctx context.Context, req RunRequest) (*RunRecord, error) {
	mol, kind, err := s.validateRun(&req)
	if err != nil {
		return nil, err
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	rec := s.store.Create(RunKindVQE, mol.Name, string(kind), req.MaxIterations)
	s.store.SetStatus(rec.Run.ID, RunStatusRunning, "")
	s.metrics.RunStarted()
	start := time.Now()

	engine := s.newEngine(mol)
	if _, err := engine.BuildHamiltonian(); err != nil {
		return rec, s.failRun(rec.Run.ID, err)
	}

	var result *vqe.OptimizationResult
	if kind != "" {
		result, err = engine.RunWith(kind, req.MaxIterations, nil)
	} else {
		result, err = engine.Run(req.MaxIterations, nil)
	}
	if err != nil {
		return rec, s.failRun(rec.Run.ID, err)
	}

	s.store.SetResult(rec.Run.ID, result)
	if analytics, aErr := vqe.Analyze(result.Samples); aErr == nil {
		s.store.SetAnalytics(rec.Run.ID, analytics)
	}
	s.store.SetStatus(rec.Run.ID, RunStatusCompleted, "")
	s.metrics.RunCompleted(mol.Name, result.Evaluations, time.Since(start), result.Energy)

	if req.Export {
		if _, err := s.Export(rec.Run.ID); err != nil {
			s.log.Warn("export failed", "run_id", rec.Run.ID, "error", err)
		}
	}
	return rec, nil
}

// StreamVQE is RunVQE with progress events. Events are forwarded from
// a buffered channel on a separate goroutine, so a slow consumer delays
// delivery but never the optimizer; emit stops being called once ctx
// is done.
func (s *Service) StreamVQE(ctx context.Context, req RunRequest, emit func(vqe.ProgressEvent)) (*RunRecord, error) {
	mol, kind, err := s.validateRun(&req)
	if err != nil {
		return nil, err
	}
	if kind != "" {
		return nil, &vqe.ValidationError{Reason: "streaming runs always use the policy-selected optimizer"}
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	rec := s.store.Create(RunKindVQE, mol.Name, "", req.MaxIterations)
	s.store.SetStatus(rec.Run.ID, RunStatusRunning, "")
	s.metrics.RunStarted()
	start := time.Now()

	events := vqe.NewEventBuffer(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events.Events() {
			if ctx.Err() != nil {
				continue
			}
			emit(ev)
		}
	}()

	engine := s.newEngine(mol)
	result, err := engine.RunStreaming(req.MaxIterations, events.Emit)
	events.Close()
	<-done

	if err != nil {
		return rec, s.failRun(rec.Run.ID, err)
	}

	s.store.SetResult(rec.Run.ID, result)
	if analytics, aErr := vqe.Analyze(result.Samples); aErr == nil {
		s.store.SetAnalytics(rec.Run.ID, analytics)
	}
	s.store.SetStatus(rec.Run.ID, RunStatusCompleted, "")
	s.metrics.RunCompleted(mol.Name, result.Evaluations, time.Since(start), result.Energy)
	return rec, nil
}

// CompareOptimizers runs every optimizer on the same molecule and
// records the full comparison.
func (s *Service) CompareOptimizers(ctx context.Context, req RunRequest) (*RunRecord, error) {
	mol, kind, err := s.validateRun(&req)
	if err != nil {
		return nil, err
	}
	if kind != "" {
		return nil, &vqe.ValidationError{Reason: "comparison runs always use the full optimizer set"}
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	rec := s.store.Create(RunKindComparison, mol.Name, "", req.MaxIterations)
	s.store.SetStatus(rec.Run.ID, RunStatusRunning, "")
	s.metrics.RunStarted()
	start := time.Now()

	engine := s.newEngine(mol)
	if _, err := engine.BuildHamiltonian(); err != nil {
		return rec, s.failRun(rec.Run.ID, err)
	}
	results, err := engine.RunComparison(req.MaxIterations, nil)
	if err != nil {
		return rec, s.failRun(rec.Run.ID, err)
	}

	s.store.SetComparison(rec.Run.ID, results)
	s.store.SetStatus(rec.Run.ID, RunStatusCompleted, "")
	evals := 0
	for _, r := range results {
		evals += r.Evaluations
	}
	s.metrics.RunCompleted(mol.Name, evals, time.Since(start), bestEnergy(results))
	return rec, nil
}

// ScanBondLength validates and executes a dissociation scan.
func (s *Service) ScanBondLength(ctx context.Context, req ScanRequest) (*RunRecord, error) {
	mol, err := s.registry.Get(req.Molecule)
	if err != nil {
		return nil, err
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	rec := s.store.Create(RunKindScan, mol.Name, "", s.cfg.Scan.PointIterations)
	s.store.SetStatus(rec.Run.ID, RunStatusRunning, "")
	s.metrics.RunStarted()
	start := time.Now()

	engine := s.newEngine(mol)
	scan, err := engine.ScanBondLength(req.Start, req.End, req.Steps)
	if err != nil {
		return rec, s.failRun(rec.Run.ID, err)
	}

	s.store.SetScan(rec.Run.ID, scan)
	s.store.SetStatus(rec.Run.ID, RunStatusCompleted, "")
	s.metrics.RunCompleted(mol.Name, 0, time.Since(start), scan.EquilibriumEnergy)
	return rec, nil
}

// Analyze recomputes convergence statistics for a stored run.
func (s *Service) Analyze(runID string) (*vqe.Analytics, error) {
	rec, ok := s.store.Get(runID)
	if !ok {
		return nil, &vqe.ValidationError{Reason: "run not found: " + runID}
	}
	if rec.Result == nil {
		return nil, &vqe.ValidationError{Reason: "run has no iteration history to analyze"}
	}
	analytics, err := vqe.Analyze(rec.Result.Samples)
	if err != nil {
		return nil, err
	}
	s.store.SetAnalytics(runID, analytics)
	return analytics, nil
}

// Export writes a completed run's result to the export directory.
func (s *Service) Export(runID string) (string, error) {
	rec, ok := s.store.Get(runID)
	if !ok {
		return "", &vqe.ValidationError{Reason: "run not found: " + runID}
	}
	if rec.Result == nil {
		return "", &vqe.ValidationError{Reason: "run has no result to export"}
	}
	mol, err := s.registry.Get(rec.Run.Molecule)
	if err != nil {
		return "", err
	}

	return s.exporter.Export(&vqe.ResultRecord{
		RunID:            rec.Run.ID,
		Molecule:         mol.Name,
		Geometry:         mol.Geometry.String(),
		Basis:            mol.Basis,
		Optimizer:        string(rec.Result.Optimizer),
		MaxIterations:    rec.Run.MaxIterations,
		VQEEnergy:        rec.Result.Energy,
		ClassicalEnergy:  rec.Result.ClassicalEnergy,
		NuclearRepulsion: rec.Result.NuclearRepulsion,
		ErrorPercent:     rec.Result.ErrorPercent,
		Samples:          rec.Result.Samples,
		Analytics:        rec.Analytics,
		CreatedAt:        time.UnixMilli(rec.Run.CreatedAtUnixMs).UTC(),
	})
}

// GetRun returns a stored run by ID.
func (s *Service) GetRun(runID string) (*RunRecord, bool) {
	return s.store.Get(runID)
}

// ListRuns returns up to limit stored runs, newest first.
func (s *Service) ListRuns(limit int) []*RunRecord {
	return s.store.List(limit)
}

// Metrics returns a snapshot of service activity counters.
func (s *Service) Metrics() *metrics.Snapshot {
	return s.metrics.Snapshot()
}

func (s *Service) failRun(runID string, err error) error {
	s.store.SetStatus(runID, RunStatusFailed, err.Error())
	s.metrics.RunFailed()
	s.log.Warn("run failed", "run_id", runID, "error", err)
	return err
}

func bestEnergy(results []*vqe.OptimizationResult) float64 {
	best := 0.0
	found := false
	for _, r := range results {
		if r.Err != "" {
			continue
		}
		if !found || r.Energy < best {
			best = r.Energy
			found = true
		}
	}
	return best
}
