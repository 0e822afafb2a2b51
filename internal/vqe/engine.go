package vqe

import (
	"log/slog"

	"github.com/qsimlab/vqe-core/internal/chem"
	"github.com/qsimlab/vqe-core/internal/circuit"
	"github.com/qsimlab/vqe-core/internal/molecule"
	"github.com/qsimlab/vqe-core/internal/operator"
	"github.com/qsimlab/vqe-core/pkg/config"
	"github.com/qsimlab/vqe-core/pkg/logger"
)

// maxSummaryTerms caps the display summary attached to a Hamiltonian.
const maxSummaryTerms = 10

// Simulator evaluates the energy expectation of a bound trial state.
type Simulator interface {
	Expectation(ansatz *circuit.Ansatz, params []float64, op *operator.QubitOperator) (float64, error)
}

// Hamiltonian caches everything derived from one geometry: the qubit
// operator produced by the mapper, the classical reference energies,
// and a display summary. It is invalidated whenever geometry changes.
type Hamiltonian struct {
	NumQubits        int
	Operator         *operator.QubitOperator
	ClassicalEnergy  float64 // total mean-field energy, Hartree
	NuclearRepulsion float64 // Hartree
	ActiveElectrons  int
	MapperName       string
	Summary          []operator.TermSummary
}

// Engine runs the VQE pipeline for one molecule: classical solve,
// qubit mapping, ansatz construction, and variational optimization.
//
// An Engine is not safe for concurrent use. Concurrent runs each get
// their own Engine; the backends behind it are stateless and shared.
type Engine struct {
	mol    *molecule.Config
	solver chem.ClassicalSolver
	mapper chem.Mapper
	sim    Simulator
	cfg    *config.Config
	log    *slog.Logger

	hamiltonian *Hamiltonian
	lastResult  *OptimizationResult
}

// NewEngine assembles an engine over explicit backends. The molecule
// config is cloned so scans can mutate geometry freely.
func NewEngine(mol *molecule.Config, solver chem.ClassicalSolver, mapper chem.Mapper, sim Simulator, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		mol:    mol.Clone(),
		solver: solver,
		mapper: mapper,
		sim:    sim,
		cfg:    cfg,
		log:    logger.With("molecule", mol.Name),
	}
}

// Molecule returns the engine's current molecule configuration,
// including any geometry mutation applied since construction.
func (e *Engine) Molecule() *molecule.Config {
	return e.mol.Clone()
}

// Hamiltonian returns the cached Hamiltonian, or nil when the current
// geometry has not been built yet.
func (e *Engine) Hamiltonian() *Hamiltonian {
	return e.hamiltonian
}

// LastResult returns the most recent optimization result, superseded on
// every run and cleared when geometry changes.
func (e *Engine) LastResult() *OptimizationResult {
	return e.lastResult
}

// SetGeometry replaces the molecular geometry and drops every quantity
// derived from the old one. A stale classical energy must never be
// paired with a fresh qubit operator.
func (e *Engine) SetGeometry(g molecule.Geometry) {
	e.mol.Geometry = g.Clone()
	e.invalidate()
}

// SetBondLength moves the second atom to the given internuclear
// distance. Only diatomics support this.
func (e *Engine) SetBondLength(r float64) error {
	g, err := e.mol.Geometry.WithBondLength(r)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	e.mol.Geometry = g
	e.invalidate()
	return nil
}

func (e *Engine) invalidate() {
	e.hamiltonian = nil
	e.lastResult = nil
}

// BuildHamiltonian runs the classical solver and the qubit mapper for
// the current geometry, caching the result. On failure the cache is
// cleared so later stages cannot observe a half-built state.
func (e *Engine) BuildHamiltonian() (*Hamiltonian, error) {
	e.hamiltonian = nil

	res, err := e.solver.Compute(e.mol.Geometry, e.mol.Basis, e.mol.Charge, e.mol.Spin)
	if err != nil {
		e.log.Warn("classical solve failed", "geometry", e.mol.Geometry.String(), "error", err)
		return nil, &SolverError{Stage: "solver", Err: err}
	}

	op, err := e.mapper.ToQubitOperator(res.Hamiltonian)
	if err != nil {
		e.log.Warn("qubit mapping failed", "geometry", e.mol.Geometry.String(), "error", err)
		return nil, &SolverError{Stage: "mapping", Err: err}
	}

	e.hamiltonian = &Hamiltonian{
		NumQubits:        op.NumQubits,
		Operator:         op,
		ClassicalEnergy:  res.Energy,
		NuclearRepulsion: res.NuclearRepulsion,
		ActiveElectrons:  res.ActiveElectrons,
		MapperName:       e.mapper.Name(),
		Summary:          operator.Summarize(op, maxSummaryTerms),
	}
	e.log.Info("hamiltonian built",
		"qubits", op.NumQubits,
		"terms", op.NumTerms(),
		"classical_energy", res.Energy,
		"mapper", e.mapper.Name())
	return e.hamiltonian, nil
}

// CreateAnsatz builds the trial circuit for the cached Hamiltonian.
// Depth follows the molecule's total electron count; the reference
// determinant follows the active electron count.
func (e *Engine) CreateAnsatz() (*circuit.Ansatz, error) {
	if e.hamiltonian == nil {
		return nil, &ValidationError{Reason: "hamiltonian not built for current geometry"}
	}
	a, err := circuit.New(e.hamiltonian.NumQubits, e.mol.Electrons, e.hamiltonian.ActiveElectrons)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	return a, nil
}
