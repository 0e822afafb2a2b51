package chem

import (
	"github.com/qsimlab/vqe-core/internal/molecule"
	"github.com/qsimlab/vqe-core/internal/operator"
)

// SolverResult is the output of one classical electronic-structure run.
type SolverResult struct {
	// Energy is the total mean-field energy including nuclear repulsion,
	// in Hartree.
	Energy float64
	// NuclearRepulsion is the classical electrostatic constant for the
	// fixed nuclear positions, in Hartree. Kept separate because VQE
	// objectives produce electronic energy only.
	NuclearRepulsion float64
	// Hamiltonian is the second-quantized electronic Hamiltonian over
	// the active orbital space.
	Hamiltonian *SecondQuantized
	// ActiveElectrons is the number of electrons in the active space
	// (core electrons may be frozen out).
	ActiveElectrons int
}

// ClassicalSolver computes a mean-field reference energy and the
// second-quantized Hamiltonian for a molecular configuration.
//
// Failures are reported as *GeometryError for malformed input and
// *DivergenceError when the calculation cannot converge.
type ClassicalSolver interface {
	Compute(geometry molecule.Geometry, basis string, charge, spin int) (*SolverResult, error)
}

// Mapper transforms a second-quantized Hamiltonian into a qubit
// operator. The resulting qubit count is a property of the mapping and
// the active space, never chosen by the caller.
type Mapper interface {
	ToQubitOperator(h *SecondQuantized) (*operator.QubitOperator, error)
	Name() string
}

// GeometryError indicates a malformed atom or coordinate specification.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "invalid geometry: " + e.Reason
}

// DivergenceError indicates the classical solver did not converge for
// the given configuration. Retrying with identical inputs is futile.
type DivergenceError struct {
	Reason string
}

func (e *DivergenceError) Error() string {
	return "classical solver did not converge: " + e.Reason
}

// MappingError indicates the fermion-to-qubit transform failed for the
// active space.
type MappingError struct {
	Reason string
}

func (e *MappingError) Error() string {
	return "qubit mapping failed: " + e.Reason
}
