package vqe

import "fmt"

// ValidationError rejects a request before any numerical work begins.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// SolverError wraps a failure from the classical solver or the qubit
// mapper, tagged with the pipeline stage at which it occurred. These
// are never retried internally: an unconverged solver rerun on
// identical inputs fails identically.
type SolverError struct {
	Stage string // "solver" or "mapping"
	Err   error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *SolverError) Unwrap() error {
	return e.Err
}

// OptimizationError wraps a simulator or optimizer failure that aborted
// a run.
type OptimizationError struct {
	Optimizer string
	Err       error
}

func (e *OptimizationError) Error() string {
	return fmt.Sprintf("optimizer %s failed: %v", e.Optimizer, e.Err)
}

func (e *OptimizationError) Unwrap() error {
	return e.Err
}
