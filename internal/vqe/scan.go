package vqe

import (
	"github.com/qsimlab/vqe-core/pkg/utils"
)

// ScanPoint is one bond length in a dissociation scan. Energies are nil
// when the Hamiltonian could not be built at that distance; a scan
// never fabricates values for a failed point.
type ScanPoint struct {
	BondLength      float64  `json:"bond_length"`
	ClassicalEnergy *float64 `json:"classical_energy"`
	VQEEnergy       *float64 `json:"vqe_energy"`
}

// ScanResult is the full dissociation curve.
type ScanResult struct {
	Points []ScanPoint `json:"points"`
	// EquilibriumBondLength is the distance of the lowest classical
	// energy among successful points, 0 when every point failed.
	EquilibriumBondLength float64 `json:"equilibrium_bond_length"`
	// EquilibriumEnergy is the classical energy at that distance.
	EquilibriumEnergy float64 `json:"equilibrium_energy"`
	Failed            int     `json:"failed_points"`
}

// ScanBondLength sweeps the bond length over [start, end] in steps
// evenly spaced points, running a reduced-budget VQE at each. The
// engine's geometry is restored to its pre-scan state afterwards, with
// the Hamiltonian rebuilt for it, so a scan is observably side-effect
// free.
func (e *Engine) ScanBondLength(start, end float64, steps int) (*ScanResult, error) {
	if e.mol.Atoms() != 2 {
		return nil, &ValidationError{Reason: "bond-length scan requires a diatomic molecule"}
	}
	if !(start > 0) || !(end > start) {
		return nil, &ValidationError{Reason: "scan range must satisfy 0 < start < end"}
	}
	limits := e.cfg.Scan
	if steps < limits.MinSteps || steps > limits.MaxSteps {
		return nil, &ValidationError{Reason: "scan step count outside configured bounds"}
	}

	original := e.mol.Geometry.Clone()
	defer func() {
		e.SetGeometry(original)
		if _, err := e.BuildHamiltonian(); err != nil {
			e.log.Warn("post-scan hamiltonian rebuild failed", "error", err)
		}
	}()

	result := &ScanResult{Points: make([]ScanPoint, 0, steps)}
	classical := make([]float64, 0, steps)
	lengths := make([]float64, 0, steps)

	for _, r := range utils.Linspace(start, end, steps) {
		point := ScanPoint{BondLength: r}
		if err := e.SetBondLength(r); err != nil {
			return nil, err
		}
		h, err := e.BuildHamiltonian()
		if err != nil {
			// Divergent points are part of a dissociation curve, not a
			// reason to abort it.
			e.log.Warn("scan point skipped", "bond_length", r, "error", err)
			result.Failed++
			result.Points = append(result.Points, point)
			continue
		}
		ce := h.ClassicalEnergy
		point.ClassicalEnergy = &ce
		classical = append(classical, ce)
		lengths = append(lengths, r)

		run, err := e.Run(limits.PointIterations, nil)
		if err != nil {
			e.log.Warn("scan point optimization failed", "bond_length", r, "error", err)
			result.Failed++
		} else {
			ve := run.Energy
			point.VQEEnergy = &ve
		}
		result.Points = append(result.Points, point)
	}

	if i := utils.ArgMin(classical); i >= 0 {
		result.EquilibriumBondLength = lengths[i]
		result.EquilibriumEnergy = classical[i]
	}
	e.log.Info("bond-length scan finished",
		"points", steps,
		"failed", result.Failed,
		"equilibrium", result.EquilibriumBondLength)
	return result, nil
}
