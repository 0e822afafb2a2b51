// Package chem defines the contracts between the engine and its
// numerical backends: the classical electronic-structure solver, the
// fermion-to-qubit mapper, and the second-quantized Hamiltonian they
// exchange.
package chem

import "fmt"

// SecondQuantized is an electronic Hamiltonian over an active space of
// spatial molecular orbitals, in atomic units (Hartree).
//
// OneBody holds h_pq; TwoBody holds the chemist-notation integrals
// (pq|rs). Both are indexed by spatial orbital.
type SecondQuantized struct {
	NumOrbitals int
	OneBody     [][]float64
	TwoBody     [][][][]float64
	// CoreEnergy is a constant electronic offset from frozen core
	// orbitals. The mapper folds it into the identity term so that the
	// qubit operator's expectation is the full electronic energy.
	CoreEnergy float64
}

// NewSecondQuantized allocates zeroed integral tensors for n spatial
// orbitals.
func NewSecondQuantized(n int) *SecondQuantized {
	one := make([][]float64, n)
	for p := range one {
		one[p] = make([]float64, n)
	}
	two := make([][][][]float64, n)
	for p := range two {
		two[p] = make([][][]float64, n)
		for q := range two[p] {
			two[p][q] = make([][]float64, n)
			for r := range two[p][q] {
				two[p][q][r] = make([]float64, n)
			}
		}
	}
	return &SecondQuantized{NumOrbitals: n, OneBody: one, TwoBody: two}
}

// Validate checks tensor shapes against the orbital count.
func (h *SecondQuantized) Validate() error {
	n := h.NumOrbitals
	if n <= 0 {
		return fmt.Errorf("hamiltonian must span at least one orbital, got %d", n)
	}
	if len(h.OneBody) != n {
		return fmt.Errorf("one-body tensor has %d rows, expected %d", len(h.OneBody), n)
	}
	for p, row := range h.OneBody {
		if len(row) != n {
			return fmt.Errorf("one-body row %d has %d columns, expected %d", p, len(row), n)
		}
	}
	if len(h.TwoBody) != n {
		return fmt.Errorf("two-body tensor has %d entries, expected %d", len(h.TwoBody), n)
	}
	return nil
}

// RestrictedHartreeFock evaluates the closed-shell mean-field electronic
// energy for the given electron count: occupied orbitals are the lowest
// electrons/2 spatials, each doubly filled.
//
//	E = 2 Σ_i h_ii + Σ_ij [ 2 (ii|jj) − (ij|ji) ]
//
// Nuclear repulsion is not included.
func (h *SecondQuantized) RestrictedHartreeFock(electrons int) (float64, error) {
	if electrons <= 0 || electrons%2 != 0 {
		return 0, fmt.Errorf("restricted Hartree-Fock requires a positive even electron count, got %d", electrons)
	}
	occ := electrons / 2
	if occ > h.NumOrbitals {
		return 0, fmt.Errorf("%d doubly occupied orbitals exceed active space of %d", occ, h.NumOrbitals)
	}

	energy := 0.0
	for i := 0; i < occ; i++ {
		energy += 2 * h.OneBody[i][i]
	}
	for i := 0; i < occ; i++ {
		for j := 0; j < occ; j++ {
			energy += 2*h.TwoBody[i][i][j][j] - h.TwoBody[i][j][j][i]
		}
	}
	return energy, nil
}
