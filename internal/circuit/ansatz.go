package circuit

import "fmt"

// Ansatz is a parameterized trial-state circuit: a Hartree-Fock
// reference preparation followed by two-local variational layers.
// Structure is fully determined by (qubit count, electron counts); the
// parameter values are always supplied externally.
type Ansatz struct {
	NumQubits int
	NumParams int
	Reps      int
	Gates     []Gate
}

// repetitionsFor chooses the variational depth: shallow for the trivial
// two-electron landscape, deeper when more correlation is present.
func repetitionsFor(electrons int) int {
	if electrons <= 2 {
		return 1
	}
	return 2
}

// New composes the ansatz for a Hamiltonian on numQubits qubits.
// electrons is the molecule's total electron count and sets the
// variational depth; activeElectrons is the number occupying the active
// space and sets the reference determinant. Spin orbitals follow block
// ordering: spin-up on qubits 0..m-1, spin-down on m..2m-1.
func New(numQubits, electrons, activeElectrons int) (*Ansatz, error) {
	if numQubits <= 0 || numQubits%2 != 0 {
		return nil, fmt.Errorf("ansatz requires a positive even qubit count, got %d", numQubits)
	}
	if electrons <= 0 || electrons%2 != 0 {
		return nil, fmt.Errorf("ansatz requires a positive even electron count, got %d", electrons)
	}
	if activeElectrons <= 0 || activeElectrons%2 != 0 {
		return nil, fmt.Errorf("ansatz requires a positive even active electron count, got %d", activeElectrons)
	}

	spatials := numQubits / 2
	occupied := activeElectrons / 2
	if occupied > spatials {
		return nil, fmt.Errorf("%d occupied orbitals exceed %d spatials", occupied, spatials)
	}

	reps := repetitionsFor(electrons)
	a := &Ansatz{
		NumQubits: numQubits,
		Reps:      reps,
	}

	// Reference state: occupy the lowest orbitals in both spin blocks
	// so the variational layers start from the mean-field determinant.
	for i := 0; i < occupied; i++ {
		a.Gates = append(a.Gates, Gate{Kind: GateX, Qubit: i, Target: -1, ParamIndex: -1})
		a.Gates = append(a.Gates, Gate{Kind: GateX, Qubit: spatials + i, Target: -1, ParamIndex: -1})
	}

	// Two-local layers: RY and RZ rotation columns separated by a
	// linear CZ chain, with a final rotation column. Gate count stays
	// linear in qubit count, and the diagonal entangler leaves the
	// reference determinant fixed at zero angles.
	param := 0
	rotationColumn := func() {
		for q := 0; q < numQubits; q++ {
			a.Gates = append(a.Gates, Gate{Kind: GateRY, Qubit: q, Target: -1, ParamIndex: param})
			param++
		}
		for q := 0; q < numQubits; q++ {
			a.Gates = append(a.Gates, Gate{Kind: GateRZ, Qubit: q, Target: -1, ParamIndex: param})
			param++
		}
	}
	for rep := 0; rep < reps; rep++ {
		rotationColumn()
		for q := 0; q < numQubits-1; q++ {
			a.Gates = append(a.Gates, Gate{Kind: GateCZ, Qubit: q, Target: q + 1, ParamIndex: -1})
		}
	}
	rotationColumn()
	a.NumParams = param

	return a, nil
}

// Bind resolves the parameter vector into a concrete circuit. The
// ansatz itself is never mutated, so one ansatz serves many evaluations.
func (a *Ansatz) Bind(params []float64) (*Circuit, error) {
	if len(params) != a.NumParams {
		return nil, fmt.Errorf("parameter count mismatch: got %d, ansatz has %d", len(params), a.NumParams)
	}

	bound := &Circuit{
		NumQubits: a.NumQubits,
		Gates:     make([]Gate, len(a.Gates)),
	}
	for i, g := range a.Gates {
		if g.ParamIndex >= 0 {
			g.Angle = params[g.ParamIndex]
			g.ParamIndex = -1
		}
		bound.Gates[i] = g
	}
	return bound, nil
}
