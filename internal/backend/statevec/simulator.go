// Package statevec implements exact statevector simulation of the trial
// circuits: deterministic amplitudes, no shot noise, so the optimizer
// sees a noiseless energy landscape.
package statevec

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/qsimlab/vqe-core/internal/circuit"
	"github.com/qsimlab/vqe-core/internal/operator"
)

// Simulator evaluates expectation values against exact statevectors.
// Qubit q maps to bit q of the basis-state index.
type Simulator struct{}

// NewSimulator creates a statevector simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Expectation binds params into the ansatz, evolves |0...0> through the
// resulting circuit, and returns <psi|H|psi> as a real energy.
func (s *Simulator) Expectation(ansatz *circuit.Ansatz, params []float64, op *operator.QubitOperator) (float64, error) {
	if ansatz.NumQubits != op.NumQubits {
		return 0, fmt.Errorf("ansatz acts on %d qubits but operator on %d", ansatz.NumQubits, op.NumQubits)
	}

	bound, err := ansatz.Bind(params)
	if err != nil {
		return 0, err
	}
	if err := bound.Validate(); err != nil {
		return 0, err
	}

	state, err := run(bound)
	if err != nil {
		return 0, err
	}

	var energy complex128
	scratch := make([]complex128, len(state))
	for _, term := range op.Terms {
		applyPauli(term.Pauli, state, scratch)
		var overlap complex128
		for i := range state {
			overlap += cmplx.Conj(state[i]) * scratch[i]
		}
		energy += term.Coeff * overlap
	}
	return real(energy), nil
}

// run evolves the all-zeros state through a bound circuit.
func run(c *circuit.Circuit) ([]complex128, error) {
	state := make([]complex128, 1<<uint(c.NumQubits))
	state[0] = 1

	for _, g := range c.Gates {
		switch g.Kind {
		case circuit.GateX:
			applySingle(state, g.Qubit, 0, 1, 1, 0)
		case circuit.GateRY:
			half := g.Angle / 2
			cos, sin := complex(math.Cos(half), 0), complex(math.Sin(half), 0)
			applySingle(state, g.Qubit, cos, -sin, sin, cos)
		case circuit.GateRZ:
			half := g.Angle / 2
			phase := cmplx.Exp(complex(0, half))
			applySingle(state, g.Qubit, cmplx.Conj(phase), 0, 0, phase)
		case circuit.GateCX:
			applyCX(state, g.Qubit, g.Target)
		case circuit.GateCZ:
			applyCZ(state, g.Qubit, g.Target)
		default:
			return nil, fmt.Errorf("unsupported gate kind %q", g.Kind)
		}
	}
	return state, nil
}

// applySingle applies the 2x2 matrix [[m00, m01], [m10, m11]] to one
// qubit of the state.
func applySingle(state []complex128, qubit int, m00, m01, m10, m11 complex128) {
	bit := 1 << uint(qubit)
	for i := range state {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := state[i], state[j]
		state[i] = m00*a0 + m01*a1
		state[j] = m10*a0 + m11*a1
	}
}

func applyCX(state []complex128, control, target int) {
	cbit := 1 << uint(control)
	tbit := 1 << uint(target)
	for i := range state {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			state[i], state[j] = state[j], state[i]
		}
	}
}

func applyCZ(state []complex128, control, target int) {
	cbit := 1 << uint(control)
	tbit := 1 << uint(target)
	for i := range state {
		if i&cbit != 0 && i&tbit != 0 {
			state[i] = -state[i]
		}
	}
}

// applyPauli writes P|psi> into dst for a Pauli string over the state's
// qubits.
func applyPauli(pauli string, state, dst []complex128) {
	flips := 0
	for q := 0; q < len(pauli); q++ {
		if pauli[q] == 'X' || pauli[q] == 'Y' {
			flips |= 1 << uint(q)
		}
	}

	for i := range dst {
		dst[i] = 0
	}
	for i, amp := range state {
		if amp == 0 {
			continue
		}
		phase := complex128(1)
		for q := 0; q < len(pauli); q++ {
			bitSet := i&(1<<uint(q)) != 0
			switch pauli[q] {
			case 'Z':
				if bitSet {
					phase = -phase
				}
			case 'Y':
				if bitSet {
					phase *= complex(0, -1)
				} else {
					phase *= complex(0, 1)
				}
			}
		}
		dst[i^flips] += phase * amp
	}
}
