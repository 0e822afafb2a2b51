// Package jw implements the Jordan-Wigner fermion-to-qubit transform.
//
// Spin orbitals are ordered in blocks: spin-up orbitals occupy qubits
// 0..M-1 and spin-down orbitals occupy qubits M..2M-1, where M is the
// number of spatial orbitals. Qubit count is therefore always even and
// equal to twice the active-space size.
package jw

import (
	"math/cmplx"

	"github.com/qsimlab/vqe-core/internal/chem"
	"github.com/qsimlab/vqe-core/internal/operator"
)

const pruneEps = 1e-10

// Mapper implements chem.Mapper.
type Mapper struct{}

// NewMapper creates a Jordan-Wigner mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Name returns the mapping's identifier.
func (m *Mapper) Name() string {
	return "jordan-wigner"
}

// ToQubitOperator maps a second-quantized Hamiltonian onto Pauli terms:
//
//	H = E_core + Σ_pq h_pq Σ_σ a†_pσ a_qσ
//	  + ½ Σ_pqrs (pq|rs) Σ_στ a†_pσ a†_rτ a_sτ a_qσ
func (m *Mapper) ToQubitOperator(h *chem.SecondQuantized) (*operator.QubitOperator, error) {
	if h == nil {
		return nil, &chem.MappingError{Reason: "nil hamiltonian"}
	}
	if err := h.Validate(); err != nil {
		return nil, &chem.MappingError{Reason: err.Error()}
	}

	n := h.NumOrbitals
	numQubits := 2 * n

	acc := newAccumulator(numQubits)
	if h.CoreEnergy != 0 {
		acc.add(identity(numQubits, complex(h.CoreEnergy, 0)))
	}

	// One-body terms, summed over both spins.
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			hpq := h.OneBody[p][q]
			if hpq == 0 {
				continue
			}
			for spin := 0; spin < 2; spin++ {
				prod := mulSums(raising(spinIndex(p, spin, n), numQubits),
					lowering(spinIndex(q, spin, n), numQubits))
				acc.addScaled(prod, complex(hpq, 0))
			}
		}
	}

	// Two-body terms in chemist notation.
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					g := h.TwoBody[p][q][r][s]
					if g == 0 {
						continue
					}
					for sigma := 0; sigma < 2; sigma++ {
						for tau := 0; tau < 2; tau++ {
							prod := mulSums(
								mulSums(raising(spinIndex(p, sigma, n), numQubits),
									raising(spinIndex(r, tau, n), numQubits)),
								mulSums(lowering(spinIndex(s, tau, n), numQubits),
									lowering(spinIndex(q, sigma, n), numQubits)))
							acc.addScaled(prod, complex(g/2, 0))
						}
					}
				}
			}
		}
	}

	op := acc.operator()
	op.Compact(pruneEps)
	if err := op.Validate(); err != nil {
		return nil, &chem.MappingError{Reason: err.Error()}
	}
	return op, nil
}

// spinIndex maps (spatial orbital, spin) to a qubit under block ordering.
func spinIndex(orbital, spin, numOrbitals int) int {
	return orbital + spin*numOrbitals
}

// term is one Pauli string under construction.
type term struct {
	pauli []byte
	coeff complex128
}

func identity(n int, coeff complex128) []term {
	p := make([]byte, n)
	for i := range p {
		p[i] = 'I'
	}
	return []term{{pauli: p, coeff: coeff}}
}

// lowering builds the JW image of the annihilation operator on qubit j:
// Z⊗...⊗Z ⊗ (X + iY)/2.
func lowering(j, n int) []term {
	return ladder(j, n, complex(0, 0.5))
}

// raising builds the JW image of the creation operator on qubit j:
// Z⊗...⊗Z ⊗ (X - iY)/2.
func raising(j, n int) []term {
	return ladder(j, n, complex(0, -0.5))
}

func ladder(j, n int, yCoeff complex128) []term {
	xPauli := make([]byte, n)
	yPauli := make([]byte, n)
	for i := 0; i < n; i++ {
		switch {
		case i < j:
			xPauli[i], yPauli[i] = 'Z', 'Z'
		case i == j:
			xPauli[i], yPauli[i] = 'X', 'Y'
		default:
			xPauli[i], yPauli[i] = 'I', 'I'
		}
	}
	return []term{
		{pauli: xPauli, coeff: 0.5},
		{pauli: yPauli, coeff: yCoeff},
	}
}

// mulPauli multiplies two single-qubit Pauli letters, returning the
// resulting letter and phase.
func mulPauli(a, b byte) (byte, complex128) {
	if a == 'I' {
		return b, 1
	}
	if b == 'I' {
		return a, 1
	}
	if a == b {
		return 'I', 1
	}
	switch {
	case a == 'X' && b == 'Y':
		return 'Z', complex(0, 1)
	case a == 'Y' && b == 'X':
		return 'Z', complex(0, -1)
	case a == 'Y' && b == 'Z':
		return 'X', complex(0, 1)
	case a == 'Z' && b == 'Y':
		return 'X', complex(0, -1)
	case a == 'Z' && b == 'X':
		return 'Y', complex(0, 1)
	default: // a == 'X' && b == 'Z'
		return 'Y', complex(0, -1)
	}
}

func mulTerms(a, b term) term {
	n := len(a.pauli)
	pauli := make([]byte, n)
	coeff := a.coeff * b.coeff
	for i := 0; i < n; i++ {
		letter, phase := mulPauli(a.pauli[i], b.pauli[i])
		pauli[i] = letter
		coeff *= phase
	}
	return term{pauli: pauli, coeff: coeff}
}

func mulSums(a, b []term) []term {
	out := make([]term, 0, len(a)*len(b))
	for _, ta := range a {
		for _, tb := range b {
			out = append(out, mulTerms(ta, tb))
		}
	}
	return out
}

// accumulator merges terms by Pauli string as they are added.
type accumulator struct {
	numQubits int
	coeffs    map[string]complex128
	order     []string
}

func newAccumulator(numQubits int) *accumulator {
	return &accumulator{
		numQubits: numQubits,
		coeffs:    make(map[string]complex128),
	}
}

func (a *accumulator) add(terms []term) {
	a.addScaled(terms, 1)
}

func (a *accumulator) addScaled(terms []term, scale complex128) {
	for _, t := range terms {
		if cmplx.Abs(t.coeff*scale) == 0 {
			continue
		}
		key := string(t.pauli)
		if _, seen := a.coeffs[key]; !seen {
			a.order = append(a.order, key)
		}
		a.coeffs[key] += t.coeff * scale
	}
}

func (a *accumulator) operator() *operator.QubitOperator {
	op := &operator.QubitOperator{NumQubits: a.numQubits}
	for _, pauli := range a.order {
		op.Terms = append(op.Terms, operator.PauliTerm{Pauli: pauli, Coeff: a.coeffs[pauli]})
	}
	return op
}
