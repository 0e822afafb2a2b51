// Package operator defines the qubit-operator representation shared by
// the mapper, the simulator, and the engine.
package operator

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"
)

// PauliTerm is one weighted Pauli string, e.g. "IZXY" with a complex
// coefficient. The string has one letter per qubit, qubit 0 first.
type PauliTerm struct {
	Pauli string     `json:"pauli"`
	Coeff complex128 `json:"-"`
}

// QubitOperator is a weighted sum of Pauli strings acting on NumQubits
// qubits.
type QubitOperator struct {
	NumQubits int
	Terms     []PauliTerm
}

// Validate checks structural consistency: every term string has one
// letter per qubit drawn from {I, X, Y, Z}.
func (op *QubitOperator) Validate() error {
	if op.NumQubits <= 0 {
		return fmt.Errorf("operator must act on at least one qubit, got %d", op.NumQubits)
	}
	for i, t := range op.Terms {
		if len(t.Pauli) != op.NumQubits {
			return fmt.Errorf("term %d: pauli string length %d does not match qubit count %d", i, len(t.Pauli), op.NumQubits)
		}
		for _, c := range t.Pauli {
			switch c {
			case 'I', 'X', 'Y', 'Z':
			default:
				return fmt.Errorf("term %d: invalid pauli letter %q in %s", i, c, t.Pauli)
			}
		}
	}
	return nil
}

// NumTerms returns the number of Pauli terms.
func (op *QubitOperator) NumTerms() int {
	return len(op.Terms)
}

// Compact merges duplicate Pauli strings and drops terms whose
// coefficient magnitude falls below eps.
func (op *QubitOperator) Compact(eps float64) {
	merged := make(map[string]complex128, len(op.Terms))
	order := make([]string, 0, len(op.Terms))
	for _, t := range op.Terms {
		if _, seen := merged[t.Pauli]; !seen {
			order = append(order, t.Pauli)
		}
		merged[t.Pauli] += t.Coeff
	}

	out := op.Terms[:0]
	for _, pauli := range order {
		coeff := merged[pauli]
		if cmplx.Abs(coeff) < eps {
			continue
		}
		out = append(out, PauliTerm{Pauli: pauli, Coeff: coeff})
	}
	op.Terms = out
}

// TermSummary is a display-only description of one Pauli term. It is
// never used for energy computation.
type TermSummary struct {
	Pauli       string  `json:"pauli"`
	Coefficient float64 `json:"coefficient"`
	Meaning     string  `json:"meaning"`
}

// ExplainTerm categorizes a Pauli string for display.
func ExplainTerm(pauli string) string {
	switch {
	case pauli == strings.Repeat("I", len(pauli)):
		return "Identity - constant energy offset"
	case strings.ContainsAny(pauli, "XY"):
		return "X/Y terms - electron hopping/excitation"
	case strings.Contains(pauli, "Z"):
		return "Z terms - electron occupation"
	default:
		return "Mixed interaction term"
	}
}

// Summarize returns up to max term summaries ordered by descending
// coefficient magnitude, ties broken by Pauli string. Coefficients are
// reported as their real parts; a Hermitian operator's imaginary parts
// are negligible by construction.
func Summarize(op *QubitOperator, max int) []TermSummary {
	terms := make([]PauliTerm, len(op.Terms))
	copy(terms, op.Terms)
	sort.Slice(terms, func(i, j int) bool {
		ai, aj := cmplx.Abs(terms[i].Coeff), cmplx.Abs(terms[j].Coeff)
		if ai != aj {
			return ai > aj
		}
		return terms[i].Pauli < terms[j].Pauli
	})

	if max > 0 && len(terms) > max {
		terms = terms[:max]
	}

	out := make([]TermSummary, len(terms))
	for i, t := range terms {
		out[i] = TermSummary{
			Pauli:       t.Pauli,
			Coefficient: real(t.Coeff),
			Meaning:     ExplainTerm(t.Pauli),
		}
	}
	return out
}
