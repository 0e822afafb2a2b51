// Package circuit provides the parameterized trial-state circuits used
// by the VQE pipeline.
package circuit

import "fmt"

// GateKind identifies a gate family.
type GateKind string

const (
	GateX  GateKind = "x"
	GateRY GateKind = "ry"
	GateRZ GateKind = "rz"
	GateCX GateKind = "cx"
	GateCZ GateKind = "cz"
)

// Gate is one operation in a circuit. For two-qubit gates Qubit is the
// control and Target the target; single-qubit gates leave Target at -1.
// A parameterized rotation carries ParamIndex >= 0; bound or fixed
// gates carry the angle directly.
type Gate struct {
	Kind       GateKind
	Qubit      int
	Target     int
	ParamIndex int
	Angle      float64
}

// Circuit is a fully bound (non-parameterized) gate sequence.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// Validate checks qubit indices and that no gate is left unbound.
func (c *Circuit) Validate() error {
	for i, g := range c.Gates {
		if g.Qubit < 0 || g.Qubit >= c.NumQubits {
			return fmt.Errorf("gate %d: qubit %d out of range [0, %d)", i, g.Qubit, c.NumQubits)
		}
		if g.Kind == GateCX || g.Kind == GateCZ {
			if g.Target < 0 || g.Target >= c.NumQubits {
				return fmt.Errorf("gate %d: target %d out of range [0, %d)", i, g.Target, c.NumQubits)
			}
			if g.Target == g.Qubit {
				return fmt.Errorf("gate %d: control and target coincide on qubit %d", i, g.Qubit)
			}
		}
		if g.ParamIndex >= 0 {
			return fmt.Errorf("gate %d: unbound parameter %d in concrete circuit", i, g.ParamIndex)
		}
	}
	return nil
}
