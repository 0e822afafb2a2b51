package statevec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsimlab/vqe-core/internal/circuit"
	"github.com/qsimlab/vqe-core/internal/operator"
)

// singleQubitRY is a minimal hand-built ansatz: one RY rotation on one
// qubit, so expectation values are known analytically.
func singleQubitRY() *circuit.Ansatz {
	return &circuit.Ansatz{
		NumQubits: 1,
		NumParams: 1,
		Gates: []circuit.Gate{
			{Kind: circuit.GateRY, Qubit: 0, Target: -1, ParamIndex: 0},
		},
	}
}

func TestExpectationRotatedZ(t *testing.T) {
	sim := NewSimulator()
	op := &operator.QubitOperator{
		NumQubits: 1,
		Terms:     []operator.PauliTerm{{Pauli: "Z", Coeff: 1}},
	}

	// RY(theta)|0> has <Z> = cos(theta).
	for _, theta := range []float64{0, math.Pi / 4, math.Pi / 2, math.Pi, 2.3} {
		e, err := sim.Expectation(singleQubitRY(), []float64{theta}, op)
		require.NoError(t, err)
		assert.InDelta(t, math.Cos(theta), e, 1e-12, "theta=%f", theta)
	}
}

func TestExpectationIdentityOffset(t *testing.T) {
	sim := NewSimulator()
	op := &operator.QubitOperator{
		NumQubits: 1,
		Terms: []operator.PauliTerm{
			{Pauli: "I", Coeff: complex(-1.5, 0)},
			{Pauli: "Z", Coeff: complex(0.5, 0)},
		},
	}

	e, err := sim.Expectation(singleQubitRY(), []float64{0}, op)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, e, 1e-12)
}

func TestExpectationBellState(t *testing.T) {
	// RY(pi/2) on qubit 0 then CX(0,1) prepares (|00> + |11>)/sqrt(2).
	bell := &circuit.Ansatz{
		NumQubits: 2,
		NumParams: 1,
		Gates: []circuit.Gate{
			{Kind: circuit.GateRY, Qubit: 0, Target: -1, ParamIndex: 0},
			{Kind: circuit.GateCX, Qubit: 0, Target: 1, ParamIndex: -1},
		},
	}
	sim := NewSimulator()

	tests := []struct {
		pauli string
		want  float64
	}{
		{"ZZ", 1},
		{"XX", 1},
		{"YY", -1},
		{"ZI", 0},
		{"IZ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.pauli, func(t *testing.T) {
			op := &operator.QubitOperator{
				NumQubits: 2,
				Terms:     []operator.PauliTerm{{Pauli: tt.pauli, Coeff: 1}},
			}
			e, err := sim.Expectation(bell, []float64{math.Pi / 2}, op)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, e, 1e-12)
		})
	}
}

func TestExpectationCZPhase(t *testing.T) {
	// RY(pi/2) on qubit 0, X on qubit 1, then CZ: the conditional phase
	// flips <X> on qubit 0 from +1 to -1.
	ansatz := &circuit.Ansatz{
		NumQubits: 2,
		NumParams: 1,
		Gates: []circuit.Gate{
			{Kind: circuit.GateRY, Qubit: 0, Target: -1, ParamIndex: 0},
			{Kind: circuit.GateX, Qubit: 1, Target: -1, ParamIndex: -1},
			{Kind: circuit.GateCZ, Qubit: 0, Target: 1, ParamIndex: -1},
		},
	}
	op := &operator.QubitOperator{
		NumQubits: 2,
		Terms:     []operator.PauliTerm{{Pauli: "XI", Coeff: 1}},
	}

	e, err := NewSimulator().Expectation(ansatz, []float64{math.Pi / 2}, op)
	require.NoError(t, err)
	assert.InDelta(t, -1, e, 1e-12)
}

func TestExpectationReferenceDeterminant(t *testing.T) {
	// The Hartree-Fock prep for 4 qubits / 2 active electrons flips
	// qubits 0 and 2, so <Z> is -1 there and +1 elsewhere.
	ansatz, err := circuit.New(4, 2, 2)
	require.NoError(t, err)
	params := make([]float64, ansatz.NumParams) // zero angles keep the determinant

	sim := NewSimulator()
	tests := []struct {
		pauli string
		want  float64
	}{
		{"ZIII", -1},
		{"IZII", 1},
		{"IIZI", -1},
		{"IIIZ", 1},
	}
	for _, tt := range tests {
		op := &operator.QubitOperator{
			NumQubits: 4,
			Terms:     []operator.PauliTerm{{Pauli: tt.pauli, Coeff: 1}},
		}
		e, err := sim.Expectation(ansatz, params, op)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, e, 1e-12, "pauli %s", tt.pauli)
	}
}

func TestExpectationDeterministic(t *testing.T) {
	ansatz, err := circuit.New(4, 2, 2)
	require.NoError(t, err)
	params := make([]float64, ansatz.NumParams)
	for i := range params {
		params[i] = 0.17 * float64(i+1)
	}
	op := &operator.QubitOperator{
		NumQubits: 4,
		Terms: []operator.PauliTerm{
			{Pauli: "ZZII", Coeff: 0.3},
			{Pauli: "XXYY", Coeff: -0.1},
		},
	}

	sim := NewSimulator()
	e1, err := sim.Expectation(ansatz, params, op)
	require.NoError(t, err)
	e2, err := sim.Expectation(ansatz, params, op)
	require.NoError(t, err)
	assert.Equal(t, e1, e2, "exact statevector semantics must be bit-deterministic")
}

func TestExpectationQubitMismatch(t *testing.T) {
	sim := NewSimulator()
	op := &operator.QubitOperator{NumQubits: 2, Terms: []operator.PauliTerm{{Pauli: "ZZ", Coeff: 1}}}
	_, err := sim.Expectation(singleQubitRY(), []float64{0}, op)
	assert.Error(t, err)
}
