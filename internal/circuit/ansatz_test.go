package circuit

import (
	"testing"
)

func TestNewAnsatzStructure(t *testing.T) {
	tests := []struct {
		name        string
		numQubits   int
		electrons   int
		active      int
		wantReps    int
		wantParams  int
		wantXCount  int
		wantCZCount int
	}{
		{"H2-sized", 4, 2, 2, 1, 16, 2, 3},
		{"LiH-sized", 4, 4, 2, 2, 24, 2, 6},
		{"six qubits deep", 6, 4, 4, 2, 36, 4, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.numQubits, tt.electrons, tt.active)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Reps != tt.wantReps {
				t.Errorf("expected %d reps, got %d", tt.wantReps, a.Reps)
			}
			if a.NumParams != tt.wantParams {
				t.Errorf("expected %d params, got %d", tt.wantParams, a.NumParams)
			}

			xCount, czCount := 0, 0
			for _, g := range a.Gates {
				switch g.Kind {
				case GateX:
					xCount++
				case GateCZ:
					czCount++
				}
			}
			if xCount != tt.wantXCount {
				t.Errorf("expected %d reference X gates, got %d", tt.wantXCount, xCount)
			}
			if czCount != tt.wantCZCount {
				t.Errorf("expected %d entangling gates, got %d", tt.wantCZCount, czCount)
			}
		})
	}
}

func TestNewAnsatzReferenceFirst(t *testing.T) {
	a, err := New(4, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One electron per spin block: qubits 0 and 2.
	if a.Gates[0].Kind != GateX || a.Gates[0].Qubit != 0 {
		t.Errorf("expected first gate X on qubit 0, got %s on %d", a.Gates[0].Kind, a.Gates[0].Qubit)
	}
	if a.Gates[1].Kind != GateX || a.Gates[1].Qubit != 2 {
		t.Errorf("expected second gate X on qubit 2, got %s on %d", a.Gates[1].Kind, a.Gates[1].Qubit)
	}
	// The variational layer must come after the full reference prep.
	if a.Gates[2].Kind != GateRY {
		t.Errorf("expected rotation layer after reference prep, got %s", a.Gates[2].Kind)
	}
}

func TestNewAnsatzDeterministic(t *testing.T) {
	a1, err := New(4, 4, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a2, err := New(4, 4, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a1.Gates) != len(a2.Gates) || a1.NumParams != a2.NumParams {
		t.Fatal("identical inputs must produce identical structure")
	}
	for i := range a1.Gates {
		if a1.Gates[i] != a2.Gates[i] {
			t.Fatalf("gate %d differs between identical constructions", i)
		}
	}
}

func TestNewAnsatzInvalid(t *testing.T) {
	tests := []struct {
		name      string
		numQubits int
		electrons int
		active    int
	}{
		{"odd qubit count", 3, 2, 2},
		{"zero qubits", 0, 2, 2},
		{"odd electrons", 4, 3, 2},
		{"odd active electrons", 4, 4, 3},
		{"overfilled active space", 4, 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.numQubits, tt.electrons, tt.active); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBind(t *testing.T) {
	a, err := New(4, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := make([]float64, a.NumParams)
	for i := range params {
		params[i] = 0.1 * float64(i)
	}

	bound, err := a.Bind(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bound.Validate(); err != nil {
		t.Fatalf("bound circuit failed validation: %v", err)
	}

	// Binding must not mutate the ansatz.
	for _, g := range a.Gates {
		if g.Kind == GateRY && g.ParamIndex < 0 {
			t.Fatal("ansatz rotation gate lost its parameter index after binding")
		}
	}

	// Wrong parameter count rejected.
	if _, err := a.Bind(params[:3]); err == nil {
		t.Error("expected error for parameter count mismatch")
	}
}

func TestCircuitValidate(t *testing.T) {
	bad := &Circuit{
		NumQubits: 2,
		Gates:     []Gate{{Kind: GateCX, Qubit: 0, Target: 0, ParamIndex: -1}},
	}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for coinciding control and target")
	}

	unbound := &Circuit{
		NumQubits: 2,
		Gates:     []Gate{{Kind: GateRY, Qubit: 0, Target: -1, ParamIndex: 0}},
	}
	if err := unbound.Validate(); err == nil {
		t.Error("expected error for unbound parameter")
	}
}
