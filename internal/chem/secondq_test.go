package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecondQuantizedShapes(t *testing.T) {
	h := NewSecondQuantized(3)
	require.NoError(t, h.Validate())
	assert.Len(t, h.OneBody, 3)
	assert.Len(t, h.OneBody[0], 3)
	assert.Len(t, h.TwoBody, 3)
	assert.Len(t, h.TwoBody[2][1][0], 3)
}

func TestValidateShapes(t *testing.T) {
	h := NewSecondQuantized(2)
	h.OneBody = h.OneBody[:1]
	assert.Error(t, h.Validate())

	bad := &SecondQuantized{NumOrbitals: 0}
	assert.Error(t, bad.Validate())
}

func TestRestrictedHartreeFock(t *testing.T) {
	// Two orbitals, two electrons: only orbital 0 is occupied, so
	// E = 2*h00 + (00|00).
	h := NewSecondQuantized(2)
	h.OneBody[0][0] = -1.25
	h.OneBody[1][1] = -0.48
	h.TwoBody[0][0][0][0] = 0.67

	e, err := h.RestrictedHartreeFock(2)
	require.NoError(t, err)
	assert.InDelta(t, 2*(-1.25)+0.67, e, 1e-12)
}

func TestRestrictedHartreeFockTwoOccupied(t *testing.T) {
	h := NewSecondQuantized(2)
	h.OneBody[0][0] = -2.0
	h.OneBody[1][1] = -1.0
	h.TwoBody[0][0][0][0] = 0.5
	h.TwoBody[1][1][1][1] = 0.4
	h.TwoBody[0][0][1][1] = 0.3
	h.TwoBody[1][1][0][0] = 0.3
	h.TwoBody[0][1][1][0] = 0.1
	h.TwoBody[1][0][0][1] = 0.1

	e, err := h.RestrictedHartreeFock(4)
	require.NoError(t, err)

	want := 0.0
	for i := 0; i < 2; i++ {
		want += 2 * h.OneBody[i][i]
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want += 2*h.TwoBody[i][i][j][j] - h.TwoBody[i][j][j][i]
		}
	}
	assert.InDelta(t, want, e, 1e-12)
}

func TestRestrictedHartreeFockInvalidElectrons(t *testing.T) {
	h := NewSecondQuantized(2)

	_, err := h.RestrictedHartreeFock(3)
	assert.Error(t, err, "odd electron counts are out of scope")

	_, err = h.RestrictedHartreeFock(0)
	assert.Error(t, err)

	_, err = h.RestrictedHartreeFock(6)
	assert.Error(t, err, "occupation beyond active space")
}
