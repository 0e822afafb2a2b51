// Package molecule holds the static molecule catalog and geometry types
// consumed by the Hamiltonian pipeline.
package molecule

import (
	"fmt"
	"strconv"
	"strings"
)

// Atom is a single atom: element symbol plus Cartesian coordinates in
// angstroms.
type Atom struct {
	Symbol string  `yaml:"symbol" json:"symbol"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Z      float64 `yaml:"z" json:"z"`
}

// Geometry is an ordered list of atoms.
type Geometry []Atom

// String renders the geometry in the conventional solver input form,
// e.g. "H 0.0 0.0 0.0; H 0.0 0.0 0.735".
func (g Geometry) String() string {
	parts := make([]string, len(g))
	for i, a := range g {
		parts[i] = fmt.Sprintf("%s %s %s %s",
			a.Symbol, coord(a.X), coord(a.Y), coord(a.Z))
	}
	return strings.Join(parts, "; ")
}

// coord formats a coordinate keeping at least one decimal place, so
// whole angstroms render as "1.0" rather than "1".
func coord(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Clone returns a deep copy of the geometry.
func (g Geometry) Clone() Geometry {
	out := make(Geometry, len(g))
	copy(out, g)
	return out
}

// Equal reports whether two geometries are identical atom for atom.
func (g Geometry) Equal(other Geometry) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// WithBondLength returns a copy of a diatomic geometry with the second
// atom moved along the bond axis (z) to the given separation.
func (g Geometry) WithBondLength(r float64) (Geometry, error) {
	if len(g) != 2 {
		return nil, fmt.Errorf("bond length adjustment requires a diatomic geometry, got %d atoms", len(g))
	}
	out := g.Clone()
	out[1].Z = r
	return out, nil
}

// BondLength returns the current separation of a diatomic geometry
// measured along the bond axis.
func (g Geometry) BondLength() (float64, error) {
	if len(g) != 2 {
		return 0, fmt.Errorf("bond length requires a diatomic geometry, got %d atoms", len(g))
	}
	return g[1].Z - g[0].Z, nil
}
