package scf

import "math"

const angstromToBohr = 1.8897259886

// integralModel is a fitted effective-integral model for one supported
// species pair. One- and two-electron MO integrals are smooth functions
// of the internuclear distance, anchored so that the closed-shell
// mean-field energy follows a Morse curve through published STO-3G
// reference points.
type integralModel struct {
	name            string
	numOrbitals     int
	activeElectrons int
	zProduct        float64 // Z1 * Z2 for nuclear repulsion
	rMin, rMax      float64 // fitted domain, angstroms

	// Morse parameters for the mean-field total energy curve.
	eqBond     float64 // equilibrium bond length, angstroms
	eqEnergy   float64 // total energy at equilibrium, Hartree
	wellDepth  float64 // dissociation well depth, Hartree
	morseWidth float64 // inverse width parameter, 1/angstrom

	// Two-electron integral fits (chemist notation), Hartree.
	g0000 func(r float64) float64
	g1111 func(r float64) float64
	g0011 func(r float64) float64
	g0110 func(r float64) float64

	// Splitting of the bonding/antibonding one-body energies, Hartree.
	orbitalGap func(r float64) float64

	// Frozen-core energy offset, Hartree (zero when nothing is frozen).
	coreEnergy func(r float64) float64
}

// nuclearRepulsion returns Z1*Z2/R in Hartree for a separation in
// angstroms.
func (m *integralModel) nuclearRepulsion(r float64) float64 {
	return m.zProduct / (r * angstromToBohr)
}

// meanFieldEnergy returns the Morse-curve total energy at separation r.
func (m *integralModel) meanFieldEnergy(r float64) float64 {
	x := 1 - math.Exp(-m.morseWidth*(r-m.eqBond))
	return m.eqEnergy + m.wellDepth*x*x
}

// decayTo builds an exponential fit that starts at v0 for r = r0 and
// relaxes toward vInf with rate k.
func decayTo(v0, vInf, r0, k float64) func(float64) float64 {
	return func(r float64) float64 {
		return vInf + (v0-vInf)*math.Exp(-k*(r-r0))
	}
}

// h2Model: both electrons active, two sigma orbitals, four qubits.
// Anchors: STO-3G H2 at 0.7414 A has (00|00) = 0.6745, (11|11) = 0.6974,
// (00|11) = 0.6635, (01|10) = 0.1813, RHF total energy -1.1167 Hartree.
var h2Model = &integralModel{
	name:            "H2",
	numOrbitals:     2,
	activeElectrons: 2,
	zProduct:        1,
	rMin:            0.3,
	rMax:            3.5,

	eqBond:     0.735,
	eqEnergy:   -1.1167,
	wellDepth:  0.1838,
	morseWidth: 1.95,

	g0000:      decayTo(0.6745, 0.52, 0.7414, 0.45),
	g1111:      decayTo(0.6974, 0.56, 0.7414, 0.40),
	g0011:      decayTo(0.6635, 0.53, 0.7414, 0.42),
	g0110:      decayTo(0.1813, 0.01, 0.7414, 1.20),
	orbitalGap: decayTo(1.20, 0.05, 0.7414, 0.90),
	coreEnergy: func(float64) float64 { return 0 },
}

// lihModel: lithium 1s core frozen, two active orbitals holding the two
// valence electrons, four qubits. Anchors: STO-3G LiH at 1.596 A has
// RHF total energy -7.862 Hartree; dissociation limit Li + H at -7.782.
var lihModel = &integralModel{
	name:            "LiH",
	numOrbitals:     2,
	activeElectrons: 2,
	zProduct:        3,
	rMin:            0.7,
	rMax:            4.5,

	eqBond:     1.596,
	eqEnergy:   -7.862,
	wellDepth:  0.080,
	morseWidth: 1.10,

	g0000:      decayTo(0.4450, 0.36, 1.596, 0.30),
	g1111:      decayTo(0.5210, 0.42, 1.596, 0.28),
	g0011:      decayTo(0.4330, 0.35, 1.596, 0.30),
	g0110:      decayTo(0.0900, 0.01, 1.596, 0.85),
	orbitalGap: decayTo(0.55, 0.04, 1.596, 0.60),
	coreEnergy: decayTo(-6.82, -6.78, 1.596, 0.50),
}

// modelFor returns the integral model for a species pair, or nil when
// the pair is unsupported. Symbols must be given in geometry order.
func modelFor(sym1, sym2 string) *integralModel {
	switch {
	case sym1 == "H" && sym2 == "H":
		return h2Model
	case (sym1 == "Li" && sym2 == "H") || (sym1 == "H" && sym2 == "Li"):
		return lihModel
	default:
		return nil
	}
}
