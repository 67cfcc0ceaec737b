package forcefield

import "errors"

// Sentinel errors for force-field lookups. Missing bond or angle parameters
// for a required atom tuple are fatal to a proposal.
var (
	// ErrMissingBond indicates no harmonic bond term exists for an atom pair.
	ErrMissingBond = errors.New("forcefield: no bond term for atom pair")

	// ErrMissingAngle indicates no harmonic angle term exists for an atom triple.
	ErrMissingAngle = errors.New("forcefield: no angle term for atom triple")

	// ErrMissingConstraint indicates no rigid constraint exists for an atom pair.
	ErrMissingConstraint = errors.New("forcefield: no constraint for atom pair")
)

// BondTerm is a harmonic bond U = (K/2)·(r − R0)².
type BondTerm struct {
	I, J int     // atom indices
	R0   float64 // equilibrium length, nm
	K    float64 // force constant, kJ/mol/nm²
}

// Touches reports whether the term involves atom idx.
func (b BondTerm) Touches(idx int) bool { return b.I == idx || b.J == idx }

// AngleTerm is a harmonic angle U = (ForceK/2)·(θ − Theta0)².
type AngleTerm struct {
	I, J, K int     // atom indices; J is the central atom
	Theta0  float64 // equilibrium angle, rad
	ForceK  float64 // force constant, kJ/mol/rad²
}

// Atoms returns the ordered atom triple.
func (a AngleTerm) Atoms() [3]int { return [3]int{a.I, a.J, a.K} }

// TorsionTerm is a periodic torsion U = ForceK·(1 + cos(Periodicity·φ − Phase)).
type TorsionTerm struct {
	I, J, K, L  int     // atom indices along the dihedral
	Periodicity int     // n ≥ 1
	Phase       float64 // rad
	ForceK      float64 // kJ/mol
}

// Atoms returns the ordered atom quadruple.
func (t TorsionTerm) Atoms() [4]int { return [4]int{t.I, t.J, t.K, t.L} }

// PairTerm is a nonbonded 1-4 exception:
// U = kCoulomb·ChargeProd/r + 4·Epsilon·(x² − x), x = (Sigma/r)⁶.
type PairTerm struct {
	I, J       int
	ChargeProd float64 // e²
	Sigma      float64 // nm
	Epsilon    float64 // kJ/mol
}

// Zero reports whether the pair contributes no energy and can be skipped.
func (p PairTerm) Zero() bool { return p.ChargeProd == 0 && p.Epsilon == 0 }

// Constraint is a rigid bond of fixed length R between atoms I and J.
// Constrained bonds carry no harmonic term; the sampler takes R verbatim
// with zero log-density contribution.
type Constraint struct {
	I, J int
	R    float64 // nm
}
