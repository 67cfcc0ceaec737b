package growth

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfep/geomprop/forcefield"
)

// kCoulomb is the Coulomb constant 1/(4πε₀) in kJ·nm/(mol·e²).
const kCoulomb = 138.935456

// Staged term records: a full-model term plus the growth stage at which it
// becomes active. Stage 0 marks core terms, active unconditionally.
type (
	StagedBond struct {
		forcefield.BondTerm
		Stage int
	}
	StagedAngle struct {
		forcefield.AngleTerm
		Stage int
	}
	StagedTorsion struct {
		forcefield.TorsionTerm
		Stage int
	}
	StagedPair struct {
		forcefield.PairTerm
		Stage int
	}
)

// System is a growth-staged valence potential. The zero value is an empty
// system with zero energy everywhere.
type System struct {
	Bonds    []StagedBond
	Angles   []StagedAngle
	Torsions []StagedTorsion
	Pairs    []StagedPair
}

// Energy evaluates the potential at the given positions, summing only terms
// whose Stage is at most stage. Positions of atoms beyond the active stage
// are never read, so they may hold placeholders during growth.
// Complexity: O(total terms).
func (s *System) Energy(pos []r3.Vec, stage int) float64 {
	u := 0.0
	for _, b := range s.Bonds {
		if b.Stage > stage {
			continue
		}
		dr := distance(pos[b.I], pos[b.J]) - b.R0
		u += 0.5 * b.K * dr * dr
	}
	for _, a := range s.Angles {
		if a.Stage > stage {
			continue
		}
		dt := angleBetween(pos[a.I], pos[a.J], pos[a.K]) - a.Theta0
		u += 0.5 * a.ForceK * dt * dt
	}
	for _, t := range s.Torsions {
		if t.Stage > stage {
			continue
		}
		phi := dihedral(pos[t.I], pos[t.J], pos[t.K], pos[t.L])
		u += t.ForceK * (1 + math.Cos(float64(t.Periodicity)*phi-t.Phase))
	}
	for _, p := range s.Pairs {
		if p.Stage > stage {
			continue
		}
		r := distance(pos[p.I], pos[p.J])
		x := math.Pow(p.Sigma/r, 6)
		u += kCoulomb*p.ChargeProd/r + 4*p.Epsilon*(x*x-x)
	}

	return u
}

// TotalEnergy evaluates the potential with every term active.
func (s *System) TotalEnergy(pos []r3.Vec) float64 {
	return s.Energy(pos, s.MaxStage())
}

// MaxStage returns the highest stage of any term, 0 for an empty system.
func (s *System) MaxStage() int {
	max := 0
	for _, b := range s.Bonds {
		if b.Stage > max {
			max = b.Stage
		}
	}
	for _, a := range s.Angles {
		if a.Stage > max {
			max = a.Stage
		}
	}
	for _, t := range s.Torsions {
		if t.Stage > max {
			max = t.Stage
		}
	}
	for _, p := range s.Pairs {
		if p.Stage > max {
			max = p.Stage
		}
	}

	return max
}

func distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// angleBetween returns the angle at vertex j in radians, clamped against
// rounding just outside [-1, 1].
func angleBetween(i, j, k r3.Vec) float64 {
	u := r3.Unit(r3.Sub(i, j))
	v := r3.Unit(r3.Sub(k, j))
	c := r3.Dot(u, v)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}

	return math.Acos(c)
}

// dihedral returns the signed torsion angle in (-π, π] for the atom chain
// i-j-k-l, positive for a right-handed twist about the j→k axis.
func dihedral(i, j, k, l r3.Vec) float64 {
	b1 := r3.Sub(j, i)
	b2 := r3.Sub(k, j)
	b3 := r3.Sub(l, k)
	n1 := r3.Cross(b1, b2)
	n2 := r3.Cross(b2, b3)

	return math.Atan2(r3.Dot(r3.Cross(n1, n2), r3.Unit(b2)), r3.Dot(n1, n2))
}
