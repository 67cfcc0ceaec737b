package forcefield

import "fmt"

// Set is the full-model valence term table for one system. Slices may be
// populated directly; the zero value is an empty, usable Set. Lookups match
// tuples in either orientation (i-j ≡ j-i, i-j-k ≡ k-j-i).
type Set struct {
	Bonds       []BondTerm
	Angles      []AngleTerm
	Torsions    []TorsionTerm
	Pairs       []PairTerm
	Constraints []Constraint
}

// BondFor returns the harmonic bond term connecting atoms i and j.
// ErrMissingBond carries the offending pair; a missing bond may still be a
// rigid constraint (see ConstraintFor).
// Complexity: O(len(Bonds)); term tables are residue-sized.
func (s *Set) BondFor(i, j int) (BondTerm, error) {
	for _, b := range s.Bonds {
		if (b.I == i && b.J == j) || (b.I == j && b.J == i) {
			return b, nil
		}
	}

	return BondTerm{}, fmt.Errorf("%w: (%d, %d)", ErrMissingBond, i, j)
}

// AngleFor returns the harmonic angle term for the triple (i, j, k) with j
// central, matching either orientation. ErrMissingAngle is fatal to a
// proposal and carries the offending triple.
func (s *Set) AngleFor(i, j, k int) (AngleTerm, error) {
	for _, a := range s.Angles {
		if a.J != j {
			continue
		}
		if (a.I == i && a.K == k) || (a.I == k && a.K == i) {
			return a, nil
		}
	}

	return AngleTerm{}, fmt.Errorf("%w: (%d, %d, %d)", ErrMissingAngle, i, j, k)
}

// ConstraintFor returns the rigid constraint between atoms i and j.
func (s *Set) ConstraintFor(i, j int) (Constraint, error) {
	for _, c := range s.Constraints {
		if (c.I == i && c.J == j) || (c.I == j && c.J == i) {
			return c, nil
		}
	}

	return Constraint{}, fmt.Errorf("%w: (%d, %d)", ErrMissingConstraint, i, j)
}
