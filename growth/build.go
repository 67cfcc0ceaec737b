package growth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfep/geomprop/forcefield"
	"github.com/openfep/geomprop/order"
	"github.com/openfep/geomprop/topology"
)

// Ring-closure bias: periodicity 1, phase π, k = 502.08 kJ/mol, holding the
// four in-ring atoms near the eclipsed arrangement a closing ring needs.
const (
	ringBiasPeriodicity = 1
	ringBiasForceK      = 502.08
)

// energyMismatchThreshold is the relative tolerance of the closing energy
// identity.
const energyMismatchThreshold = 1e-3

// Build partitions the full-model term table into the core, growth and final
// systems for the given placement order. See the package documentation for
// the routing rules.
// Complexity: O(terms · ring/path checks); term tables are residue-sized.
func Build(full *forcefield.Set, ord *order.Result, res *topology.Residue, opts Options) (*Model, error) {
	if len(ord.Quads) == 0 {
		return nil, order.ErrNothingToPlace
	}

	b := &Model{
		Growth: &System{},
		Core:   &System{},
		Final:  &System{},
	}
	ranks := ord.Ranks()
	omitted := make(map[[2]int]bool, len(ord.OmittedEdges))
	for _, e := range ord.OmittedEdges {
		omitted[normalize(e[0], e[1])] = true
	}
	edgeOmitted := func(i, j int) bool { return omitted[normalize(i, j)] }
	stageOf := func(indices ...int) int {
		max := 0
		for _, idx := range indices {
			if r := ranks[idx]; r > max {
				max = r
			}
		}

		return max
	}

	// Leading triples (new, bond, angle) of every placement, both
	// orientations, for the angle-neglect filter.
	placing := make(map[[3]int]bool, 2*len(ord.Quads))
	for _, q := range ord.Quads {
		placing[[3]int{q[0], q[1], q[2]}] = true
		placing[[3]int{q[2], q[1], q[0]}] = true
	}

	for _, bond := range full.Bonds {
		stage := stageOf(bond.I, bond.J)
		switch {
		case stage == 0:
			b.Core.Bonds = append(b.Core.Bonds, StagedBond{BondTerm: bond})
			b.Final.Bonds = append(b.Final.Bonds, StagedBond{BondTerm: bond})
		case edgeOmitted(bond.I, bond.J):
			b.Special.OmittedBonds = append(b.Special.OmittedBonds, bond)
		default:
			b.Growth.Bonds = append(b.Growth.Bonds, StagedBond{BondTerm: bond, Stage: stage})
			b.Final.Bonds = append(b.Final.Bonds, StagedBond{BondTerm: bond})
		}
	}

	for _, angle := range full.Angles {
		stage := stageOf(angle.I, angle.J, angle.K)
		switch {
		case stage == 0:
			b.Core.Angles = append(b.Core.Angles, StagedAngle{AngleTerm: angle})
			b.Final.Angles = append(b.Final.Angles, StagedAngle{AngleTerm: angle})
		case edgeOmitted(angle.I, angle.J) || edgeOmitted(angle.J, angle.K):
			b.Special.OmittedAngles = append(b.Special.OmittedAngles, angle)
		case opts.NeglectAngles && !placing[angle.Atoms()]:
			b.NeglectedAngles = append(b.NeglectedAngles, angle)
		default:
			b.Growth.Angles = append(b.Growth.Angles, StagedAngle{AngleTerm: angle, Stage: stage})
			b.Final.Angles = append(b.Final.Angles, StagedAngle{AngleTerm: angle})
		}
	}

	for _, tor := range full.Torsions {
		stage := stageOf(tor.I, tor.J, tor.K, tor.L)
		switch {
		case stage == 0:
			b.Core.Torsions = append(b.Core.Torsions, StagedTorsion{TorsionTerm: tor})
			b.Final.Torsions = append(b.Final.Torsions, StagedTorsion{TorsionTerm: tor})
		case edgeOmitted(tor.I, tor.J) || edgeOmitted(tor.J, tor.K) || edgeOmitted(tor.K, tor.L):
			b.Special.OmittedTorsions = append(b.Special.OmittedTorsions, tor)
		default:
			b.Growth.Torsions = append(b.Growth.Torsions, StagedTorsion{TorsionTerm: tor, Stage: stage})
			b.Final.Torsions = append(b.Final.Torsions, StagedTorsion{TorsionTerm: tor})
		}
	}

	if opts.AddRingTorsions {
		for k, q := range ord.Quads {
			if len(res.SharedRings(q[0], q[1], q[2], q[3])) == 0 {
				continue
			}
			bias := forcefield.TorsionTerm{
				I: q[0], J: q[1], K: q[2], L: q[3],
				Periodicity: ringBiasPeriodicity,
				Phase:       math.Pi,
				ForceK:      ringBiasForceK,
			}
			b.Growth.Torsions = append(b.Growth.Torsions, StagedTorsion{TorsionTerm: bias, Stage: k + 1})
			b.Final.Torsions = append(b.Final.Torsions, StagedTorsion{TorsionTerm: bias})
			b.Special.ExtraTorsions = append(b.Special.ExtraTorsions, bias)
		}
	}

	// Core-core exceptions carry no growth stage and are zeroed in the final
	// system, so only staged pairs are routed. A staged pair survives only if
	// its atoms are joined by a path of at most three bonds in the final
	// connectivity graph, which already excludes omitted edges.
	if opts.Use14Nonbondeds {
		for _, pair := range full.Pairs {
			if pair.Zero() {
				continue
			}
			stage := stageOf(pair.I, pair.J)
			if stage == 0 {
				continue
			}
			if !ord.Connectivity.HasPathWithin(pair.I, pair.J, 3) {
				b.Special.Omitted14s = append(b.Special.Omitted14s, pair)

				continue
			}
			b.Growth.Pairs = append(b.Growth.Pairs, StagedPair{PairTerm: pair, Stage: stage})
			b.Final.Pairs = append(b.Final.Pairs, StagedPair{PairTerm: pair})
		}
	}

	return b, nil
}

// VerifyClosure checks the closing energy identity at the given positions:
// core + growth at the last stage must equal the final system energy within
// a relative tolerance of 1e-3 (with a unit floor on the denominator so a
// near-zero final energy is compared absolutely). Returns ErrEnergyMismatch
// wrapped with both values on violation.
func (b *Model) VerifyClosure(pos []r3.Vec) error {
	got := b.Core.TotalEnergy(pos) + b.Growth.TotalEnergy(pos)
	want := b.Final.TotalEnergy(pos)
	denom := math.Abs(want)
	if denom < 1 {
		denom = 1
	}
	if diff := math.Abs(got - want); diff/denom > energyMismatchThreshold || math.IsNaN(diff) {
		return fmt.Errorf("%w: core+growth = %g, final = %g", ErrEnergyMismatch, got, want)
	}

	return nil
}

func normalize(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}

	return [2]int{i, j}
}
