package order

import (
	"errors"

	"github.com/openfep/geomprop/topology"
)

// Sentinel errors for proposal-order planning. Planning failures are fatal:
// they indicate a malformed residue graph, not a recoverable condition.
var (
	// ErrNothingToPlace indicates Plan was called with no atoms to place.
	ErrNothingToPlace = errors.New("order: no atoms to place")

	// ErrDuplicateAtomIndex indicates a repeated index in the placement request.
	ErrDuplicateAtomIndex = errors.New("order: duplicate atom index in placement request")

	// ErrNoEligibleTorsion indicates no eligible torsion exists at some step.
	ErrNoEligibleTorsion = errors.New("order: no eligible torsions; residue connectivity is disconnected or malformed")

	// ErrNoRingTorsion indicates the constrained ring-closure search found
	// no torsion confined to the ring.
	ErrNoRingTorsion = errors.New("order: no eligible torsions in ring-closure search")
)

// Quad is one placement template [new, bond, angle, torsion]: the atom to
// place followed by its three reference atoms, nearest first. The invariant,
// enforced by Plan, is that all three references are positioned (originally
// known or placed earlier in the same plan) before the new atom is chosen.
type Quad [4]int

// NewAtom returns the atom being placed.
func (q Quad) NewAtom() int { return q[0] }

// Refs returns the three reference atoms (bond, angle, torsion).
func (q Quad) Refs() [3]int { return [3]int{q[1], q[2], q[3]} }

// Result is the outcome of one planning run.
type Result struct {
	// Quads is the placement order. Quads[k] places atom Quads[k][0] at
	// growth rank k+1.
	Quads []Quad

	// LogChoice holds log(1/N) for each uniform torsion choice, aligned with
	// Quads. Their sum is the total order log-probability.
	LogChoice []float64

	// Connectivity is the final connectivity graph: positioned atoms plus
	// every placed atom, with edges added as torsions were chosen. The growth
	// builder gates interaction terms against it.
	Connectivity *topology.Graph

	// OmittedEdges lists reference bonds absent from Connectivity — bonds
	// across topological discontinuities that no chosen torsion re-enabled.
	// Interaction terms crossing them are excluded from the growth model and
	// reconciled only by the final full-model energy comparison.
	OmittedEdges [][2]int
}

// Ranks returns the placement rank (1-based) of every placed atom.
func (r *Result) Ranks() map[int]int {
	ranks := make(map[int]int, len(r.Quads))
	for k, q := range r.Quads {
		ranks[q.NewAtom()] = k + 1
	}

	return ranks
}

// LogP returns the total order log-probability, the sum of LogChoice.
func (r *Result) LogP() float64 {
	total := 0.0
	for _, lp := range r.LogChoice {
		total += lp
	}

	return total
}
