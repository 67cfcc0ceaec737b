package order

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/openfep/geomprop/topology"
)

// defaultPlanSeed is the fixed seed used when callers pass a nil random
// source. The value is arbitrary but stable to keep defaults reproducible.
const defaultPlanSeed int64 = 1

// Plan determines the order in which the toPlace atoms are grown onto the
// residue, given the set of atoms whose positions are already known.
//
// Heavy atoms are planned before hydrogens; within each partition the next
// torsion is drawn uniformly from all eligible torsions across all remaining
// atoms, and every draw's log(1/N) is recorded in Result.LogChoice. Ring
// closure switches to a constrained in-ring search (see package doc).
//
// rng may be nil, in which case a fixed default stream is used. Plan never
// mutates the residue; the connectivity graph it grows is returned in the
// Result for the growth builder.
//
// Complexity: O(n_place · (V + E)) eligible-torsion scans in the common case;
// ring closure adds simple-path enumeration bounded by ring size.
func Plan(res *topology.Residue, toPlace, positioned []int, rng *rand.Rand) (*Result, error) {
	if len(toPlace) == 0 {
		return nil, ErrNothingToPlace
	}
	seen := make(map[int]bool, len(toPlace))
	for _, idx := range toPlace {
		if seen[idx] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateAtomIndex, idx)
		}
		seen[idx] = true
		if !res.HasAtom(idx) {
			return nil, fmt.Errorf("%w: %d", topology.ErrAtomNotFound, idx)
		}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(defaultPlanSeed))
	}

	p := &planner{
		res:    res,
		ref:    res.Bonds(),
		conn:   topology.NewGraph(),
		placed: make(map[int]bool, len(positioned)),
		rng:    rng,
		result: &Result{},
	}
	for _, idx := range positioned {
		p.placed[idx] = true
	}

	// The starting connectivity graph holds the non-new residue atoms and
	// every reference bond not touching a new atom. Bonds to new atoms are
	// re-enabled edge by edge as torsions are chosen.
	for _, node := range p.ref.Nodes() {
		if !seen[node] {
			p.conn.AddNode(node)
		}
	}
	for _, e := range p.ref.Edges() {
		if !seen[e[0]] && !seen[e[1]] {
			_ = p.conn.AddEdge(e[0], e[1])
		}
	}

	// Partition: heavy atoms first, hydrogens after, each planned separately.
	var heavy, hydrogens []int
	for _, idx := range toPlace {
		a, err := res.Atom(idx)
		if err != nil {
			return nil, err
		}
		if a.Element.IsHydrogen() {
			hydrogens = append(hydrogens, idx)
		} else {
			heavy = append(heavy, idx)
		}
	}

	if err := p.planGroup(heavy); err != nil {
		return nil, err
	}
	if err := p.planGroup(hydrogens); err != nil {
		return nil, err
	}

	p.result.Connectivity = p.conn
	for _, e := range p.ref.Edges() {
		if !p.conn.HasEdge(e[0], e[1]) {
			p.result.OmittedEdges = append(p.result.OmittedEdges, e)
		}
	}

	return p.result, nil
}

// planner carries the mutable state of one planning run.
type planner struct {
	res    *topology.Residue
	ref    *topology.Graph // reference bond graph, read-only
	conn   *topology.Graph // grows as atoms are placed
	placed map[int]bool
	rng    *rand.Rand
	result *Result
}

// planGroup places every atom of one partition, handling ring closure.
func (p *planner) planGroup(group []int) error {
	remaining := append([]int(nil), group...)
	for len(remaining) > 0 {
		elig := p.eligibleTorsions(remaining)
		if len(elig) == 0 {
			return fmt.Errorf("%w: remaining atoms %v", ErrNoEligibleTorsion, remaining)
		}
		quad := elig[p.rng.Intn(len(elig))]
		p.place(quad, len(elig))
		remaining = removeIndex(remaining, quad.NewAtom())

		// Ring closure: for each ring the placed atom belongs to, if the ring
		// now has at least three positioned atoms and unplaced members
		// remain, fill the whole ring with in-ring torsions before resuming.
		for _, ring := range p.res.RingsOf(quad.NewAtom()) {
			var err error
			remaining, err = p.closeRing(ring, remaining)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// closeRing runs the constrained in-ring search for one ring, returning the
// updated remaining slice. A no-op unless the ring has unplaced members among
// remaining and more than two placed members.
func (p *planner) closeRing(ring int, remaining []int) ([]int, error) {
	ringAtoms := p.res.RingAtoms(ring)
	inRing := func(idx int) bool {
		for _, m := range ringAtoms {
			if m == idx {
				return true
			}
		}

		return false
	}

	var unplaced []int
	for _, idx := range remaining {
		if inRing(idx) {
			unplaced = append(unplaced, idx)
		}
	}
	placedInRing := make(map[int]bool)
	for _, idx := range ringAtoms {
		if p.placed[idx] {
			placedInRing[idx] = true
		}
	}
	if len(unplaced) == 0 || len(placedInRing) <= 2 {
		return remaining, nil
	}

	for len(unplaced) > 0 {
		elig := p.ringTorsions(unplaced)
		filtered := elig[:0:0]
		for _, q := range elig {
			refs := q.Refs()
			refsPlaced := placedInRing[refs[0]] && placedInRing[refs[1]] && placedInRing[refs[2]]
			headPlaced := placedInRing[q[0]] && placedInRing[q[1]] && placedInRing[q[2]]
			if refsPlaced || headPlaced {
				filtered = append(filtered, q)
			}
		}
		if len(filtered) == 0 {
			return remaining, fmt.Errorf("%w: ring %d, unplaced atoms %v", ErrNoRingTorsion, ring, unplaced)
		}
		quad := filtered[p.rng.Intn(len(filtered))]
		p.place(quad, len(filtered))
		remaining = removeIndex(remaining, quad.NewAtom())
		unplaced = removeIndex(unplaced, quad.NewAtom())
		placedInRing[quad.NewAtom()] = true
	}

	return remaining, nil
}

// eligibleTorsions enumerates every eligible torsion across the candidate
// atoms: one shortest length-4 path per (candidate, destination) whose
// destination and interior atoms are positioned and whose last two edges
// exist in the current connectivity graph. Candidates and destinations are
// scanned in sorted order for reproducibility.
func (p *planner) eligibleTorsions(candidates []int) []Quad {
	var out []Quad
	for _, a := range sortedCopy(candidates) {
		paths := shortestPathsFrom(p.ref, a, 3)
		for _, dst := range sortedKeys(paths) {
			if q, ok := p.admitPath(paths[dst]); ok {
				out = append(out, q)
			}
		}
	}

	return out
}

// ringTorsions enumerates in-ring placement templates for the constrained
// closure search: every simple 3-edge path from an unplaced ring atom to a
// positioned atom sharing one of its rings, one path per destination.
func (p *planner) ringTorsions(candidates []int) []Quad {
	var out []Quad
	for _, a := range sortedCopy(candidates) {
		byDst := make(map[int][]int)
		for _, dst := range p.ref.Nodes() {
			// Destinations must be positioned and share a ring with the candidate.
			if !p.placed[dst] || len(p.res.SharedRings(a, dst)) == 0 {
				continue
			}
			for _, path := range simplePaths(p.ref, a, dst, 3) {
				if len(path) == 4 {
					byDst[dst] = path

					break
				}
			}
		}
		for _, dst := range sortedKeys(byDst) {
			if q, ok := p.admitPath(byDst[dst]); ok {
				out = append(out, q)
			}
		}
	}

	return out
}

// admitPath converts a 4-node path into a Quad if it satisfies the
// eligibility rules: positioned references and last two edges present in the
// connectivity graph (bonds flagged omitted disqualify a template).
func (p *planner) admitPath(path []int) (Quad, bool) {
	if len(path) != 4 || !p.placed[path[3]] {
		return Quad{}, false
	}
	if !p.conn.HasEdge(path[1], path[2]) || !p.conn.HasEdge(path[2], path[3]) {
		return Quad{}, false
	}
	if !p.placed[path[1]] || !p.placed[path[2]] {
		return Quad{}, false
	}

	return Quad{path[0], path[1], path[2], path[3]}, true
}

// place commits a chosen torsion: records the quad and its log(1/n), marks
// the atom positioned, and re-enables the quad's reference-backed bonds in
// the connectivity graph for subsequent steps.
func (p *planner) place(q Quad, nEligible int) {
	p.result.Quads = append(p.result.Quads, q)
	p.result.LogChoice = append(p.result.LogChoice, -math.Log(float64(nEligible)))
	p.placed[q.NewAtom()] = true
	p.conn.AddNode(q.NewAtom())
	for _, pair := range [][2]int{{q[0], q[1]}, {q[1], q[2]}, {q[2], q[3]}} {
		if p.ref.HasEdge(pair[0], pair[1]) {
			_ = p.conn.AddEdge(pair[0], pair[1])
		}
	}
}

func sortedCopy(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)

	return out
}

func sortedKeys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)

	return out
}

func removeIndex(in []int, idx int) []int {
	for i, v := range in {
		if v == idx {
			return append(in[:i], in[i+1:]...)
		}
	}

	return in
}
