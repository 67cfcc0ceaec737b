package topology

import (
	"fmt"
	"sort"
)

// Residue couples the atom table of one transforming residue with its bond
// graph. Atoms carry ring-membership metadata; bonds are undirected.
type Residue struct {
	atoms map[int]*Atom
	bonds *Graph
}

// NewResidue creates an empty Residue.
func NewResidue() *Residue {
	return &Residue{
		atoms: make(map[int]*Atom),
		bonds: NewGraph(),
	}
}

// AddAtom registers an atom. Returns ErrDuplicateAtom when the index is
// already present.
func (r *Residue) AddAtom(a Atom) error {
	if _, ok := r.atoms[a.Index]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateAtom, a.Index)
	}
	cp := a
	r.atoms[a.Index] = &cp
	r.bonds.AddNode(a.Index)

	return nil
}

// AddBond registers an undirected bond between two known atoms.
func (r *Residue) AddBond(i, j int) error {
	if _, ok := r.atoms[i]; !ok {
		return fmt.Errorf("%w: %d", ErrAtomNotFound, i)
	}
	if _, ok := r.atoms[j]; !ok {
		return fmt.Errorf("%w: %d", ErrAtomNotFound, j)
	}

	return r.bonds.AddEdge(i, j)
}

// Atom returns the atom record for index i.
func (r *Residue) Atom(i int) (*Atom, error) {
	a, ok := r.atoms[i]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrAtomNotFound, i)
	}

	return a, nil
}

// HasAtom reports whether atom index i is part of the residue.
func (r *Residue) HasAtom(i int) bool {
	_, ok := r.atoms[i]

	return ok
}

// Atoms returns the atom records in ascending index order.
func (r *Residue) Atoms() []*Atom {
	out := make([]*Atom, 0, len(r.atoms))
	for _, a := range r.atoms {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	return out
}

// Bonds exposes the residue bond graph. Callers must not mutate it; use
// Bonds().Clone() for a private copy.
func (r *Residue) Bonds() *Graph { return r.bonds }

// RingsOf returns the ring IDs of atom i, or nil for unknown/acyclic atoms.
func (r *Residue) RingsOf(i int) []int {
	a, ok := r.atoms[i]
	if !ok {
		return nil
	}

	return a.Rings
}

// SharedRings returns the ring IDs common to every listed atom, sorted.
// An empty result means the atoms do not all sit in one ring.
func (r *Residue) SharedRings(indices ...int) []int {
	if len(indices) == 0 {
		return nil
	}
	counts := make(map[int]int)
	for _, idx := range indices {
		for _, ring := range r.RingsOf(idx) {
			counts[ring]++
		}
	}
	var shared []int
	for ring, n := range counts {
		if n == len(indices) {
			shared = append(shared, ring)
		}
	}
	sort.Ints(shared)

	return shared
}

// RingAtoms returns the sorted indices of every atom in ring.
func (r *Residue) RingAtoms(ring int) []int {
	var out []int
	for idx, a := range r.atoms {
		if a.InRing(ring) {
			out = append(out, idx)
		}
	}
	sort.Ints(out)

	return out
}
