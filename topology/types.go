// Package topology core types and sentinel errors.
package topology

import "errors"

// Sentinel errors for topology operations.
var (
	// ErrAtomNotFound indicates an operation referenced an atom index that is
	// not part of the residue.
	ErrAtomNotFound = errors.New("topology: atom not found")

	// ErrDuplicateAtom indicates an atom index was added twice.
	ErrDuplicateAtom = errors.New("topology: duplicate atom index")

	// ErrSelfBond indicates a bond from an atom to itself.
	ErrSelfBond = errors.New("topology: self-bond not allowed")
)

// Element is a chemical element symbol ("C", "N", "H", ...).
type Element string

// IsHydrogen reports whether the element is hydrogen. The planner places
// heavy atoms before hydrogens to reduce floppy-chain proposal variance.
func (e Element) IsHydrogen() bool { return e == "H" }

// Atom is one node of the residue connectivity model. It is immutable for the
// duration of a proposal.
type Atom struct {
	// Index uniquely identifies the atom within the whole system.
	Index int

	// Element is the chemical element symbol.
	Element Element

	// Rings lists the IDs of every ring cycle the atom belongs to.
	// Empty for acyclic atoms. Treated as precomputed input metadata.
	Rings []int
}

// InRing reports whether the atom belongs to ring with the given ID.
func (a *Atom) InRing(ring int) bool {
	for _, r := range a.Rings {
		if r == ring {
			return true
		}
	}

	return false
}
