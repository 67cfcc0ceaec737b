// Package order plans the sequence in which position-less atoms are grown
// onto a molecular residue.
//
// Each step selects an eligible torsion: a length-4 simple path in the
// residue bond graph rooted at a not-yet-positioned atom whose other three
// atoms already have positions and whose last two edges exist in the current
// connectivity graph. The choice is uniform over all eligible torsions across
// all remaining atoms, so every step contributes log(1/N) to the order
// log-probability that the reversible-jump acceptance ratio needs.
//
// Heavy atoms are planned before hydrogens; each partition is planned
// independently and the results concatenated.
//
// Ring closure is handled specially: once a ring atom is placed while at
// least three atoms of that ring are positioned and unplaced members remain,
// the search is restricted to torsion paths confined to the ring until the
// ring is complete. Closing rings through paths that exit the ring produces
// numerically unstable geometry, which this rule avoids.
//
// Planning is inherently stochastic. Plan accepts an injectable *rand.Rand;
// passing nil selects a fixed default stream so results are reproducible.
// All graph enumeration is performed in sorted order, so a fixed seed yields
// an identical plan on every platform.
//
// Errors:
//
//	ErrNothingToPlace     — the atom list to place is empty.
//	ErrDuplicateAtomIndex — an atom index appears twice in the request.
//	ErrNoEligibleTorsion  — no eligible torsion exists at some step (fatal;
//	                        indicates a disconnected or malformed residue graph).
//	ErrNoRingTorsion      — the constrained ring-closure search found no
//	                        in-ring torsion (fatal).
package order
