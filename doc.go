// Package geomprop proposes statistically-correct Cartesian placements for
// atoms that appear or disappear when one molecular topology is transformed
// into another, as required by reversible-jump Monte Carlo (RJMC) sampling.
//
// For every atom lacking a position the library:
//
//   - chooses a placement order consistent with molecular connectivity
//     (including a constrained search for closing rings),
//   - draws or evaluates internal coordinates — bond length, bond angle,
//     torsion angle — from discretized Boltzmann-like distributions,
//   - converts internal coordinates to Cartesian space with the exact
//     |det J| = r²·sin(θ) volume correction,
//   - returns the normalized joint log-probability so that the surrounding
//     accept/reject framework can form a detailed-balance ratio.
//
// The work is split across five subpackages, leaves first:
//
//	topology/   — integer-indexed atoms, undirected bond graphs, ring metadata
//	forcefield/ — read-only valence-term records (bonds, angles, torsions, 1-4s)
//	order/      — the proposal-order planner (eligible-torsion graph traversal)
//	growth/     — the growth-indexed incremental energy model builder
//	geometry/   — the sampler, coordinate transform, and proposal engine
//
// A forward proposal runs geometry.Engine.Propose; the matching reverse
// log-probability comes from geometry.Engine.LogPReverse. Both share one
// numerically identical pipeline, differing only in whether internal
// coordinates are drawn from an injectable random source or recovered from
// the target positions.
//
// The library performs no I/O and keeps no global state: topology parsing,
// trajectory writing, logging, and the Monte Carlo acceptance step itself
// are the caller's responsibility.
package geomprop
