// Package topology provides the integer-indexed molecular connectivity model
// consumed by the proposal-order planner and the growth-system builder.
//
// The central types are:
//
//   - Graph: a minimal undirected graph over integer atom indices with
//     deterministic (sorted) iteration order, so that seeded runs of the
//     stochastic planner are reproducible.
//   - Atom: an immutable record of index, element, and ring membership.
//   - Residue: the atom table plus bond graph for one transforming residue,
//     with ring-membership queries.
//
// Ring membership is input metadata: the library never perceives rings from
// 3-D structure. For callers whose topology provider does not annotate rings,
// AssignRings derives a cycle basis from the 2-D bond graph (spanning tree
// plus back edges) and writes ring IDs onto the atoms.
//
// All types are plain data guarded by no locks; one proposal is a
// single-goroutine affair and completes before the next begins.
package topology
