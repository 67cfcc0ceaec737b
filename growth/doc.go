// Package growth builds the incremental energy model used to score atom
// placements one at a time.
//
// Given the full-model valence term table, a placement order and the residue
// topology, Build partitions every term by its growth stage: the maximum
// placement rank over the atoms it touches, with rank 0 for atoms positioned
// before planning began. Stage-0 terms form the core system; staged terms
// form the growth system, whose Energy method activates a term only once its
// stage has been reached. Evaluating the growth system at successive stages
// yields the incremental energy of each placement.
//
// Terms crossing an omitted bond (a reference bond absent from the final
// connectivity graph) cannot be evaluated mid-growth and are set aside in
// SpecialTerms. Staged 1-4 pair exceptions are kept only when their atoms
// are joined by a path of at most three bonds in the connectivity graph.
// With Options.NeglectAngles, staged angle terms that were not used to place
// an atom are set aside as well, trading proposal variance for a cheaper
// model. Ring-closure biasing torsions (periodicity 1, phase π) are injected
// for placements whose four atoms share a ring, keeping rings near planar
// while they close.
//
// The final system is the full model with every set-aside term zeroed and
// every injected bias included, so the identity
//
//	core energy + growth energy at the last stage == final energy
//
// holds exactly by construction. Build.VerifyClosure checks it numerically
// after a proposal; a violation (ErrEnergyMismatch) means the bookkeeping and
// the sampled geometry disagree and the proposal must be discarded.
//
// All energies are in kJ/mol with positions in nm (see package forcefield).
package growth
