// Package geometry samples Cartesian coordinates for position-less atoms and
// scores existing coordinates under the same distribution, for use in
// reversible-jump Monte Carlo acceptance ratios.
//
// Each atom is placed via three internal coordinates relative to three
// previously positioned reference atoms: a bond length drawn from a
// discretized p(r) ∝ r²·exp(−β·U_bond), a bond angle from
// p(θ) ∝ sin(θ)·exp(−β·U_angle), and a dihedral from a numerical scan of the
// incremental growth potential. The r² and sin(θ) factors, together with the
// log|det J| = log(r²·sinθ) correction applied to the total, account for the
// Jacobian of the internal→Cartesian transform, so forward and reverse
// densities are measured consistently in Cartesian space.
//
// Propose and LogPReverse share one pipeline; the only difference is whether
// internal coordinates are drawn from the distributions or recovered from
// target positions. A forward proposal at seed s and the reverse scoring of
// its output therefore reproduce each other's per-coordinate log-densities
// exactly, up to quadrature bin placement.
//
// Distributions are discretized into equal-width bins (categorical over bin
// masses, uniform within a bin), normalized by log-sum-exp. Scoring a value
// outside a bounded support yields LogZero, a large finite penalty rather
// than −Inf.
//
// The Engine is deterministic under a fixed Options.Seed and single-use per
// goroutine. All lengths are in nm, angles in radians, energies in kJ/mol,
// beta in mol/kJ.
package geometry
