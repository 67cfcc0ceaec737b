// Package forcefield defines the read-only valence-term records consumed by
// the growth-system builder and the geometry sampler.
//
// Terms are plain data addressed by integer atom index, in the MD unit
// system: lengths in nanometers, angles in radians, energies in kJ/mol.
// Force constants follow the harmonic convention U = (K/2)·(x − x₀)², and
// periodic torsions follow U = k·(1 + cos(n·φ − phase)).
//
// The records are owned by an external topology/force-field provider; this
// library only reads them. Set offers the lookups the sampler needs —
// BondFor, AngleFor, ConstraintFor — and reports missing parameters as fatal
// errors carrying the offending atom indices.
package forcefield
