package growth

import (
	"errors"

	"github.com/openfep/geomprop/forcefield"
)

// ErrEnergyMismatch indicates the closing energy identity failed: the core
// energy plus the growth energy at the last stage does not match the final
// system energy within tolerance. The proposal is invalid and must be
// discarded, never silently accepted.
var ErrEnergyMismatch = errors.New("growth: final energy mismatch between incremental and full evaluation")

// Options controls term routing during Build.
type Options struct {
	// NeglectAngles routes staged angle terms that were not used to place an
	// atom to Build.NeglectedAngles instead of the growth system. Their energy
	// is excluded from the proposal log-density, which lowers the cost of the
	// model at the price of higher acceptance-ratio variance.
	NeglectAngles bool

	// Use14Nonbondeds includes staged 1-4 pair exceptions in the growth and
	// final systems. When false, pair terms are dropped from both.
	Use14Nonbondeds bool

	// AddRingTorsions injects a biasing torsion (periodicity 1, phase π) for
	// every placement whose four atoms share a ring. The bias appears in both
	// the growth and final systems and is recorded in SpecialTerms.
	AddRingTorsions bool
}

// DefaultOptions returns the standard routing configuration: 1-4 exceptions
// and ring biasing on, angle neglect off.
func DefaultOptions() Options {
	return Options{
		NeglectAngles:   false,
		Use14Nonbondeds: true,
		AddRingTorsions: true,
	}
}

// SpecialTerms records every term the builder set aside or injected, for
// diagnostics and for constructing the final comparison system. Omitted terms
// are zeroed in the final system; extra torsions are added to it.
type SpecialTerms struct {
	OmittedBonds    []forcefield.BondTerm
	OmittedAngles   []forcefield.AngleTerm
	OmittedTorsions []forcefield.TorsionTerm
	Omitted14s      []forcefield.PairTerm
	ExtraTorsions   []forcefield.TorsionTerm
}

// Model is the outcome of one Build: the three systems the sampler
// evaluates plus the routing record.
type Model struct {
	// Growth holds staged terms; Energy(pos, stage) activates them as atoms
	// are placed.
	Growth *System

	// Core holds stage-0 terms, the valence energy of the atoms that were
	// positioned before planning began.
	Core *System

	// Final is the full model with special-term zeroing applied, used only
	// for the closing energy check.
	Final *System

	// Special records the set-aside and injected terms.
	Special SpecialTerms

	// NeglectedAngles lists staged angle terms excluded under
	// Options.NeglectAngles. Callers need them to correct the acceptance
	// ratio downstream.
	NeglectedAngles []forcefield.AngleTerm
}
