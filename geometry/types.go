package geometry

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfep/geomprop/forcefield"
	"github.com/openfep/geomprop/growth"
	"github.com/openfep/geomprop/order"
	"github.com/openfep/geomprop/topology"
)

// LogZero is the log-density assigned to values outside a distribution's
// support. Finite so that downstream acceptance-ratio arithmetic never sees
// Inf−Inf; large enough that such proposals are always rejected.
const LogZero = -1.0e6

// Sentinel errors for geometry proposals.
var (
	// ErrInvalidOption indicates an Options field is out of range.
	ErrInvalidOption = errors.New("geometry: invalid option")

	// ErrNonPositiveBeta indicates beta (inverse temperature) was ≤ 0.
	ErrNonPositiveBeta = errors.New("geometry: beta must be positive")

	// ErrIncompleteProposal indicates the Proposal lacks a residue, a term
	// table, or a position slice covering every atom index.
	ErrIncompleteProposal = errors.New("geometry: incomplete proposal")

	// ErrAllTorsionsNaN indicates the growth potential evaluated to NaN at
	// every scanned torsion angle, so no torsion distribution exists. Fatal:
	// the geometry built so far is degenerate.
	ErrAllTorsionsNaN = errors.New("geometry: torsion potential is NaN at every scanned angle")
)

// Options configures an Engine.
type Options struct {
	// Quadrature resolution of the discretized distributions.
	NBondDivisions    int
	NAngleDivisions   int
	NTorsionDivisions int

	// Softening scale factors in (0, 1] applied to bond and angle force
	// constants when building sampling distributions. Values below 1 widen
	// the distributions; the acceptance ratio corrects the bias.
	BondSoftening  float64
	AngleSoftening float64

	// Term-routing switches, passed through to the growth builder.
	NeglectAngles   bool
	Use14Nonbondeds bool
	AddRingTorsions bool

	// Seed selects the deterministic random stream; 0 means the fixed
	// default seed. Rand, when non-nil, overrides Seed entirely.
	Seed int64
	Rand *rand.Rand
}

// DefaultOptions returns the standard configuration: 1000 bond, 180 angle
// and 360 torsion divisions, no softening, 1-4 exceptions and ring biasing
// on, angle neglect off, default random stream.
func DefaultOptions() Options {
	return Options{
		NBondDivisions:    1000,
		NAngleDivisions:   180,
		NTorsionDivisions: 360,
		BondSoftening:     1.0,
		AngleSoftening:    1.0,
		NeglectAngles:     false,
		Use14Nonbondeds:   true,
		AddRingTorsions:   true,
		Seed:              0,
	}
}

// validate checks option ranges, wrapping ErrInvalidOption with the
// offending field.
func (o *Options) validate() error {
	if o.NBondDivisions < 2 {
		return wrapOption("NBondDivisions must be ≥ 2")
	}
	if o.NAngleDivisions < 2 {
		return wrapOption("NAngleDivisions must be ≥ 2")
	}
	if o.NTorsionDivisions < 2 {
		return wrapOption("NTorsionDivisions must be ≥ 2")
	}
	if o.BondSoftening <= 0 || o.BondSoftening > 1 {
		return wrapOption("BondSoftening must be in (0, 1]")
	}
	if o.AngleSoftening <= 0 || o.AngleSoftening > 1 {
		return wrapOption("AngleSoftening must be in (0, 1]")
	}

	return nil
}

// Proposal is the input of one forward proposal or reverse scoring run.
type Proposal struct {
	// Residue supplies connectivity, elements and ring metadata.
	Residue *topology.Residue

	// Terms is the full-model valence term table.
	Terms *forcefield.Set

	// ToPlace lists the atoms without positions; Positioned lists the atoms
	// whose coordinates are known.
	ToPlace    []int
	Positioned []int

	// Positions is indexed by atom index and must cover every atom of the
	// residue. Entries for ToPlace atoms are read only by LogPReverse, where
	// they hold the coordinates being scored; Propose overwrites them.
	Positions []r3.Vec
}

// PlacementRecord captures everything sampled or recovered for one atom.
type PlacementRecord struct {
	AtomIndex int
	Quad      order.Quad

	// Internal coordinates relative to the quad's reference atoms.
	R, Theta, Phi float64

	// Reduced bond and angle potentials at the sampled values, with
	// softening applied. Zero for a constrained bond.
	UR, UTheta float64

	// Log-densities of each internal coordinate and the log-Jacobian
	// log(r²·sinθ) of the transform to Cartesian space.
	LogPR, LogPTheta, LogPPhi float64
	LogDetJ                   float64

	// ChoiceLogP is the torsion-selection term log(1/N) for this step;
	// AddedEnergy is the reduced growth-system energy added by this
	// placement.
	ChoiceLogP  float64
	AddedEnergy float64
}

// Result is the outcome of Propose or LogPReverse.
type Result struct {
	// Positions is the full coordinate array with every placed atom filled
	// in (Propose) or the scored coordinates verbatim (LogPReverse).
	Positions []r3.Vec

	// LogP is the total proposal log-probability,
	// Σ (choice + logp_r + logp_θ + logp_φ − log|det J|).
	LogP float64

	// Records holds one PlacementRecord per placed atom, in placement order.
	Records []PlacementRecord

	// CorePotential and FinalPotential are the reduced energies of the core
	// and final systems at the resulting positions.
	CorePotential  float64
	FinalPotential float64

	// Order is the placement plan; Special and NeglectedAngles echo the
	// growth builder's routing record.
	Order           *order.Result
	Special         growth.SpecialTerms
	NeglectedAngles []forcefield.AngleTerm
}

func wrapOption(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidOption, msg)
}
