package geometry

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfep/geomprop/forcefield"
	"github.com/openfep/geomprop/growth"
	"github.com/openfep/geomprop/order"
)

// Engine proposes Cartesian coordinates for position-less atoms and scores
// existing coordinates under the same distribution. An Engine owns one
// random stream and is not safe for concurrent use; run parallel proposals
// on separate Engines.
type Engine struct {
	opts Options
	rng  *rand.Rand
}

// New validates opts and returns an Engine. A nil Options.Rand selects the
// deterministic stream derived from Options.Seed (0 ⇒ fixed default seed).
func New(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	rng := opts.Rand
	if rng == nil {
		rng = rngFromSeed(opts.Seed)
	}

	return &Engine{opts: opts, rng: rng}, nil
}

// Propose plans a placement order, then samples internal coordinates for
// each atom in turn and converts them to Cartesian positions, accumulating
// the proposal log-probability. beta is the inverse temperature in
// mol/kJ.
//
// The returned Result carries the new positions, per-atom records and the
// energy bookkeeping needed for the acceptance ratio. Errors are fatal to
// the proposal: missing force-field terms, a fully-NaN torsion scan, or a
// closing energy mismatch.
func (e *Engine) Propose(prop *Proposal, beta float64) (*Result, error) {
	return e.run(prop, beta, true)
}

// LogPReverse scores existing coordinates: it plans an order and walks the
// same pipeline as Propose, but recovers each atom's internal coordinates
// from prop.Positions instead of drawing them, returning the log-probability
// the forward pipeline would have assigned. Coordinates outside a
// distribution's support score LogZero per coordinate.
func (e *Engine) LogPReverse(prop *Proposal, beta float64) (*Result, error) {
	return e.run(prop, beta, false)
}

// run is the shared pipeline: plan → build model → per-atom
// bond/angle/torsion → Cartesian placement → incremental energy → closing
// check. sampling selects between drawing values and recovering them from
// the target positions.
func (e *Engine) run(prop *Proposal, beta float64, sampling bool) (*Result, error) {
	if beta <= 0 {
		return nil, ErrNonPositiveBeta
	}
	if prop == nil || prop.Residue == nil || prop.Terms == nil {
		return nil, ErrIncompleteProposal
	}
	for _, a := range prop.Residue.Atoms() {
		if a.Index >= len(prop.Positions) {
			return nil, fmt.Errorf("%w: no position slot for atom %d", ErrIncompleteProposal, a.Index)
		}
	}

	ord, err := order.Plan(prop.Residue, prop.ToPlace, prop.Positioned, e.rng)
	if err != nil {
		return nil, err
	}
	model, err := growth.Build(prop.Terms, ord, prop.Residue, growth.Options{
		NeglectAngles:   e.opts.NeglectAngles,
		Use14Nonbondeds: e.opts.Use14Nonbondeds,
		AddRingTorsions: e.opts.AddRingTorsions,
	})
	if err != nil {
		return nil, err
	}

	pos := append([]r3.Vec(nil), prop.Positions...)
	res := &Result{
		Order:           ord,
		Special:         model.Special,
		NeglectedAngles: model.NeglectedAngles,
		Records:         make([]PlacementRecord, 0, len(ord.Quads)),
		CorePotential:   beta * model.Core.TotalEnergy(pos),
	}

	cumulative := 0.0
	for k, q := range ord.Quads {
		stage := k + 1
		atom := q.NewAtom()
		bondPos, anglePos, torsionPos := pos[q[1]], pos[q[2]], pos[q[3]]

		// Reverse scoring measures the internal coordinates of the target
		// position once, up front.
		var rRev, thetaRev, phiRev, detJRev float64
		if !sampling {
			rRev, thetaRev, phiRev, detJRev = CartesianToInternal(pos[atom], bondPos, anglePos, torsionPos)
		}

		r, logpR, uR, err := e.bondStep(prop.Terms, atom, q[1], beta, sampling, rRev)
		if err != nil {
			return nil, err
		}

		aterm, err := prop.Terms.AngleFor(atom, q[1], q[2])
		if err != nil {
			return nil, err
		}
		apmf := angleLogPMF(aterm.Theta0, aterm.ForceK, beta, e.opts.AngleSoftening, e.opts.NAngleDivisions)
		var theta, logpTheta float64
		if sampling {
			theta, logpTheta = apmf.sample(e.rng)
		} else {
			theta, logpTheta = thetaRev, apmf.score(thetaRev)
		}
		devTheta := theta - aterm.Theta0
		uTheta := beta * 0.5 * aterm.ForceK * e.opts.AngleSoftening * devTheta * devTheta

		tpmf, err := torsionLogPMF(model.Growth, stage, pos, atom, bondPos, anglePos, torsionPos,
			r, theta, beta, e.opts.NTorsionDivisions)
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", atom, err)
		}
		var phi, logpPhi, detJ float64
		if sampling {
			phi, logpPhi = tpmf.sample(e.rng)
			pos[atom], detJ = InternalToCartesian(bondPos, anglePos, torsionPos, r, theta, phi)
		} else {
			phi, logpPhi = phiRev, tpmf.score(phiRev)
			detJ = detJRev
		}

		reduced := beta * model.Growth.Energy(pos, stage)
		added := reduced - cumulative
		cumulative = reduced

		logDetJ := math.Log(detJ)
		res.LogP += ord.LogChoice[k] + logpR + logpTheta + logpPhi - logDetJ
		res.Records = append(res.Records, PlacementRecord{
			AtomIndex:   atom,
			Quad:        q,
			R:           r,
			Theta:       theta,
			Phi:         phi,
			UR:          uR,
			UTheta:      uTheta,
			LogPR:       logpR,
			LogPTheta:   logpTheta,
			LogPPhi:     logpPhi,
			LogDetJ:     logDetJ,
			ChoiceLogP:  ord.LogChoice[k],
			AddedEnergy: added,
		})
	}

	if err := model.VerifyClosure(pos); err != nil {
		return nil, err
	}
	res.FinalPotential = beta * model.Final.TotalEnergy(pos)
	res.Positions = pos

	return res, nil
}

// bondStep resolves the bond length of one placement. A harmonic bond term
// yields a draw from (or a score under) the discretized bond distribution; a
// missing bond term falls back to a rigid constraint, whose length is taken
// verbatim with zero log-density. Missing both is fatal.
func (e *Engine) bondStep(terms *forcefield.Set, atom, bondAtom int, beta float64,
	sampling bool, rRev float64) (r, logpR, uR float64, err error) {
	bterm, err := terms.BondFor(atom, bondAtom)
	if err == nil {
		pmf := bondLogPMF(bterm.R0, bterm.K, beta, e.opts.BondSoftening, e.opts.NBondDivisions)
		if sampling {
			r, logpR = pmf.sample(e.rng)
		} else {
			r, logpR = rRev, pmf.score(rRev)
		}
		dev := r - bterm.R0
		uR = beta * 0.5 * bterm.K * e.opts.BondSoftening * dev * dev

		return r, logpR, uR, nil
	}
	if !errors.Is(err, forcefield.ErrMissingBond) {
		return 0, 0, 0, err
	}

	c, cerr := terms.ConstraintFor(atom, bondAtom)
	if cerr != nil {
		return 0, 0, 0, fmt.Errorf("atom %d has neither a bond term nor a constraint: %w", atom, err)
	}
	if sampling {
		r = c.R
	} else {
		r = rRev
	}

	return r, 0, 0, nil
}
