package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfep/geomprop/growth"
)

// torsionPMF is a binnedPMF over the full circle [−π, π); scoring wraps the
// angle first and never falls outside the support.
type torsionPMF struct {
	binnedPMF
}

// score returns the log-density of phi after wrapping into [−π, π).
func (p *torsionPMF) score(phi float64) float64 {
	phi = wrapAngle(phi)
	idx := int((phi - p.lo) / p.width)
	if idx < 0 {
		idx = 0
	} else if idx >= len(p.logMass) {
		idx = len(p.logMass) - 1
	}

	return p.logMass[idx] - math.Log(p.width)
}

// torsionLogPMF builds the discretized torsion distribution for one atom by
// evaluating the growth system at n trial dihedrals with r and theta fixed:
// log q(φ) = −β·U(φ), normalized by log-sum-exp. Bins where the potential is
// NaN get zero mass; if every bin is NaN the geometry is degenerate and
// ErrAllTorsionsNaN is returned.
//
// pos[atom] is used as scratch during the scan and restored before return.
// Complexity: O(n · terms).
func torsionLogPMF(sys *growth.System, stage int, pos []r3.Vec, atom int,
	bondPos, anglePos, torsionPos r3.Vec, r, theta, beta float64, n int) (*torsionPMF, error) {
	positions, phis := TorsionScan(bondPos, anglePos, torsionPos, r, theta, n)

	saved := pos[atom]
	logMass := make([]float64, n)
	nan := 0
	for i, trial := range positions {
		pos[atom] = trial
		u := sys.Energy(pos, stage)
		if math.IsNaN(u) {
			logMass[i] = math.Inf(-1)
			nan++

			continue
		}
		logMass[i] = -beta * u
	}
	pos[atom] = saved

	if nan == n {
		return nil, ErrAllTorsionsNaN
	}

	p := &torsionPMF{binnedPMF{
		lo:      phis[0],
		width:   2 * math.Pi / float64(n),
		logMass: logMass,
	}}
	p.normalize()

	return p, nil
}

// wrapAngle maps phi into [−π, π).
func wrapAngle(phi float64) float64 {
	phi = math.Mod(phi+math.Pi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}

	return phi - math.Pi
}
