package geometry

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// anglePadding keeps the angle support strictly inside (0, π): the Jacobian
// factor sin(θ) vanishes at the endpoints and would make the transform
// singular.
const anglePadding = 1e-3

// binnedPMF is a discretized distribution over equal-width bins on
// [lo, lo + width·len(logMass)). logMass holds normalized log probability
// masses; within a bin the density is uniform.
type binnedPMF struct {
	lo      float64
	width   float64
	logMass []float64
}

// sample draws a value: a categorical bin by mass, then a uniform offset
// within it. Returns the value and its log-density, mass − log(width).
// Complexity: O(n) for the cumulative table.
func (p *binnedPMF) sample(rng *rand.Rand) (float64, float64) {
	cum := make([]float64, len(p.logMass))
	for i, lm := range p.logMass {
		cum[i] = math.Exp(lm)
	}
	floats.CumSum(cum, cum)

	u := rng.Float64() * cum[len(cum)-1]
	idx := sort.SearchFloat64s(cum, u)
	if idx == len(cum) {
		idx--
	}

	x := p.lo + (float64(idx)+rng.Float64())*p.width

	return x, p.logMass[idx] - math.Log(p.width)
}

// score returns the log-density of x: the mass of its bin minus log(width),
// or LogZero outside the support.
// Complexity: O(1).
func (p *binnedPMF) score(x float64) float64 {
	if x < p.lo {
		return LogZero
	}
	idx := int((x - p.lo) / p.width)
	if idx >= len(p.logMass) {
		return LogZero
	}

	return p.logMass[idx] - math.Log(p.width)
}

// normalize subtracts the log-sum-exp of logMass in place, turning raw
// log-weights into normalized log masses.
func (p *binnedPMF) normalize() {
	logZ := floats.LogSumExp(p.logMass)
	for i := range p.logMass {
		p.logMass[i] -= logZ
	}
}

// bondLogPMF discretizes the bond-length distribution
//
//	p(r) ∝ r²·exp(−β·k·(r − r0)²/2)
//
// over [max(0, r0 − 6σ), r0 + 6σ], σ = 1/√(β·k), into n left-edge bins with
// masses evaluated at bin midpoints. softening scales k before σ is derived.
// Complexity: O(n).
func bondLogPMF(r0, k, beta, softening float64, n int) *binnedPMF {
	sigma := 1 / math.Sqrt(beta*k*softening)
	lo := math.Max(0, r0-6*sigma)
	hi := r0 + 6*sigma
	p := &binnedPMF{
		lo:      lo,
		width:   (hi - lo) / float64(n),
		logMass: make([]float64, n),
	}
	for i := range p.logMass {
		mid := lo + (float64(i)+0.5)*p.width
		dev := (mid - r0) / sigma
		p.logMass[i] = 2*math.Log(mid) - 0.5*dev*dev
	}
	p.normalize()

	return p
}

// angleLogPMF discretizes the bond-angle distribution
//
//	p(θ) ∝ sin(θ)·exp(−β·k·(θ − θ0)²/2)
//
// over (ε, π − ε), ε = anglePadding, into n left-edge bins with masses
// evaluated at bin midpoints. softening scales k before σ is derived.
// Complexity: O(n).
func angleLogPMF(theta0, k, beta, softening float64, n int) *binnedPMF {
	sigma := 1 / math.Sqrt(beta*k*softening)
	lo := anglePadding
	hi := math.Pi - anglePadding
	p := &binnedPMF{
		lo:      lo,
		width:   (hi - lo) / float64(n),
		logMass: make([]float64, n),
	}
	for i := range p.logMass {
		mid := lo + (float64(i)+0.5)*p.width
		dev := (mid - theta0) / sigma
		p.logMass[i] = math.Log(math.Sin(mid)) - 0.5*dev*dev
	}
	p.normalize()

	return p
}
