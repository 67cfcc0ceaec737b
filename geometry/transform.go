package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// InternalToCartesian places an atom from its internal coordinates relative
// to three reference positions: bond length r to bondPos, angle theta at
// bondPos against anglePos, and dihedral phi about the bondPos–anglePos axis
// measured from torsionPos. Returns the Cartesian position and the absolute
// Jacobian determinant r²·sin(theta) of the transform.
//
// The frame follows the natural-extension construction: the new atom sits at
// distance r from bondPos, tilted by theta off the anglePos→bondPos
// direction, rotated by phi out of the reference plane. Round-trips with
// CartesianToInternal.
//
// Complexity: O(1).
func InternalToCartesian(bondPos, anglePos, torsionPos r3.Vec, r, theta, phi float64) (r3.Vec, float64) {
	bc := r3.Unit(r3.Sub(bondPos, anglePos))
	n := r3.Unit(r3.Cross(r3.Sub(anglePos, torsionPos), bc))
	m := r3.Cross(n, bc)

	d := r3.Add(
		r3.Add(
			r3.Scale(-r*math.Cos(theta), bc),
			r3.Scale(r*math.Sin(theta)*math.Cos(phi), m),
		),
		r3.Scale(r*math.Sin(theta)*math.Sin(phi), n),
	)

	return r3.Add(bondPos, d), math.Abs(r * r * math.Sin(theta))
}

// CartesianToInternal recovers the internal coordinates of atomPos relative
// to the three reference positions, returning (r, theta, phi, |det J|) with
// the same conventions as InternalToCartesian.
//
// Complexity: O(1).
func CartesianToInternal(atomPos, bondPos, anglePos, torsionPos r3.Vec) (r, theta, phi, detJ float64) {
	rel := r3.Sub(atomPos, bondPos)
	r = r3.Norm(rel)
	theta = clampedAcos(r3.Dot(r3.Unit(rel), r3.Unit(r3.Sub(anglePos, bondPos))))

	b1 := r3.Sub(anglePos, torsionPos)
	b2 := r3.Sub(bondPos, anglePos)
	b3 := r3.Sub(atomPos, bondPos)
	n1 := r3.Cross(b1, b2)
	n2 := r3.Cross(b2, b3)
	phi = math.Atan2(r3.Dot(r3.Cross(n1, n2), r3.Unit(b2)), r3.Dot(n1, n2))

	return r, theta, phi, math.Abs(r * r * math.Sin(theta))
}

// TorsionScan returns trial positions for the atom at n dihedral angles
// evenly spaced over [−π, π) with r and theta fixed, together with the
// scanned angles. The base position is computed once and rotated about the
// anglePos→bondPos axis, which advances the dihedral linearly.
//
// Complexity: O(n).
func TorsionScan(bondPos, anglePos, torsionPos r3.Vec, r, theta float64, n int) ([]r3.Vec, []float64) {
	width := 2 * math.Pi / float64(n)
	phis := make([]float64, n)
	for i := range phis {
		phis[i] = -math.Pi + float64(i)*width
	}

	base, _ := InternalToCartesian(bondPos, anglePos, torsionPos, r, theta, phis[0])
	axis := r3.Unit(r3.Sub(bondPos, anglePos))
	arm := r3.Sub(base, bondPos)

	positions := make([]r3.Vec, n)
	positions[0] = base
	for i := 1; i < n; i++ {
		rot := r3.NewRotation(phis[i]-phis[0], axis)
		positions[i] = r3.Add(bondPos, rot.Rotate(arm))
	}

	return positions, phis
}

// clampedAcos is acos guarded against dot products rounding just outside
// [-1, 1].
func clampedAcos(c float64) float64 {
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}

	return math.Acos(c)
}
