package bspline

import "math"

// AxisIndex computes the 4 supporting control indices along one axis for
// continuous coordinate tau, given the axis origin index and knot spacing.
//
// mu = -ceil(-tau/knotSpace) + origin, written in the reference
// implementation's ceiling-toward-zero-from-the-negative-side form
// (spec §4.1.1). It equals floor(tau/knotSpace) + origin for every tau,
// points exactly on a knot boundary included.
func AxisIndex(tau, knotSpace float64, origin int) [Support]int {
	mu := -int(math.Ceil(-tau/knotSpace)) + origin
	var c [Support]int
	for i := 0; i < Support; i++ {
		c[i] = mu - Degree + i
	}
	return c
}

// AxisBasis evaluates the 4 cubic basis values at tau (spec §4.1.1).
func AxisBasis(tau, knotSpace float64, origin int) [Support]float64 {
	t := axisFraction(tau, knotSpace, origin)
	t3, t2, t1, t0 := t+3, t+2, t+1, t
	return [Support]float64{
		(-t3*t3*t3 + 12*t3*t3 - 48*t3 + 64) / 6,
		(3*t2*t2*t2 - 24*t2*t2 + 60*t2 - 44) / 6,
		(-3*t1*t1*t1 + 12*t1*t1 - 12*t1 + 4) / 6,
		(t0 * t0 * t0) / 6,
	}
}

// AxisBasisDeriv evaluates both the basis values and their derivative with
// respect to tau (spec §4.1.1).
func AxisBasisDeriv(tau, knotSpace float64, origin int) (b, db [Support]float64) {
	t := axisFraction(tau, knotSpace, origin)
	t3, t2, t1, t0 := t+3, t+2, t+1, t
	b = [Support]float64{
		(-t3*t3*t3 + 12*t3*t3 - 48*t3 + 64) / 6,
		(3*t2*t2*t2 - 24*t2*t2 + 60*t2 - 44) / 6,
		(-3*t1*t1*t1 + 12*t1*t1 - 12*t1 + 4) / 6,
		(t0 * t0 * t0) / 6,
	}
	inv := 1 / knotSpace
	db = [Support]float64{
		(-3*t3*t3 + 24*t3 - 48) / 6 * inv,
		(9*t2*t2 - 48*t2 + 60) / 6 * inv,
		(-9*t1*t1 + 24*t1 - 12) / 6 * inv,
		(3 * t0 * t0) / 6 * inv,
	}
	return b, db
}

// axisFraction returns t = (tau/knotSpace + origin) mod 1, always in [0,1).
func axisFraction(tau, knotSpace float64, origin int) float64 {
	t := math.Mod(tau/knotSpace+float64(origin), 1)
	if t < 0 {
		t += 1
	}
	return t
}
