package splinelocalizer

import (
	"gonum.org/v1/gonum/mat"

	"github.com/spline-slam/core/internal/geom"
	"github.com/spline-slam/core/internal/lmsolve"
	"github.com/spline-slam/core/internal/splinemap"
)

// buildResidualJacobian closes over a fixed set of local-frame hit points
// and returns the residual/Jacobian pair the NLLS solver iterates on
// (spec §4.2.2). Pose candidates are encoded as x = [x, y, theta].
func buildResidualJacobian(m *splinemap.SplineMap, hitsLocal []geom.Point) (lmsolve.ResidualFunc, lmsolve.JacobianFunc) {
	lmax := m.LogOddMax()

	residual := func(x []float64) []float64 {
		pose := geom.Pose{X: x[0], Y: x[1], Theta: x[2]}
		world := pose.ToWorldBatch(hitsLocal)
		vals := m.Evaluate(world)
		r := make([]float64, len(vals))
		for i, s := range vals {
			r[i] = 1 - s/lmax
		}
		return r
	}

	jacobian := func(x []float64) *mat.Dense {
		pose := geom.Pose{X: x[0], Y: x[1], Theta: x[2]}
		world := pose.ToWorldBatch(hitsLocal)
		_, grads := m.EvaluateAndGradient(world)
		c00, c01, c10, c11 := geom.RotationDeriv(x[2])

		J := mat.NewDense(len(hitsLocal), 3, nil)
		for i, p := range hitsLocal {
			gx := grads[i].X / lmax
			gy := grads[i].Y / lmax
			dpx := c00*p.X + c01*p.Y
			dpy := c10*p.X + c11*p.Y
			// Jacobian row per spec §4.2.2: dr/dx = -g.x, dr/dy = -g.y,
			// dr/dtheta = -g . (R'(theta) p_i). The minus signs are kept
			// (spec §9 note 2's sign-convention ambiguity resolved in
			// favor of the analytically correct chain rule, since
			// residual = 1 - s/LMAX).
			J.Set(i, 0, -gx)
			J.Set(i, 1, -gy)
			J.Set(i, 2, -(gx*dpx + gy*dpy))
		}
		return J
	}

	return residual, jacobian
}
