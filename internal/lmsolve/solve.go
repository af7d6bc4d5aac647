package lmsolve

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ResidualFunc evaluates the residual vector r(x) for parameter vector x.
type ResidualFunc func(x []float64) []float64

// JacobianFunc evaluates the Jacobian of ResidualFunc at x: row i, column
// j is d(r_i)/d(x_j).
type JacobianFunc func(x []float64) *mat.Dense

// Options configures one Solve call (spec §4.2.3).
type Options struct {
	FTol      float64 // relative cost-change stopping tolerance
	MaxIter   int     // maximum outer iterations
	FScale    float64 // Cauchy loss scale
	InitialLM float64 // initial Levenberg-Marquardt damping factor
}

// DefaultOptions mirrors the reference's coarse-pass defaults.
func DefaultOptions() Options {
	return Options{FTol: 1e-2, MaxIter: 10, FScale: 1.5, InitialLM: 1e-3}
}

// Result is the solver's outcome.
type Result struct {
	X         []float64
	Cost      float64
	Converged bool
}

// cauchyWeight returns the IRLS weight rho'(s) for the Cauchy loss
// rho(s) = fScale^2 * ln(1 + s/fScale^2), where s = r^2.
func cauchyWeight(r, fScale float64) float64 {
	s := r * r
	fs2 := fScale * fScale
	return 1 / (1 + s/fs2)
}

func cauchyCost(residual []float64, fScale float64) float64 {
	fs2 := fScale * fScale
	var cost float64
	for _, r := range residual {
		cost += fs2 * math.Log1p(r*r/fs2)
	}
	return cost
}

// Solve runs a damped Levenberg-Marquardt iteration with Cauchy IRLS
// reweighting, starting from x0. It never returns a non-finite x: per
// spec §7 (DegenerateOptimization), if the solver fails to improve the
// cost within MaxIter, it returns the last finite iterate with
// Converged=false rather than propagating an error.
func Solve(residual ResidualFunc, jacobian JacobianFunc, x0 []float64, opts Options) Result {
	n := len(x0)
	x := make([]float64, n)
	copy(x, x0)

	r := residual(x)
	cost := cauchyCost(r, opts.FScale)
	lambda := opts.InitialLM
	if lambda <= 0 {
		lambda = 1e-3
	}

	for iter := 0; iter < opts.MaxIter; iter++ {
		J := jacobian(x)
		rows, cols := J.Dims()
		if rows == 0 || cols == 0 {
			return Result{X: x, Cost: cost, Converged: false}
		}

		w := make([]float64, rows)
		for i, ri := range r {
			w[i] = cauchyWeight(ri, opts.FScale)
		}

		// Weighted normal equations: (J^T W J + lambda*diag) delta = J^T W r
		wr := make([]float64, rows)
		copy(wr, r)
		floats.Mul(wr, w)

		jcols := make([][]float64, cols)
		for a := 0; a < cols; a++ {
			jcols[a] = mat.Col(nil, a, J)
		}

		jtwj := mat.NewDense(cols, cols, nil)
		jtwr := mat.NewVecDense(cols, nil)
		for a := 0; a < cols; a++ {
			jtwr.SetVec(a, floats.Dot(jcols[a], wr))
			for b := a; b < cols; b++ {
				wColB := make([]float64, rows)
				copy(wColB, jcols[b])
				floats.Mul(wColB, w)
				sumJ := floats.Dot(jcols[a], wColB)
				jtwj.Set(a, b, sumJ)
				jtwj.Set(b, a, sumJ)
			}
		}

		improved := false
		for attempt := 0; attempt < 8; attempt++ {
			a := mat.NewDense(cols, cols, nil)
			for i := 0; i < cols; i++ {
				for j := 0; j < cols; j++ {
					a.Set(i, j, jtwj.At(i, j))
				}
			}
			for d := 0; d < cols; d++ {
				a.Set(d, d, jtwj.At(d, d)*(1+lambda))
			}

			var delta mat.VecDense
			if err := delta.SolveVec(a, jtwr); err != nil {
				lambda *= 10
				continue
			}

			xNew := make([]float64, n)
			for i := range x {
				xNew[i] = x[i] - delta.AtVec(i)
			}
			rNew := residual(xNew)
			costNew := cauchyCost(rNew, opts.FScale)

			if !isFinite(costNew) || costNew >= cost {
				lambda *= 10
				continue
			}

			relChange := math.Abs(cost-costNew) / math.Max(cost, 1e-12)
			x, r = xNew, rNew
			lambda = math.Max(lambda/10, 1e-12)
			improved = true
			cost = costNew
			if relChange < opts.FTol {
				return Result{X: x, Cost: cost, Converged: true}
			}
			break
		}

		if !improved {
			return Result{X: x, Cost: cost, Converged: false}
		}
	}
	return Result{X: x, Cost: cost, Converged: false}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
