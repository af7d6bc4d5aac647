// Package lmsolve is the narrow injected NLLS capability spec §9
// describes: solve(residual_fn, jacobian_fn, x0, opts) -> (x, cost,
// converged). It implements a damped Levenberg-Marquardt trust-region
// iteration with a Cauchy robust loss (spec §4.2.3), built on
// gonum.org/v1/gonum/mat for the normal-equation linear algebra instead
// of a hand-rolled Gaussian elimination.
//
// This stands in for the reference's external dependency on
// scipy.optimize.least_squares(method='dogbox', loss='cauchy'): any
// Levenberg-Marquardt or dogleg solver with a Cauchy-weighted loss
// satisfies the behavioral contract.
package lmsolve
