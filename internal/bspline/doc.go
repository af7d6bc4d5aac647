// Package bspline implements the cubic tensor-product B-spline basis used
// by the spline occupancy field: per-axis basis values and derivatives,
// their 2D tensor product, and the sparse 16-index support set for a
// world point on a uniform knot grid. See spec §4.1.1-§4.1.2.
//
// Degree is fixed at 3 (cubic): every point has exactly 4 supporting knots
// per axis, 16 in the 2D tensor product.
package bspline

// Degree is the fixed spline degree. Every axis contributes Degree+1 = 4
// supporting basis functions.
const Degree = 3

// Support is the number of per-axis supporting control points (Degree+1).
const Support = Degree + 1

// TensorSupport is the number of 2D supporting control points (Support^2).
const TensorSupport = Support * Support
