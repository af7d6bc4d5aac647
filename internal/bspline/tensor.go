package bspline

// GridOrigin is the (Ox, Oy) index pair locating world coordinate (0,0)
// within the control grid, plus the grid extent and knot spacing needed
// to evaluate the tensor basis at any point. Both SplineMap and
// SplineLocalizer must share a single GridOrigin instance derived from
// the same formula (spec §9 note 4) to keep knot alignment identical.
type GridOrigin struct {
	Gx, Gy    int
	OriginX   int
	OriginY   int
	KnotSpace float64
}

// Tensor evaluates the 16-element 2D basis vector at point (x, y):
// B[i*Support+j] = by[i]*bx[j] (spec §4.1.1).
func (g GridOrigin) Tensor(x, y float64) [TensorSupport]float64 {
	bx := AxisBasis(x, g.KnotSpace, g.OriginX)
	by := AxisBasis(y, g.KnotSpace, g.OriginY)
	var B [TensorSupport]float64
	for i := 0; i < Support; i++ {
		for j := 0; j < Support; j++ {
			B[i*Support+j] = by[i] * bx[j]
		}
	}
	return B
}

// TensorDeriv evaluates the basis vector and its two gradient components
// dBx, dBy at (x, y) (spec §4.1.1).
func (g GridOrigin) TensorDeriv(x, y float64) (B, dBx, dBy [TensorSupport]float64) {
	bx, dbx := AxisBasisDeriv(x, g.KnotSpace, g.OriginX)
	by, dby := AxisBasisDeriv(y, g.KnotSpace, g.OriginY)
	for i := 0; i < Support; i++ {
		for j := 0; j < Support; j++ {
			k := i*Support + j
			B[k] = by[i] * bx[j]
			dBx[k] = by[i] * dbx[j]
			dBy[k] = dby[i] * bx[j]
		}
	}
	return B, dBx, dBy
}

// SparseIndex computes the 16 flat row-major control-grid indices
// supporting point (x, y): C[i*Support+j] = cy[i]*Gx + cx[j] (spec §4.1.2).
func (g GridOrigin) SparseIndex(x, y float64) [TensorSupport]int {
	cx := AxisIndex(x, g.KnotSpace, g.OriginX)
	cy := AxisIndex(y, g.KnotSpace, g.OriginY)
	var C [TensorSupport]int
	for i := 0; i < Support; i++ {
		for j := 0; j < Support; j++ {
			C[i*Support+j] = cy[i]*g.Gx + cx[j]
		}
	}
	return C
}
