package splinemap

import (
	"log"
	"math"
	"math/rand"
	"sync"

	"github.com/spline-slam/core/internal/bspline"
	"github.com/spline-slam/core/internal/config"
	"github.com/spline-slam/core/internal/geom"
)

// SplineMap owns the control-point grid and all spline math: field
// evaluation, gradient evaluation, and the recursive update operator
// (spec §4.1).
type SplineMap struct {
	mu sync.RWMutex

	grid   bspline.GridOrigin
	ctrl   []float64
	degree int

	params config.SensorParams

	// freeRho is the precomputed arithmetic progression of free-space
	// sample radii, rho in [max(knot_space, range_min), range_max)
	// stepping by 2*knot_space (spec §4.1.5).
	freeRho []float64

	// subsampleStride is ceil(|angles|/max_nb_rays), at least 1.
	subsampleStride int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New constructs a SplineMap from the given sensor parameters, validating
// them first (spec §6, §7). The grid origin follows spec §9 note 4
// exactly: grid_center = ceil((G-degree)/2) + degree - 1 per axis.
func New(params config.SensorParams) (*SplineMap, error) {
	if err := params.Validate(); err != nil {
		return nil, invalidScanf("%v", err)
	}

	const degree = bspline.Degree
	knotSpace := params.GetKnotSpace()
	mapX, mapY := params.GetMapSize()

	gx := int(math.Ceil(mapX/knotSpace)) + degree
	gy := int(math.Ceil(mapY/knotSpace)) + degree
	originX := int(math.Ceil(float64(gx-degree)/2)) + degree - 1
	originY := int(math.Ceil(float64(gy-degree)/2)) + degree - 1

	angles := params.Angles()
	stride := int(math.Ceil(float64(len(angles)) / float64(params.GetMaxNbRays())))
	if stride < 1 {
		stride = 1
	}

	freeStart := math.Max(knotSpace, params.GetRangeMin())
	freeStep := 2 * knotSpace
	rangeMax := params.GetRangeMax()
	var freeRho []float64
	for rho := freeStart; rho < rangeMax; rho += freeStep {
		freeRho = append(freeRho, rho)
	}

	m := &SplineMap{
		grid: bspline.GridOrigin{
			Gx: gx, Gy: gy,
			OriginX: originX, OriginY: originY,
			KnotSpace: knotSpace,
		},
		// Control points start at a neutral zero prior rather than the
		// reference's 3*(LMAX+LMIN) bias; see DESIGN.md for the rationale
		// spec §9 note 1 asks implementers to record explicitly.
		ctrl:            make([]float64, gx*gy),
		degree:          degree,
		params:          params,
		freeRho:         freeRho,
		subsampleStride: stride,
		rng:             rand.New(rand.NewSource(1)),
	}
	log.Printf("splinemap: grid %dx%d knot_space=%.4f origin=(%d,%d)", gx, gy, knotSpace, originX, originY)
	return m, nil
}

// Evaluate computes the field value at each point (spec §4.1.3).
func (m *SplineMap) Evaluate(points []geom.Point) []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]float64, len(points))
	for i, p := range points {
		B := m.grid.Tensor(p.X, p.Y)
		C := m.grid.SparseIndex(p.X, p.Y)
		var s float64
		for k := 0; k < bspline.TensorSupport; k++ {
			s += m.ctrl[C[k]] * B[k]
		}
		out[i] = s
	}
	return out
}

// Gradient computes the field gradient at each point (spec §4.1.3).
func (m *SplineMap) Gradient(points []geom.Point) []geom.Point {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]geom.Point, len(points))
	for i, p := range points {
		_, dBx, dBy := m.grid.TensorDeriv(p.X, p.Y)
		C := m.grid.SparseIndex(p.X, p.Y)
		var gx, gy float64
		for k := 0; k < bspline.TensorSupport; k++ {
			c := m.ctrl[C[k]]
			gx += c * dBx[k]
			gy += c * dBy[k]
		}
		out[i] = geom.Point{X: gx, Y: gy}
	}
	return out
}

// EvaluateAndGradient computes both in a single pass, avoiding a second
// sparse-index lookup; used internally by the localizer residual pass
// and available to callers who need both without the locking overhead
// of two separate calls.
func (m *SplineMap) EvaluateAndGradient(points []geom.Point) (values []float64, grads []geom.Point) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	values = make([]float64, len(points))
	grads = make([]geom.Point, len(points))
	for i, p := range points {
		B, dBx, dBy := m.grid.TensorDeriv(p.X, p.Y)
		C := m.grid.SparseIndex(p.X, p.Y)
		var s, gx, gy float64
		for k := 0; k < bspline.TensorSupport; k++ {
			c := m.ctrl[C[k]]
			s += c * B[k]
			gx += c * dBx[k]
			gy += c * dBy[k]
		}
		values[i] = s
		grads[i] = geom.Point{X: gx, Y: gy}
	}
	return values, grads
}

// Params returns the sensor parameters the map was constructed with.
func (m *SplineMap) Params() config.SensorParams {
	return m.params
}

// Grid returns the map's grid origin, shared with SplineLocalizer so both
// components evaluate the same basis for the same control buffer.
func (m *SplineMap) Grid() bspline.GridOrigin {
	return m.grid
}

// LogOddMax returns the occupied saturation bound, used by the localizer
// to normalize residuals (spec §4.2.2).
func (m *SplineMap) LogOddMax() float64 {
	return m.params.GetLogOddMaxOccupied()
}
