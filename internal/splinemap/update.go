package splinemap

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/spline-slam/core/internal/bspline"
	"github.com/spline-slam/core/internal/geom"
)

// Update performs one occupancy-grid mapping tick: it cleans ranges,
// derives hit and free points in world frame from pose, and applies the
// recursive update operator of spec §4.1.4. The control buffer is
// mutated only here.
func (m *SplineMap) Update(pose geom.Pose, ranges []float64) error {
	angles := m.params.Angles()
	if len(ranges) != len(angles) {
		return invalidScanf("ranges length %d does not match angles length %d", len(ranges), len(angles))
	}

	occRanges, occAngles := geom.Scan{Angles: angles, Ranges: ranges}.FilterValid(
		m.params.GetRangeMin(), m.params.GetRangeMax())
	occLocal := geom.RangeToLocal(occRanges, occAngles)
	freeLocal := m.detectFreeSpace(ranges, angles)

	occWorld := pose.ToWorldBatch(occLocal)
	freeWorld := pose.ToWorldBatch(freeLocal)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateSplineMap(occWorld, freeWorld)
	return nil
}

// updateSplineMap applies the four-step recursive update operator of
// spec §4.1.4, in order: free decrement, hit/free overlap compensation,
// hit increment, saturation clamp. Caller holds m.mu for writing.
func (m *SplineMap) updateSplineMap(ptsOcc, ptsFree []geom.Point) {
	lf := m.params.GetLogOddFree()
	lo := m.params.GetLogOddOccupied()
	lmin := m.params.GetLogOddMinFree()
	lmax := m.params.GetLogOddMaxOccupied()

	cOcc := make([][bspline.TensorSupport]int, len(ptsOcc))
	bOcc := make([][bspline.TensorSupport]float64, len(ptsOcc))
	for i, p := range ptsOcc {
		cOcc[i] = m.grid.SparseIndex(p.X, p.Y)
		bOcc[i] = m.grid.Tensor(p.X, p.Y)
	}
	cFree := make([][bspline.TensorSupport]int, len(ptsFree))
	for j, p := range ptsFree {
		cFree[j] = m.grid.SparseIndex(p.X, p.Y)
	}

	occSet := make(map[int]struct{}, len(ptsOcc)*bspline.TensorSupport)
	for _, c := range cOcc {
		for _, idx := range c {
			occSet[idx] = struct{}{}
		}
	}

	touched := make(map[int]struct{}, (len(ptsOcc)+len(ptsFree))*bspline.TensorSupport)

	// Step 1-2: free decrement (one accumulating subtraction per
	// occurrence) and hit/free overlap compensation (+0.5*lf per
	// occurrence whose index also supports a hit).
	for _, c := range cFree {
		for _, idx := range c {
			m.ctrl[idx] -= lf
			if _, hit := occSet[idx]; hit {
				m.ctrl[idx] += 0.5 * lf
			}
			touched[idx] = struct{}{}
		}
	}

	// Step 3: hit increment. s_est and the per-hit magnitude are computed
	// from the control state *after* the free-space pass but *before*
	// any hit increments are applied, matching the reference's
	// vectorized two-pass structure (all s_est computed, then all
	// scatter-adds applied).
	ctrlAtOcc := make([]float64, bspline.TensorSupport)
	mag := make([]float64, len(ptsOcc))
	for i := range ptsOcc {
		for k, idx := range cOcc[i] {
			ctrlAtOcc[k] = m.ctrl[idx]
		}
		sEst := floats.Dot(ctrlAtOcc, bOcc[i][:])
		normB2 := floats.Dot(bOcc[i][:], bOcc[i][:])
		e := lmax - sEst
		capMag := lo
		if normB2 > 0 {
			capMag = lo / normB2
		}
		clamped := math.Min(capMag, math.Abs(e))
		mag[i] = math.Copysign(clamped, e)
	}
	for i, c := range cOcc {
		for k, idx := range c {
			m.ctrl[idx] += bOcc[i][k] * mag[i]
			touched[idx] = struct{}{}
		}
	}

	// Step 4: saturation clamp over every index touched in steps 1-3.
	for idx := range touched {
		if m.ctrl[idx] > lmax {
			m.ctrl[idx] = lmax
		} else if m.ctrl[idx] < lmin {
			m.ctrl[idx] = lmin
		}
	}
}
