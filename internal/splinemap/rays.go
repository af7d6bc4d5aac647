package splinemap

import (
	"math"

	"github.com/spline-slam/core/internal/geom"
)

// detectFreeSpace derives free-space sample points in local frame from a
// raw ranges vector, per spec §4.1.5: for every ray whose range lies in
// [range_min, range_max], sample the precomputed radii freeRho that fall
// short of that ray's range, subsampling rays by subsampleStride with a
// random per-tick phase for coverage. If nothing qualifies, the
// degenerate single point (0,0) is returned.
func (m *SplineMap) detectFreeSpace(ranges, angles []float64) []geom.Point {
	rangeMin := m.params.GetRangeMin()
	rangeMax := m.params.GetRangeMax()

	m.rngMu.Lock()
	phase := m.rng.Intn(m.subsampleStride)
	m.rngMu.Unlock()

	var pts []geom.Point
	for i := phase; i < len(ranges); i += m.subsampleStride {
		r := ranges[i]
		if r < rangeMin || r > rangeMax {
			continue
		}
		angle := angles[i]
		cos, sin := math.Cos(angle), math.Sin(angle)
		for _, rho := range m.freeRho {
			if rho >= r {
				break
			}
			pts = append(pts, geom.Point{X: rho * cos, Y: rho * sin})
		}
	}
	if len(pts) == 0 {
		pts = []geom.Point{{X: 0, Y: 0}}
	}
	return pts
}
