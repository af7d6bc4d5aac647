package geom

import "math"

// Scan is a fixed-length vector of range readings on precomputed bearings.
type Scan struct {
	Angles []float64
	Ranges []float64
}

// FilterValid returns the subset of ranges/angles satisfying
// range_min <= r < range_max (spec §3, §4.2.1), preserving order.
func (s Scan) FilterValid(rangeMin, rangeMax float64) (ranges, angles []float64) {
	ranges = make([]float64, 0, len(s.Ranges))
	angles = make([]float64, 0, len(s.Ranges))
	for i, r := range s.Ranges {
		if r >= rangeMin && r < rangeMax {
			ranges = append(ranges, r)
			angles = append(angles, s.Angles[i])
		}
	}
	return ranges, angles
}

// RangeToLocal converts parallel ranges/angles vectors to local-frame
// Cartesian points: p_i = r_i*(cos(theta_i), sin(theta_i)).
func RangeToLocal(ranges, angles []float64) []Point {
	pts := make([]Point, len(ranges))
	for i := range ranges {
		pts[i] = Point{
			X: ranges[i] * math.Cos(angles[i]),
			Y: ranges[i] * math.Sin(angles[i]),
		}
	}
	return pts
}
