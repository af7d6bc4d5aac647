package geom

import "math"

// Pose is a rigid 2D transform (x, y, theta) in world frame.
type Pose struct {
	X, Y, Theta float64
}

// Point is a 2D Cartesian point.
type Point struct {
	X, Y float64
}

// Rotation returns the 2x2 rotation matrix for angle theta, in the
// row-major layout [[c, -s], [s, c]] used throughout the map update.
func Rotation(theta float64) (c00, c01, c10, c11 float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	return c, -s, s, c
}

// RotationDeriv returns d/dtheta of Rotation: [[-s, -c], [c, -s]].
// This is R'(theta) from spec §4.2.2, used to build the yaw column of the
// residual Jacobian.
func RotationDeriv(theta float64) (c00, c01, c10, c11 float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	return -s, -c, c, -s
}

// ToWorld maps a local-frame point through pose into world frame:
// w = R(theta)*local + (x, y).
func (p Pose) ToWorld(local Point) Point {
	c00, c01, c10, c11 := Rotation(p.Theta)
	return Point{
		X: c00*local.X + c01*local.Y + p.X,
		Y: c10*local.X + c11*local.Y + p.Y,
	}
}

// ToWorldBatch applies ToWorld to a slice of local points.
func (p Pose) ToWorldBatch(local []Point) []Point {
	out := make([]Point, len(local))
	c00, c01, c10, c11 := Rotation(p.Theta)
	for i, l := range local {
		out[i] = Point{
			X: c00*l.X + c01*l.Y + p.X,
			Y: c10*l.X + c11*l.Y + p.Y,
		}
	}
	return out
}

// WithYawOffset returns a copy of p with theta shifted by delta, used by
// the localizer's multi-start yaw-candidate search.
func (p Pose) WithYawOffset(delta float64) Pose {
	return Pose{X: p.X, Y: p.Y, Theta: p.Theta + delta}
}
