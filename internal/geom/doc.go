// Package geom provides the shared 2D pose/rotation and scan-filtering
// primitives used by both splinemap and splinelocalizer: a rigid pose
// (x, y, theta), its rotation matrix and derivative, and the
// range/bearing-to-Cartesian conversion used to clean a raw LiDAR scan
// before it touches the spline field.
package geom
