// Package splinelocalizer owns the current pose estimate and the
// nonlinear least-squares scan matcher that aligns a cleaned LiDAR scan
// against a splinemap.SplineMap (spec §4.2). Pose is mutated only by
// Update; reading Pose concurrently with Update is not supported (same
// single-threaded-cooperative contract as spec §5).
package splinelocalizer
