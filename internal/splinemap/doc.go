// Package splinemap owns the control-point grid and spline math behind
// the occupancy field: field evaluation, gradient evaluation, and the
// recursive update operator that projects hit/free world points onto the
// local B-spline basis (spec §4.1).
//
// The control buffer is mutated only inside Update; Evaluate and Gradient
// are read-only and safe to call concurrently with each other, but not
// concurrently with Update (guarded by an internal RWMutex). Concurrent
// read-only snapshots for visualization use Snapshot, which copies the
// control buffer under the read lock (spec §5).
package splinemap
