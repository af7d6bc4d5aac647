package splinemap

// MapSnapshot is a deep, point-in-time copy of the control grid, safe to
// read concurrently with further SplineMap.Update calls (spec §5, §6).
// Byte layout for callers that serialize a snapshot: Gx, Gy (int32),
// KnotSpace (float64), OriginX, OriginY (int32), then Gx*Gy float64
// control values in row-major order.
type MapSnapshot struct {
	Gx, Gy           int
	OriginX, OriginY int
	KnotSpace        float64
	Ctrl             []float64
}

// Snapshot returns a deep copy of the current control grid. No in-place
// reader/writer sharing is permitted (spec §5); this is the only
// supported way to inspect map state from another goroutine while
// Update may be running concurrently.
func (m *SplineMap) Snapshot() MapSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctrl := make([]float64, len(m.ctrl))
	copy(ctrl, m.ctrl)
	return MapSnapshot{
		Gx: m.grid.Gx, Gy: m.grid.Gy,
		OriginX: m.grid.OriginX, OriginY: m.grid.OriginY,
		KnotSpace: m.grid.KnotSpace,
		Ctrl:      ctrl,
	}
}
