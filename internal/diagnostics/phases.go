package diagnostics

import (
	"sync"
	"time"

	"github.com/spline-slam/core/internal/timeutil"
)

// PhaseTimer accumulates wall-clock time spent in named phases of a
// mapping/localization tick (e.g. "update_map", "update_localization").
// It is driven by a timeutil.Clock so tests can inject a MockClock instead
// of depending on real elapsed time.
type PhaseTimer struct {
	clock timeutil.Clock

	mu    sync.Mutex
	total map[string]time.Duration
	count map[string]int
}

// NewPhaseTimer constructs a PhaseTimer backed by the given clock. Callers
// in production should pass timeutil.RealClock{}.
func NewPhaseTimer(clock timeutil.Clock) *PhaseTimer {
	return &PhaseTimer{
		clock: clock,
		total: make(map[string]time.Duration),
		count: make(map[string]int),
	}
}

// Track runs fn and records its duration under the given phase name.
func (t *PhaseTimer) Track(phase string, fn func()) {
	start := t.clock.Now()
	fn()
	elapsed := t.clock.Since(start)

	t.mu.Lock()
	t.total[phase] += elapsed
	t.count[phase]++
	t.mu.Unlock()
}

// PhaseStats is a snapshot of one phase's accumulated timing.
type PhaseStats struct {
	Total time.Duration
	Count int
}

// Mean returns the average duration per call, or zero if Count is zero.
func (s PhaseStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Snapshot returns a copy of the accumulated stats for every tracked phase.
func (t *PhaseTimer) Snapshot() map[string]PhaseStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]PhaseStats, len(t.total))
	for phase, total := range t.total {
		out[phase] = PhaseStats{Total: total, Count: t.count[phase]}
	}
	return out
}
