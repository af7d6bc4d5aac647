package splinelocalizer

import (
	"sync"

	"github.com/spline-slam/core/internal/config"
	"github.com/spline-slam/core/internal/geom"
	"github.com/spline-slam/core/internal/lmsolve"
	"github.com/spline-slam/core/internal/splinemap"
)

// SplineLocalizer tracks the current pose estimate by repeatedly aligning
// incoming scans against a shared SplineMap (spec §4.2).
type SplineLocalizer struct {
	mu sync.RWMutex

	m      *splinemap.SplineMap
	params config.LocalizerParams
	pose   geom.Pose
}

// New builds a SplineLocalizer that reads from the given SplineMap. The two
// share the same grid, so no separate origin computation is needed: spec §9
// note 4's formula lives in splinemap and is inherited automatically.
func New(m *splinemap.SplineMap, params config.LocalizerParams, initial geom.Pose) (*SplineLocalizer, error) {
	if err := params.Validate(); err != nil {
		return nil, invalidScanf("%v", err)
	}
	return &SplineLocalizer{m: m, params: params, pose: initial}, nil
}

// Pose returns a copy of the current pose estimate.
func (l *SplineLocalizer) Pose() geom.Pose {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pose
}

// Update aligns ranges (parallel to the shared sensor angle vector) against
// the map and advances the pose estimate (spec §4.2.4).
//
// poseHint, when non-nil, seeds the search instead of the current pose
// estimate (used after an external odometry reading). unreliableOdometry
// triggers the multi-start yaw-candidate search to escape the heading
// ambiguity that a single Gauss-Newton start cannot recover from.
//
// Update runs two independent coarse (ftol=1e-2) passes — one seeded from
// the hint (q̂), one seeded from the tracked pose regardless of what the
// hint says — and keeps whichever lands at lower cost. This guards against
// a spurious or stale pose hint throwing away a perfectly good track: the
// tracked-pose pass is always run, never skipped because a hint was
// supplied. The winner is then refined with a tight (ftol=1e-5) solve,
// whose result becomes the new pose estimate.
//
// On DegenerateOptimization, the pose estimate is left unchanged and an
// error is returned (spec §7).
func (l *SplineLocalizer) Update(ranges []float64, poseHint *geom.Pose, unreliableOdometry bool) error {
	angles := l.params.Angles()
	if len(ranges) != len(angles) {
		return invalidScanf("ranges length %d does not match angle vector length %d", len(ranges), len(angles))
	}

	validRanges, validAngles := (geom.Scan{Angles: angles, Ranges: ranges}).FilterValid(
		l.params.GetRangeMin(), l.params.GetRangeMax())
	if len(validRanges) == 0 {
		return &LocalizerError{Kind: DegenerateOptimization, Msg: "no valid range readings in scan"}
	}
	hitsLocal := geom.RangeToLocal(validRanges, validAngles)
	residual, jacobian := buildResidualJacobian(l.m, hitsLocal)

	trackedPose := l.Pose()
	hintSeed := trackedPose
	if poseHint != nil {
		hintSeed = *poseHint
	}

	hintCandidates := []geom.Pose{hintSeed}
	if unreliableOdometry {
		hintCandidates = hintCandidates[:0]
		for _, dtheta := range yawCandidates(l.params.UsePrincipledYawCandidates()) {
			hintCandidates = append(hintCandidates, hintSeed.WithYawOffset(dtheta))
		}
	}

	coarse := lmsolve.DefaultOptions() // ftol=1e-2
	hintBest := solveBest(residual, jacobian, hintCandidates, coarse)

	// Guard pass: always re-solve from the tracked pose, independent of
	// whatever the hint said, so a bad hint can never discard a good track.
	selfBest := solveBest(residual, jacobian, []geom.Pose{trackedPose}, coarse)

	winner := hintBest
	if selfBest.Cost < winner.Cost {
		winner = selfBest
	}

	tight := coarse
	tight.FTol = 1e-5
	final := lmsolve.Solve(residual, jacobian, winner.X, tight)

	l.mu.Lock()
	l.pose = geom.Pose{X: final.X[0], Y: final.X[1], Theta: final.X[2]}
	l.mu.Unlock()
	return nil
}

// solveBest runs Solve from every candidate pose and returns the lowest-cost
// result. lmsolve.Solve always returns a finite iterate (never propagates a
// solver failure), so the result is usable as a refinement seed even when a
// candidate failed to fully converge.
func solveBest(residual lmsolve.ResidualFunc, jacobian lmsolve.JacobianFunc, candidates []geom.Pose, opts lmsolve.Options) lmsolve.Result {
	best := lmsolve.Solve(residual, jacobian, []float64{candidates[0].X, candidates[0].Y, candidates[0].Theta}, opts)
	for _, c := range candidates[1:] {
		res := lmsolve.Solve(residual, jacobian, []float64{c.X, c.Y, c.Theta}, opts)
		if res.Cost < best.Cost {
			best = res
		}
	}
	return best
}
