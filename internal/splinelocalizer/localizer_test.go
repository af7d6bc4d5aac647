package splinelocalizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spline-slam/core/internal/config"
	"github.com/spline-slam/core/internal/geom"
	"github.com/spline-slam/core/internal/splinemap"
)

func testSensorParams() config.SensorParams {
	knot := 0.05
	mapX, mapY := 10.0, 10.0
	rmin, rmax := 0.12, 3.5
	lo, lf := 0.9, 0.3
	lmin, lmax := -100.0, 100.0
	inc := math.Pi / 180
	minA, maxA := 0.0, 2*math.Pi-inc
	return config.SensorParams{
		KnotSpace: &knot, MapSizeX: &mapX, MapSizeY: &mapY,
		RangeMin: &rmin, RangeMax: &rmax,
		LogOddOccupied: &lo, LogOddFree: &lf,
		LogOddMinFree: &lmin, LogOddMaxOccupied: &lmax,
		MinAngle: &minA, MaxAngle: &maxA, AngleIncrement: &inc,
	}
}

func constantRangeScan(p config.SensorParams, r float64) []float64 {
	angles := p.Angles()
	ranges := make([]float64, len(angles))
	for i := range ranges {
		ranges[i] = r
	}
	return ranges
}

// wallScan builds a scan from pose toward the single point lying d ahead of
// wallAheadOf: for every bearing, the range is the projection of the vector
// from pose to that point onto the bearing direction, or range_max when that
// projection is not inside (range_min, range_max) (used to build S3/S4
// fixtures).
func wallScan(sensor config.SensorParams, pose geom.Pose, wallAheadOf geom.Pose, d float64) []float64 {
	angles := sensor.Angles()
	ranges := make([]float64, len(angles))
	rmax := sensor.GetRangeMax()
	for i, a := range angles {
		worldBearing := pose.Theta + a
		hit := geom.Point{
			X: wallAheadOf.X + d*math.Cos(wallAheadOf.Theta),
			Y: wallAheadOf.Y + d*math.Sin(wallAheadOf.Theta),
		}
		dx, dy := hit.X-pose.X, hit.Y-pose.Y
		along := dx*math.Cos(worldBearing) + dy*math.Sin(worldBearing)
		if along > sensor.GetRangeMin() && along < rmax {
			ranges[i] = along
		} else {
			ranges[i] = rmax
		}
	}
	return ranges
}

func buildS1Map(t *testing.T) (*splinemap.SplineMap, config.SensorParams) {
	t.Helper()
	p := testSensorParams()
	m, err := splinemap.New(p)
	require.NoError(t, err)
	require.NoError(t, m.Update(geom.Pose{}, constantRangeScan(p, 1.0)))
	return m, p
}

// S2 — localize recovered identity.
func TestUpdateRecoversIdentityPose(t *testing.T) {
	m, p := buildS1Map(t)
	loc, err := New(m, config.LocalizerParams{SensorParams: p}, geom.Pose{})
	require.NoError(t, err)

	ranges := constantRangeScan(p, 1.0)
	hint := geom.Pose{}
	require.NoError(t, loc.Update(ranges, &hint, false))

	got := loc.Pose()
	assert.Less(t, math.Abs(got.X), 0.01)
	assert.Less(t, math.Abs(got.Y), 0.01)
	assert.Less(t, math.Abs(got.Theta)*180/math.Pi, 0.5)
}

// S3 — small translation recovery.
func TestUpdateRecoversSmallTranslation(t *testing.T) {
	m, p := buildS1Map(t)
	loc, err := New(m, config.LocalizerParams{SensorParams: p}, geom.Pose{})
	require.NoError(t, err)

	truePose := geom.Pose{X: 0.2, Y: 0.0, Theta: 0}
	ranges := wallScan(p, truePose, geom.Pose{X: 1.2, Y: 0, Theta: 0}, 0)
	hint := geom.Pose{}
	require.NoError(t, loc.Update(ranges, &hint, false))

	got := loc.Pose()
	assert.Less(t, math.Abs(got.X-0.2), 0.02)
}

// S4 — yaw ambiguity escape.
func TestUpdateEscapesYawAmbiguityWithUnreliableOdometry(t *testing.T) {
	p := testSensorParams()
	m, err := splinemap.New(p)
	require.NoError(t, err)

	truePose := geom.Pose{X: 0, Y: 0, Theta: math.Pi / 2}
	wallDist := 1.0
	ranges := wallScan(p, truePose, geom.Pose{X: wallDist * math.Cos(truePose.Theta), Y: wallDist * math.Sin(truePose.Theta)}, 0)
	require.NoError(t, m.Update(truePose, ranges))

	loc, err := New(m, config.LocalizerParams{SensorParams: p}, geom.Pose{})
	require.NoError(t, err)
	hint := geom.Pose{}
	require.NoError(t, loc.Update(ranges, &hint, true))

	got := loc.Pose()
	assert.Less(t, math.Abs(got.Theta-math.Pi/2)*180/math.Pi, 2.0)
}

// S3-guard — a bad pose hint must not discard a good track: the
// self.pose-anchored coarse pass is always run alongside the hint-anchored
// one, so Update should still recover the true pose even when poseHint
// points far away from where the localizer actually is.
func TestUpdateFallsBackToTrackedPoseWhenHintIsBad(t *testing.T) {
	m, p := buildS1Map(t)
	loc, err := New(m, config.LocalizerParams{SensorParams: p}, geom.Pose{})
	require.NoError(t, err)

	ranges := constantRangeScan(p, 1.0)
	goodHint := geom.Pose{}
	require.NoError(t, loc.Update(ranges, &goodHint, false))
	require.Less(t, math.Abs(loc.Pose().X), 0.01)

	badHint := geom.Pose{X: 5, Y: 5, Theta: 3.0}
	require.NoError(t, loc.Update(ranges, &badHint, false))

	got := loc.Pose()
	assert.Less(t, math.Abs(got.X), 0.02)
	assert.Less(t, math.Abs(got.Y), 0.02)
	assert.Less(t, math.Abs(got.Theta)*180/math.Pi, 1.0)
}

func TestUpdateRejectsMismatchedLength(t *testing.T) {
	m, p := buildS1Map(t)
	loc, err := New(m, config.LocalizerParams{SensorParams: p}, geom.Pose{})
	require.NoError(t, err)

	err = loc.Update([]float64{1.0}, nil, false)
	require.Error(t, err)
	var locErr *LocalizerError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, InvalidScan, locErr.Kind)
}

func TestUpdateLeavesPoseUnchangedOnDegenerateScan(t *testing.T) {
	m, p := buildS1Map(t)
	initial := geom.Pose{X: 1, Y: 2, Theta: 0.3}
	loc, err := New(m, config.LocalizerParams{SensorParams: p}, initial)
	require.NoError(t, err)

	// All ranges out of [range_min, range_max) filters every sample out.
	angles := p.Angles()
	allOut := make([]float64, len(angles))
	for i := range allOut {
		allOut[i] = p.GetRangeMax()
	}
	err = loc.Update(allOut, nil, false)
	require.Error(t, err)
	var locErr *LocalizerError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, DegenerateOptimization, locErr.Kind)
	assert.Equal(t, initial, loc.Pose())
}
