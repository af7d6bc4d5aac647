// Command splinesim runs a synthetic square-room mapping/localization loop
// against the splinemap/splinelocalizer core and prints a per-tick CSV of
// pose error, mirroring the sweep tools' CSV-to-stdout convention.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spline-slam/core/internal/config"
	"github.com/spline-slam/core/internal/diagnostics"
	"github.com/spline-slam/core/internal/geom"
	"github.com/spline-slam/core/internal/mapstore"
	"github.com/spline-slam/core/internal/splinelocalizer"
	"github.com/spline-slam/core/internal/splinemap"
	"github.com/spline-slam/core/internal/timeutil"
)

func main() {
	ticks := flag.Int("ticks", 50, "number of simulated update ticks")
	wallDist := flag.Float64("wall-dist", 1.0, "distance in meters to the simulated wall")
	dbPath := flag.String("save", "", "optional path to save the final map snapshot via mapstore")
	flag.Parse()

	sensor := defaultSensorParams()
	m, err := splinemap.New(sensor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "splinesim: build map: %v\n", err)
		os.Exit(1)
	}

	loc, err := splinelocalizer.New(m, config.LocalizerParams{SensorParams: sensor}, geom.Pose{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "splinesim: build localizer: %v\n", err)
		os.Exit(1)
	}

	timer := diagnostics.NewPhaseTimer(timeutil.RealClock{})
	truePose := geom.Pose{}
	angles := sensor.Angles()

	fmt.Println("tick,err_x,err_y,err_theta_deg,update_map_ms,update_localization_ms")
	for i := 0; i < *ticks; i++ {
		ranges := squareRoomScan(angles, sensor.GetRangeMax(), truePose, *wallDist)

		timer.Track("update_map", func() {
			if err := m.Update(truePose, ranges); err != nil {
				fmt.Fprintf(os.Stderr, "splinesim: update_map: %v\n", err)
			}
		})

		timer.Track("update_localization", func() {
			if err := loc.Update(ranges, &truePose, false); err != nil {
				fmt.Fprintf(os.Stderr, "splinesim: update_localization: %v\n", err)
			}
		})

		got := loc.Pose()
		stats := timer.Snapshot()
		fmt.Printf("%d,%.4f,%.4f,%.4f,%.3f,%.3f\n",
			i, got.X-truePose.X, got.Y-truePose.Y, (got.Theta-truePose.Theta)*180/math.Pi,
			msSince(stats["update_map"].Mean()), msSince(stats["update_localization"].Mean()))
	}

	if *dbPath != "" {
		store, err := mapstore.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "splinesim: open store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		id, err := store.Save(m.Snapshot())
		if err != nil {
			fmt.Fprintf(os.Stderr, "splinesim: save snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "saved snapshot %s to %s\n", id, *dbPath)
	}
}

func msSince(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func defaultSensorParams() config.SensorParams {
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

// squareRoomScan simulates a square room of side 2*wallDist centered on the
// origin, returning the range on each bearing from pose.
func squareRoomScan(angles []float64, rangeMax float64, pose geom.Pose, wallDist float64) []float64 {
	ranges := make([]float64, len(angles))
	for i, a := range angles {
		theta := pose.Theta + a
		dx, dy := math.Cos(theta), math.Sin(theta)
		best := rangeMax
		for _, d := range []float64{
			hitDistance(pose.X, dx, wallDist),
			hitDistance(pose.X, dx, -wallDist),
			hitDistance(pose.Y, dy, wallDist),
			hitDistance(pose.Y, dy, -wallDist),
		} {
			if d > 0 && d < best {
				best = d
			}
		}
		ranges[i] = best
	}
	return ranges
}

// hitDistance returns the ray parameter t>0 at which origin+t*dir crosses
// the line coord=wall. It returns -1 if the ray is parallel to the line, and
// a non-positive t if the line lies behind origin.
func hitDistance(origin, dir, wall float64) float64 {
	if math.Abs(dir) < 1e-9 {
		return -1
	}
	t := (wall - origin) / dir
	return t
}
