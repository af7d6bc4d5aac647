package config

import (
	"fmt"
	"math"
)

// SensorParams is the options set shared by SplineMap and SplineLocalizer.
// Fields are optional: a nil field falls back to the reference default via
// the matching Get* accessor. This mirrors the **kwargs construction style
// of the original implementation while keeping Go's zero-value safety.
type SensorParams struct {
	KnotSpace *float64 // meters, default 0.05
	MapSizeX  *float64 // meters, default 10
	MapSizeY  *float64 // meters, default 10

	MinAngle        *float64 // radians, default 0
	MaxAngle        *float64 // radians, default 2*pi - 1deg
	AngleIncrement  *float64 // radians, default 1deg
	RangeMin        *float64 // meters, default 0.12
	RangeMax        *float64 // meters, default 3.6

	LogOddOccupied    *float64 // per-sample increment, default 0.9
	LogOddFree        *float64 // per-sample increment, default 0.3
	LogOddMinFree     *float64 // saturation, default -100
	LogOddMaxOccupied *float64 // saturation, default 100

	MaxNbRays *int // sensor ray subsampling cap, default 360
}

// Get* accessors apply the reference defaults documented in spec §6.

func (p *SensorParams) GetKnotSpace() float64 {
	if p == nil || p.KnotSpace == nil {
		return 0.05
	}
	return *p.KnotSpace
}

func (p *SensorParams) GetMapSize() (x, y float64) {
	x, y = 10, 10
	if p == nil {
		return
	}
	if p.MapSizeX != nil {
		x = *p.MapSizeX
	}
	if p.MapSizeY != nil {
		y = *p.MapSizeY
	}
	return
}

func (p *SensorParams) GetMinAngle() float64 {
	if p == nil || p.MinAngle == nil {
		return 0
	}
	return *p.MinAngle
}

func (p *SensorParams) GetMaxAngle() float64 {
	if p == nil || p.MaxAngle == nil {
		return 2*math.Pi - math.Pi/180
	}
	return *p.MaxAngle
}

func (p *SensorParams) GetAngleIncrement() float64 {
	if p == nil || p.AngleIncrement == nil {
		return math.Pi / 180
	}
	return *p.AngleIncrement
}

func (p *SensorParams) GetRangeMin() float64 {
	if p == nil || p.RangeMin == nil {
		return 0.12
	}
	return *p.RangeMin
}

func (p *SensorParams) GetRangeMax() float64 {
	if p == nil || p.RangeMax == nil {
		return 3.6
	}
	return *p.RangeMax
}

func (p *SensorParams) GetLogOddOccupied() float64 {
	if p == nil || p.LogOddOccupied == nil {
		return 0.9
	}
	return *p.LogOddOccupied
}

func (p *SensorParams) GetLogOddFree() float64 {
	if p == nil || p.LogOddFree == nil {
		return 0.3
	}
	return *p.LogOddFree
}

func (p *SensorParams) GetLogOddMinFree() float64 {
	if p == nil || p.LogOddMinFree == nil {
		return -100
	}
	return *p.LogOddMinFree
}

func (p *SensorParams) GetLogOddMaxOccupied() float64 {
	if p == nil || p.LogOddMaxOccupied == nil {
		return 100
	}
	return *p.LogOddMaxOccupied
}

func (p *SensorParams) GetMaxNbRays() int {
	if p == nil || p.MaxNbRays == nil {
		return 360
	}
	return *p.MaxNbRays
}

// Validate checks the parameter set for internally-consistent ranges.
// Called once at construction time by SplineMap/SplineLocalizer.New.
func (p *SensorParams) Validate() error {
	if p.GetKnotSpace() <= 0 {
		return fmt.Errorf("knot_space must be positive, got %f", p.GetKnotSpace())
	}
	x, y := p.GetMapSize()
	if x <= 0 || y <= 0 {
		return fmt.Errorf("map_size must be positive, got (%f, %f)", x, y)
	}
	if p.GetRangeMin() >= p.GetRangeMax() {
		return fmt.Errorf("range_min (%f) must be < range_max (%f)", p.GetRangeMin(), p.GetRangeMax())
	}
	if p.GetAngleIncrement() <= 0 {
		return fmt.Errorf("angle_increment must be positive, got %f", p.GetAngleIncrement())
	}
	if p.GetLogOddMinFree() >= 0 || p.GetLogOddMaxOccupied() <= 0 {
		return fmt.Errorf("logodd_min_free (%f) must be < 0 < logodd_max_occupied (%f)",
			p.GetLogOddMinFree(), p.GetLogOddMaxOccupied())
	}
	if p.GetLogOddOccupied() <= 0 || p.GetLogOddFree() <= 0 {
		return fmt.Errorf("logodd_occupied and logodd_free must be positive")
	}
	if p.GetMaxNbRays() <= 0 {
		return fmt.Errorf("max_nb_rays must be positive, got %d", p.GetMaxNbRays())
	}
	return nil
}

// Angles returns the fixed bearing vector angles[k] = min_angle + k*increment,
// stopping strictly before max_angle (matching np.arange semantics).
func (p *SensorParams) Angles() []float64 {
	min, max, inc := p.GetMinAngle(), p.GetMaxAngle(), p.GetAngleIncrement()
	n := int(math.Ceil((max - min) / inc))
	if n < 0 {
		n = 0
	}
	angles := make([]float64, 0, n)
	for k := 0; ; k++ {
		a := min + float64(k)*inc
		if a >= max {
			break
		}
		angles = append(angles, a)
	}
	return angles
}

// LocalizerParams extends SensorParams with the localizer-only knobs from
// spec §6. NbIterationMax, DetHinvThreshold and Alpha are reserved per §9
// note 5: stored on the struct, not referenced by the current LM/Cauchy
// cost formulation, left in place for a future hand-rolled Gauss-Newton
// optimizer.
type LocalizerParams struct {
	SensorParams

	NbIterationMax   *int     // reserved, default 10
	DetHinvThreshold *float64 // reserved, default 1e-3
	Alpha            *float64 // reserved, default 2

	// PrincipledYawCandidates switches the multi-start yaw-ambiguity
	// search (spec §4.2.4, §9 note 3) from the reference's verbatim
	// candidate set {0, pi/4, -pi/4, pi/2, -pi/2, -3pi/2, -3pi/2} (default,
	// preserved for behavioral parity including its duplicate entry and
	// missing pi and 3pi/2 cases) to the principled replacement
	// {0, +-pi/4, +-pi/2, +-3pi/4, pi}.
	PrincipledYawCandidates *bool
}

func (p *LocalizerParams) GetNbIterationMax() int {
	if p == nil || p.NbIterationMax == nil {
		return 10
	}
	return *p.NbIterationMax
}

func (p *LocalizerParams) GetDetHinvThreshold() float64 {
	if p == nil || p.DetHinvThreshold == nil {
		return 1e-3
	}
	return *p.DetHinvThreshold
}

func (p *LocalizerParams) GetAlpha() float64 {
	if p == nil || p.Alpha == nil {
		return 2
	}
	return *p.Alpha
}

func (p *LocalizerParams) UsePrincipledYawCandidates() bool {
	return p != nil && p.PrincipledYawCandidates != nil && *p.PrincipledYawCandidates
}
