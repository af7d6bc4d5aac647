package splinelocalizer

import "math"

// referenceYawCandidates is the verbatim candidate set from the original
// implementation's multi-start yaw search, including its duplicate -3pi/2
// entry (spec §9 note 3). Kept as the default for behavioral parity.
var referenceYawCandidates = []float64{
	0,
	math.Pi / 4,
	-math.Pi / 4,
	math.Pi / 2,
	-math.Pi / 2,
	-3 * math.Pi / 2,
	-3 * math.Pi / 2,
}

// principledYawCandidates is the non-redundant replacement set covering
// the full circle at 45-degree spacing plus pi, enabled via
// config.LocalizerParams.PrincipledYawCandidates.
var principledYawCandidates = []float64{
	0,
	math.Pi / 4,
	-math.Pi / 4,
	math.Pi / 2,
	-math.Pi / 2,
	3 * math.Pi / 4,
	-3 * math.Pi / 4,
	math.Pi,
}

func yawCandidates(principled bool) []float64 {
	if principled {
		return principledYawCandidates
	}
	return referenceYawCandidates
}
