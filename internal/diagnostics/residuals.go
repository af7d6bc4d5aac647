package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ResidualSummary reports the fit quality of a scan-matcher solve without
// exposing the raw per-ray residual vector to callers that only need a
// health check (spec §4.2.3 produces a residual per ray; most callers only
// care about its spread).
type ResidualSummary struct {
	Mean   float64
	StdDev float64
	RMS    float64
	Max    float64
}

// SummarizeResiduals computes basic statistics over a scan-matcher residual
// vector using gonum/stat. Returns the zero value for an empty input.
func SummarizeResiduals(residuals []float64) ResidualSummary {
	if len(residuals) == 0 {
		return ResidualSummary{}
	}
	mean, std := stat.MeanStdDev(residuals, nil)

	var sumSq, max float64
	for i, r := range residuals {
		sumSq += r * r
		if i == 0 || math.Abs(r) > max {
			max = math.Abs(r)
		}
	}
	rms := math.Sqrt(sumSq / float64(len(residuals)))

	return ResidualSummary{Mean: mean, StdDev: std, RMS: rms, Max: max}
}
