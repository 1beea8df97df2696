package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// pairedTTest runs the paired two-sample t-test on the two raw columns.
// This is numerically the same as a one-sample t-test on the per-pair
// differences; the engine keeps the two-column form so its behavior matches
// the reference test exactly.
func (sd *StatisticalDistributions) pairedTTest(control, treatment []float64) float64 {
	n := len(control)
	if n < 2 || n != len(treatment) {
		return math.NaN()
	}

	diffs := make([]float64, n)
	for i := range control {
		diffs[i] = treatment[i] - control[i]
	}

	meanDiff, _ := stats.Mean(diffs)
	sdDiff, _ := stats.StandardDeviationSample(diffs)
	if sdDiff == 0 {
		return math.NaN()
	}

	t := meanDiff / (sdDiff / math.Sqrt(float64(n)))
	return sd.TTestPValue(t, n-1)
}
