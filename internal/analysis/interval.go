package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"agenteval/domain/result"
	"agenteval/domain/score"
	apperrors "agenteval/internal/errors"
)

// DefaultConfidenceLevel is the fixed level reports use
const DefaultConfidenceLevel = 0.95

// ConfidenceInterval is the point estimate and interval for one score of one
// variant. Lower/Upper are nil when no interval applies (ordinal scores) or
// when one cannot be computed.
type ConfidenceInterval struct {
	Score       score.EvaluationScore
	Variant     string
	SampleCount int
	Mean        float64
	Lower       *float64
	Upper       *float64
}

// IntervalCalculator computes confidence intervals with a method chosen by
// the score's data type
type IntervalCalculator struct {
	confidenceLevel float64
	dist            *StatisticalDistributions
}

// NewIntervalCalculator creates a calculator at the default 95% level
func NewIntervalCalculator() *IntervalCalculator {
	return NewIntervalCalculatorWithLevel(DefaultConfidenceLevel)
}

// NewIntervalCalculatorWithLevel creates a calculator with an explicit level
func NewIntervalCalculatorWithLevel(confidenceLevel float64) *IntervalCalculator {
	return &IntervalCalculator{
		confidenceLevel: confidenceLevel,
		dist:            NewDistributions(),
	}
}

// ConfidenceInterval computes the interval for one score over one result.
// SampleCount is always the raw row count of the table; a row with a
// missing or non-numeric value in the score column is an error rather than
// a silent drop from the count.
func (c *IntervalCalculator) ConfidenceInterval(res *result.EvaluationResult, sc score.EvaluationScore) (*ConfidenceInterval, error) {
	column := sc.ColumnKey()
	if !res.HasColumn(column) {
		return nil, apperrors.LookupError(fmt.Sprintf("%s column is required in result", column))
	}

	ci := &ConfidenceInterval{
		Score:       sc,
		Variant:     res.Variant(),
		SampleCount: res.RowCount(),
	}

	switch sc.DataType {
	case score.Boolean:
		outcomes, err := booleanColumn(res, column)
		if err != nil {
			return nil, err
		}
		successes := 0
		for _, b := range outcomes {
			if b {
				successes++
			}
		}
		ci.Mean = float64(successes) / float64(ci.SampleCount)
		lower, upper := c.wilsonCC(successes, ci.SampleCount)
		ci.Lower = &lower
		ci.Upper = &upper

	case score.Continuous:
		values, err := floatColumn(res, column)
		if err != nil {
			return nil, err
		}
		mean, _ := stats.Mean(values)
		ci.Mean = mean
		if ci.SampleCount >= 2 {
			// NOTE: parametric interval does not respect score bounds
			// (use bootstrapping if that matters)
			sd, _ := stats.StandardDeviationSample(values)
			stderr := sd / math.Sqrt(float64(ci.SampleCount))
			tCrit := c.dist.TCriticalValue(c.confidenceLevel, ci.SampleCount-1)
			lower := mean - tCrit*stderr
			upper := mean + tCrit*stderr
			ci.Lower = &lower
			ci.Upper = &upper
		}

	case score.Ordinal:
		// NOTE: ordinal data has non-linear intervals, so the interval is omitted
		values, err := floatColumn(res, column)
		if err != nil {
			return nil, err
		}
		mean, _ := stats.Mean(values)
		ci.Mean = mean

	default:
		return nil, apperrors.New(apperrors.CodeUnsupportedType,
			fmt.Sprintf("unsupported data type: %s", sc.DataType))
	}

	return ci, nil
}

// wilsonCC computes the Wilson score interval with continuity correction.
// Chosen over the normal approximation because it behaves well for
// proportions near 0 or 1 and for small samples.
func (c *IntervalCalculator) wilsonCC(successes, n int) (float64, float64) {
	nf := float64(n)
	p := float64(successes) / nf
	z := c.dist.NormalQuantile(1 - (1-c.confidenceLevel)/2)
	z2 := z * z

	lower := 0.0
	if successes > 0 {
		lower = (2*nf*p + z2 - 1 - z*math.Sqrt(z2-2-1/nf+4*p*(nf*(1-p)+1))) / (2 * (nf + z2))
		lower = math.Max(0, lower)
	}

	upper := 1.0
	if successes < n {
		upper = (2*nf*p + z2 + 1 + z*math.Sqrt(z2+2-1/nf+4*p*(nf*(1-p)-1))) / (2 * (nf + z2))
		upper = math.Min(1, upper)
	}

	return lower, upper
}

// floatColumn extracts a column as float64 values, failing on missing or
// non-numeric cells
func floatColumn(res *result.EvaluationResult, column string) ([]float64, error) {
	raw := res.Column(column)
	values := make([]float64, len(raw))
	for i, v := range raw {
		f, ok := result.AsFloat(v)
		if !ok || math.IsNaN(f) {
			return nil, apperrors.ValidationError(
				fmt.Sprintf("column %s has a missing or non-numeric value at row %d", column, i))
		}
		values[i] = f
	}
	return values, nil
}

// booleanColumn extracts a column as boolean outcomes, failing on missing or
// non-boolean cells
func booleanColumn(res *result.EvaluationResult, column string) ([]bool, error) {
	raw := res.Column(column)
	values := make([]bool, len(raw))
	for i, v := range raw {
		b, ok := result.AsBool(v)
		if !ok {
			return nil, apperrors.ValidationError(
				fmt.Sprintf("column %s has a missing or non-boolean value at row %d", column, i))
		}
		values[i] = b
	}
	return values, nil
}
