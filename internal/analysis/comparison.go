package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"agenteval/domain/core"
	"agenteval/domain/result"
	"agenteval/domain/score"
	intlog "agenteval/internal"
	apperrors "agenteval/internal/errors"
)

// Thresholds holds the decision constants of the comparison engine. They are
// passed in rather than baked in so the engine stays testable with alternate
// values; reports use Default.
type Thresholds struct {
	// MinSampleSize is the smallest paired count that supports a verdict
	MinSampleSize int
	// Alpha is the significance level; p must be at or below it to count
	Alpha float64
}

// DefaultThresholds returns the fixed constants reports use
func DefaultThresholds() Thresholds {
	return Thresholds{MinSampleSize: 10, Alpha: 0.05}
}

// Effect is the classified outcome of a paired comparison
type Effect string

const (
	EffectZeroSamples   Effect = "Zero samples"
	EffectTooFewSamples Effect = "Too few samples"
	EffectInconclusive  Effect = "Inconclusive"
	EffectChanged       Effect = "Changed"
	EffectImproved      Effect = "Improved"
	EffectDegraded      Effect = "Degraded"
)

// Comparison is the paired comparison of one score between two variants.
// Never mutated; a fresh instance is created per (control, treatment, score)
// triple.
type Comparison struct {
	Score            score.EvaluationScore
	ControlVariant   string
	TreatmentVariant string
	PairedCount      int
	ControlMean      float64
	TreatmentMean    float64
	Delta            float64
	PValue           float64

	thresholds Thresholds
}

// Effect classifies the treatment effect. Deterministic: depends only on the
// paired count, p-value, desired direction and the direction the mean moved.
func (c *Comparison) Effect() Effect {
	return ClassifyEffect(c.PairedCount, c.PValue, c.Score.DesiredDirection,
		c.TreatmentMean, c.ControlMean, c.thresholds)
}

// ClassifyEffect maps a comparison outcome to its treatment-effect category.
// The sample-size check runs before the significance checks.
func ClassifyEffect(pairedCount int, pValue float64, direction score.Direction,
	treatmentMean, controlMean float64, thresholds Thresholds) Effect {
	if pairedCount == 0 {
		return EffectZeroSamples
	}
	if pairedCount < thresholds.MinSampleSize {
		return EffectTooFewSamples
	}
	if math.IsNaN(pValue) {
		return EffectInconclusive
	}
	// p must be strictly below alpha to count as significant
	if pValue >= thresholds.Alpha {
		return EffectInconclusive
	}
	if direction == score.Neutral {
		return EffectChanged
	}
	if direction == score.Increase && treatmentMean > controlMean {
		return EffectImproved
	}
	if direction == score.Decrease && treatmentMean < controlMean {
		return EffectImproved
	}
	return EffectDegraded
}

// ComparisonEngine aligns two result sets by example identity and runs the
// paired significance test appropriate to a score's data type
type ComparisonEngine struct {
	thresholds Thresholds
	dist       *StatisticalDistributions
	log        *intlog.Logger
}

// NewComparisonEngine creates an engine with the default thresholds
func NewComparisonEngine() *ComparisonEngine {
	return NewComparisonEngineWithThresholds(DefaultThresholds())
}

// NewComparisonEngineWithThresholds creates an engine with explicit thresholds
func NewComparisonEngineWithThresholds(thresholds Thresholds) *ComparisonEngine {
	return &ComparisonEngine{
		thresholds: thresholds,
		dist:       NewDistributions(),
		log:        intlog.DefaultLogger,
	}
}

// Compare joins the two results one-to-one on example identity and compares
// the score column. Partial overlap is a hard error: a silently shrunk join
// would bias the comparison.
func (e *ComparisonEngine) Compare(control, treatment *result.EvaluationResult, sc score.EvaluationScore) (*Comparison, error) {
	column := sc.ColumnKey()
	if !control.HasColumn(column) || !treatment.HasColumn(column) {
		return nil, apperrors.LookupError(fmt.Sprintf("%s column is required in both results", column))
	}

	controlIdx, treatmentIdx := control.IdentityIndex(), treatment.IdentityIndex()
	// structurally impossible after container validation, defensive only
	if len(controlIdx) != control.RowCount() || len(treatmentIdx) != treatment.RowCount() {
		return nil, apperrors.WithCode(apperrors.CodeValidationError, core.ErrDuplicatePairing)
	}

	// control row order keeps the join deterministic
	pairs := make([][2]int, 0, control.RowCount())
	for _, raw := range control.Column(result.IdentityColumn) {
		id := core.ExampleID(fmt.Sprint(raw))
		if ti, ok := treatmentIdx[id]; ok {
			pairs = append(pairs, [2]int{controlIdx[id], ti})
		}
	}
	if len(pairs) < control.RowCount() || len(pairs) < treatment.RowCount() {
		return nil, apperrors.WithCode(apperrors.CodeUnmatchedResults, core.ErrUnmatchedResults)
	}

	comparison := &Comparison{
		Score:            sc,
		ControlVariant:   control.Variant(),
		TreatmentVariant: treatment.Variant(),
		PairedCount:      len(pairs),
		thresholds:       e.thresholds,
	}

	var err error
	switch sc.DataType {
	case score.Boolean:
		err = e.compareBoolean(comparison, control, treatment, pairs, column)
	case score.Ordinal, score.Continuous:
		err = e.compareNumeric(comparison, control, treatment, pairs, column)
	default:
		return nil, apperrors.New(apperrors.CodeUnsupportedType,
			fmt.Sprintf("unsupported data type: %s", sc.DataType))
	}
	if err != nil {
		return nil, err
	}

	comparison.Delta = comparison.TreatmentMean - comparison.ControlMean
	if math.IsNaN(comparison.PValue) {
		e.log.Warn("encountered NaN p-value comparing %q between %q and %q",
			sc.Name, control.Variant(), treatment.Variant())
	}

	return comparison, nil
}

func (e *ComparisonEngine) compareBoolean(c *Comparison, control, treatment *result.EvaluationResult, pairs [][2]int, column string) error {
	controlCol, err := pairedBoolColumn(control, column)
	if err != nil {
		return err
	}
	treatmentCol, err := pairedBoolColumn(treatment, column)
	if err != nil {
		return err
	}

	controlVals := make([]bool, len(pairs))
	treatmentVals := make([]bool, len(pairs))
	for i, pair := range pairs {
		controlVals[i] = controlCol[pair[0]]
		treatmentVals[i] = treatmentCol[pair[1]]
	}

	c.ControlMean = proportion(controlVals)
	c.TreatmentMean = proportion(treatmentVals)
	c.PValue = e.dist.mcnemarMidP(crosstab(controlVals, treatmentVals))
	return nil
}

func (e *ComparisonEngine) compareNumeric(c *Comparison, control, treatment *result.EvaluationResult, pairs [][2]int, column string) error {
	controlCol, err := pairedFloatColumn(control, column)
	if err != nil {
		return err
	}
	treatmentCol, err := pairedFloatColumn(treatment, column)
	if err != nil {
		return err
	}

	controlVals := make([]float64, len(pairs))
	treatmentVals := make([]float64, len(pairs))
	for i, pair := range pairs {
		controlVals[i] = controlCol[pair[0]]
		treatmentVals[i] = treatmentCol[pair[1]]
	}

	c.ControlMean, _ = stats.Mean(controlVals)
	c.TreatmentMean, _ = stats.Mean(treatmentVals)

	switch c.Score.DataType {
	case score.Ordinal:
		c.PValue = e.ordinalPValue(controlVals, treatmentVals)
	case score.Continuous:
		c.PValue = e.continuousPValue(controlVals, treatmentVals)
	}
	return nil
}

// ordinalPValue rounds per-pair differences to whole steps and runs the
// Wilcoxon signed-rank test. Comparing medians of rounded steps circumvents
// the unequal spacing of ordinal scales.
func (e *ComparisonEngine) ordinalPValue(control, treatment []float64) float64 {
	diffs := make([]float64, len(control))
	allZero := true
	for i := range control {
		diffs[i] = math.RoundToEven(treatment[i] - control[i])
		if diffs[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		return 1.0
	}
	return e.dist.wilcoxonSignedRankPratt(diffs)
}

// continuousPValue handles the degenerate all-equal and zero-variance inputs
// explicitly, then runs the paired t-test on the two raw columns.
func (e *ComparisonEngine) continuousPValue(control, treatment []float64) float64 {
	allZero := true
	diffs := make([]float64, len(control))
	for i := range control {
		diffs[i] = treatment[i] - control[i]
		if diffs[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		return 1.0
	}
	if sd, _ := stats.StandardDeviationSample(diffs); sd == 0 {
		// identical nonzero shift on every pair, cannot occur if the
		// all-zero check passed on equal columns
		return 0.0
	}
	// NOTE: assumes normality of the differences, which may not hold for
	// bounded scores with small samples
	return e.dist.pairedTTest(control, treatment)
}

func proportion(values []bool) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	count := 0
	for _, v := range values {
		if v {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

// pairedFloatColumn extracts a numeric column for pairing, failing on
// missing values: the paired tests are undefined for incomplete pairs
func pairedFloatColumn(res *result.EvaluationResult, column string) ([]float64, error) {
	values, err := floatColumn(res, column)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeValidationError, core.ErrMissingValues)
	}
	return values, nil
}

func pairedBoolColumn(res *result.EvaluationResult, column string) ([]bool, error) {
	values, err := booleanColumn(res, column)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeValidationError, core.ErrMissingValues)
	}
	return values, nil
}
