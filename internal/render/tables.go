package render

import (
	"strings"

	"agenteval/domain/result"
	"agenteval/domain/score"
	intlog "agenteval/internal"
	"agenteval/internal/analysis"
	apperrors "agenteval/internal/errors"
)

// Renderer builds report tables from evaluation results. A failure computing
// one score's row is logged and that row skipped: partial results beat a
// fully aborted report.
type Renderer struct {
	engine    *analysis.ComparisonEngine
	intervals *analysis.IntervalCalculator
	log       *intlog.Logger
}

// NewRenderer creates a renderer with default engine and calculator
func NewRenderer() *Renderer {
	return &Renderer{
		engine:    analysis.NewComparisonEngine(),
		intervals: analysis.NewIntervalCalculator(),
		log:       intlog.DefaultLogger,
	}
}

// NewRendererWith creates a renderer over an explicit engine and calculator
func NewRendererWith(engine *analysis.ComparisonEngine, intervals *analysis.IntervalCalculator, log *intlog.Logger) *Renderer {
	return &Renderer{engine: engine, intervals: intervals, log: log}
}

// TableCompare renders a markdown table comparing the evaluation results of
// multiple variants against the baseline. The baseline column always comes
// first; the remaining columns follow the order of the results slice.
func (r *Renderer) TableCompare(scores []score.EvaluationScore, results []*result.EvaluationResult, baseline *result.EvaluationResult) (string, error) {
	if len(results) == 0 {
		return "", apperrors.InvalidInput("no evaluation results provided")
	}
	if len(scores) == 0 {
		return "", apperrors.InvalidInput("no evaluator scores provided")
	}

	headers := []string{"Evaluation score", baseline.Variant()}
	for _, res := range results {
		if res.Variant() != baseline.Variant() {
			headers = append(headers, res.Variant())
		}
	}

	var rows [][]string
	for _, sc := range scores {
		row, err := r.compareRow(sc, results, baseline)
		if err != nil {
			r.log.Warn("error comparing score %s: %v", sc.Name, err)
			continue
		}
		rows = append(rows, row)
	}

	return markdownTable(headers, rows), nil
}

func (r *Renderer) compareRow(sc score.EvaluationScore, results []*result.EvaluationResult, baseline *result.EvaluationResult) ([]string, error) {
	row := []string{sc.Name}

	selfCompare, err := r.engine.Compare(baseline, baseline, sc)
	if err != nil {
		return nil, err
	}
	row = append(row, ControlBadge(selfCompare))

	for _, res := range results {
		if res.Variant() == baseline.Variant() {
			continue
		}
		comparison, err := r.engine.Compare(baseline, res, sc)
		if err != nil {
			return nil, err
		}
		row = append(row, TreatmentBadge(comparison))
	}
	return row, nil
}

// TableCI renders a markdown table of confidence intervals for one variant
func (r *Renderer) TableCI(scores []score.EvaluationScore, res *result.EvaluationResult) (string, error) {
	if len(scores) == 0 {
		return "", apperrors.InvalidInput("no evaluator scores provided")
	}

	headers := []string{"Evaluation score", res.Variant(), "95% CI"}

	var rows [][]string
	for _, sc := range scores {
		ci, err := r.intervals.ConfidenceInterval(res, sc)
		if err != nil {
			r.log.Warn("error computing interval for score %s: %v", sc.Name, err)
			continue
		}
		rows = append(rows, []string{
			sc.Name,
			FmtMetricValue(ci.Mean, ci.Score.DataType, false),
			FmtCI(ci),
		})
	}

	return markdownTable(headers, rows), nil
}

// markdownTable renders a pipe table with left-aligned columns
func markdownTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = ":" + strings.Repeat("-", maxInt(3, len(headers[i])))
	}
	b.WriteString("|" + strings.Join(separators, "|") + "|\n")

	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
