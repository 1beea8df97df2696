package score

import (
	"fmt"

	"agenteval/domain/core"
)

// OperationalMetricsClass is the evaluator class whose scores are shown in
// every result view regardless of filtering.
const OperationalMetricsClass = "OperationalMetricsEvaluator"

// ResultView selects which scores appear in a rendered report
type ResultView string

const (
	// ViewDefault shows only pass/fail style boolean scores
	ViewDefault ResultView = "default"
	// ViewAll shows every score
	ViewAll ResultView = "all-scores"
	// ViewRawScores shows only non-boolean scores
	ViewRawScores ResultView = "raw-scores-only"
)

// ParseResultView converts a string tag into a ResultView
func ParseResultView(s string) (ResultView, error) {
	switch ResultView(s) {
	case ViewDefault, ViewAll, ViewRawScores:
		return ResultView(s), nil
	default:
		return "", fmt.Errorf("unsupported result view: %q (expected one of %q, %q, %q)",
			s, ViewDefault, ViewAll, ViewRawScores)
	}
}

// Metadata is the already-parsed evaluator score schema. Loading from the
// declarative file lives in an adapter; the core only sees this structure.
type Metadata struct {
	Sections []Section
}

// Section groups evaluators for report layout; sections render in order
type Section struct {
	Name       string
	Evaluators []EvaluatorInfo
}

// EvaluatorInfo describes one evaluator and the scores it produces
type EvaluatorInfo struct {
	Key    core.EvaluatorKey
	Class  string
	Scores []ScoreInfo
}

// ScoreInfo is the raw per-score metadata entry
type ScoreInfo struct {
	Name             string
	Key              string
	Type             DataType
	DesiredDirection Direction
}

// EvaluationScore builds the typed descriptor for one score entry
func (e EvaluatorInfo) EvaluationScore(info ScoreInfo) (EvaluationScore, error) {
	return New(info.Name, e.Key, info.Key, info.Type, info.DesiredDirection)
}

// ShouldInclude reports whether a score belongs in the given result view.
// Operational metrics are always included.
func ShouldInclude(info ScoreInfo, evaluator EvaluatorInfo, view ResultView) bool {
	if evaluator.Class == OperationalMetricsClass {
		return true
	}
	if view == ViewAll {
		return true
	}
	if info.Type == Boolean {
		return view == ViewDefault
	}
	return view == ViewRawScores
}

// EvaluatorClasses lists every evaluator class the metadata knows about
func (m Metadata) EvaluatorClasses() []string {
	var classes []string
	for _, section := range m.Sections {
		for _, evaluator := range section.Evaluators {
			classes = append(classes, evaluator.Class)
		}
	}
	return classes
}

// FindEvaluatorByClass returns the evaluator entry for a class name
func (m Metadata) FindEvaluatorByClass(class string) (EvaluatorInfo, bool) {
	for _, section := range m.Sections {
		for _, evaluator := range section.Evaluators {
			if evaluator.Class == class {
				return evaluator, true
			}
		}
	}
	return EvaluatorInfo{}, false
}

// ScoreByColumn maps every known "outputs.<evaluator>.<field>" column to its
// score entry, used for pass/fail normalization of raw rows.
func (m Metadata) ScoreByColumn() map[string]ScoreInfo {
	byColumn := make(map[string]ScoreInfo)
	for _, section := range m.Sections {
		for _, evaluator := range section.Evaluators {
			for _, info := range evaluator.Scores {
				column := fmt.Sprintf("outputs.%s.%s", string(evaluator.Key), info.Key)
				byColumn[column] = info
			}
		}
	}
	return byColumn
}

// SectionScores resolves the scores of one section that are produced by the
// selected evaluator classes and survive the view filter, preserving the
// metadata-defined order.
func (m Metadata) SectionScores(section Section, selected []string, view ResultView) ([]EvaluationScore, error) {
	selectedSet := make(map[string]bool, len(selected))
	for _, class := range selected {
		selectedSet[class] = true
	}

	var scores []EvaluationScore
	for _, evaluator := range section.Evaluators {
		if !selectedSet[evaluator.Class] {
			continue
		}
		for _, info := range evaluator.Scores {
			if !ShouldInclude(info, evaluator, view) {
				continue
			}
			s, err := evaluator.EvaluationScore(info)
			if err != nil {
				return nil, err
			}
			scores = append(scores, s)
		}
	}
	return scores, nil
}
