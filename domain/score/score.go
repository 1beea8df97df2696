package score

import (
	"fmt"

	"agenteval/domain/core"
)

// DataType determines which statistical test and interval method apply to a score
type DataType string

const (
	Ordinal    DataType = "Ordinal"
	Continuous DataType = "Continuous"
	Boolean    DataType = "Boolean"
)

// ParseDataType converts a string tag into a DataType at the boundary.
// Raw strings never flow past this point.
func ParseDataType(s string) (DataType, error) {
	switch DataType(s) {
	case Ordinal, Continuous, Boolean:
		return DataType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedDataType, s)
	}
}

// Direction determines how a numeric delta maps to improvement
type Direction string

const (
	Increase Direction = "Increase"
	Decrease Direction = "Decrease"
	Neutral  Direction = "Neutral"
)

// ParseDirection converts a string tag into a Direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Increase, Decrease, Neutral:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unsupported desired direction: %q", s)
	}
}

// EvaluationScore is an immutable descriptor of one named metric. Two
// descriptors with the same evaluator and field refer to the same logical
// column in any evaluation result.
type EvaluationScore struct {
	Name             string
	Evaluator        core.EvaluatorKey
	Field            string
	DataType         DataType
	DesiredDirection Direction
}

// New validates and constructs an EvaluationScore
func New(name string, evaluator core.EvaluatorKey, field string, dataType DataType, direction Direction) (EvaluationScore, error) {
	if name == "" {
		return EvaluationScore{}, core.NewValidationError("name", "cannot be empty or missing")
	}
	if evaluator == "" {
		return EvaluationScore{}, core.NewValidationError("evaluator", "cannot be empty or missing")
	}
	if field == "" {
		return EvaluationScore{}, core.NewValidationError("field", "cannot be empty or missing")
	}
	switch dataType {
	case Ordinal, Continuous, Boolean:
	default:
		return EvaluationScore{}, fmt.Errorf("%w: %q", core.ErrUnsupportedDataType, string(dataType))
	}
	switch direction {
	case Increase, Decrease, Neutral:
	default:
		return EvaluationScore{}, fmt.Errorf("unsupported desired direction: %q", string(direction))
	}

	return EvaluationScore{
		Name:             name,
		Evaluator:        evaluator,
		Field:            field,
		DataType:         dataType,
		DesiredDirection: direction,
	}, nil
}

// MustNew constructs an EvaluationScore and panics on invalid input.
// Use only in tests and static metadata tables.
func MustNew(name string, evaluator core.EvaluatorKey, field string, dataType DataType, direction Direction) EvaluationScore {
	s, err := New(name, evaluator, field, dataType, direction)
	if err != nil {
		panic(err)
	}
	return s
}

// ColumnKey returns the result-table column this score lives in,
// following the "outputs.<evaluator>.<field>" convention.
func (s EvaluationScore) ColumnKey() string {
	return fmt.Sprintf("outputs.%s.%s", string(s.Evaluator), s.Field)
}
