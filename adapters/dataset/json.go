// Package dataset provides the input dataset sources: JSON files, Excel
// workbooks and Postgres tables all normalize into ports.InputDataset.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"agenteval/domain/score"
	apperrors "agenteval/internal/errors"
	"agenteval/ports"
)

type jsonDataset struct {
	Name       string           `json:"name"`
	Evaluators []string         `json:"evaluators"`
	Data       []map[string]any `json:"data"`
}

// JSONSource loads an input dataset from a JSON file
type JSONSource struct {
	path string
	meta score.Metadata
}

func NewJSONSource(path string, meta score.Metadata) *JSONSource {
	return &JSONSource{path: path, meta: meta}
}

func (s *JSONSource) Load(_ context.Context) (*ports.InputDataset, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read input dataset at %s", s.path)
	}
	var parsed jsonDataset
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse input dataset")
	}

	ds := &ports.InputDataset{Name: parsed.Name, Evaluators: parsed.Evaluators}
	for _, item := range parsed.Data {
		example, err := exampleFromFields(item)
		if err != nil {
			return nil, err
		}
		ds.Data = append(ds.Data, example)
	}
	if err := Validate(ds, s.meta); err != nil {
		return nil, err
	}
	return ds, nil
}

func exampleFromFields(item map[string]any) (ports.InputExample, error) {
	example := ports.InputExample{Fields: map[string]any{}}
	for key, value := range item {
		switch key {
		case "id":
			id, ok := value.(string)
			if !ok {
				return example, apperrors.ValidationError("example id must be a string")
			}
			example.ID = id
		case "query":
			query, ok := value.(string)
			if !ok {
				return example, apperrors.ValidationError("example query must be a string")
			}
			example.Query = query
		default:
			example.Fields[key] = value
		}
	}
	return example, nil
}

// Validate enforces the input contract shared by every source: a name, at
// least one known evaluator, and non-empty data where every example has a
// query and ids are unique when present.
func Validate(ds *ports.InputDataset, meta score.Metadata) error {
	if ds.Name == "" {
		return apperrors.ValidationError("input dataset requires a name")
	}
	if len(ds.Evaluators) == 0 {
		return apperrors.ValidationError("input dataset requires at least one evaluator")
	}
	known := map[string]bool{}
	for _, class := range meta.EvaluatorClasses() {
		known[class] = true
	}
	for _, class := range ds.Evaluators {
		if !known[class] {
			return apperrors.ValidationError(fmt.Sprintf("unknown evaluator %q in input dataset", class))
		}
	}
	if len(ds.Data) == 0 {
		return apperrors.ValidationError("input dataset requires at least one example")
	}
	seen := map[string]bool{}
	for i, example := range ds.Data {
		if example.Query == "" {
			return apperrors.ValidationError(fmt.Sprintf("example %d is missing a query", i))
		}
		if example.ID == "" {
			continue
		}
		if seen[example.ID] {
			return apperrors.ValidationError(fmt.Sprintf("duplicate example id %q in input dataset", example.ID))
		}
		seen[example.ID] = true
	}
	return nil
}
