package ports

import (
	"context"
)

// InputExample is one query to run against every agent variant. The optional
// ID becomes the example identity used to pair comparisons; examples without
// one are assigned a generated identity before simulation.
type InputExample struct {
	ID     string
	Query  string
	Fields map[string]any // extra per-example data (ground truth, context)
}

// InputDataset is a named set of queries plus the evaluator classes to score
// the transcripts with
type InputDataset struct {
	Name       string
	Evaluators []string
	Data       []InputExample
}

// DatasetSource loads an input dataset from some backing store (JSON file,
// Excel workbook, Postgres)
type DatasetSource interface {
	Load(ctx context.Context) (*InputDataset, error)
}
