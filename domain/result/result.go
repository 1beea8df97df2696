// Package result holds one variant's scored evaluation table. The container
// enforces the structural invariants every downstream consumer relies on:
// a non-empty variant label, at least one row, and a unique example identity
// per row so paired comparisons can join one-to-one.
package result

import (
	"fmt"

	"agenteval/domain/core"
)

// IdentityColumn is the join key column for paired comparisons
const IdentityColumn = "inputs.id"

// Row is one scored example: column key to raw cell value
type Row map[string]any

// EvaluationResult is one variant's outcome. Immutable after construction;
// owned by the caller for the duration of one summarize call.
type EvaluationResult struct {
	variant   string
	table     []Row
	reportURL string
}

// New validates and constructs an EvaluationResult. It fails if the variant
// label is empty, the table is empty, the identity column is missing, or
// identity values are duplicated.
func New(variant string, table []Row, reportURL string) (*EvaluationResult, error) {
	if variant == "" {
		return nil, core.ErrEmptyVariant
	}
	if len(table) == 0 {
		return nil, core.ErrEmptyTable
	}

	seen := make(map[core.ExampleID]bool, len(table))
	for i, row := range table {
		raw, ok := row[IdentityColumn]
		if !ok || raw == nil {
			return nil, fmt.Errorf("row %d: %w", i, core.NewMissingColumnError(IdentityColumn))
		}
		id := core.ExampleID(fmt.Sprint(raw))
		if seen[id] {
			return nil, core.NewDuplicateIDError(id)
		}
		seen[id] = true
	}

	return &EvaluationResult{variant: variant, table: table, reportURL: reportURL}, nil
}

// Variant returns the variant label
func (r *EvaluationResult) Variant() string {
	return r.variant
}

// ReportURL returns the optional link to the full evaluation output,
// empty when none was recorded.
func (r *EvaluationResult) ReportURL() string {
	return r.reportURL
}

// RowCount returns the number of scored examples
func (r *EvaluationResult) RowCount() int {
	return len(r.table)
}

// HasColumn reports whether any row carries the column
func (r *EvaluationResult) HasColumn(column string) bool {
	for _, row := range r.table {
		if _, ok := row[column]; ok {
			return true
		}
	}
	return false
}

// Column returns the cell values of one column in row order. Rows without
// the column yield nil entries; callers decide whether missing values are
// an error.
func (r *EvaluationResult) Column(column string) []any {
	values := make([]any, len(r.table))
	for i, row := range r.table {
		values[i] = row[column]
	}
	return values
}

// Rows returns a copy of the scored table in row order
func (r *EvaluationResult) Rows() []Row {
	rows := make([]Row, len(r.table))
	copy(rows, r.table)
	return rows
}

// IdentityIndex maps every example id to its row position
func (r *EvaluationResult) IdentityIndex() map[core.ExampleID]int {
	index := make(map[core.ExampleID]int, len(r.table))
	for i, row := range r.table {
		index[core.ExampleID(fmt.Sprint(row[IdentityColumn]))] = i
	}
	return index
}
