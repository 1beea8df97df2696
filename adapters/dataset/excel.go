package dataset

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"agenteval/domain/score"
	apperrors "agenteval/internal/errors"
	"agenteval/ports"
)

// ExcelSource loads an input dataset from the first sheet of an Excel
// workbook. Row 1 is the header; an "id" column is optional, a "query"
// column is required, and every other column lands in the example fields.
type ExcelSource struct {
	path       string
	name       string
	evaluators []string
	meta       score.Metadata
}

func NewExcelSource(path, name string, evaluators []string, meta score.Metadata) *ExcelSource {
	return &ExcelSource{path: path, name: name, evaluators: evaluators, meta: meta}
}

func (s *ExcelSource) Load(_ context.Context) (*ports.InputDataset, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, apperrors.LookupError(fmt.Sprintf("workbook not found: %s", s.path))
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open workbook %s", s.path)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	if len(rows) < 2 {
		return nil, apperrors.ValidationError("workbook must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	queryCol := -1
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
		if strings.EqualFold(headers[i], "query") {
			queryCol = i
		}
	}
	if queryCol < 0 {
		return nil, apperrors.ValidationError("workbook header row must include a query column")
	}

	ds := &ports.InputDataset{Name: s.name, Evaluators: s.evaluators}
	for i := 1; i < len(rows); i++ {
		example := ports.InputExample{Fields: map[string]any{}}
		for j, cell := range rows[i] {
			if j >= len(headers) {
				break
			}
			value := strings.TrimSpace(cell)
			switch {
			case strings.EqualFold(headers[j], "id"):
				example.ID = value
			case j == queryCol:
				example.Query = value
			default:
				example.Fields[headers[j]] = value
			}
		}
		ds.Data = append(ds.Data, example)
	}

	if err := Validate(ds, s.meta); err != nil {
		return nil, err
	}
	return ds, nil
}
