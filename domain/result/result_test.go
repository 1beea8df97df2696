package result

import (
	"errors"
	"testing"

	"agenteval/domain/core"
)

func validRows() []Row {
	return []Row{
		{IdentityColumn: "1", "outputs.fluency.passing": true},
		{IdentityColumn: "2", "outputs.fluency.passing": false},
	}
}

func TestNew_Valid(t *testing.T) {
	res, err := New("baseline", validRows(), "https://example.com/run")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if res.Variant() != "baseline" {
		t.Errorf("variant = %q", res.Variant())
	}
	if res.ReportURL() != "https://example.com/run" {
		t.Errorf("report URL = %q", res.ReportURL())
	}
	if res.RowCount() != 2 {
		t.Errorf("row count = %d, want 2", res.RowCount())
	}
}

func TestNew_EmptyVariant(t *testing.T) {
	_, err := New("", validRows(), "")
	if !errors.Is(err, core.ErrEmptyVariant) {
		t.Errorf("error = %v, want ErrEmptyVariant", err)
	}
}

func TestNew_EmptyTable(t *testing.T) {
	_, err := New("baseline", nil, "")
	if !errors.Is(err, core.ErrEmptyTable) {
		t.Errorf("error = %v, want ErrEmptyTable", err)
	}
}

func TestNew_MissingIdentity(t *testing.T) {
	rows := []Row{
		{IdentityColumn: "1"},
		{"outputs.fluency.passing": true},
	}
	_, err := New("baseline", rows, "")
	if !errors.Is(err, core.ErrMissingColumn) {
		t.Errorf("error = %v, want ErrMissingColumn", err)
	}
}

func TestNew_DuplicateIdentity(t *testing.T) {
	rows := []Row{
		{IdentityColumn: "1"},
		{IdentityColumn: "1"},
	}
	_, err := New("baseline", rows, "")
	if !errors.Is(err, core.ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
	if !core.IsStructuralError(err) {
		t.Errorf("duplicate id must count as a structural error")
	}
}

func TestColumnAccess(t *testing.T) {
	res, err := New("baseline", validRows(), "")
	if err != nil {
		t.Fatal(err)
	}

	if !res.HasColumn("outputs.fluency.passing") {
		t.Error("HasColumn() missed an existing column")
	}
	if res.HasColumn("outputs.fluency.score") {
		t.Error("HasColumn() reported a nonexistent column")
	}

	values := res.Column("outputs.fluency.passing")
	if len(values) != 2 || values[0] != true || values[1] != false {
		t.Errorf("Column() = %v", values)
	}

	missing := res.Column("outputs.fluency.score")
	if len(missing) != 2 || missing[0] != nil {
		t.Errorf("missing column must yield nil cells, got %v", missing)
	}
}

func TestIdentityIndex(t *testing.T) {
	res, err := New("baseline", validRows(), "")
	if err != nil {
		t.Fatal(err)
	}
	index := res.IdentityIndex()
	if index["1"] != 0 || index["2"] != 1 {
		t.Errorf("identity index = %v", index)
	}
}

func TestAsFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{0.5, 0.5, true},
		{float32(0.5), 0.5, true},
		{3, 3, true},
		{int64(3), 3, true},
		{int32(3), 3, true},
		{true, 1, true},
		{false, 0, true},
		{"0.5", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := AsFloat(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("AsFloat(%v) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAsBool(t *testing.T) {
	if b, ok := AsBool(true); !ok || !b {
		t.Error("AsBool(true) failed")
	}
	if _, ok := AsBool(1); ok {
		t.Error("AsBool must reject non-boolean values")
	}
	if _, ok := AsBool(nil); ok {
		t.Error("AsBool must reject nil")
	}
}
