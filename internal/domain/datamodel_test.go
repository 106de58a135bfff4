package domain

import (
	"strings"
	"testing"
)

func hhSchema() TableSchema {
	return TableSchema{
		Name:        "households",
		FilePattern: "householdData_{iteration}.csv",
		Fields: []FieldSpec{
			{Name: "hh_id", Aliases: []string{"HHID"}, Required: true},
			{Name: "autos", Aliases: []string{"AUTOS", "num_autos"}, Required: true, Values: &ValueMap{
				Labels: map[string]string{
					"0": "zero",
					"1": "one",
					"2": "two or more",
				},
			}},
			{Name: "income", Aliases: []string{"HINC"}},
		},
	}
}

func TestApplyRenamesAndRelabels(t *testing.T) {
	tb := NewTable("raw", "HHID", "num_autos", "HINC")
	_ = tb.AppendRow("1", "0", "55000")
	_ = tb.AppendRow("2", "2", "91000")

	if err := hhSchema().Apply(tb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tb.Cols[0] != "hh_id" || tb.Cols[1] != "autos" || tb.Cols[2] != "income" {
		t.Fatalf("unexpected cols: %v", tb.Cols)
	}
	if tb.Rows[0][1] != "zero" || tb.Rows[1][1] != "two or more" {
		t.Fatalf("value map not applied: %v", tb.Rows)
	}
}

func TestApplyMissingRequiredColumn(t *testing.T) {
	tb := NewTable("raw", "HHID", "HINC")
	_ = tb.AppendRow("1", "55000")

	err := hhSchema().Apply(tb)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindInvalidSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if !strings.Contains(err.Error(), "autos") {
		t.Fatalf("expected column name in error, got %v", err)
	}
	// Failed apply must not rename anything.
	if tb.Cols[0] != "HHID" {
		t.Fatalf("table mutated on failure: %v", tb.Cols)
	}
}

func TestApplyUnmappedCode(t *testing.T) {
	tb := NewTable("raw", "HHID", "AUTOS")
	_ = tb.AppendRow("1", "9")

	err := hhSchema().Apply(tb)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), `unmapped code "9"`) {
		t.Fatalf("expected unmapped code in error, got %v", err)
	}
}

func TestApplyPassthroughValueMap(t *testing.T) {
	schema := hhSchema()
	schema.Fields[1].Values.Passthrough = true

	tb := NewTable("raw", "HHID", "AUTOS")
	_ = tb.AppendRow("1", "9")

	if err := schema.Apply(tb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tb.Rows[0][1] != "9" {
		t.Fatalf("expected passthrough to keep code, got %q", tb.Rows[0][1])
	}
}

func TestSchemaLookup(t *testing.T) {
	m := DataModel{Tables: map[string]TableSchema{"households": hhSchema()}}

	if _, err := m.Schema("households"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := m.Schema("nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
