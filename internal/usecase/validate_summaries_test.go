package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/csvtable"
)

func writeSummaryFixture(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestTableDocument(t *testing.T) {
	tbl := &domain.Table{
		Name: "hh",
		Cols: []string{"county", "households"},
		Rows: [][]string{
			{"Alameda", "100"},
			{"Marin", "40"},
		},
	}

	doc := TableDocument(tbl)
	rows := doc["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0].(map[string]any)
	if first["county"] != "Alameda" {
		t.Fatalf("county = %v", first["county"])
	}
	if first["households"] != 100.0 {
		t.Fatalf("households = %v (%T)", first["households"], first["households"])
	}

	totals := doc["totals"].(map[string]any)
	if totals["households"] != 140.0 {
		t.Fatalf("totals = %v", totals)
	}
	if _, ok := totals["county"]; ok {
		t.Fatalf("non-numeric column should not carry a total: %v", totals)
	}
}

func TestValidateSummaries(t *testing.T) {
	dir := t.TempDir()
	writeSummaryFixture(t, dir, "hh_by_county_size.csv",
		"county,households\nAlameda,100\nMarin,40\n")

	gt := 100.0
	uc := NewValidateSummaries(csvtable.New())
	report, err := uc.Execute(context.Background(), ValidateInput{
		SummariesDir: dir,
		Checks: []domain.CheckSpec{
			{
				Name:   "total households",
				Table:  "hh_by_county_size",
				Path:   "$.totals.households",
				Exists: true,
				Gt:     &gt,
			},
		},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Failures() != 0 {
		t.Fatalf("expected no failures: %+v", report.Results)
	}
}

func TestValidateSummariesMissingTable(t *testing.T) {
	uc := NewValidateSummaries(csvtable.New())
	_, err := uc.Execute(context.Background(), ValidateInput{
		SummariesDir: t.TempDir(),
		Checks: []domain.CheckSpec{
			{Name: "x", Table: "nope", Path: "$.totals.x", Exists: true},
		},
	})
	if err == nil {
		t.Fatal("expected error for missing summary table")
	}
}
