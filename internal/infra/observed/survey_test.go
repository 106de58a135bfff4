package observed

import (
	"path/filepath"
	"testing"
)

func TestLoadSurvey(t *testing.T) {
	tb, err := LoadSurvey(filepath.Join("testdata", "survey.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tb.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(tb.Rows))
	}
	if tb.Rows[0][0] != "Alameda" || tb.Rows[0][3] != "102450.5" {
		t.Fatalf("unexpected row: %v", tb.Rows[0])
	}

	total, err := tb.SumCol("weight")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 153064.5 {
		t.Fatalf("unexpected total %v", total)
	}
}

func TestSurveyMeasure(t *testing.T) {
	tb, err := SurveyMeasure(filepath.Join("testdata", "survey.csv"), "mode")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCols := []string{"county", "mode", "weight"}
	for i, c := range wantCols {
		if tb.Cols[i] != c {
			t.Fatalf("cols = %v", tb.Cols)
		}
	}
	if len(tb.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(tb.Rows))
	}
	if tb.Rows[1][0] != "Alameda" || tb.Rows[1][1] != "transit" || tb.Rows[1][2] != "20114" {
		t.Fatalf("unexpected row: %v", tb.Rows[1])
	}
}

func TestSurveyMeasureUnknownCategory(t *testing.T) {
	_, err := SurveyMeasure(filepath.Join("testdata", "survey.csv"), "purpose")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadSurveyMissing(t *testing.T) {
	_, err := LoadSurvey(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatalf("expected error")
	}
}
