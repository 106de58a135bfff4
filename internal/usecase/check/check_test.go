package check

import (
	"strings"
	"testing"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"rows": []any{
			map[string]any{"county": "Alameda", "model_households": 100.0, "observed_households": 104.0},
		},
		"totals": map[string]any{
			"model_households": 100.0,
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func TestEvaluateExistsAndCompare(t *testing.T) {
	spec := domain.CheckSpec{
		Name:   "households",
		Table:  "hh",
		Path:   "$.totals.model_households",
		Exists: true,
		Gt:     floatPtr(50),
		Lt:     floatPtr(200),
	}

	results := Evaluate(spec, sampleDoc())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("expected pass, got %+v", r)
		}
	}
}

func TestEvaluateFailures(t *testing.T) {
	spec := domain.CheckSpec{
		Name:  "households",
		Table: "hh",
		Path:  "$.totals.model_households",
		Gt:    floatPtr(1000),
	}

	results := Evaluate(spec, sampleDoc())
	if len(results) != 1 || results[0].Passed {
		t.Fatalf("expected one failure, got %+v", results)
	}
	if !strings.Contains(results[0].Message, "expected > 1000") {
		t.Fatalf("unexpected message %q", results[0].Message)
	}
}

func TestEvaluateEqOnString(t *testing.T) {
	spec := domain.CheckSpec{
		Name:  "first county",
		Table: "hh",
		Path:  "$.rows[0].county",
		Eq:    strPtr("Alameda"),
	}

	results := Evaluate(spec, sampleDoc())
	if len(results) != 1 || !results[0].Passed {
		t.Fatalf("expected pass, got %+v", results)
	}
}

func TestEvaluateMaxPctDiff(t *testing.T) {
	spec := domain.CheckSpec{
		Name:  "vs observed",
		Table: "hh",
		Path:  "$.rows[0].model_households",
		MaxPctDiff: &domain.PctDiffSpec{
			Observed: "$.rows[0].observed_households",
			Limit:    5,
		},
	}

	// |100-104|/104 = 3.85% <= 5%
	results := Evaluate(spec, sampleDoc())
	if len(results) != 1 || !results[0].Passed {
		t.Fatalf("expected pass, got %+v", results)
	}

	spec.MaxPctDiff.Limit = 1
	results = Evaluate(spec, sampleDoc())
	if results[0].Passed {
		t.Fatalf("expected failure, got %+v", results)
	}
	if !strings.Contains(results[0].Message, "exceeds") {
		t.Fatalf("unexpected message %q", results[0].Message)
	}
}

func TestEvaluateBadPath(t *testing.T) {
	spec := domain.CheckSpec{
		Name:   "missing",
		Table:  "hh",
		Path:   "$.totals.nope",
		Exists: true,
	}

	results := Evaluate(spec, sampleDoc())
	if len(results) != 1 || results[0].Passed {
		t.Fatalf("expected failure, got %+v", results)
	}
}
