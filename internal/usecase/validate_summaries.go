package usecase

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
	"github.com/BayAreaMetro/tm2kit/internal/usecase/check"
)

// ValidateSummaries evaluates configured checks against written summary
// tables. Each summary is rendered as a JSON-shaped document with "rows"
// (one object per row) and "totals" (column sums for numeric columns) so
// checks can address either.
type ValidateSummaries struct {
	tables ports.TableReader
}

func NewValidateSummaries(tr ports.TableReader) *ValidateSummaries {
	return &ValidateSummaries{tables: tr}
}

type ValidateInput struct {
	SummariesDir string
	Checks       []domain.CheckSpec
}

func (uc *ValidateSummaries) Execute(ctx context.Context, in ValidateInput) (domain.ValidationReport, error) {
	report := domain.ValidationReport{RunDir: in.SummariesDir}
	docs := map[string]any{}

	for _, spec := range in.Checks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		doc, ok := docs[spec.Table]
		if !ok {
			t, err := uc.tables.ReadTable(filepath.Join(in.SummariesDir, spec.Table+".csv"))
			if err != nil {
				return report, err
			}
			doc = TableDocument(t)
			docs[spec.Table] = doc
		}

		report.Results = append(report.Results, check.Evaluate(spec, doc)...)
	}
	return report, nil
}

// TableDocument renders a table for JSONPath addressing. Cells that parse
// as numbers become float64 so numeric assertions work without casts.
func TableDocument(t *domain.Table) map[string]any {
	rows := make([]any, 0, len(t.Rows))
	totals := map[string]float64{}
	numeric := map[string]bool{}
	for _, c := range t.Cols {
		numeric[c] = true
	}

	for _, row := range t.Rows {
		obj := make(map[string]any, len(t.Cols))
		for i, c := range t.Cols {
			cell := row[i]
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				obj[c] = v
				totals[c] += v
			} else {
				obj[c] = cell
				if cell != "" {
					numeric[c] = false
				}
			}
		}
		rows = append(rows, obj)
	}

	tt := map[string]any{}
	for c, ok := range numeric {
		if ok {
			tt[c] = totals[c]
		}
	}
	return map[string]any{
		"rows":   rows,
		"totals": tt,
	}
}
