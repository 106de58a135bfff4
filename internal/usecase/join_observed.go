package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/observed"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// JoinObserved merges a model summary table with an observed reference
// table on shared categorical keys and appends comparison columns.
type JoinObserved struct {
	tables ports.TableReader
	writer ports.TableWriter
}

func NewJoinObserved(tr ports.TableReader, tw ports.TableWriter) *JoinObserved {
	return &JoinObserved{tables: tr, writer: tw}
}

// JoinInput configures one join. Measures pairs a model column with the
// observed column it compares against. SurveyCategory switches the
// observed side to a travel-survey tabulation, reshaped to one row per
// (county, category value) with a weight measure.
type JoinInput struct {
	SummaryPath    string
	ObservedPath   string
	SurveyCategory string
	Keys           []string
	Kind           domain.JoinKind
	Measures       []MeasurePair
	OutPath        string
}

// MeasurePair names a model measure and its observed counterpart.
type MeasurePair struct {
	Model    string
	Observed string
}

// Execute performs the join and writes the comparison table. Output
// measure columns are prefixed model_/observed_, with diff and pct_diff
// columns appended per pair.
func (uc *JoinObserved) Execute(ctx context.Context, in JoinInput) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := uc.tables.ReadTable(in.SummaryPath)
	if err != nil {
		return nil, err
	}
	var obs *domain.Table
	if in.SurveyCategory != "" {
		obs, err = observed.SurveyMeasure(in.ObservedPath, in.SurveyCategory)
	} else {
		obs, err = uc.tables.ReadTable(in.ObservedPath)
	}
	if err != nil {
		return nil, err
	}

	// Prefix measure columns before joining so a measure named the same on
	// both sides keeps both values addressable in the joined table.
	for _, m := range in.Measures {
		if err := model.RenameCol(m.Model, "model_"+m.Model); err != nil {
			return nil, err
		}
		if err := obs.RenameCol(m.Observed, "observed_"+m.Observed); err != nil {
			return nil, err
		}
	}

	joined, err := model.Join(obs, in.Keys, in.Kind)
	if err != nil {
		return nil, err
	}

	for _, m := range in.Measures {
		if err := appendComparison(joined, m); err != nil {
			return nil, err
		}
	}

	if in.OutPath != "" {
		if err := uc.writer.WriteTable(in.OutPath, joined); err != nil {
			return nil, err
		}
	}
	return joined, nil
}

// appendComparison adds diff and pct_diff columns for one measure pair,
// reading the model_/observed_ columns prefixed before the join. Unmatched
// (empty) observed cells yield empty comparison cells.
func appendComparison(t *domain.Table, m MeasurePair) error {
	mi := t.ColIndex("model_" + m.Model)
	oi := t.ColIndex("observed_" + m.Observed)
	if mi < 0 || oi < 0 {
		missing := m.Model
		if mi >= 0 {
			missing = m.Observed
		}
		return &domain.OpError{
			Op:   "join.compare",
			Kind: domain.KindInvalidSchema,
			Err:  fmt.Errorf("measure column %q not found after join", missing),
		}
	}

	t.Cols = append(t.Cols, "diff_"+m.Model, "pct_diff_"+m.Model)

	for r, row := range t.Rows {
		var diff, pct string
		if row[oi] != "" {
			mv, err := parseNumeric(t.Name, r, row[mi])
			if err != nil {
				return err
			}
			ov, err := parseNumeric(t.Name, r, row[oi])
			if err != nil {
				return err
			}
			d := mv - ov
			diff = domain.FormatValue(d)
			if ov != 0 {
				pct = domain.FormatValue(100 * d / ov)
			}
		}
		t.Rows[r] = append(row, diff, pct)
	}
	return nil
}

func parseNumeric(table string, row int, cell string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "join.compare",
			Kind: domain.KindInvalidSchema,
			Err:  fmt.Errorf("table %q row %d: non-numeric cell %q", table, row, cell),
		}
	}
	return v, nil
}
