package domain

import (
	"strings"
	"testing"
)

func sampleTrips(t *testing.T) *Table {
	t.Helper()
	tb := NewTable("trips", "county", "mode", "trips")
	rows := [][]string{
		{"Alameda", "drive", "10"},
		{"Alameda", "transit", "4"},
		{"Marin", "drive", "6"},
		{"Marin", "drive", "2"},
		{"Marin", "walk", "3"},
	}
	for _, r := range rows {
		if err := tb.AppendRow(r...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return tb
}

func TestGroupByCountAndSum(t *testing.T) {
	tb := sampleTrips(t)

	out, err := tb.GroupBy([]string{"county"},
		Aggregation{Kind: AggCount, OutCol: "records"},
		Aggregation{Kind: AggSum, ValueCol: "trips", OutCol: "trips"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(out.Rows))
	}
	// Sorted by key: Alameda first.
	if out.Rows[0][0] != "Alameda" || out.Rows[0][1] != "2" || out.Rows[0][2] != "14" {
		t.Fatalf("unexpected Alameda row: %v", out.Rows[0])
	}
	if out.Rows[1][0] != "Marin" || out.Rows[1][1] != "3" || out.Rows[1][2] != "11" {
		t.Fatalf("unexpected Marin row: %v", out.Rows[1])
	}
}

func TestGroupByMissingKey(t *testing.T) {
	tb := sampleTrips(t)
	_, err := tb.GroupBy([]string{"nope"}, Aggregation{Kind: AggCount, OutCol: "n"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindInvalidSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestJoinInnerAndLeft(t *testing.T) {
	model := NewTable("model", "county", "trips")
	_ = model.AppendRow("Alameda", "14")
	_ = model.AppendRow("Marin", "11")
	_ = model.AppendRow("Napa", "5")

	obs := NewTable("observed", "county", "obs_trips")
	_ = obs.AppendRow("Alameda", "15")
	_ = obs.AppendRow("Marin", "10")

	inner, err := model.Join(obs, []string{"county"}, JoinInner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.Rows) != 2 {
		t.Fatalf("expected 2 inner rows, got %d", len(inner.Rows))
	}

	left, err := model.Join(obs, []string{"county"}, JoinLeft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(left.Rows) != 3 {
		t.Fatalf("expected 3 left rows, got %d", len(left.Rows))
	}
	if left.Rows[2][0] != "Napa" || left.Rows[2][2] != "" {
		t.Fatalf("expected empty observed cell for Napa, got %v", left.Rows[2])
	}
}

func TestJoinRenamesCollidingColumns(t *testing.T) {
	model := NewTable("model", "county", "trips")
	_ = model.AppendRow("Alameda", "14")

	obs := NewTable("observed", "county", "trips")
	_ = obs.AppendRow("Alameda", "15")

	joined, err := model.Join(obs, []string{"county"}, JoinInner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCols := []string{"county", "trips", "observed_trips"}
	if len(joined.Cols) != len(wantCols) {
		t.Fatalf("unexpected cols %v", joined.Cols)
	}
	for i, c := range wantCols {
		if joined.Cols[i] != c {
			t.Fatalf("unexpected cols %v, want %v", joined.Cols, wantCols)
		}
	}
	if joined.Rows[0][1] != "14" || joined.Rows[0][2] != "15" {
		t.Fatalf("unexpected row %v", joined.Rows[0])
	}
}

func TestJoinDuplicateObservedKey(t *testing.T) {
	model := NewTable("model", "county", "trips")
	_ = model.AppendRow("Alameda", "14")

	obs := NewTable("observed", "county", "obs_trips")
	_ = obs.AppendRow("Alameda", "15")
	_ = obs.AppendRow("Alameda", "16")

	_, err := model.Join(obs, []string{"county"}, JoinInner)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate key") {
		t.Fatalf("expected duplicate key in error, got %v", err)
	}
}

func TestPivotPreservesTotals(t *testing.T) {
	tb := sampleTrips(t)

	before, err := tb.SumCol("trips")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wide, err := tb.Pivot([]string{"county"}, "mode", "trips", AggSum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Headers are sorted distinct modes after the index column.
	want := []string{"county", "drive", "transit", "walk"}
	if len(wide.Cols) != len(want) {
		t.Fatalf("expected cols %v, got %v", want, wide.Cols)
	}
	for i, c := range want {
		if wide.Cols[i] != c {
			t.Fatalf("expected cols %v, got %v", want, wide.Cols)
		}
	}

	var after float64
	for _, c := range want[1:] {
		s, err := wide.SumCol(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		after += s
	}
	if before != after {
		t.Fatalf("pivot changed grand total: %v != %v", before, after)
	}
}

func TestPivotNonNumericValue(t *testing.T) {
	tb := NewTable("bad", "a", "b", "v")
	_ = tb.AppendRow("x", "y", "oops")

	_, err := tb.Pivot([]string{"a"}, "b", "v", AggSum)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindInvalidSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestSelectAndRename(t *testing.T) {
	tb := sampleTrips(t)

	sel, err := tb.Select("mode", "trips")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sel.Cols) != 2 || sel.Cols[0] != "mode" {
		t.Fatalf("unexpected cols: %v", sel.Cols)
	}
	if len(sel.Rows) != len(tb.Rows) {
		t.Fatalf("select dropped rows")
	}

	if err := tb.RenameCol("mode", "trip_mode"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tb.HasCol("trip_mode") {
		t.Fatalf("rename did not apply")
	}
	if err := tb.RenameCol("nope", "x"); err == nil {
		t.Fatalf("expected error")
	}
}
