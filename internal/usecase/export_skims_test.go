package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/csvtable"
	"github.com/BayAreaMetro/tm2kit/internal/infra/skimmatrix"
)

func writeSkimFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skims.tmsk")
	tables := map[string][]float32{
		"DIST": {0, 1.5, 1.5, 0},
		"TIME": {0, 10, 12, 0},
	}
	if err := skimmatrix.Write(path, 2, tables, []string{"DIST", "TIME"}); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestExportSkimsCSV(t *testing.T) {
	in := writeSkimFixture(t)
	out := filepath.Join(t.TempDir(), "skims_long.csv")

	codec := csvtable.New()
	uc := NewExportSkims(codec)
	rows, err := uc.Execute(context.Background(), SkimExportInput{
		InPath:  in,
		OutPath: out,
		Format:  "csv",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if rows != 8 {
		t.Fatalf("rows = %d, want 8", rows)
	}

	tbl, err := codec.ReadTable(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	wantCols := []string{"origin", "destination", "table", "value"}
	for i, c := range wantCols {
		if tbl.Cols[i] != c {
			t.Fatalf("cols = %v", tbl.Cols)
		}
	}
	// Zone ids are 1-based; first DIST row is the intrazonal 1->1 cell.
	if got := tbl.Rows[0]; got[0] != "1" || got[1] != "1" || got[2] != "DIST" || got[3] != "0" {
		t.Fatalf("first row = %v", got)
	}
	if got := tbl.Rows[1]; got[3] != "1.5" {
		t.Fatalf("second row = %v", got)
	}
}

func TestExportSkimsTableFilter(t *testing.T) {
	in := writeSkimFixture(t)
	out := filepath.Join(t.TempDir(), "time_long.csv")

	uc := NewExportSkims(csvtable.New())
	rows, err := uc.Execute(context.Background(), SkimExportInput{
		InPath:  in,
		OutPath: out,
		Tables:  []string{"TIME"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if rows != 4 {
		t.Fatalf("rows = %d, want 4", rows)
	}
}

func TestExportSkimsUnknownTable(t *testing.T) {
	in := writeSkimFixture(t)

	uc := NewExportSkims(csvtable.New())
	_, err := uc.Execute(context.Background(), SkimExportInput{
		InPath:  in,
		OutPath: filepath.Join(t.TempDir(), "out.csv"),
		Tables:  []string{"TOLL"},
	})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestExportSkimsBadFormat(t *testing.T) {
	in := writeSkimFixture(t)

	uc := NewExportSkims(csvtable.New())
	_, err := uc.Execute(context.Background(), SkimExportInput{
		InPath:  in,
		OutPath: filepath.Join(t.TempDir(), "out.bin"),
		Format:  "hdf5",
	})
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
