package usecase

import (
	"context"
	"fmt"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/skimmatrix"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// ExportSkims flattens skim tables from the binary container to long-form
// CSV or Parquet.
type ExportSkims struct {
	writer ports.TableWriter
}

func NewExportSkims(tw ports.TableWriter) *ExportSkims {
	return &ExportSkims{writer: tw}
}

type SkimExportInput struct {
	InPath  string
	OutPath string
	Format  string   // "csv" or "parquet"
	Tables  []string // empty = all tables in the container
}

// Execute returns the number of exported long-form rows.
func (uc *ExportSkims) Execute(ctx context.Context, in SkimExportInput) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r, err := skimmatrix.Open(in.InPath)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	tables := in.Tables
	if len(tables) == 0 {
		tables = r.TableNames()
	}
	for _, name := range tables {
		found := false
		for _, have := range r.TableNames() {
			if have == name {
				found = true
				break
			}
		}
		if !found {
			return 0, &domain.OpError{
				Op:   "skims.export",
				Kind: domain.KindNotFound,
				Path: in.InPath,
				Err:  fmt.Errorf("table %q not in container (have %v)", name, r.TableNames()),
			}
		}
	}

	switch in.Format {
	case "parquet":
		return skimmatrix.ExportParquet(r, in.OutPath, tables)
	case "csv", "":
		return uc.exportCSV(r, in.OutPath, tables)
	}
	return 0, &domain.OpError{
		Op:   "skims.export",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("unsupported format %q (expected csv|parquet)", in.Format),
	}
}

func (uc *ExportSkims) exportCSV(r *skimmatrix.Reader, outPath string, tables []string) (int64, error) {
	out := domain.NewTable("skims", "origin", "destination", "table", "value")
	zones := r.Zones()

	var rows int64
	for _, name := range tables {
		data, err := r.Table(name)
		if err != nil {
			return rows, err
		}
		for o := 0; o < zones; o++ {
			for d := 0; d < zones; d++ {
				out.Rows = append(out.Rows, []string{
					fmt.Sprintf("%d", o+1),
					fmt.Sprintf("%d", d+1),
					name,
					domain.FormatValue(float64(data[o*zones+d])),
				})
				rows++
			}
		}
	}

	if err := uc.writer.WriteTable(outPath, out); err != nil {
		return rows, err
	}
	return rows, nil
}
