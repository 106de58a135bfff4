package usecase

import (
	"context"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// PivotTable reshapes a long summary into a wide table for dashboard
// consumption.
type PivotTable struct {
	tables ports.TableReader
	writer ports.TableWriter
}

func NewPivotTable(tr ports.TableReader, tw ports.TableWriter) *PivotTable {
	return &PivotTable{tables: tr, writer: tw}
}

type PivotInput struct {
	InPath  string
	Index   []string
	Column  string
	Value   string
	Agg     domain.AggKind
	OutPath string
}

func (uc *PivotTable) Execute(ctx context.Context, in PivotInput) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := uc.tables.ReadTable(in.InPath)
	if err != nil {
		return nil, err
	}

	wide, err := t.Pivot(in.Index, in.Column, in.Value, in.Agg)
	if err != nil {
		return nil, err
	}

	if in.OutPath != "" {
		if err := uc.writer.WriteTable(in.OutPath, wide); err != nil {
			return nil, err
		}
	}
	return wide, nil
}
