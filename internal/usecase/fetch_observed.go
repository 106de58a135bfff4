package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// FetchObserved downloads an observed reference table and stores it in the
// run's observed-data directory for later joins.
type FetchObserved struct {
	source ports.ObservedSource
	writer ports.TableWriter
}

func NewFetchObserved(src ports.ObservedSource, tw ports.TableWriter) *FetchObserved {
	return &FetchObserved{source: src, writer: tw}
}

type FetchInput struct {
	Table       string
	Year        int
	Counties    []string
	ObservedDir string
}

// Execute fetches and writes the table, returning the output path.
func (uc *FetchObserved) Execute(ctx context.Context, in FetchInput) (string, error) {
	t, err := uc.source.FetchTable(ctx, in.Table, in.Year, in.Counties)
	if err != nil {
		return "", err
	}

	out := filepath.Join(in.ObservedDir, acsFileName(in.Table, in.Year))
	if err := uc.writer.WriteTable(out, t); err != nil {
		return "", err
	}
	return out, nil
}

func acsFileName(table string, year int) string {
	return fmt.Sprintf("acs_%s_%d.csv", table, year)
}
