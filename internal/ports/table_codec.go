package ports

import "github.com/BayAreaMetro/tm2kit/internal/domain"

// TableReader loads tabular files into domain tables.
type TableReader interface {
	ReadTable(path string) (*domain.Table, error)
}

// TableWriter persists domain tables.
type TableWriter interface {
	WriteTable(path string, t *domain.Table) error
}
