package ports

import (
	"context"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

// ObservedSource fetches an observed reference table (e.g., an ACS extract)
// for a set of geographies.
type ObservedSource interface {
	FetchTable(ctx context.Context, table string, year int, counties []string) (*domain.Table, error)
}
