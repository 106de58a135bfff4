package ports

import "github.com/BayAreaMetro/tm2kit/internal/domain"

// DataModelLoader loads the CTRAMP data model from a source (e.g., YAML file).
type DataModelLoader interface {
	LoadDataModel(path string) (domain.DataModel, error)
}
