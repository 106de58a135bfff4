// Package datamodel loads the CTRAMP data model from YAML: the mapping of
// raw model-output columns to canonical names plus value-code labels.
package datamodel

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.DataModelLoader = (*Loader)(nil)

func (l *Loader) LoadDataModel(path string) (domain.DataModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DataModel{}, &domain.OpError{
			Op:   "datamodel.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLDataModel
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.DataModel{}, &domain.OpError{
			Op:   "datamodel.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapDataModel(path, dto)
}
