package datamodel

import (
	"fmt"
	"strings"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

// MapDataModel validates the YAML DTO and converts it into domain types.
func MapDataModel(path string, dto YAMLDataModel) (domain.DataModel, error) {
	if len(dto.Tables) == 0 {
		return domain.DataModel{}, invalidField(path, "tables", "at least one table is required")
	}

	model := domain.DataModel{Tables: make(map[string]domain.TableSchema, len(dto.Tables))}

	for i, tb := range dto.Tables {
		fieldPrefix := fmt.Sprintf("tables[%d]", i)
		name := strings.TrimSpace(tb.Name)
		if name == "" {
			return domain.DataModel{}, invalidField(path, fieldPrefix+".name", "table name is required")
		}
		if _, dup := model.Tables[name]; dup {
			return domain.DataModel{}, invalidField(path, fieldPrefix+".name", fmt.Sprintf("duplicate table %q", name))
		}
		if strings.TrimSpace(tb.File) == "" {
			return domain.DataModel{}, invalidField(path, fieldPrefix+".file", "file pattern is required")
		}
		if len(tb.Fields) == 0 {
			return domain.DataModel{}, invalidField(path, fieldPrefix+".fields", "at least one field is required")
		}

		schema := domain.TableSchema{
			Name:        name,
			FilePattern: tb.File,
			Fields:      make([]domain.FieldSpec, 0, len(tb.Fields)),
		}

		seen := map[string]bool{}
		for j, f := range tb.Fields {
			fp := fmt.Sprintf("%s.fields[%d]", fieldPrefix, j)
			fname := strings.TrimSpace(f.Name)
			if fname == "" {
				return domain.DataModel{}, invalidField(path, fp+".name", "field name is required")
			}
			if seen[fname] {
				return domain.DataModel{}, invalidField(path, fp+".name", fmt.Sprintf("duplicate canonical name %q", fname))
			}
			seen[fname] = true

			spec := domain.FieldSpec{
				Name:     fname,
				Aliases:  f.Aliases,
				Required: f.Required,
			}
			if f.Values != nil {
				if len(f.Values.Labels) == 0 && !f.Values.Passthrough {
					return domain.DataModel{}, invalidField(path, fp+".values", "value map has no labels and is not passthrough")
				}
				spec.Values = &domain.ValueMap{
					Labels:      f.Values.Labels,
					Passthrough: f.Values.Passthrough,
				}
			}
			schema.Fields = append(schema.Fields, spec)
		}

		model.Tables[name] = schema
	}

	return model, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "datamodel.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%s: %s", field, msg),
	}
}
