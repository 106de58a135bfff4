// Package checksfile loads validation checks from YAML.
package checksfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

type yamlChecksFile struct {
	Checks []yamlCheck `yaml:"checks"`
}

type yamlCheck struct {
	Name       string       `yaml:"name"`
	Table      string       `yaml:"table"`
	Path       string       `yaml:"path"`
	Exists     bool         `yaml:"exists"`
	Eq         *string      `yaml:"eq"`
	Gt         *float64     `yaml:"gt"`
	Lt         *float64     `yaml:"lt"`
	MaxPctDiff *yamlPctDiff `yaml:"max_pct_diff"`
}

type yamlPctDiff struct {
	Observed string  `yaml:"observed"`
	Limit    float64 `yaml:"limit"`
}

// Load reads and validates a checks file.
func Load(path string) ([]domain.CheckSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "checksfile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto yamlChecksFile
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, &domain.OpError{
			Op:   "checksfile.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	if len(dto.Checks) == 0 {
		return nil, invalidField(path, "checks", "at least one check is required")
	}

	out := make([]domain.CheckSpec, 0, len(dto.Checks))
	for i, c := range dto.Checks {
		fieldPrefix := fmt.Sprintf("checks[%d]", i)
		if strings.TrimSpace(c.Name) == "" {
			return nil, invalidField(path, fieldPrefix+".name", "check name is required")
		}
		if strings.TrimSpace(c.Table) == "" {
			return nil, invalidField(path, fieldPrefix+".table", "table is required")
		}
		if strings.TrimSpace(c.Path) == "" {
			return nil, invalidField(path, fieldPrefix+".path", "jsonpath is required")
		}
		if !c.Exists && c.Eq == nil && c.Gt == nil && c.Lt == nil && c.MaxPctDiff == nil {
			return nil, invalidField(path, fieldPrefix, "check has no assertions")
		}

		spec := domain.CheckSpec{
			Name:   c.Name,
			Table:  c.Table,
			Path:   c.Path,
			Exists: c.Exists,
			Eq:     c.Eq,
			Gt:     c.Gt,
			Lt:     c.Lt,
		}
		if c.MaxPctDiff != nil {
			if strings.TrimSpace(c.MaxPctDiff.Observed) == "" {
				return nil, invalidField(path, fieldPrefix+".max_pct_diff.observed", "observed jsonpath is required")
			}
			if c.MaxPctDiff.Limit <= 0 {
				return nil, invalidField(path, fieldPrefix+".max_pct_diff.limit", "limit must be positive")
			}
			spec.MaxPctDiff = &domain.PctDiffSpec{
				Observed: c.MaxPctDiff.Observed,
				Limit:    c.MaxPctDiff.Limit,
			}
		}
		out = append(out, spec)
	}
	return out, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "checksfile.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%s: %s", field, msg),
	}
}
