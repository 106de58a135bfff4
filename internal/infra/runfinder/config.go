package runfinder

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// ConfigFile is the optional per-run configuration at the run root.
const ConfigFile = "tm2kit.yaml"

type yamlRunConfig struct {
	DataModel    string `yaml:"data_model"`
	SummariesDir string `yaml:"summaries_dir"`
	ObservedDir  string `yaml:"observed_dir"`
	Iteration    int    `yaml:"iteration"`
}

var _ ports.RunConfigLoader = (*Finder)(nil)

// LoadRunConfig reads tm2kit.yaml at root. A missing file yields defaults;
// a malformed file is a config error.
func (f *Finder) LoadRunConfig(root string) (domain.RunConfig, error) {
	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.RunConfig{}.WithDefaults(), nil
		}
		return domain.RunConfig{}, &domain.OpError{
			Op:   "runfinder.loadconfig",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	var dto yamlRunConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.RunConfig{}, &domain.OpError{
			Op:   "runfinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	cfg := domain.RunConfig{
		DataModelPath: dto.DataModel,
		SummariesDir:  dto.SummariesDir,
		ObservedDir:   dto.ObservedDir,
		Iteration:     dto.Iteration,
	}
	return cfg.WithDefaults(), nil
}
