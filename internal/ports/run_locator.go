package ports

import "github.com/BayAreaMetro/tm2kit/internal/domain"

// RunLocator finds a model run root starting from a directory.
type RunLocator interface {
	FindRoot(startDir string) (string, error)
}

// RunConfigLoader reads the optional tm2kit.yaml at a run root.
type RunConfigLoader interface {
	LoadRunConfig(root string) (domain.RunConfig, error)
}
