package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/csvtable"
	"github.com/BayAreaMetro/tm2kit/internal/infra/datamodel"
	"github.com/BayAreaMetro/tm2kit/internal/infra/logger"
	"github.com/BayAreaMetro/tm2kit/internal/infra/manifest"
	"github.com/BayAreaMetro/tm2kit/internal/infra/runfinder"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// runCtx bundles everything a run-scoped command needs.
type runCtx struct {
	root string
	cfg  domain.RunConfig

	models ports.DataModelLoader
	tables ports.TableReader
	writer ports.TableWriter
	store  ports.ManifestStore
}

func (rc *runCtx) summariesDir() string {
	return filepath.Join(rc.root, rc.cfg.SummariesDir)
}

func (rc *runCtx) observedDir() string {
	return filepath.Join(rc.root, rc.cfg.ObservedDir)
}

func loadRun(runFlag string) (*runCtx, error) {
	root, err := resolveRunRoot(runFlag)
	if err != nil {
		return nil, err
	}

	finder := runfinder.NewFinder()
	cfg, err := finder.LoadRunConfig(root)
	if err != nil {
		return nil, err
	}

	codec := csvtable.New()
	store := manifest.NewJSONStore(
		filepath.Join(root, cfg.SummariesDir),
		manifest.WithIndex(true),
	)

	return &runCtx{
		root:   root,
		cfg:    cfg,
		models: datamodel.NewLoader(),
		tables: codec,
		writer: codec,
		store:  store,
	}, nil
}

func resolveRunRoot(runFlag string) (string, error) {
	r := strings.TrimSpace(runFlag)
	if r != "" {
		abs, err := filepath.Abs(r)
		if err != nil {
			return "", fmt.Errorf("invalid run path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := runfinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("model run not found from %q (expected a %s/ directory): %w", wd, runfinder.MarkerDir, err)
	}
	return root, nil
}

// setupLogging points the global logger at the run root when one exists.
func setupLogging(root string, debug bool) func() {
	cleanup, err := logger.Setup(logger.Config{Root: root, Debug: debug})
	if err == nil && debug {
		fmt.Fprintf(os.Stderr, "log file: %s\n", logger.Path())
	}
	if cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}
