// Package runfinder locates a Travel Model Two run directory and loads its
// optional tm2kit.yaml configuration.
package runfinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// MarkerDir identifies a model run root: the directory CTRAMP writes its
// microdata into.
const MarkerDir = "ctramp_output"

// Finder locates a run root by searching for MarkerDir upward.
type Finder struct {
	Marker string // defaults to MarkerDir
}

func NewFinder() *Finder {
	return &Finder{Marker: MarkerDir}
}

var _ ports.RunLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "runfinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "runfinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		marker := filepath.Join(cur, f.Marker)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root.
			return "", &domain.OpError{
				Op:   "runfinder.findroot",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
