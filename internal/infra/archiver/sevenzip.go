// Package archiver bundles model-run directories with an external 7-Zip
// executable. Invocations are blocking and sequential, one per directory;
// a non-zero exit status is fatal.
package archiver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

const defaultExe = "7za"

type SevenZip struct {
	exe string
	// run is swappable for tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

type Option func(*SevenZip)

// WithExecutable overrides the compressor binary path.
func WithExecutable(exe string) Option {
	return func(s *SevenZip) { s.exe = exe }
}

// WithRunner overrides process execution (useful for tests).
func WithRunner(run func(ctx context.Context, name string, args ...string) ([]byte, error)) Option {
	return func(s *SevenZip) { s.run = run }
}

func New(opts ...Option) *SevenZip {
	s := &SevenZip{
		exe: defaultExe,
		run: runCombined,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Archiver = (*SevenZip)(nil)

// AddDir appends one directory to the archive, creating it on first use.
func (s *SevenZip) AddDir(ctx context.Context, archivePath, dir string) error {
	args := s.Args(archivePath, dir)
	out, err := s.run(ctx, s.exe, args...)
	if err != nil {
		return &domain.OpError{
			Op:   "archiver.add",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  fmt.Errorf("%s %v: %w: %s", s.exe, args, err, bytes.TrimSpace(out)),
		}
	}
	return nil
}

// Args builds the 7za invocation for one directory.
func (s *SevenZip) Args(archivePath, dir string) []string {
	return []string{"a", "-t7z", "-mx=5", "-y", archivePath, dir}
}

func runCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
