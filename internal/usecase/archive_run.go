package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// DefaultArchiveDirs is the set of run subdirectories worth keeping. A
// directory absent from the run is skipped, not an error.
var DefaultArchiveDirs = []string{
	"ctramp_output",
	"summaries",
	"skims",
	"logs",
	"inputs",
}

// ArchiveRun bundles selected run subdirectories into one compressed
// archive, one compressor invocation per directory, and writes a manifest.
type ArchiveRun struct {
	archiver ports.Archiver
	store    ports.ManifestStore
	newID    func() string
	now      func() time.Time
}

type ArchiveOption func(*ArchiveRun)

// WithArchiveIDGenerator overrides id generation (useful for tests).
func WithArchiveIDGenerator(gen func() string) ArchiveOption {
	return func(uc *ArchiveRun) { uc.newID = gen }
}

// WithArchiveClock overrides the clock (useful for tests).
func WithArchiveClock(now func() time.Time) ArchiveOption {
	return func(uc *ArchiveRun) { uc.now = now }
}

func NewArchiveRun(a ports.Archiver, store ports.ManifestStore, opts ...ArchiveOption) *ArchiveRun {
	uc := &ArchiveRun{
		archiver: a,
		store:    store,
		newID:    func() string { return uuid.NewString() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type ArchiveInput struct {
	ModelDir   string
	ArchiveDir string
	Name       string   // defaults to the model directory base name
	Dirs       []string // defaults to DefaultArchiveDirs
}

// Execute archives the run. The first compressor failure aborts the whole
// operation; partial archives are left on disk for inspection.
func (uc *ArchiveRun) Execute(ctx context.Context, in ArchiveInput) (domain.ArchiveManifest, error) {
	modelDir, err := filepath.Abs(in.ModelDir)
	if err != nil {
		return domain.ArchiveManifest{}, &domain.OpError{
			Op:   "archive.run",
			Kind: domain.KindInvalidConfig,
			Path: in.ModelDir,
			Err:  err,
		}
	}
	if info, err := os.Stat(modelDir); err != nil || !info.IsDir() {
		return domain.ArchiveManifest{}, &domain.OpError{
			Op:   "archive.run",
			Kind: domain.KindNotFound,
			Path: modelDir,
			Err:  fmt.Errorf("model directory does not exist"),
		}
	}
	if err := os.MkdirAll(in.ArchiveDir, 0o755); err != nil {
		return domain.ArchiveManifest{}, &domain.OpError{
			Op:   "archive.run",
			Kind: domain.KindExecution,
			Path: in.ArchiveDir,
			Err:  err,
		}
	}

	name := in.Name
	if name == "" {
		name = filepath.Base(modelDir)
	}
	dirs := in.Dirs
	if len(dirs) == 0 {
		dirs = DefaultArchiveDirs
	}

	manifest := domain.ArchiveManifest{
		ID:        uc.newID(),
		Name:      name,
		SourceDir: modelDir,
		Archive:   filepath.Join(in.ArchiveDir, name+".7z"),
		StartedAt: uc.now().UTC(),
	}

	for _, d := range dirs {
		if err := ctx.Err(); err != nil {
			return manifest, err
		}

		src := filepath.Join(modelDir, d)
		info, statErr := os.Stat(src)
		if statErr != nil || !info.IsDir() {
			continue
		}

		if err := uc.archiver.AddDir(ctx, manifest.Archive, src); err != nil {
			return manifest, err
		}
		manifest.Entries = append(manifest.Entries, domain.ArchiveItem{
			Path:  d,
			Bytes: dirSize(src),
		})
	}

	if len(manifest.Entries) == 0 {
		return manifest, &domain.OpError{
			Op:   "archive.run",
			Kind: domain.KindNotFound,
			Path: modelDir,
			Err:  fmt.Errorf("no archivable subdirectories (looked for %v)", dirs),
		}
	}

	manifest.EndedAt = uc.now().UTC()
	if uc.store != nil {
		if _, err := uc.store.SaveArchiveManifest(manifest); err != nil {
			return manifest, err
		}
	}
	return manifest, nil
}

// dirSize totals file sizes under dir; best effort, unreadable entries
// count as zero.
func dirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, ierr := d.Info(); ierr == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
