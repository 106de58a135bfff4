// Package manifest persists run and archive manifests as JSON files with a
// CSV index, under the run's summaries directory.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

const indexFile = "index.csv"

type JSONStore struct {
	dir        string
	writeIndex bool
	now        func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables the CSV index next to the manifests.
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(dir string, opts ...Option) *JSONStore {
	s := &JSONStore{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ManifestStore = (*JSONStore)(nil)

// indexRow is one line of index.csv, written through gocsv.
type indexRow struct {
	ID        string `csv:"id"`
	Kind      string `csv:"kind"`
	File      string `csv:"file"`
	CreatedAt string `csv:"created_at"`
}

func (s *JSONStore) SaveRunManifest(m domain.RunManifest) (string, error) {
	ts := m.CreatedAt
	if ts.IsZero() {
		ts = s.now()
		m.CreatedAt = ts
	}
	return s.save("run", m.ID, ts, m)
}

func (s *JSONStore) SaveArchiveManifest(m domain.ArchiveManifest) (string, error) {
	ts := m.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	return s.save("archive", m.ID, ts, m)
}

func (s *JSONStore) save(kind, id string, ts time.Time, v any) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "manifest.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	slug := slugify(id)
	if slug == "" {
		slug = kind
	}
	filename := fmt.Sprintf("%s_%s_%s.json", ts.UTC().Format("20060102T150405Z"), kind, slug)
	path := filepath.Join(s.dir, filename)

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "manifest.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "manifest.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "manifest.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(indexRow{
			ID:        id,
			Kind:      kind,
			File:      filename,
			CreatedAt: ts.UTC().Format(time.RFC3339),
		})
	}

	return path, nil
}

func (s *JSONStore) appendIndex(row indexRow) error {
	path := filepath.Join(s.dir, indexFile)
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	rows := []indexRow{row}
	if fresh {
		return gocsv.MarshalFile(&rows, f)
	}
	return gocsv.MarshalWithoutHeaders(&rows, f)
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '_' || r == '-' || r == '.':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		default:
			// drop anything else
		}
	}
	return strings.Trim(b.String(), "-")
}
