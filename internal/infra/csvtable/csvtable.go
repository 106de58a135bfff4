// Package csvtable reads and writes domain tables as CSV files. Model
// outputs and summaries have data-driven column sets, so rows go through
// encoding/csv directly rather than a struct codec.
package csvtable

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

type Codec struct {
	comma rune
}

type Option func(*Codec)

// WithComma overrides the delimiter (some TM2 inputs are space-delimited).
func WithComma(c rune) Option {
	return func(cd *Codec) { cd.comma = c }
}

func New(opts ...Option) *Codec {
	cd := &Codec{comma: ','}
	for _, opt := range opts {
		opt(cd)
	}
	return cd
}

var (
	_ ports.TableReader = (*Codec)(nil)
	_ ports.TableWriter = (*Codec)(nil)
)

func (cd *Codec) ReadTable(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "csvtable.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = cd.comma
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &domain.OpError{
			Op:   "csvtable.read",
			Kind: domain.KindInvalidSchema,
			Path: path,
			Err:  err,
		}
	}
	if len(records) == 0 {
		return nil, &domain.OpError{
			Op:   "csvtable.read",
			Kind: domain.KindInvalidSchema,
			Path: path,
			Err:  fmt.Errorf("empty file, expected a header row"),
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t := domain.NewTable(name, trimAll(records[0])...)
	t.Rows = records[1:]
	return t, nil
}

func (cd *Codec) WriteTable(path string, t *domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{
			Op:   "csvtable.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &domain.OpError{
			Op:   "csvtable.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = cd.comma
	if err := w.Write(t.Cols); err != nil {
		return writeErr(path, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return writeErr(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return writeErr(path, err)
	}
	return nil
}

func writeErr(path string, err error) error {
	return &domain.OpError{
		Op:   "csvtable.write",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
