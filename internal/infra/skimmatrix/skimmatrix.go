// Package skimmatrix reads and writes the TM2 binary skim container.
//
// Layout, all little-endian:
//
//	magic   [4]byte "TMSK"
//	version uint16 (currently 1)
//	zones   uint32
//	ntables uint32
//	directory: ntables entries of {nameLen uint16, name [nameLen]byte}
//	data: ntables dense float32 blocks of zones*zones values, in
//	directory order
package skimmatrix

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

var magic = [4]byte{'T', 'M', 'S', 'K'}

const version = 1

// Reader opens a skim container for random-access table reads.
type Reader struct {
	f      *os.File
	path   string
	zones  int
	names  []string
	offset map[string]int64
}

var _ ports.SkimReader = (*Reader)(nil)

// Open reads the header and table directory.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "skimmatrix.open",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	r := &Reader{f: f, path: path, offset: map[string]int64{}}
	if err := r.readHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) readHeader() error {
	var hdr struct {
		Magic   [4]byte
		Version uint16
		Zones   uint32
		NTables uint32
	}
	if err := binary.Read(r.f, binary.LittleEndian, &hdr); err != nil {
		return r.formatErr(fmt.Errorf("short header: %w", err))
	}
	if hdr.Magic != magic {
		return r.formatErr(fmt.Errorf("bad magic %q", hdr.Magic[:]))
	}
	if hdr.Version != version {
		return r.formatErr(fmt.Errorf("unsupported version %d", hdr.Version))
	}
	if hdr.Zones == 0 {
		return r.formatErr(fmt.Errorf("zero zones"))
	}
	r.zones = int(hdr.Zones)

	names := make([]string, 0, hdr.NTables)
	for i := uint32(0); i < hdr.NTables; i++ {
		var nameLen uint16
		if err := binary.Read(r.f, binary.LittleEndian, &nameLen); err != nil {
			return r.formatErr(fmt.Errorf("directory entry %d: %w", i, err))
		}
		buf := make([]byte, nameLen)
		if _, err := io.ReadFull(r.f, buf); err != nil {
			return r.formatErr(fmt.Errorf("directory entry %d: %w", i, err))
		}
		name := string(buf)
		if _, dup := r.offset[name]; dup {
			return r.formatErr(fmt.Errorf("duplicate table %q", name))
		}
		names = append(names, name)
		r.offset[name] = 0 // filled below
	}

	dataStart, err := r.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return r.formatErr(err)
	}
	blockSize := int64(r.zones) * int64(r.zones) * 4
	for i, name := range names {
		r.offset[name] = dataStart + int64(i)*blockSize
	}
	r.names = names
	return nil
}

func (r *Reader) TableNames() []string { return append([]string(nil), r.names...) }

func (r *Reader) Zones() int { return r.zones }

// Table reads one dense zones*zones block.
func (r *Reader) Table(name string) ([]float32, error) {
	off, ok := r.offset[name]
	if !ok {
		return nil, &domain.OpError{
			Op:   "skimmatrix.table",
			Kind: domain.KindNotFound,
			Path: r.path,
			Err:  fmt.Errorf("table %q not in container", name),
		}
	}
	if _, err := r.f.Seek(off, io.SeekStart); err != nil {
		return nil, r.formatErr(err)
	}
	out := make([]float32, r.zones*r.zones)
	if err := binary.Read(r.f, binary.LittleEndian, out); err != nil {
		return nil, r.formatErr(fmt.Errorf("table %q: %w", name, err))
	}
	return out, nil
}

func (r *Reader) Close() error { return r.f.Close() }

func (r *Reader) formatErr(err error) error {
	return &domain.OpError{
		Op:   "skimmatrix.read",
		Kind: domain.KindInvalidSchema,
		Path: r.path,
		Err:  err,
	}
}

// Write creates a skim container with the given tables. Every table must be
// zones*zones long.
func Write(path string, zones int, tables map[string][]float32, order []string) error {
	for _, name := range order {
		if len(tables[name]) != zones*zones {
			return &domain.OpError{
				Op:   "skimmatrix.write",
				Kind: domain.KindInvalidSchema,
				Path: path,
				Err:  fmt.Errorf("table %q has %d values, want %d", name, len(tables[name]), zones*zones),
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &domain.OpError{
			Op:   "skimmatrix.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	hdr := struct {
		Magic   [4]byte
		Version uint16
		Zones   uint32
		NTables uint32
	}{magic, version, uint32(zones), uint32(len(order))}
	if err := binary.Write(f, binary.LittleEndian, hdr); err != nil {
		return writeErr(path, err)
	}
	for _, name := range order {
		if err := binary.Write(f, binary.LittleEndian, uint16(len(name))); err != nil {
			return writeErr(path, err)
		}
		if _, err := f.Write([]byte(name)); err != nil {
			return writeErr(path, err)
		}
	}
	for _, name := range order {
		if err := binary.Write(f, binary.LittleEndian, tables[name]); err != nil {
			return writeErr(path, err)
		}
	}
	return nil
}

func writeErr(path string, err error) error {
	return &domain.OpError{
		Op:   "skimmatrix.write",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}
