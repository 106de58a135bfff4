package skimmatrix

import (
	"encoding/json"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

// longSchema is the flattened (origin, destination, table, value) layout.
func longSchema() string {
	fields := []map[string]string{
		{"Tag": "name=origin, type=INT32, repetitiontype=OPTIONAL"},
		{"Tag": "name=destination, type=INT32, repetitiontype=OPTIONAL"},
		{"Tag": "name=table, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"},
		{"Tag": "name=value, type=FLOAT, repetitiontype=OPTIONAL"},
	}
	out := map[string]any{
		"Tag":    "name=parquet_go_root, repetitiontype=REQUIRED",
		"Fields": fields,
	}
	b, _ := json.Marshal(out)
	return string(b)
}

// ExportParquet flattens the named tables to long form and writes one
// Snappy-compressed Parquet file. Zone numbering is 1-based.
func ExportParquet(r *Reader, path string, tables []string) (int64, error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "skimmatrix.parquet",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	pw, err := writer.NewJSONWriter(longSchema(), fw, 4)
	if err != nil {
		_ = fw.Close()
		return 0, &domain.OpError{
			Op:   "skimmatrix.parquet",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	var rows int64
	zones := r.Zones()
	for _, name := range tables {
		data, err := r.Table(name)
		if err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return rows, err
		}
		for o := 0; o < zones; o++ {
			for d := 0; d < zones; d++ {
				row := map[string]any{
					"origin":      int32(o + 1),
					"destination": int32(d + 1),
					"table":       name,
					"value":       data[o*zones+d],
				}
				if err := pw.Write(row); err != nil {
					_ = pw.WriteStop()
					_ = fw.Close()
					return rows, &domain.OpError{
						Op:   "skimmatrix.parquet",
						Kind: domain.KindExecution,
						Path: path,
						Err:  fmt.Errorf("table %q row %d: %w", name, rows, err),
					}
				}
				rows++
			}
		}
	}

	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return rows, &domain.OpError{
			Op:   "skimmatrix.parquet",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	if err := fw.Close(); err != nil {
		return rows, &domain.OpError{
			Op:   "skimmatrix.parquet",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return rows, nil
}
