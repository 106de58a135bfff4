package domain

import "fmt"

// DataModel is the loaded CTRAMP data model: canonical column names and
// value-code labels per output table, keyed by canonical table name.
type DataModel struct {
	Tables map[string]TableSchema
}

// TableSchema describes one CTRAMP output table.
type TableSchema struct {
	Name        string
	FilePattern string // raw file name, may contain {iteration}
	Fields      []FieldSpec
}

// FieldSpec maps raw column names onto a canonical one.
type FieldSpec struct {
	Name     string   // canonical column name
	Aliases  []string // raw names accepted in source files
	Required bool
	Values   *ValueMap // optional code -> label lookup
}

// ValueMap relabels coded cells. When Passthrough is set, codes missing
// from Labels are kept as-is instead of failing.
type ValueMap struct {
	Labels      map[string]string
	Passthrough bool
}

// Schema returns the schema for a canonical table name.
func (m *DataModel) Schema(table string) (TableSchema, error) {
	ts, ok := m.Tables[table]
	if !ok {
		return TableSchema{}, &OpError{
			Op:   "datamodel.schema",
			Kind: KindNotFound,
			Err:  fmt.Errorf("table %q not in data model", table),
		}
	}
	return ts, nil
}

// Apply canonicalizes a raw table in place: renames aliased columns to
// their canonical names, verifies required columns, and relabels coded
// values. The table is mutated only on success.
func (s TableSchema) Apply(t *Table) error {
	renames := map[int]string{}
	fieldCol := map[string]int{}

	for _, f := range s.Fields {
		i := t.ColIndex(f.Name)
		if i < 0 {
			for _, a := range f.Aliases {
				if j := t.ColIndex(a); j >= 0 {
					i = j
					break
				}
			}
		}
		if i < 0 {
			if f.Required {
				return &OpError{
					Op:   "datamodel.apply",
					Kind: KindInvalidSchema,
					Err:  fmt.Errorf("table %q: required column %q missing (aliases %v)", s.Name, f.Name, f.Aliases),
				}
			}
			continue
		}
		renames[i] = f.Name
		fieldCol[f.Name] = i
	}

	relabeled := map[int][]string{}
	for _, f := range s.Fields {
		if f.Values == nil {
			continue
		}
		i, ok := fieldCol[f.Name]
		if !ok {
			continue
		}
		col := make([]string, len(t.Rows))
		for r, row := range t.Rows {
			label, ok := f.Values.Labels[row[i]]
			if !ok {
				if f.Values.Passthrough {
					label = row[i]
				} else {
					return &OpError{
						Op:   "datamodel.apply",
						Kind: KindInvalidSchema,
						Err:  fmt.Errorf("table %q row %d: column %q: unmapped code %q", s.Name, r, f.Name, row[i]),
					}
				}
			}
			col[r] = label
		}
		relabeled[i] = col
	}

	for i, name := range renames {
		t.Cols[i] = name
	}
	for i, col := range relabeled {
		for r := range t.Rows {
			t.Rows[r][i] = col[r]
		}
	}
	return nil
}
