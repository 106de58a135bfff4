package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Table is a small in-memory column-named table. All cells are strings;
// numeric operations parse on demand. Row order is preserved by loads and
// made deterministic (sorted keys) by GroupBy and Pivot.
type Table struct {
	Name string
	Cols []string
	Rows [][]string
}

// NewTable builds an empty table with the given columns.
func NewTable(name string, cols ...string) *Table {
	return &Table{Name: name, Cols: append([]string(nil), cols...)}
}

// ColIndex returns the position of col, or -1.
func (t *Table) ColIndex(col string) int {
	for i, c := range t.Cols {
		if c == col {
			return i
		}
	}
	return -1
}

// HasCol reports whether col exists.
func (t *Table) HasCol(col string) bool { return t.ColIndex(col) >= 0 }

// AppendRow adds a row, padding or rejecting on arity mismatch.
func (t *Table) AppendRow(cells ...string) error {
	if len(cells) != len(t.Cols) {
		return &OpError{
			Op:   "table.append",
			Kind: KindInvalidSchema,
			Err:  fmt.Errorf("table %q: row has %d cells, want %d", t.Name, len(cells), len(t.Cols)),
		}
	}
	t.Rows = append(t.Rows, append([]string(nil), cells...))
	return nil
}

// RenameCol renames a column in place. Missing column is a schema error.
func (t *Table) RenameCol(from, to string) error {
	i := t.ColIndex(from)
	if i < 0 {
		return &OpError{
			Op:   "table.rename",
			Kind: KindInvalidSchema,
			Err:  fmt.Errorf("table %q: column %q not found", t.Name, from),
		}
	}
	t.Cols[i] = to
	return nil
}

// Select returns a copy restricted to cols, in the given order.
func (t *Table) Select(cols ...string) (*Table, error) {
	idx := make([]int, 0, len(cols))
	for _, c := range cols {
		i := t.ColIndex(c)
		if i < 0 {
			return nil, &OpError{
				Op:   "table.select",
				Kind: KindInvalidSchema,
				Err:  fmt.Errorf("table %q: column %q not found", t.Name, c),
			}
		}
		idx = append(idx, i)
	}

	out := NewTable(t.Name, cols...)
	for _, row := range t.Rows {
		cells := make([]string, len(idx))
		for j, i := range idx {
			cells[j] = row[i]
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}

// AggKind selects how grouped rows collapse into one cell.
type AggKind string

const (
	AggCount AggKind = "count"
	AggSum   AggKind = "sum"
)

// ParseAggKind maps a config string to an AggKind.
func ParseAggKind(s string) (AggKind, error) {
	switch AggKind(strings.ToLower(strings.TrimSpace(s))) {
	case AggCount:
		return AggCount, nil
	case AggSum:
		return AggSum, nil
	}
	return "", fmt.Errorf("unsupported aggregation %q (expected count|sum)", s)
}

// Aggregation names one output measure of a GroupBy.
type Aggregation struct {
	Kind     AggKind
	ValueCol string // required for sum, ignored for count
	OutCol   string
}

// GroupBy collapses rows sharing the key columns, computing each aggregation.
// Output rows are sorted by the key columns.
func (t *Table) GroupBy(keys []string, aggs ...Aggregation) (*Table, error) {
	keyIdx := make([]int, 0, len(keys))
	for _, k := range keys {
		i := t.ColIndex(k)
		if i < 0 {
			return nil, &OpError{
				Op:   "table.groupby",
				Kind: KindInvalidSchema,
				Err:  fmt.Errorf("table %q: key column %q not found", t.Name, k),
			}
		}
		keyIdx = append(keyIdx, i)
	}

	valIdx := make([]int, len(aggs))
	outCols := append([]string(nil), keys...)
	for n, a := range aggs {
		valIdx[n] = -1
		if a.Kind == AggSum {
			i := t.ColIndex(a.ValueCol)
			if i < 0 {
				return nil, &OpError{
					Op:   "table.groupby",
					Kind: KindInvalidSchema,
					Err:  fmt.Errorf("table %q: value column %q not found", t.Name, a.ValueCol),
				}
			}
			valIdx[n] = i
		}
		outCols = append(outCols, a.OutCol)
	}

	type group struct {
		key  []string
		sums []float64
	}
	groups := map[string]*group{}
	order := []string{}

	for r, row := range t.Rows {
		parts := make([]string, len(keyIdx))
		for j, i := range keyIdx {
			parts[j] = row[i]
		}
		gk := strings.Join(parts, "\x1f")

		g, ok := groups[gk]
		if !ok {
			g = &group{key: parts, sums: make([]float64, len(aggs))}
			groups[gk] = g
			order = append(order, gk)
		}
		for n, a := range aggs {
			switch a.Kind {
			case AggCount:
				g.sums[n]++
			case AggSum:
				v, err := parseCell(row[valIdx[n]])
				if err != nil {
					return nil, &OpError{
						Op:   "table.groupby",
						Kind: KindInvalidSchema,
						Err:  fmt.Errorf("table %q row %d: column %q: %w", t.Name, r, a.ValueCol, err),
					}
				}
				g.sums[n] += v
			}
		}
	}

	sort.Strings(order)
	out := NewTable(t.Name, outCols...)
	for _, gk := range order {
		g := groups[gk]
		cells := append([]string(nil), g.key...)
		for _, s := range g.sums {
			cells = append(cells, FormatValue(s))
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}

// JoinKind selects inner or left join semantics.
type JoinKind string

const (
	JoinInner JoinKind = "inner"
	JoinLeft  JoinKind = "left"
)

// Join merges t with right on the shared key columns. Right must be
// unique-keyed; a duplicate right key is a config error. Left join emits
// empty cells for unmatched right columns.
func (t *Table) Join(right *Table, keys []string, kind JoinKind) (*Table, error) {
	leftIdx := make([]int, len(keys))
	rightIdx := make([]int, len(keys))
	for j, k := range keys {
		li := t.ColIndex(k)
		ri := right.ColIndex(k)
		if li < 0 || ri < 0 {
			side := t.Name
			if li >= 0 {
				side = right.Name
			}
			return nil, &OpError{
				Op:   "table.join",
				Kind: KindInvalidSchema,
				Err:  fmt.Errorf("key column %q not found in table %q", k, side),
			}
		}
		leftIdx[j] = li
		rightIdx[j] = ri
	}

	// Non-key right columns carried into the output. A carried name that
	// collides with a left column is prefixed with the right table's name
	// so both sides stay addressable after the join.
	carry := []int{}
	outCols := append([]string(nil), t.Cols...)
	for i, c := range right.Cols {
		isKey := false
		for _, ri := range rightIdx {
			if ri == i {
				isKey = true
				break
			}
		}
		if !isKey {
			carry = append(carry, i)
			name := c
			if t.ColIndex(c) >= 0 {
				name = right.Name + "_" + c
			}
			outCols = append(outCols, name)
		}
	}

	lookup := make(map[string][]string, len(right.Rows))
	for _, row := range right.Rows {
		parts := make([]string, len(rightIdx))
		for j, i := range rightIdx {
			parts[j] = row[i]
		}
		gk := strings.Join(parts, "\x1f")
		if _, dup := lookup[gk]; dup {
			return nil, &OpError{
				Op:   "table.join",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("table %q: duplicate key %v", right.Name, parts),
			}
		}
		lookup[gk] = row
	}

	out := NewTable(t.Name, outCols...)
	for _, row := range t.Rows {
		parts := make([]string, len(leftIdx))
		for j, i := range leftIdx {
			parts[j] = row[i]
		}
		match, ok := lookup[strings.Join(parts, "\x1f")]
		if !ok && kind == JoinInner {
			continue
		}
		cells := append([]string(nil), row...)
		for _, i := range carry {
			if ok {
				cells = append(cells, match[i])
			} else {
				cells = append(cells, "")
			}
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}

// Pivot reshapes a long table into a wide one: one row per distinct index
// key, one generated column per distinct value of columnCol, cells filled
// from valueCol under agg. Generated columns are sorted.
func (t *Table) Pivot(index []string, columnCol, valueCol string, agg AggKind) (*Table, error) {
	for _, c := range append(append([]string(nil), index...), columnCol, valueCol) {
		if !t.HasCol(c) {
			return nil, &OpError{
				Op:   "table.pivot",
				Kind: KindInvalidSchema,
				Err:  fmt.Errorf("table %q: column %q not found", t.Name, c),
			}
		}
	}
	idxIdx := make([]int, len(index))
	for j, c := range index {
		idxIdx[j] = t.ColIndex(c)
	}
	colIdx := t.ColIndex(columnCol)
	valIdx := t.ColIndex(valueCol)

	headerSet := map[string]bool{}
	type cellKey struct{ row, col string }
	cells := map[cellKey]float64{}
	rowKeys := map[string][]string{}
	order := []string{}

	for r, row := range t.Rows {
		parts := make([]string, len(idxIdx))
		for j, i := range idxIdx {
			parts[j] = row[i]
		}
		rk := strings.Join(parts, "\x1f")
		if _, ok := rowKeys[rk]; !ok {
			rowKeys[rk] = parts
			order = append(order, rk)
		}
		header := row[colIdx]
		headerSet[header] = true

		switch agg {
		case AggCount:
			cells[cellKey{rk, header}]++
		case AggSum:
			v, err := parseCell(row[valIdx])
			if err != nil {
				return nil, &OpError{
					Op:   "table.pivot",
					Kind: KindInvalidSchema,
					Err:  fmt.Errorf("table %q row %d: column %q: %w", t.Name, r, valueCol, err),
				}
			}
			cells[cellKey{rk, header}] += v
		default:
			return nil, &OpError{
				Op:   "table.pivot",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("unsupported aggregation %q", agg),
			}
		}
	}

	headers := make([]string, 0, len(headerSet))
	for h := range headerSet {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	sort.Strings(order)

	out := NewTable(t.Name, append(append([]string(nil), index...), headers...)...)
	for _, rk := range order {
		row := append([]string(nil), rowKeys[rk]...)
		for _, h := range headers {
			row = append(row, FormatValue(cells[cellKey{rk, h}]))
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// SumCol totals a numeric column.
func (t *Table) SumCol(col string) (float64, error) {
	i := t.ColIndex(col)
	if i < 0 {
		return 0, &OpError{
			Op:   "table.sum",
			Kind: KindInvalidSchema,
			Err:  fmt.Errorf("table %q: column %q not found", t.Name, col),
		}
	}
	var total float64
	for r, row := range t.Rows {
		v, err := parseCell(row[i])
		if err != nil {
			return 0, &OpError{
				Op:   "table.sum",
				Kind: KindInvalidSchema,
				Err:  fmt.Errorf("table %q row %d: %w", t.Name, r, err),
			}
		}
		total += v
	}
	return total, nil
}

// FormatValue renders a float the way summary CSVs expect: integers
// without a decimal point, everything else with full precision.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric cell %q", s)
	}
	return v, nil
}
