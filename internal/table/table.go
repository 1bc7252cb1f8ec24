// Package table provides an in-memory, read-only view over a delimited
// variant report. Every operation returns a new Table; cells are never
// modified in place, so views can be shared freely between goroutines.
package table

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// Table holds a header and rows of string cells.
type Table struct {
	header  []string
	index   map[string]int
	aliases map[string][]string
	rows    [][]string
}

// New creates a table from a header and rows. Every row must have one cell
// per header column.
func New(header []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &ParseError{
				Line:    i + 2,
				Message: fmt.Sprintf("expected %d columns, found %d", len(header), len(row)),
			}
		}
	}
	t := &Table{
		header: slices.Clone(header),
		rows:   rows,
	}
	t.reindex()
	return t, nil
}

// reindex rebuilds the column index from the header and applies aliases
// for canonical names missing from the header.
func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.header))
	for i, col := range t.header {
		if _, dup := t.index[col]; !dup {
			t.index[col] = i
		}
	}
	for canonical, fallbacks := range t.aliases {
		if _, ok := t.index[canonical]; ok {
			continue
		}
		for _, name := range fallbacks {
			if i, ok := t.index[name]; ok {
				t.index[canonical] = i
				break
			}
		}
	}
}

// derive returns a table sharing t's header, index and aliases with new rows.
func (t *Table) derive(rows [][]string) *Table {
	return &Table{header: t.header, index: t.index, aliases: t.aliases, rows: rows}
}

// WithAlias registers canonical as a name that resolves to the first of
// fallbacks present in the header when canonical itself is absent.
func (t *Table) WithAlias(canonical string, fallbacks ...string) *Table {
	aliases := make(map[string][]string, len(t.aliases)+1)
	for k, v := range t.aliases {
		aliases[k] = v
	}
	aliases[canonical] = slices.Clone(fallbacks)
	out := &Table{header: t.header, aliases: aliases, rows: t.rows}
	out.reindex()
	return out
}

// Header returns a copy of the column names.
func (t *Table) Header() []string {
	return slices.Clone(t.header)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.header)
}

// Row returns row i. The returned slice must not be modified.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Has reports whether col (or an alias of it) can be resolved.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Index returns the position of col, or a *SchemaError if it is absent.
func (t *Table) Index(col string) (int, error) {
	if i, ok := t.index[col]; ok {
		return i, nil
	}
	return -1, &SchemaError{Column: col, Alternatives: t.aliases[col]}
}

// Indices resolves several columns at once, failing on the first missing one.
func (t *Table) Indices(cols ...string) ([]int, error) {
	out := make([]int, len(cols))
	for i, col := range cols {
		idx, err := t.Index(col)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// Column returns a copy of all values of col.
func (t *Table) Column(col string) ([]string, error) {
	idx, err := t.Index(col)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Filter returns the rows for which keep returns true, in table order.
// keep is called exactly once per row, first row first.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	var rows [][]string
	for _, row := range t.rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return t.derive(rows)
}

// FilterErr is like Filter but stops at the first error returned by keep.
func (t *Table) FilterErr(keep func(row []string) (bool, error)) (*Table, error) {
	var rows [][]string
	for i, row := range t.rows {
		ok, err := keep(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return t.derive(rows), nil
}

// SortStable returns the rows ordered by the given columns, ascending.
// Ties keep their original relative order.
func (t *Table) SortStable(cols ...string) (*Table, error) {
	keys, err := t.Indices(cols...)
	if err != nil {
		return nil, err
	}
	rows := slices.Clone(t.rows)
	slices.SortStableFunc(rows, func(a, b []string) int {
		for _, k := range keys {
			if c := CompareCells(a[k], b[k]); c != 0 {
				return c
			}
		}
		return 0
	})
	return t.derive(rows), nil
}

// Concat appends the rows of others to t. All tables must share t's header.
func (t *Table) Concat(others ...*Table) (*Table, error) {
	rows := slices.Clone(t.rows)
	for _, o := range others {
		if !slices.Equal(t.header, o.header) {
			return nil, fmt.Errorf("concat: header mismatch (%d vs %d columns)", len(t.header), len(o.header))
		}
		rows = append(rows, o.rows...)
	}
	return t.derive(rows), nil
}

// PrependColumn returns a table with a new first column.
func (t *Table) PrependColumn(name string, values []string) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(t.rows))
	}
	header := append([]string{name}, t.header...)
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append([]string{values[i]}, row...)
	}
	out := &Table{header: header, aliases: t.aliases, rows: rows}
	out.reindex()
	return out, nil
}

// MoveToFront returns a table whose first columns are cols, in order,
// followed by the remaining columns in their original order.
func (t *Table) MoveToFront(cols ...string) (*Table, error) {
	front, err := t.Indices(cols...)
	if err != nil {
		return nil, err
	}
	order := slices.Clone(front)
	for i := range t.header {
		if !slices.Contains(front, i) {
			order = append(order, i)
		}
	}
	header := make([]string, len(order))
	for i, src := range order {
		header[i] = t.header[src]
	}
	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		moved := make([]string, len(order))
		for i, src := range order {
			moved[i] = row[src]
		}
		rows[r] = moved
	}
	out := &Table{header: header, aliases: t.aliases, rows: rows}
	out.reindex()
	return out, nil
}

// MapColumn returns a table in which each cell of col is replaced by fn(cell).
func (t *Table) MapColumn(col string, fn func(string) string) (*Table, error) {
	idx, err := t.Index(col)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		copied := slices.Clone(row)
		copied[idx] = fn(row[idx])
		rows[i] = copied
	}
	return t.derive(rows), nil
}

// CompareCells orders two cells the way the report sorts them: numerically
// when both parse as numbers, lexically otherwise, null cells last.
func CompareCells(a, b string) int {
	an, bn := IsNull(a), IsNull(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	if aerr == nil && berr == nil {
		return cmp.Compare(af, bf)
	}
	return cmp.Compare(a, b)
}
