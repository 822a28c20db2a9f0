package fuzzydate

import (
	"iter"
	"slices"
	"sort"
)

// Column is a named sequence of values.
type Column struct {
	Name   string
	Values []Value
}

// Col is a shortcut to build a Column.
func Col(name string, values ...Value) Column { return Column{Name: name, Values: values} }

// Row is a view of a single line of a Table, by column name.
type Row map[string]Value

// Table is an ordered set of named columns of equal length.
//
// Tables are never modified in place, every operation returns a new Table
// that may share value slices with its source.
type Table struct {
	names  []string
	values map[string][]Value
	n      int
}

// NewTable returns a table made of cols, in that order.
func NewTable(cols ...Column) (*Table, error) {
	t := &Table{values: make(map[string][]Value, len(cols))}
	for i, c := range cols {
		if _, exists := t.values[c.Name]; exists {
			return nil, &SchemaError{Column: c.Name, Reason: "duplicate column"}
		}
		if i == 0 {
			t.n = len(c.Values)
		} else if len(c.Values) != t.n {
			return nil, &SchemaError{Column: c.Name, Reason: "column length differs from the first column"}
		}
		t.names = append(t.names, c.Name)
		t.values[c.Name] = c.Values
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(cols ...Column) *Table {
	t, err := NewTable(cols...)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// FromRows builds a table with the given column names from rows.
// Columns absent from a row are missing.
func FromRows(names []string, rows ...Row) (*Table, error) {
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, Values: make([]Value, len(rows))}
		for j, r := range rows {
			cols[i].Values[j] = r[name]
		}
	}
	return NewTable(cols...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.n }

// Names returns the column names in order.
func (t *Table) Names() []string { return slices.Clone(t.names) }

// Has reports whether t has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) (Column, bool) {
	v, ok := t.values[name]
	if !ok {
		return Column{}, false
	}
	return Column{Name: name, Values: slices.Clone(v)}, true
}

// Value returns the value at row i of the named column. It is missing if the column does not exist.
func (t *Table) Value(i int, name string) Value {
	v, ok := t.values[name]
	if !ok {
		return Value{}
	}
	return v[i]
}

// Row returns the row i.
func (t *Table) Row(i int) Row {
	r := make(Row, len(t.names))
	for _, name := range t.names {
		r[name] = t.values[name][i]
	}
	return r
}

// Rows returns an iterator over all rows in order.
func (t *Table) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := range t.n {
			if !yield(i, t.Row(i)) {
				return
			}
		}
	}
}

// take returns a new table with rows picked by index, in that order.
func (t *Table) take(index []int) *Table {
	res := &Table{names: slices.Clone(t.names), values: make(map[string][]Value, len(t.names)), n: len(index)}
	for _, name := range t.names {
		src := t.values[name]
		dst := make([]Value, len(index))
		for i, j := range index {
			dst[i] = src[j]
		}
		res.values[name] = dst
	}
	return res
}

// chronological is the permutation that sorts a column of instants.
// Non temporal values are sorted last.
type chronological struct {
	index  []int
	values []Value
}

func (s chronological) Len() int      { return len(s.index) }
func (s chronological) Swap(i, j int) { s.index[i], s.index[j] = s.index[j], s.index[i] }
func (s chronological) Less(i, j int) bool {
	a, okA := s.values[s.index[i]].Instant()
	b, okB := s.values[s.index[j]].Instant()
	if !okA || !okB {
		return okA && !okB
	}
	return a.Before(b)
}

// order returns the indexes of the rows sorted by the named date column. The sort is stable.
func (t *Table) order(name string) []int {
	index := make([]int, t.n)
	for i := range index {
		index[i] = i
	}
	sort.Stable(chronological{index: index, values: t.values[name]})
	return index
}

// SortBy returns a copy of t sorted chronologically by the named date or time column.
// The sort is stable and rows with a value that is not a date are moved last.
func (t *Table) SortBy(name string) (*Table, error) {
	if !t.Has(name) {
		return nil, notFound("", name)
	}
	return t.take(t.order(name)), nil
}

// Select returns a table with only the named columns, in that order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		v, ok := t.values[name]
		if !ok {
			return nil, notFound("", name)
		}
		cols = append(cols, Column{Name: name, Values: v})
	}
	return NewTable(cols...)
}

// Drop returns a table without the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) *Table {
	res := &Table{values: make(map[string][]Value, len(t.names)), n: t.n}
	for _, name := range t.names {
		if slices.Contains(names, name) {
			continue
		}
		res.names = append(res.names, name)
		res.values[name] = t.values[name]
	}
	return res
}

// WithColumn returns a table with col appended, or replacing the column with the same name.
func (t *Table) WithColumn(col Column) (*Table, error) {
	if len(t.names) > 0 && len(col.Values) != t.n {
		return nil, &SchemaError{Column: col.Name, Reason: "column length differs from the table"}
	}
	res := &Table{names: slices.Clone(t.names), values: make(map[string][]Value, len(t.names)+1), n: len(col.Values)}
	for name, v := range t.values {
		res.values[name] = v
	}
	if !t.Has(col.Name) {
		res.names = append(res.names, col.Name)
	}
	res.values[col.Name] = col.Values
	return res, nil
}

// Equal reports whether t and u have the same columns, in the same order, with equal values.
func (t *Table) Equal(u *Table) bool {
	if t.n != u.n || !slices.Equal(t.names, u.names) {
		return false
	}
	for _, name := range t.names {
		if !slices.EqualFunc(t.values[name], u.values[name], Value.Equal) {
			return false
		}
	}
	return true
}
