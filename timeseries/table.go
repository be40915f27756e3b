package timeseries

import (
	"errors"
	"fmt"
)

// ErrColumnMissing is returned when a requested column does not exist in a
// table.
var ErrColumnMissing = errors.New("timeseries: column not found")

// ErrColumnExists is returned when adding a column whose name is already
// taken.
var ErrColumnExists = errors.New("timeseries: column already exists")

// Table is an ordered collection of equal-length series sharing one time
// index. Columns are addressed by series name.
type Table struct {
	names   []string
	columns map[string]*Series
}

// NewTable creates an empty table. The first column added fixes the table
// length.
func NewTable() *Table {
	return &Table{
		columns: make(map[string]*Series),
	}
}

// Add inserts a named series as a new column. The series must be named,
// must not collide with an existing column, and must match the table length
// once the first column has been added.
func (t *Table) Add(s *Series) error {
	if s.Name == "" {
		return errors.New("timeseries: cannot add unnamed series to table")
	}
	if _, ok := t.columns[s.Name]; ok {
		return fmt.Errorf("%w: %q", ErrColumnExists, s.Name)
	}
	if len(t.names) > 0 && s.Len() != t.Len() {
		return fmt.Errorf("%w: column %q has %d rows, table has %d",
			ErrLengthMismatch, s.Name, s.Len(), t.Len())
	}
	t.names = append(t.names, s.Name)
	t.columns[s.Name] = s
	return nil
}

// Column returns the series stored under name.
func (t *Table) Column(name string) (*Series, error) {
	s, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	return s, nil
}

// Has reports whether the table contains a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Len returns the number of rows in the table, zero when empty.
func (t *Table) Len() int {
	if len(t.names) == 0 {
		return 0
	}
	return t.columns[t.names[0]].Len()
}

// Width returns the number of columns in the table.
func (t *Table) Width() int {
	return len(t.names)
}

// Copy creates a deep copy of the table.
func (t *Table) Copy() *Table {
	out := NewTable()
	for _, name := range t.names {
		out.names = append(out.names, name)
		out.columns[name] = t.columns[name].Copy()
	}
	return out
}
