// Package table holds the in-memory tabular model shared by the loader, the
// merge engine and the metric recalculator.
package table

import (
	"fmt"
	"strings"
)

// Column is a named sequence of cell values aligned by row index.
// An empty string is a null cell.
type Column struct {
	Name   string
	Values []string
}

// Table is an ordered set of uniquely named columns of equal length.
// Names are stored case-sensitively; LookupFold offers case-insensitive lookup.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New creates an empty table with the given column names and no rows.
func New(names ...string) (*Table, error) {
	t := &Table{index: make(map[string]int, len(names))}

	for _, name := range names {
		if err := t.AddColumn(name); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// FromRecords builds a table from a header and row records. Records shorter
// than the header are padded with null cells.
func FromRecords(header []string, records [][]string) (*Table, error) {
	t, err := New(header...)
	if err != nil {
		return nil, err
	}

	for i, record := range records {
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected %d", ErrRaggedRow, i+1, len(record), len(header))
		}

		for c, col := range t.columns {
			value := ""
			if c < len(record) {
				value = record[c]
			}
			col.Values = append(col.Values, value)
		}
	}

	t.rows = len(records)

	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}

	return names
}

// Has reports whether a column with exactly this name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the column with exactly this name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}

	return t.columns[i], true
}

// LookupFold returns the first column, in table order, whose name equals
// name under case folding.
func (t *Table) LookupFold(name string) (string, bool) {
	for _, col := range t.columns {
		if strings.EqualFold(col.Name, name) {
			return col.Name, true
		}
	}

	return "", false
}

// AddColumn appends a column of null cells.
func (t *Table) AddColumn(name string) error {
	if _, exists := t.index[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
	}

	t.index[name] = len(t.columns)
	t.columns = append(t.columns, &Column{
		Name:   name,
		Values: make([]string, t.rows),
	})

	return nil
}

// SetColumn replaces the values of an existing column, or appends a new
// column when name is absent.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != t.rows {
		return fmt.Errorf("%w: column %s has %d values, table has %d rows", ErrLengthMismatch, name, len(values), t.rows)
	}

	if col, ok := t.Column(name); ok {
		col.Values = values
		return nil
	}

	if err := t.AddColumn(name); err != nil {
		return err
	}
	t.columns[t.index[name]].Values = values

	return nil
}

// Get returns the cell at row i of the named column.
func (t *Table) Get(i int, name string) (string, bool) {
	col, ok := t.Column(name)
	if !ok || i < 0 || i >= t.rows {
		return "", false
	}

	return col.Values[i], true
}

// Set writes the cell at row i of the named column.
func (t *Table) Set(i int, name, value string) error {
	col, ok := t.Column(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	if i < 0 || i >= t.rows {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}

	col.Values[i] = value

	return nil
}

// Row returns a view of row i.
func (t *Table) Row(i int) Row {
	return Row{table: t, index: i}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		columns: make([]*Column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
		rows:    t.rows,
	}

	for i, col := range t.columns {
		values := make([]string, len(col.Values))
		copy(values, col.Values)
		out.columns[i] = &Column{Name: col.Name, Values: values}
		out.index[col.Name] = i
	}

	return out
}

// Record returns row i as a slice in column order.
func (t *Table) Record(i int) []string {
	record := make([]string, len(t.columns))
	for c, col := range t.columns {
		record[c] = col.Values[i]
	}

	return record
}
