package table

// Row is a view into one table row, addressable by column name.
type Row struct {
	table *Table
	index int
}

// Index returns the row position in its table.
func (r Row) Index() int {
	return r.index
}

// Has reports whether the underlying table has the named column.
func (r Row) Has(name string) bool {
	return r.table.Has(name)
}

// Get returns the named cell; ok is false when the column does not exist.
func (r Row) Get(name string) (value string, ok bool) {
	return r.table.Get(r.index, name)
}

// GetOr returns the named cell, or fallback when the column does not exist.
func (r Row) GetOr(name, fallback string) string {
	if value, ok := r.Get(name); ok {
		return value
	}

	return fallback
}
