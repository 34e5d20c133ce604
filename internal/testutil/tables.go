package testutil

import (
	"testing"

	"github.com/ethpandaops/qmerge/pkg/table"
	"github.com/stretchr/testify/require"
)

// Table builds a table from a header and rows, failing the test on error.
func Table(t *testing.T, header []string, rows ...[]string) *table.Table {
	t.Helper()

	tbl, err := table.FromRecords(header, rows)
	require.NoError(t, err)

	return tbl
}

// Column returns the values of a column, failing the test when it is absent.
func Column(t *testing.T, tbl *table.Table, name string) []string {
	t.Helper()

	col, ok := tbl.Column(name)
	require.True(t, ok, "column %s not found in %v", name, tbl.Columns())

	return col.Values
}

// Cell returns one cell, failing the test when the column is absent.
func Cell(t *testing.T, tbl *table.Table, row int, name string) string {
	t.Helper()

	value, ok := tbl.Get(row, name)
	require.True(t, ok, "cell %d/%s not found", row, name)

	return value
}
