package hiertab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustIndex(t testing.TB, levels int, keys ...Key) Index {
	t.Helper()
	idx, err := NewIndex(levels, keys...)
	require.NoError(t, err)
	return idx
}

// testTable builds a table where cells[j][i] is the value of column j at
// row i.
func testTable(t testing.TB, rows, cols []Key, cells ...[]any) *Table {
	t.Helper()
	require.Len(t, cells, len(cols))
	rowIdx := mustIndex(t, rows[0].Levels(), rows...)
	colIdx := mustIndex(t, cols[0].Levels(), cols...)
	columns := make([]*Column, len(cols))
	for j, ck := range cols {
		require.Len(t, cells[j], len(rows))
		c := NewColumn(ck, rowIdx.Levels())
		for i, rk := range rows {
			require.NoError(t, c.Insert(rk, cells[j][i]))
		}
		columns[j] = c
	}
	tbl, err := NewTable(rowIdx, colIdx, columns...)
	require.NoError(t, err)
	return tbl
}

// singleColumn builds a one-column table with single-level keys.
func singleColumn(t testing.TB, col Key, rows []Key, vals ...any) *Table {
	t.Helper()
	return testTable(t, rows, []Key{col}, vals)
}

func fingerprint(t testing.TB, tbl *Table) uint64 {
	t.Helper()
	fp, err := tbl.Fingerprint()
	require.NoError(t, err)
	return fp
}

func cellAt(t testing.TB, tbl *Table, row, col Spec) any {
	t.Helper()
	v, err := tbl.Cell(row, col)
	require.NoError(t, err)
	return v
}

func keysOf(idx Index) []string {
	out := make([]string, idx.Len())
	for i, k := range idx.keys {
		out[i] = k.String()
	}
	return out
}
