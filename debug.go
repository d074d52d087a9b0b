package hiertab

import (
	"fmt"
	"strings"
)

type DumpFlags uint64

const (
	DumpHeader = DumpFlags(1 << iota)
	DumpStats
	DumpRowIndex
	DumpColIndex
	DumpCells

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders the table for debugging and tests. The format is not stable.
func (t *Table) Dump(f DumpFlags) string {
	var buf strings.Builder
	s := t.Stats()

	if f.Contains(DumpHeader) {
		fmt.Fprintln(&buf, dumpSep1)
		fmt.Fprintf(&buf, "table %dx%d (levels %d/%d)\n", s.Rows, s.Cols, s.RowLvls, s.ColLvls)
	}
	if f.Contains(DumpStats) {
		fmt.Fprintf(&buf, "stats: cells = %d, filled = %d, missing = %d\n", s.Cells, s.Filled(), s.Missing)
	}
	if f.Contains(DumpRowIndex) {
		dumpIndex(&buf, "rows", t.rows)
	}
	if f.Contains(DumpColIndex) {
		dumpIndex(&buf, "cols", t.cols)
	}
	if f.Contains(DumpCells) {
		for j, c := range t.columns {
			fmt.Fprintln(&buf, dumpSep2)
			fmt.Fprintf(&buf, "col.%d %v\n", j, c.identity)
			var rowPos int
			c.Each(func(row Key, v any) {
				rowPos++
				fmt.Fprintf(&buf, "  %d: %v = %s\n", rowPos, row, loggableVal(v))
			})
		}
	}
	return buf.String()
}

func dumpIndex(w *strings.Builder, name string, idx Index) {
	fmt.Fprintln(w, dumpSep2)
	fmt.Fprintf(w, "%s (%d)\n", name, idx.Len())
	for i, k := range idx.keys {
		fmt.Fprintf(w, "  %d: %v\n", i, k)
	}
}
