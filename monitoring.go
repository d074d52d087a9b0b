package hiertab

import (
	"encoding/json"
	"fmt"
)

type TableStats struct {
	Rows    int
	Cols    int
	RowLvls int
	ColLvls int

	Cells   int
	Missing int
}

func (ts *TableStats) Filled() int {
	return ts.Cells - ts.Missing
}

func (t *Table) Stats() TableStats {
	result := TableStats{
		Rows:    t.rows.Len(),
		Cols:    t.cols.Len(),
		RowLvls: t.rows.levels,
		ColLvls: t.cols.levels,
	}
	for _, c := range t.columns {
		for _, it := range c.cells.items {
			result.Cells++
			if it.value == Missing {
				result.Missing++
			}
		}
	}
	return result
}

func loggableVal(v any) string {
	if v == nil {
		return "<nil>"
	}
	if v == Missing {
		return "<missing>"
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
