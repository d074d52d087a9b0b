package hiertab

import (
	"fmt"
)

// Table is a set of columns over a shared row index, with a column index
// naming the columns. For every j, columns[j] is identified by cols.At(j),
// and every column has a value (possibly Missing) for every row key.
//
// Tables are never modified after construction. Merges and level changes
// produce new tables.
type Table struct {
	columns []*Column
	rows    Index
	cols    Index
}

// FromColumn wraps a copy of a single column into a table.
func FromColumn(c *Column) (*Table, error) {
	if c.identity.Levels() < 1 {
		return nil, fmt.Errorf("hiertab.FromColumn: column key %v has no levels", c.identity)
	}
	rows := Index{c.rowLevels, c.Keys()}
	if err := rows.validate(RowAxis); err != nil {
		return nil, err
	}
	cols := Index{c.identity.Levels(), []Key{c.identity}}
	return &Table{[]*Column{c.Clone()}, rows, cols}, nil
}

// NewTable builds a table from copies of the given columns and validates it.
func NewTable(rows, cols Index, columns ...*Column) (*Table, error) {
	t := &Table{make([]*Column, len(columns)), rows.Clone(), cols.Clone()}
	for j, c := range columns {
		t.columns[j] = c.Clone()
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks both indexes and the column/index consistency.
func (t *Table) Validate() error {
	if err := t.rows.validate(RowAxis); err != nil {
		return err
	}
	if err := t.cols.validate(ColAxis); err != nil {
		return err
	}
	if len(t.columns) != t.cols.Len() {
		return indexErrf(ColAxis, Key{}, -1, ErrIndexCorruption, "%d columns for %d column keys", len(t.columns), t.cols.Len())
	}
	for j, c := range t.columns {
		if !c.identity.Equal(t.cols.keys[j]) {
			return indexErrf(ColAxis, c.identity, j, ErrIndexCorruption, "column identity differs from index key %v", t.cols.keys[j])
		}
		if c.rowLevels != t.rows.levels {
			return indexErrf(RowAxis, c.identity, j, ErrShapeMismatch, "column has %d row levels, table has %d", c.rowLevels, t.rows.levels)
		}
		if !c.coversExactly(t.rows) {
			return indexErrf(RowAxis, c.identity, j, ErrIndexCorruption, "column rows differ from the row index")
		}
	}
	return nil
}

// Rows returns the row index.
func (t *Table) Rows() Index {
	return t.rows.Clone()
}

// Cols returns the column index.
func (t *Table) Cols() Index {
	return t.cols.Clone()
}

func (t *Table) NumRows() int {
	return t.rows.Len()
}

func (t *Table) NumCols() int {
	return t.cols.Len()
}

// RowLevels is the level count N of row keys.
func (t *Table) RowLevels() int {
	return t.rows.levels
}

// ColLevels is the level count M of column keys.
func (t *Table) ColLevels() int {
	return t.cols.levels
}

// Column returns a copy of the j-th column.
func (t *Table) Column(j int) *Column {
	return t.columns[j].Clone()
}

// SetCell always fails. Tables are immutable; build a new one instead.
func (t *Table) SetCell(row, col Spec, v any) error {
	return fmt.Errorf("SetCell(%v, %v): %w", row, col, ErrUnsupported)
}

func (t *Table) Clone() *Table {
	return must(t.cloneWith(CopyShallow))
}

func (t *Table) cloneWith(mode CopyMode) (*Table, error) {
	out := &Table{make([]*Column, len(t.columns)), t.rows.Clone(), t.cols.Clone()}
	for j, c := range t.columns {
		cc, err := c.cloneWith(mode)
		if err != nil {
			return nil, err
		}
		out.columns[j] = cc
	}
	return out, nil
}

// AddRowLevel returns a table whose row keys gain a new outermost level.
func (t *Table) AddRowLevel(group int64, label string) *Table {
	rows, m := t.rows.AddLevel(group, label)
	out := &Table{make([]*Column, len(t.columns)), rows, t.cols.Clone()}
	for j, c := range t.columns {
		c = c.Clone()
		ensure(c.Rekey(m))
		c.rowLevels = rows.levels
		out.columns[j] = c
	}
	return out
}

// AddColLevel returns a table whose column keys gain a new outermost level.
func (t *Table) AddColLevel(group int64, label string) *Table {
	cols, m := t.cols.AddLevel(group, label)
	out := &Table{make([]*Column, len(t.columns)), t.rows.Clone(), cols}
	for j, c := range t.columns {
		c = c.Clone()
		c.Relabel(m[keyString(c.identity)])
		out.columns[j] = c
	}
	return out
}
