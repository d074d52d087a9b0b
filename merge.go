package hiertab

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Merger stacks tables. A Merger holds only configuration and is safe for
// concurrent use.
type Merger struct {
	logger      *slog.Logger
	verbose     bool
	fill        any
	copy        CopyMode
	parallelism int
	strict      bool
}

func NewMerger(opt Options) *Merger {
	opt = opt.withDefaults()
	return &Merger{
		logger:      opt.Logger,
		verbose:     opt.Verbose,
		fill:        opt.Fill,
		copy:        opt.Copy,
		parallelism: opt.Parallelism,
		strict:      opt.Strict,
	}
}

// ConcatRows stacks tables vertically with default options.
func ConcatRows(tables ...*Table) (*Table, error) {
	return NewMerger(Options{}).ConcatRows(tables...)
}

// ConcatCols stacks tables horizontally with default options.
func ConcatCols(tables ...*Table) (*Table, error) {
	return NewMerger(Options{}).ConcatCols(tables...)
}

// ConcatRows stacks tables vertically, folding from the left.
//
// Each table's row groups are shifted above those of everything stacked
// before it, so rows never merge. Columns with the same key labels merge;
// other columns are added, and cells they have no value for get the fill
// value.
//
// The result depends on the order of the tables: renumbering is decided one
// pair at a time.
func (m *Merger) ConcatRows(tables ...*Table) (*Table, error) {
	return m.reduce("concat rows", tables, m.concatRows)
}

// ConcatCols stacks tables horizontally, folding from the left.
//
// Each table's column groups are shifted above those of everything stacked
// before it. Rows with the same key labels merge; other rows are added, and
// cells they have no value for get the fill value.
func (m *Merger) ConcatCols(tables ...*Table) (*Table, error) {
	return m.reduce("concat cols", tables, m.concatCols)
}

func (m *Merger) reduce(op string, tables []*Table, f func(t1, t2 *Table) (*Table, error)) (*Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%s: no tables", op)
	}
	for i, t := range tables[1:] {
		if err := checkShape(op, tables[0], t); err != nil {
			return nil, fmt.Errorf("table %d: %w", i+1, err)
		}
	}
	if len(tables) == 1 {
		return tables[0].cloneWith(m.copy)
	}

	acc := tables[0]
	for i, t := range tables[1:] {
		next, err := f(acc, t)
		if err != nil {
			return nil, fmt.Errorf("%s: table %d: %w", op, i+1, err)
		}
		if m.strict {
			if err := next.Validate(); err != nil {
				return nil, fmt.Errorf("%s: table %d: %w", op, i+1, err)
			}
		}
		acc = next
	}
	return acc, nil
}

func checkShape(op string, t1, t2 *Table) error {
	if t1.rows.levels != t2.rows.levels {
		return shapeErr(op, RowAxis, t1.rows.levels, t2.rows.levels)
	}
	if t1.cols.levels != t2.cols.levels {
		return shapeErr(op, ColAxis, t1.cols.levels, t2.cols.levels)
	}
	return nil
}

// shiftFor returns the amount to add to b's outermost groups to put them
// above all of a's.
func shiftFor(a, b Index) int64 {
	_, aMax, ok1 := a.topGroups()
	bMin, _, ok2 := b.topGroups()
	if !ok1 || !ok2 {
		return 0
	}
	return aMax - bMin + 1
}

type contribution struct {
	src *Column
	dst *Column
}

func (m *Merger) concatRows(t1, t2 *Table) (*Table, error) {
	if err := checkShape("concat rows", t1, t2); err != nil {
		return nil, err
	}

	shift := shiftFor(t1.rows, t2.rows)
	shifted, rowMap := t2.rows.shiftTop(shift)
	m.logger.Debug("concat rows", "shift", shift, "rows1", t1.rows.Len(), "rows2", t2.rows.Len(), "cols1", t1.cols.Len(), "cols2", t2.cols.Len())

	rows := Index{t1.rows.levels, make([]Key, 0, t1.rows.Len()+shifted.Len())}
	rows.keys = append(rows.keys, t1.rows.keys...)
	rows.keys = append(rows.keys, shifted.keys...)

	columns, err := cloneColumns(t1.columns, m.copy)
	if err != nil {
		return nil, err
	}
	incoming, err := cloneColumns(t2.columns, m.copy)
	if err != nil {
		return nil, err
	}

	cols := t1.cols.Clone()
	var merges []contribution
	taken := make(map[*Column]bool, len(incoming))
	for _, c := range incoming {
		if err := c.Rekey(rowMap); err != nil {
			return nil, err
		}
		k, pos, inserted, err := cols.insert(ColAxis, c.identity)
		if err != nil {
			return nil, err
		}
		if inserted {
			if m.verbose {
				m.logger.Debug("column added", "key", c.identity, "as", k, "pos", pos)
			}
			c.Relabel(k)
			columns = slices.Insert(columns, pos, c)
			taken[c] = true
			continue
		}
		dst := columns[pos]
		if taken[dst] {
			return nil, indexErrf(ColAxis, c.identity, pos, ErrAmbiguousKey, "more than one column merges into %v", dst.identity)
		}
		taken[dst] = true
		if m.verbose {
			m.logger.Debug("column merged", "key", c.identity, "into", k, "pos", pos)
		}
		merges = append(merges, contribution{c, dst})
	}

	if err := m.mergeCells(merges); err != nil {
		return nil, err
	}
	for _, c := range columns {
		c.fill(rows, m.fill)
	}

	m.logger.Debug("concat rows done", "rows", rows.Len(), "cols", cols.Len(), "merged", len(merges))
	return &Table{columns, rows, cols}, nil
}

func (m *Merger) concatCols(t1, t2 *Table) (*Table, error) {
	if err := checkShape("concat cols", t1, t2); err != nil {
		return nil, err
	}

	shift := shiftFor(t1.cols, t2.cols)
	shifted, colMap := t2.cols.shiftTop(shift)
	m.logger.Debug("concat cols", "shift", shift, "rows1", t1.rows.Len(), "rows2", t2.rows.Len(), "cols1", t1.cols.Len(), "cols2", t2.cols.Len())

	cols := Index{t1.cols.levels, make([]Key, 0, t1.cols.Len()+shifted.Len())}
	cols.keys = append(cols.keys, t1.cols.keys...)
	cols.keys = append(cols.keys, shifted.keys...)

	rows := t1.rows.Clone()
	rowMap := make(map[string]Key, t2.rows.Len())
	targets := make(map[string]Key, t2.rows.Len())
	var added int
	for _, k := range t2.rows.keys {
		nk, pos, inserted, err := rows.insert(RowAxis, k)
		if err != nil {
			return nil, err
		}
		ns := keyString(nk)
		if prev, dup := targets[ns]; dup {
			return nil, indexErrf(RowAxis, k, pos, ErrAmbiguousKey, "rows %v and %v both merge into %v", prev, k, nk)
		}
		targets[ns] = k
		rowMap[keyString(k)] = nk
		if inserted {
			added++
		}
		if m.verbose {
			m.logger.Debug("row relabeled", "key", k, "as", nk, "pos", pos, "inserted", inserted)
		}
	}

	columns, err := cloneColumns(t1.columns, m.copy)
	if err != nil {
		return nil, err
	}
	incoming, err := cloneColumns(t2.columns, m.copy)
	if err != nil {
		return nil, err
	}
	for _, c := range incoming {
		if err := c.Rekey(rowMap); err != nil {
			return nil, err
		}
		c.Relabel(colMap[keyString(c.identity)])
	}
	columns = append(columns, incoming...)
	for _, c := range columns {
		c.fill(rows, m.fill)
	}

	m.logger.Debug("concat cols done", "rows", rows.Len(), "cols", cols.Len(), "rows_added", added)
	return &Table{columns, rows, cols}, nil
}

func cloneColumns(columns []*Column, mode CopyMode) ([]*Column, error) {
	out := make([]*Column, len(columns))
	for i, c := range columns {
		cc, err := c.cloneWith(mode)
		if err != nil {
			return nil, err
		}
		out[i] = cc
	}
	return out, nil
}

// mergeCells moves the cells of every contribution into its destination.
// Destinations are distinct, so contributions may run concurrently.
func (m *Merger) mergeCells(merges []contribution) error {
	if m.parallelism <= 1 || len(merges) < 2 {
		for _, mc := range merges {
			if err := mergeColumnCells(mc.dst, mc.src); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(m.parallelism)
	for _, mc := range merges {
		g.Go(func() error {
			return mergeColumnCells(mc.dst, mc.src)
		})
	}
	return g.Wait()
}

func mergeColumnCells(dst, src *Column) error {
	d, s := dst.cells, src.cells
	if s.len() == 0 {
		return nil
	}
	if d.len() == 0 || bytes.Compare(d.items[d.len()-1].key, s.items[0].key) < 0 {
		d.items = append(d.items, s.items...)
		return nil
	}
	for _, it := range s.items {
		if _, ok := d.find(it.key); ok {
			return indexErrf(RowAxis, mustDecodeKey(it.key), -1, ErrIndexCorruption, "column %v already has the row", dst.identity)
		}
		d.put(it.key, it.value)
	}
	return nil
}
