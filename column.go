package hiertab

import (
	"bytes"
	"fmt"
	"slices"
)

// Missing is the value merges put into cells that neither input table had.
var Missing any = missingValue{}

type missingValue struct{}

func (missingValue) String() string { return "<missing>" }

// Column maps row keys to opaque values and carries its own column key.
// A Column belongs to at most one Table; merges clone columns instead of
// sharing them.
type Column struct {
	identity  Key
	rowLevels int
	cells     *cellStore
}

func NewColumn(identity Key, rowLevels int) *Column {
	if rowLevels < 1 {
		panic(fmt.Errorf("hiertab.NewColumn: invalid row level count %d", rowLevels))
	}
	return &Column{identity, rowLevels, &cellStore{}}
}

func (c *Column) Identity() Key {
	return c.identity
}

func (c *Column) RowLevels() int {
	return c.rowLevels
}

func (c *Column) Len() int {
	return c.cells.len()
}

func (c *Column) Get(row Key) (any, bool) {
	raw := pooledKey(row)
	defer releaseKeyBytes(raw)
	return c.cells.get(raw)
}

// Pop removes and returns the value stored under row.
func (c *Column) Pop(row Key) (any, error) {
	raw := pooledKey(row)
	defer releaseKeyBytes(raw)
	v, ok := c.cells.pop(raw)
	if !ok {
		return nil, fmt.Errorf("column %v: row %v: %w", c.identity, row, ErrKeyNotFound)
	}
	return v, nil
}

// Insert stores a value under row, replacing any previous value.
func (c *Column) Insert(row Key, v any) error {
	if row.Levels() != c.rowLevels {
		return shapeErr("column insert", RowAxis, c.rowLevels, row.Levels())
	}
	raw := pooledKey(row)
	c.cells.put(raw, v)
	releaseKeyBytes(raw)
	return nil
}

// Relabel changes the column's own key.
func (c *Column) Relabel(identity Key) {
	c.identity = identity
}

// Keys returns the row keys in row order.
func (c *Column) Keys() []Key {
	keys := make([]Key, 0, c.cells.len())
	cur := c.cells.cursor()
	for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
		keys = append(keys, mustDecodeKey(k))
	}
	return keys
}

// Each calls f for every cell in row order.
func (c *Column) Each(f func(row Key, v any)) {
	cur := c.cells.cursor()
	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		f(mustDecodeKey(k), v)
	}
}

// Clone returns an independent copy of the column. Values are shared unless
// they implement Cloner.
func (c *Column) Clone() *Column {
	return must(c.cloneWith(CopyShallow))
}

func (c *Column) cloneWith(mode CopyMode) (*Column, error) {
	out := &Column{c.identity, c.rowLevels, c.cells.clone()}
	for i := range out.cells.items {
		v, err := copyValue(out.cells.items[i].value, mode)
		if err != nil {
			return nil, fmt.Errorf("column %v: %w", c.identity, err)
		}
		out.cells.items[i].value = v
	}
	return out, nil
}

// Rekey renames row keys in one pass using a map from encoded old keys to
// new keys. Rows absent from the map keep their keys. Renaming happens all
// at once, so a row may take over a key that another row is leaving.
func (c *Column) Rekey(m map[string]Key) error {
	if len(m) == 0 {
		return nil
	}
	items := make([]cell, len(c.cells.items))
	var levels int
	for i, it := range c.cells.items {
		if nk, ok := m[string(it.key)]; ok {
			items[i] = cell{encodeKey(nil, nk), it.value}
			levels = nk.Levels()
		} else {
			items[i] = it
		}
	}
	slices.SortFunc(items, func(a, b cell) int {
		return bytes.Compare(a.key, b.key)
	})
	for i := 1; i < len(items); i++ {
		if bytes.Equal(items[i-1].key, items[i].key) {
			k := mustDecodeKey(items[i].key)
			return indexErrf(RowAxis, k, i, ErrIndexCorruption, "column %v: rekeyed rows collide", c.identity)
		}
	}
	c.cells.items = items
	if levels != 0 {
		c.rowLevels = levels
	}
	return nil
}

// fill stores v under every key of rows the column has no value for.
func (c *Column) fill(rows Index, v any) {
	if c.cells.len() == rows.Len() {
		return
	}
	raw := keyBytesPool.Get().([]byte)
	for _, k := range rows.keys {
		raw = encodeKey(raw[:0], k)
		if _, ok := c.cells.find(raw); !ok {
			c.cells.put(raw, v)
		}
	}
	releaseKeyBytes(raw)
}

// coversExactly reports whether the column's rows are exactly those of idx.
func (c *Column) coversExactly(idx Index) bool {
	if c.cells.len() != idx.Len() {
		return false
	}
	raw := keyBytesPool.Get().([]byte)
	defer func() { releaseKeyBytes(raw) }()
	for i, it := range c.cells.items {
		raw = encodeKey(raw[:0], idx.keys[i])
		if !bytes.Equal(raw, it.key) {
			return false
		}
	}
	return true
}
