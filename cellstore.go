package hiertab

import (
	"bytes"
	"slices"
	"sort"
)

// cellStore is a sorted in-memory mapping from encoded row keys to values.
// Encoded keys sort like CompareGroups, so iteration follows row order.
type cellStore struct {
	items []cell // sorted by key
}

type cell struct {
	key   []byte
	value any
}

// clone copies the key bytes and the cell slots; values are shared.
func (s *cellStore) clone() *cellStore {
	if s == nil {
		return nil
	}
	out := &cellStore{items: make([]cell, len(s.items))}
	for i, c := range s.items {
		out.items[i] = cell{
			key:   slices.Clone(c.key),
			value: c.value,
		}
	}
	return out
}

func (s *cellStore) len() int { return len(s.items) }

func (s *cellStore) get(key []byte) (any, bool) {
	i, ok := s.find(key)
	if !ok {
		return nil, false
	}
	return s.items[i].value, true
}

func (s *cellStore) put(key []byte, value any) {
	i, ok := s.find(key)
	if ok {
		s.items[i].value = value
		return
	}
	s.items = slices.Insert(s.items, i, cell{key: slices.Clone(key), value: value})
}

func (s *cellStore) pop(key []byte) (any, bool) {
	i, ok := s.find(key)
	if !ok {
		return nil, false
	}
	v := s.items[i].value
	s.items = slices.Delete(s.items, i, i+1)
	return v, true
}

func (s *cellStore) find(key []byte) (idx int, ok bool) {
	items := s.items
	i := sort.Search(len(items), func(i int) bool {
		return bytes.Compare(items[i].key, key) >= 0
	})
	if i < len(items) && bytes.Equal(items[i].key, key) {
		return i, true
	}
	return i, false
}

func (s *cellStore) cursor() *cellCursor {
	return &cellCursor{s: s, pos: -1}
}

type cellCursor struct {
	s   *cellStore
	pos int
}

func (c *cellCursor) First() ([]byte, any) {
	c.pos = 0
	if len(c.s.items) == 0 {
		return nil, nil
	}
	kv := c.s.items[c.pos]
	return kv.key, kv.value
}

func (c *cellCursor) Next() ([]byte, any) {
	if c.pos < 0 {
		return c.First()
	}
	c.pos++
	if c.pos >= len(c.s.items) {
		return nil, nil
	}
	kv := c.s.items[c.pos]
	return kv.key, kv.value
}
