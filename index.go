package hiertab

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Index is one axis of a Table: a sequence of keys with the same number of
// levels, sorted by CompareGroups, with pairwise distinct group tuples.
//
// Index values are cheap to pass around. Insert is the only mutating method;
// everything else returns a new Index.
type Index struct {
	levels int
	keys   []Key
}

// NewIndex builds and validates an index. Keys must already be sorted.
func NewIndex(levels int, keys ...Key) (Index, error) {
	if levels < 1 {
		panic(fmt.Errorf("hiertab.NewIndex: invalid level count %d", levels))
	}
	idx := Index{levels, slices.Clone(keys)}
	if err := idx.validate(noAxis); err != nil {
		return Index{}, err
	}
	return idx, nil
}

func (idx Index) Len() int {
	return len(idx.keys)
}

func (idx Index) Levels() int {
	return idx.levels
}

func (idx Index) At(i int) Key {
	return idx.keys[i]
}

// Keys returns a copy of the key list.
func (idx Index) Keys() []Key {
	return slices.Clone(idx.keys)
}

func (idx Index) Clone() Index {
	return Index{idx.levels, slices.Clone(idx.keys)}
}

// Validate checks the level count of every key and that group tuples are
// strictly increasing.
func (idx Index) Validate() error {
	return idx.validate(noAxis)
}

func (idx Index) validate(axis Axis) error {
	for i, k := range idx.keys {
		if k.Levels() != idx.levels {
			return indexErrf(axis, k, i, ErrShapeMismatch, "key has %d levels, index has %d", k.Levels(), idx.levels)
		}
		if i > 0 && CompareGroups(idx.keys[i-1], k) >= 0 {
			return indexErrf(axis, k, i, ErrIndexCorruption, "groups not strictly increasing after %v", idx.keys[i-1])
		}
	}
	return nil
}

// searchPrefix returns the range of keys whose leading groups equal prefix.
func (idx Index) searchPrefix(prefix []int64) (lo, hi int) {
	keys := idx.keys
	lo = sort.Search(len(keys), func(i int) bool {
		return keys[i].comparePrefix(prefix) >= 0
	})
	hi = lo + sort.Search(len(keys)-lo, func(i int) bool {
		return keys[lo+i].comparePrefix(prefix) > 0
	})
	return lo, hi
}

// find returns the position of the key with exactly k's groups.
func (idx Index) find(k Key) (int, bool) {
	if k.Levels() != idx.levels {
		return -1, false
	}
	lo, hi := idx.searchPrefix(k.groups)
	if lo == hi {
		return lo, false
	}
	return lo, true
}

// Insert merges a candidate key from another index into idx.
//
// The candidate's siblings are the keys sharing all its groups but the last.
// With no siblings, the candidate goes in unchanged at its sorted position.
// If a sibling has the candidate's last-level label, nothing is inserted and
// the sibling is reported. Otherwise the candidate is renumbered to one past
// the largest sibling group and inserted right after the siblings.
//
// Insert returns the key the candidate now lives under, its position, and
// whether a new entry was added.
func (idx *Index) Insert(cand Key) (Key, int, bool, error) {
	return idx.insert(noAxis, cand)
}

func (idx *Index) insert(axis Axis, cand Key) (Key, int, bool, error) {
	if cand.Levels() != idx.levels {
		return Key{}, -1, false, shapeErr("insert", axis, idx.levels, cand.Levels())
	}
	last := idx.levels - 1
	lo, hi := idx.searchPrefix(cand.groups[:last])
	if lo == hi {
		idx.keys = slices.Insert(idx.keys, lo, cand)
		return cand, lo, true, nil
	}

	label := cand.labels[last]
	match := -1
	maxGroup := idx.keys[lo].groups[last]
	for i := lo; i < hi; i++ {
		k := idx.keys[i]
		if i > lo && k.groups[last] <= idx.keys[i-1].groups[last] {
			return Key{}, -1, false, indexErrf(axis, k, i, ErrIndexCorruption, "sibling groups not strictly increasing")
		}
		maxGroup = max(maxGroup, k.groups[last])
		if k.labels[last] == label {
			if match >= 0 {
				return Key{}, -1, false, indexErrf(axis, cand, -1, ErrAmbiguousKey, "label %q matches siblings at %d and %d", label, match, i)
			}
			match = i
		}
	}
	if match >= 0 {
		return idx.keys[match], match, false, nil
	}

	k := cand.WithGroup(last, maxGroup+1)
	idx.keys = slices.Insert(idx.keys, hi, k)
	return k, hi, true, nil
}

// topGroups returns the smallest and largest outermost groups.
func (idx Index) topGroups() (lo, hi int64, ok bool) {
	if len(idx.keys) == 0 {
		return 0, 0, false
	}
	return idx.keys[0].groups[0], idx.keys[len(idx.keys)-1].groups[0], true
}

// rekey applies f to every key, returning the new index and the old-to-new
// mapping keyed by encoded old key. f must preserve the order of keys.
func (idx Index) rekey(levels int, f func(Key) Key) (Index, map[string]Key) {
	out := Index{levels, make([]Key, len(idx.keys))}
	m := make(map[string]Key, len(idx.keys))
	for i, k := range idx.keys {
		nk := f(k)
		out.keys[i] = nk
		m[keyString(k)] = nk
	}
	return out, m
}

// shiftTop adds shift to the outermost group of every key.
func (idx Index) shiftTop(shift int64) (Index, map[string]Key) {
	return idx.rekey(idx.levels, func(k Key) Key {
		return k.WithGroup(0, k.groups[0]+shift)
	})
}

// AddLevel prepends a (group, label) level to every key. The returned map
// translates encoded old keys into new ones, for rekeying dependent data.
func (idx Index) AddLevel(group int64, label string) (Index, map[string]Key) {
	return idx.rekey(idx.levels+1, func(k Key) Key {
		return k.Prepend(group, label)
	})
}

func (idx Index) String() string {
	var buf strings.Builder
	buf.WriteByte('[')
	for i, k := range idx.keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(k.String())
	}
	buf.WriteByte(']')
	return buf.String()
}
