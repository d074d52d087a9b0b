package hiertab

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type specKind int

const (
	specNone specKind = iota
	specKey
	specLabels
	specGroups
)

// Spec selects keys of an Index: by full key, by labels only or by groups
// only. Use ByKey, ByLabels, ByGroups, Label or Group to build one.
//
// Label and group specs shorter than the index's level count match every
// key starting with them.
type Spec struct {
	kind   specKind
	key    Key
	labels []string
	groups []int64
}

func ByKey(k Key) Spec {
	return Spec{kind: specKey, key: k}
}

func ByLabels(labels ...string) Spec {
	return Spec{kind: specLabels, labels: slices.Clone(labels)}
}

func ByGroups(groups ...int64) Spec {
	return Spec{kind: specGroups, groups: slices.Clone(groups)}
}

// Label is ByLabels with a single label.
func Label(label string) Spec {
	return ByLabels(label)
}

// Group is ByGroups with a single group.
func Group(group int64) Spec {
	return ByGroups(group)
}

func (s Spec) String() string {
	var buf strings.Builder
	switch s.kind {
	case specKey:
		buf.WriteString("key ")
		buf.WriteString(s.key.String())
	case specLabels:
		buf.WriteString("labels ")
		for i, l := range s.labels {
			if i > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString(strconv.Quote(l))
		}
	case specGroups:
		buf.WriteString("groups ")
		for i, g := range s.groups {
			if i > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString(strconv.FormatInt(g, 10))
		}
	default:
		buf.WriteString("<empty spec>")
	}
	return buf.String()
}

// Locate returns the positions of all keys of idx matching s, in order.
//
// ByKey matches one key exactly. ByLabels and ByGroups match keys whose
// leading labels or groups equal the spec's, so a spec with fewer elements
// than idx has levels selects every key under that prefix. A spec with more
// elements than levels matches nothing.
func Locate(idx Index, s Spec) []int {
	switch s.kind {
	case specKey:
		return locateKey(idx, s.key)
	case specLabels:
		return locateLabels(idx, s.labels)
	case specGroups:
		return locateGroups(idx, s.groups)
	default:
		panic(fmt.Errorf("hiertab.Locate: %v", s))
	}
}

func locateKey(idx Index, k Key) []int {
	i, ok := idx.find(k)
	if !ok || !idx.keys[i].Equal(k) {
		return nil
	}
	return []int{i}
}

func locateLabels(idx Index, labels []string) []int {
	n := len(labels)
	if n == 0 || n > idx.levels {
		return nil
	}
	var result []int
	for i, k := range idx.keys {
		if slices.Equal(k.labels[:n], labels) {
			result = append(result, i)
		}
	}
	return result
}

func locateGroups(idx Index, groups []int64) []int {
	n := len(groups)
	if n == 0 || n > idx.levels {
		return nil
	}
	lo, hi := idx.searchPrefix(groups)
	if lo == hi {
		return nil
	}
	result := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		result = append(result, i)
	}
	return result
}

// Resolve finds the single row and the single column matching the specs.
func (t *Table) Resolve(row, col Spec) (int, int, error) {
	r, err := resolve(t.rows, RowAxis, row)
	if err != nil {
		return -1, -1, err
	}
	c, err := resolve(t.cols, ColAxis, col)
	if err != nil {
		return -1, -1, err
	}
	return r, c, nil
}

func resolve(idx Index, axis Axis, s Spec) (int, error) {
	pos := Locate(idx, s)
	if len(pos) != 1 {
		return -1, lookupErr(axis, s, len(pos))
	}
	return pos[0], nil
}

// Cell returns the value at the intersection of the row and the column
// matching the specs.
func (t *Table) Cell(row, col Spec) (any, error) {
	r, c, err := t.Resolve(row, col)
	if err != nil {
		return nil, err
	}
	return t.At(r, c), nil
}

// At returns the value at the given row and column positions.
func (t *Table) At(r, c int) any {
	k := t.rows.keys[r]
	v, ok := t.columns[c].Get(k)
	if !ok {
		panic(fmt.Errorf("internal error: column %v has no row %v", t.columns[c].identity, k))
	}
	return v
}
