package hiertab

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Key identifies a row or a column: one (group, label) pair per level,
// outermost level first. Groups drive ordering, labels drive identity
// matching during merges.
//
// Keys are immutable. Methods that "change" a key return a new one that
// shares no memory with the receiver.
type Key struct {
	groups []int64
	labels []string
}

// NewKey panics if groups and labels differ in length.
func NewKey(groups []int64, labels []string) Key {
	if len(groups) != len(labels) {
		panic(fmt.Errorf("hiertab.NewKey: %d groups vs %d labels", len(groups), len(labels)))
	}
	return Key{slices.Clone(groups), slices.Clone(labels)}
}

// K is a shorthand for a single-level key.
func K(group int64, label string) Key {
	return Key{[]int64{group}, []string{label}}
}

// K2 is a shorthand for a two-level key.
func K2(g1 int64, l1 string, g2 int64, l2 string) Key {
	return Key{[]int64{g1, g2}, []string{l1, l2}}
}

func (k Key) Levels() int {
	return len(k.groups)
}

func (k Key) Group(level int) int64 {
	return k.groups[level]
}

func (k Key) Label(level int) string {
	return k.labels[level]
}

func (k Key) Groups() []int64 {
	return slices.Clone(k.groups)
}

func (k Key) Labels() []string {
	return slices.Clone(k.labels)
}

func (k Key) last() int {
	return len(k.groups) - 1
}

// WithGroups returns a copy of k with the groups replaced and labels kept.
func (k Key) WithGroups(groups []int64) Key {
	if len(groups) != len(k.groups) {
		panic(fmt.Errorf("WithGroups: %d groups for a %d-level key", len(groups), len(k.groups)))
	}
	return Key{slices.Clone(groups), slices.Clone(k.labels)}
}

// WithGroup returns a copy of k with the group at the given level replaced.
func (k Key) WithGroup(level int, group int64) Key {
	groups := slices.Clone(k.groups)
	groups[level] = group
	return Key{groups, slices.Clone(k.labels)}
}

// Prepend returns a copy of k with a new outermost level.
func (k Key) Prepend(group int64, label string) Key {
	groups := make([]int64, 0, len(k.groups)+1)
	groups = append(groups, group)
	groups = append(groups, k.groups...)
	labels := make([]string, 0, len(k.labels)+1)
	labels = append(labels, label)
	labels = append(labels, k.labels...)
	return Key{groups, labels}
}

func (k Key) Equal(another Key) bool {
	return slices.Equal(k.groups, another.groups) && slices.Equal(k.labels, another.labels)
}

// CompareGroups orders keys lexicographically by their groups. Labels are
// ignored, so keys in the same group compare equal.
func CompareGroups(a, b Key) int {
	return slices.Compare(a.groups, b.groups)
}

func LessGroups(a, b Key) bool {
	return CompareGroups(a, b) < 0
}

// comparePrefix compares the first n groups of k against prefix.
func (k Key) comparePrefix(prefix []int64) int {
	return slices.Compare(k.groups[:len(prefix)], prefix)
}

// String renders a key as (g1,l1)|(g2,l2).
func (k Key) String() string {
	if len(k.groups) == 0 {
		return "()"
	}
	var buf strings.Builder
	for i, g := range k.groups {
		if i > 0 {
			buf.WriteByte('|')
		}
		buf.WriteByte('(')
		buf.WriteString(strconv.FormatInt(g, 10))
		buf.WriteByte(',')
		buf.WriteString(strconv.Quote(k.labels[i]))
		buf.WriteByte(')')
	}
	return buf.String()
}
