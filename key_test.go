package hiertab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Accessors(t *testing.T) {
	k := NewKey([]int64{1, 7}, []string{"g", "x"})
	assert.Equal(t, 2, k.Levels())
	assert.Equal(t, int64(7), k.Group(1))
	assert.Equal(t, "g", k.Label(0))
	assert.Equal(t, []int64{1, 7}, k.Groups())
	assert.Equal(t, []string{"g", "x"}, k.Labels())
	assert.True(t, k.Equal(K2(1, "g", 7, "x")))
	assert.False(t, k.Equal(K2(1, "g", 7, "y")))
	assert.False(t, k.Equal(K(1, "g")))
}

func TestNewKey_PanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() { NewKey([]int64{1, 2}, []string{"a"}) })
}

func TestKey_UpdatesDoNotAlias(t *testing.T) {
	groups := []int64{1, 2}
	k := NewKey(groups, []string{"a", "b"})
	groups[0] = 100
	assert.Equal(t, int64(1), k.Group(0), "NewKey must copy its inputs")

	k2 := k.WithGroup(1, 9)
	assert.Equal(t, "(1,\"a\")|(2,\"b\")", k.String())
	assert.Equal(t, "(1,\"a\")|(9,\"b\")", k2.String())

	k3 := k.WithGroups([]int64{5, 6})
	assert.Equal(t, []string{"a", "b"}, k3.Labels())
	assert.Equal(t, []int64{1, 2}, k.Groups())

	got := k.Groups()
	got[0] = 42
	assert.Equal(t, int64(1), k.Group(0))

	assert.Panics(t, func() { k.WithGroups([]int64{1}) })
}

func TestKey_Prepend(t *testing.T) {
	k := K(3, "x").Prepend(1, "top")
	assert.Equal(t, K2(1, "top", 3, "x"), k)
	assert.Equal(t, 1, K(3, "x").Levels())
}

func TestCompareGroups(t *testing.T) {
	tests := []struct {
		a, b     Key
		expected int
	}{
		{K(1, "a"), K(2, "a"), -1},
		{K(2, "a"), K(1, "z"), 1},
		{K(1, "a"), K(1, "b"), 0},
		{K2(1, "a", 5, "x"), K2(2, "a", 1, "x"), -1},
		{K2(1, "a", 5, "x"), K2(1, "a", 4, "x"), 1},
		{K(-3, "a"), K(2, "a"), -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CompareGroups(tt.a, tt.b), "CompareGroups(%v, %v)", tt.a, tt.b)
		assert.Equal(t, tt.expected < 0, LessGroups(tt.a, tt.b), "LessGroups(%v, %v)", tt.a, tt.b)
	}
}

func TestKey_String(t *testing.T) {
	require.Equal(t, "()", Key{}.String())
	require.Equal(t, `(1,"a b")`, K(1, "a b").String())
}
