package hiertab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumn_Basics(t *testing.T) {
	c := NewColumn(K(1, "x"), 1)
	require.NoError(t, c.Insert(K(2, "b"), "B"))
	require.NoError(t, c.Insert(K(1, "a"), "A"))
	require.NoError(t, c.Insert(K(-4, "z"), "Z"))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []Key{K(-4, "z"), K(1, "a"), K(2, "b")}, c.Keys())

	v, ok := c.Get(K(1, "a"))
	assert.True(t, ok)
	assert.Equal(t, "A", v)

	_, ok = c.Get(K(1, "other"))
	assert.False(t, ok, "labels are part of the row key")

	require.NoError(t, c.Insert(K(1, "a"), "A2"))
	v, _ = c.Get(K(1, "a"))
	assert.Equal(t, "A2", v)
	assert.Equal(t, 3, c.Len())

	v, err := c.Pop(K(2, "b"))
	require.NoError(t, err)
	assert.Equal(t, "B", v)
	_, err = c.Pop(K(2, "b"))
	assert.ErrorIs(t, err, ErrKeyNotFound)

	err = c.Insert(K2(1, "a", 1, "b"), "bad")
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestColumn_Relabel(t *testing.T) {
	c := NewColumn(K(1, "x"), 1)
	c.Relabel(K(5, "x"))
	assert.Equal(t, K(5, "x"), c.Identity())
}

func TestColumn_CloneIsIndependent(t *testing.T) {
	c := NewColumn(K(1, "x"), 1)
	require.NoError(t, c.Insert(K(1, "a"), 1))

	cc := c.Clone()
	require.NoError(t, cc.Insert(K(2, "b"), 2))
	cc.Relabel(K(9, "y"))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, K(1, "x"), c.Identity())
	assert.Equal(t, 2, cc.Len())
}

func TestColumn_RekeySwapsInOnePass(t *testing.T) {
	c := NewColumn(K(1, "x"), 1)
	require.NoError(t, c.Insert(K(1, "a"), "A"))
	require.NoError(t, c.Insert(K(2, "b"), "B"))

	// a and b trade groups; a pop-then-insert relabel would trip over the
	// not yet moved row
	err := c.Rekey(map[string]Key{
		keyString(K(1, "a")): K(2, "a"),
		keyString(K(2, "b")): K(1, "b"),
	})
	require.NoError(t, err)
	assert.Equal(t, []Key{K(1, "b"), K(2, "a")}, c.Keys())
	v, _ := c.Get(K(2, "a"))
	assert.Equal(t, "A", v)
}

func TestColumn_RekeyCollision(t *testing.T) {
	c := NewColumn(K(1, "x"), 1)
	require.NoError(t, c.Insert(K(1, "a"), "A"))
	require.NoError(t, c.Insert(K(2, "b"), "B"))

	err := c.Rekey(map[string]Key{keyString(K(1, "a")): K(2, "b")})
	assert.ErrorIs(t, err, ErrIndexCorruption)
	assert.Equal(t, []Key{K(1, "a"), K(2, "b")}, c.Keys(), "failed rekey must leave the column alone")
}

func TestColumn_Fill(t *testing.T) {
	c := NewColumn(K(1, "x"), 1)
	require.NoError(t, c.Insert(K(2, "b"), "B"))
	c.fill(mustIndex(t, 1, K(1, "a"), K(2, "b"), K(3, "c")), Missing)

	assert.Equal(t, 3, c.Len())
	v, _ := c.Get(K(1, "a"))
	assert.Equal(t, Missing, v)
	v, _ = c.Get(K(2, "b"))
	assert.Equal(t, "B", v)
	assert.True(t, c.coversExactly(mustIndex(t, 1, K(1, "a"), K(2, "b"), K(3, "c"))))
	assert.False(t, c.coversExactly(mustIndex(t, 1, K(1, "a"), K(2, "b"), K(3, "d"))))
}

func TestColumn_Each(t *testing.T) {
	c := NewColumn(K(1, "x"), 1)
	require.NoError(t, c.Insert(K(2, "b"), "B"))
	require.NoError(t, c.Insert(K(1, "a"), "A"))

	var got []string
	c.Each(func(row Key, v any) {
		got = append(got, row.Label(0)+"="+v.(string))
	})
	assert.Equal(t, []string{"a=A", "b=B"}, got)
}
