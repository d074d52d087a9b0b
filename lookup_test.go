package hiertab

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	idx := mustIndex(t, 2,
		K2(1, "g", 1, "a"),
		K2(1, "g", 2, "b"),
		K2(2, "h", 1, "a"),
		K2(3, "g", 1, "a"),
	)
	tests := []struct {
		name     string
		spec     Spec
		expected []int
	}{
		{"full key", ByKey(K2(2, "h", 1, "a")), []int{2}},
		{"full key with wrong label", ByKey(K2(2, "h", 1, "b")), nil},
		{"full key with wrong levels", ByKey(K(1, "g")), nil},
		{"labels", ByLabels("g", "a"), []int{0, 3}},
		{"label prefix", Label("g"), []int{0, 1, 3}},
		{"no such labels", ByLabels("g", "zz"), nil},
		{"too many labels", ByLabels("g", "a", "x"), nil},
		{"groups", ByGroups(1, 2), []int{1}},
		{"group prefix", Group(1), []int{0, 1}},
		{"no such groups", ByGroups(4), nil},
		{"empty groups", ByGroups(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Locate(idx, tt.spec))
		})
	}

	assert.Panics(t, func() { Locate(idx, Spec{}) })
}

func TestCell_AmbiguousLabel(t *testing.T) {
	a, b := scenarioTables(t)
	r, err := ConcatRows(a, b)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, Locate(r.Rows(), Label("a")))

	_, err = r.Cell(Label("a"), Label("x"))
	require.ErrorIs(t, err, ErrAmbiguousKey)
	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, RowAxis, le.Axis)
	assert.Equal(t, 2, le.Matches)
	assert.Equal(t, `row labels "a": ambiguous key (2 matches)`, err.Error())

	// groups disambiguate
	assert.Equal(t, "B1", cellAt(t, r, Group(3), Label("x")))
}

func TestCell_NotFound(t *testing.T) {
	a, _ := scenarioTables(t)

	_, err := a.Cell(Label("nope"), Label("x"))
	require.ErrorIs(t, err, ErrKeyNotFound)
	assert.Equal(t, `row labels "nope": key not found`, err.Error())

	_, err = a.Cell(Label("a"), Group(7))
	require.ErrorIs(t, err, ErrKeyNotFound)
	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ColAxis, le.Axis)
	assert.True(t, strings.Contains(err.Error(), "column groups 7"))
}

func TestResolve(t *testing.T) {
	tbl := testTable(t,
		[]Key{K(1, "a"), K(2, "b")},
		[]Key{K(1, "x"), K(2, "y")},
		[]any{1, 2}, []any{3, 4})

	r, c, err := tbl.Resolve(Label("b"), ByKey(K(2, "y")))
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 1}, [2]int{r, c})
	assert.Equal(t, 4, tbl.At(r, c))
	assert.Equal(t, 2, cellAt(t, tbl, Group(2), Label("x")))
}

func TestSetCell_Unsupported(t *testing.T) {
	a, _ := scenarioTables(t)
	fp := fingerprint(t, a)

	err := a.SetCell(Label("a"), Label("x"), "new")
	assert.ErrorIs(t, err, ErrUnsupported)
	err = a.SetCell(Label("nope"), Label("nope"), "new")
	assert.ErrorIs(t, err, ErrUnsupported, "SetCell must fail even for unknown keys")

	assert.Equal(t, fp, fingerprint(t, a))
	assert.Equal(t, "A1", cellAt(t, a, Label("a"), Label("x")))
}

func TestSpec_String(t *testing.T) {
	assert.Equal(t, `key (1,"a")`, ByKey(K(1, "a")).String())
	assert.Equal(t, `labels "a"|"b"`, ByLabels("a", "b").String())
	assert.Equal(t, "groups 1|-2", ByGroups(1, -2).String())
	assert.Equal(t, "<empty spec>", Spec{}.String())
}

func TestByLabels_CopiesInput(t *testing.T) {
	labels := []string{"a"}
	s := ByLabels(labels...)
	labels[0] = "b"
	assert.Equal(t, `labels "a"`, s.String())
}
