package ast

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidthRange(t *testing.T) {
	cases := []struct {
		min, max int64
		want     int
	}{
		{0, 0, 1},
		{0, 1, 2},
		{0, 2, 2},
		{0, 3, 3},
		{0, 4, 3},
		{1, 3, 2}, // 3 values -> width for count+1=4 -> 2 bits
	}
	for _, c := range cases {
		rt := &RangeType{Min: big.NewInt(c.min), Max: big.NewInt(c.max)}
		got, err := Width(rt)
		require.NoError(t, err)
		require.Equalf(t, c.want, got, "range [%d,%d]", c.min, c.max)
	}
}

func TestWidthEnum(t *testing.T) {
	e := &EnumType{Members: []string{"red", "green", "blue"}}
	got, err := Width(e)
	require.NoError(t, err)
	require.Equal(t, 2, got) // 3 members -> 4 encodings incl. undefined -> 2 bits
}

func TestWidthArrayAndRecord(t *testing.T) {
	idx := &RangeType{Min: big.NewInt(0), Max: big.NewInt(3)} // 4 values, width 3
	elem := &RangeType{Min: big.NewInt(0), Max: big.NewInt(0)}
	arr := &ArrayType{Index: idx, Element: elem}
	got, err := Width(arr)
	require.NoError(t, err)
	require.Equal(t, 4*1, got)

	rec := &RecordType{Fields: []RecordField{
		{Name: "a", Type: elem},
		{Name: "b", Type: idx},
	}}
	got, err = Width(rec)
	require.NoError(t, err)
	require.Equal(t, 1+3, got)
}

func TestWidthUnresolvedTypeExprID(t *testing.T) {
	_, err := Width(&TypeExprID{Name: "Foo"})
	require.Error(t, err)
}

func TestIsSimple(t *testing.T) {
	require.True(t, IsSimple(&RangeType{}))
	require.True(t, IsSimple(&EnumType{}))
	require.True(t, IsSimple(&ScalarsetType{}))
	require.False(t, IsSimple(&ArrayType{}))
	require.False(t, IsSimple(&RecordType{}))

	decl := &TypeDecl{Type: &RangeType{}}
	require.True(t, IsSimple(&TypeExprID{Decl: decl}))
}
