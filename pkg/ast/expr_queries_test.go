package ast

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func n(v int64) *NumberExpr { return &NumberExpr{Value: big.NewInt(v)} }

func TestFoldArithmetic(t *testing.T) {
	e := &BinaryExpr{Op: Add, Left: n(2), Right: &BinaryExpr{Op: Mul, Left: n(3), Right: n(4)}}
	folded, err := Fold(e)
	require.NoError(t, err)
	num, ok := folded.(*NumberExpr)
	require.True(t, ok)
	require.Equal(t, int64(14), num.Value.Int64())
}

func TestFoldDivisionByZero(t *testing.T) {
	e := &BinaryExpr{Op: Div, Left: n(1), Right: n(0)}
	_, err := Fold(e)
	require.Error(t, err)
}

func TestFoldComparisonsProduceBoolean(t *testing.T) {
	e := &BinaryExpr{Op: Lt, Left: n(1), Right: n(2)}
	folded, err := Fold(e)
	require.NoError(t, err)
	require.Equal(t, int64(1), folded.(*NumberExpr).Value.Int64())
}

func TestFoldTernarySelectsBranch(t *testing.T) {
	e := &TernaryExpr{Cond: n(1), Then: n(10), Else: n(20)}
	folded, err := Fold(e)
	require.NoError(t, err)
	require.Equal(t, int64(10), folded.(*NumberExpr).Value.Int64())
}

func TestIsConstantThroughConstDecl(t *testing.T) {
	c := &ConstDecl{Name: "K", Value: n(5)}
	id := &ExprID{Name: "K", Decl: c}
	require.True(t, IsConstant(id))

	v := NewVarDecl("x", &RangeType{Min: big.NewInt(0), Max: big.NewInt(1)}, ScopeState)
	vid := &ExprID{Name: "x", Decl: v}
	require.False(t, IsConstant(vid))
}

func TestStaticTypeComparisonIsBoolean(t *testing.T) {
	e := &BinaryExpr{Op: Eq, Left: n(1), Right: n(2)}
	tp, err := StaticType(e)
	require.NoError(t, err)
	require.Same(t, BooleanType, tp)
}

func TestStaticTypeField(t *testing.T) {
	rec := &RecordType{Fields: []RecordField{{Name: "a", Type: &RangeType{Min: big.NewInt(0), Max: big.NewInt(1)}}}}
	v := NewVarDecl("r", rec, ScopeState)
	fe := &FieldExpr{Record: &ExprID{Name: "r", Decl: v}, Name: "a"}
	tp, err := StaticType(fe)
	require.NoError(t, err)
	rt, ok := tp.(*RangeType)
	require.True(t, ok)
	require.Equal(t, int64(1), rt.Max.Int64())
}
