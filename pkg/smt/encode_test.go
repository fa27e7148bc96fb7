package smt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/pkg/ast"
)

func TestEncodeArithmeticAndComparison(t *testing.T) {
	syms := newSymtab()
	v := ast.NewVarDecl("x", &ast.RangeType{Min: big.NewInt(0), Max: big.NewInt(9)}, ast.ScopeState)
	syms.declare(v)

	e := &ast.BinaryExpr{
		Op:    ast.Lt,
		Left:  &ast.ExprID{Name: "x", Decl: v},
		Right: &ast.NumberExpr{Value: big.NewInt(5)},
	}
	enc := &encoder{syms: syms}
	out, ok := enc.encode(e)
	require.True(t, ok)
	require.Equal(t, "(< v0 5)", out)
}

func TestEncodeRejectsFunctionCall(t *testing.T) {
	enc := &encoder{syms: newSymtab()}
	_, ok := enc.encode(&ast.FunctionCallExpr{Name: "f"})
	require.False(t, ok)
}

func TestEncodeRejectsUndeclaredIdentifier(t *testing.T) {
	v := ast.NewVarDecl("x", &ast.RangeType{Min: big.NewInt(0), Max: big.NewInt(1)}, ast.ScopeState)
	enc := &encoder{syms: newSymtab()} // x never declared
	_, ok := enc.encode(&ast.ExprID{Name: "x", Decl: v})
	require.False(t, ok)
}

func TestEncodeQuantifiedWithClosedBound(t *testing.T) {
	syms := newSymtab()
	enc := &encoder{syms: syms}
	qe := &ast.QuantifiedExpr{
		Kind:       ast.Forall,
		Quantifier: ast.Quantifier{Name: "i", Type: &ast.ScalarsetType{Bound: big.NewInt(3)}},
		Body:       &ast.NumberExpr{Value: big.NewInt(1)},
	}
	out, ok := enc.encode(qe)
	require.True(t, ok)
	require.Contains(t, out, "forall")
}

func TestEncodeQuantifiedWithOpenBoundIsUnsupported(t *testing.T) {
	enc := &encoder{syms: newSymtab()}
	qe := &ast.QuantifiedExpr{
		Kind: ast.Exists,
		Quantifier: ast.Quantifier{
			Name: "i",
			From: &ast.ExprID{Name: "lo"}, // not foldable: unresolved
			To:   &ast.NumberExpr{Value: big.NewInt(10)},
		},
		Body: &ast.NumberExpr{Value: big.NewInt(1)},
	}
	_, ok := enc.encode(qe)
	require.False(t, ok)
}

func TestParseVerdict(t *testing.T) {
	require.Equal(t, sat, parseVerdict("sat\n"))
	require.Equal(t, unsat, parseVerdict("unsat\n(model)\n"))
	require.Equal(t, inconclusive, parseVerdict("unknown\n"))
	require.Equal(t, inconclusive, parseVerdict(""))
}

func TestBudgetStopsAtZero(t *testing.T) {
	b := newBudget(2)
	require.True(t, b.Take())
	require.True(t, b.Take())
	require.False(t, b.Take())
}
