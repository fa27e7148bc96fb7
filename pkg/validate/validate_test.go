package validate

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/pkg/ast"
)

func numLit(v int64) *ast.NumberExpr { return &ast.NumberExpr{Value: big.NewInt(v)} }

func rangeType(lo, hi int64) *ast.RangeType {
	return &ast.RangeType{Min: big.NewInt(lo), Max: big.NewInt(hi)}
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	td := &ast.TypeDecl{Name: "Bad", Type: rangeType(5, 1)}
	m := &ast.Model{Decls: []ast.Decl{td}}

	_, err := Validate(m)
	require.Error(t, err)
}

func TestValidateRejectsNonPositiveScalarsetBound(t *testing.T) {
	td := &ast.TypeDecl{Name: "Bad", Type: &ast.ScalarsetType{Bound: big.NewInt(0)}}
	m := &ast.Model{Decls: []ast.Decl{td}}

	_, err := Validate(m)
	require.Error(t, err)
}

func TestValidateRejectsDuplicateModelName(t *testing.T) {
	m := &ast.Model{Decls: []ast.Decl{
		&ast.ConstDecl{Name: "N", Value: numLit(3)},
		ast.NewVarDecl("N", rangeType(0, 3), ast.ScopeState),
	}}
	_, err := Validate(m)
	require.Error(t, err)
}

func TestValidateRejectsDuplicateEnumMember(t *testing.T) {
	td := &ast.TypeDecl{Name: "Color", Type: &ast.EnumType{Members: []string{"red", "red"}}}
	m := &ast.Model{Decls: []ast.Decl{td}}

	_, err := Validate(m)
	require.Error(t, err)
}

func TestValidateRejectsNonIndexArrayType(t *testing.T) {
	bad := &ast.ArrayType{
		Index:   &ast.RecordType{Fields: []ast.RecordField{{Name: "a", Type: rangeType(0, 1)}}},
		Element: rangeType(0, 1),
	}
	v := ast.NewVarDecl("arr", bad, ast.ScopeState)
	m := &ast.Model{Decls: []ast.Decl{v}}

	_, err := Validate(m)
	require.Error(t, err)
}

func TestValidateAcceptsValidModel(t *testing.T) {
	rt := rangeType(0, 3)
	v := ast.NewVarDecl("x", rt, ast.ScopeState)
	ref := &ast.ExprID{Name: "x", Decl: v}
	rule := &ast.SimpleRule{
		Name: "set",
		Body: []ast.Stmt{&ast.AssignmentStmt{LHS: ref, RHS: numLit(1)}},
	}
	m := &ast.Model{Decls: []ast.Decl{v}, Rules: []ast.Rule{rule}}

	_, err := Validate(m)
	require.NoError(t, err)
}

func TestValidateFlagsNonSimpleEqualityForMemcmp(t *testing.T) {
	rt := &ast.RecordType{Fields: []ast.RecordField{{Name: "a", Type: rangeType(0, 1)}}}
	a := ast.NewVarDecl("a", rt, ast.ScopeState)
	b := ast.NewVarDecl("b", rt, ast.ScopeState)
	cmp := &ast.BinaryExpr{
		Op:    ast.Eq,
		Left:  &ast.ExprID{Name: "a", Decl: a},
		Right: &ast.ExprID{Name: "b", Decl: b},
	}
	m := &ast.Model{
		Decls: []ast.Decl{a, b},
		Rules: []ast.Rule{&ast.PropertyRule{Name: "p", Property: &ast.PropertyStmt{Kind: ast.Invariant, Cond: cmp}}},
	}

	result, err := Validate(m)
	require.NoError(t, err)
	require.Len(t, result.NonSimpleComparisons, 1)
	require.Same(t, cmp, result.NonSimpleComparisons[0])
}

func TestValidateRejectsReturnTypeMismatch(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       "f",
		ReturnType: rangeType(0, 1),
		Body:       []ast.Stmt{&ast.ReturnStmt{Value: numLit(5)}},
	}
	// 5 is an untyped literal so it's compatible with any simple type;
	// force a mismatch via a differently-typed variable instead.
	other := ast.NewVarDecl("y", &ast.EnumType{Members: []string{"a", "b"}}, ast.ScopeLocal)
	fn.Body = []ast.Stmt{&ast.ReturnStmt{Value: &ast.ExprID{Name: "y", Decl: other}}}
	m := &ast.Model{Functions: []*ast.FunctionDecl{fn}}

	_, err := Validate(m)
	require.Error(t, err)
}

func TestValidateRejectsOrderingOnScalarset(t *testing.T) {
	st := &ast.ScalarsetType{Bound: big.NewInt(3)}
	a := ast.NewVarDecl("a", st, ast.ScopeState)
	b := ast.NewVarDecl("b", st, ast.ScopeState)
	cmp := &ast.BinaryExpr{
		Op:    ast.Lt,
		Left:  &ast.ExprID{Name: "a", Decl: a},
		Right: &ast.ExprID{Name: "b", Decl: b},
	}
	m := &ast.Model{
		Decls: []ast.Decl{a, b},
		Rules: []ast.Rule{&ast.PropertyRule{Name: "p", Property: &ast.PropertyStmt{Kind: ast.Invariant, Cond: cmp}}},
	}

	_, err := Validate(m)
	require.Error(t, err)
}
