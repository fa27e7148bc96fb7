package resolve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/pkg/ast"
)

func numLit(v int64) *ast.NumberExpr { return &ast.NumberExpr{Value: big.NewInt(v)} }

func TestResolveBindsVarDeclToExprID(t *testing.T) {
	v := ast.NewVarDecl("x", &ast.RangeType{Min: big.NewInt(0), Max: big.NewInt(3)}, ast.ScopeState)
	ref := &ast.ExprID{Name: "x"}
	rule := &ast.SimpleRule{
		Name: "touch",
		Body: []ast.Stmt{&ast.AssignmentStmt{LHS: ref, RHS: numLit(1)}},
	}
	m := &ast.Model{Decls: []ast.Decl{v}, Rules: []ast.Rule{rule}}

	require.NoError(t, Resolve(m))
	require.Same(t, v, ref.Decl)
}

func TestResolveReportsUnresolvedIdentifier(t *testing.T) {
	ref := &ast.ExprID{Name: "nope"}
	m := &ast.Model{Rules: []ast.Rule{
		&ast.SimpleRule{Name: "r", Body: []ast.Stmt{&ast.AssignmentStmt{LHS: ref, RHS: numLit(1)}}},
	}}

	err := Resolve(m)
	require.Error(t, err)
	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "nope", unresolved.Name)
}

func TestResolveBindsTypeExprID(t *testing.T) {
	td := &ast.TypeDecl{Name: "Color", Type: &ast.EnumType{Members: []string{"red", "blue"}}}
	ref := &ast.TypeExprID{Name: "Color"}
	v := ast.NewVarDecl("c", ref, ast.ScopeState)
	m := &ast.Model{Decls: []ast.Decl{td, v}}

	require.NoError(t, Resolve(m))
	require.Same(t, td, ref.Decl)
}

func TestResolveQuantifierScopesToItsBody(t *testing.T) {
	st := &ast.ScalarsetType{Bound: big.NewInt(3)}
	ref := &ast.ExprID{Name: "i"}
	qe := &ast.QuantifiedExpr{
		Kind:       ast.Forall,
		Quantifier: ast.Quantifier{Name: "i", Type: st},
		Body:       ref,
	}
	m := &ast.Model{Rules: []ast.Rule{
		&ast.PropertyRule{Name: "p", Property: &ast.PropertyStmt{Kind: ast.Invariant, Cond: qe}},
	}}

	require.NoError(t, Resolve(m))
	_, ok := ref.Decl.(*ast.VarDecl)
	require.True(t, ok)
}

func TestResolveQuantifierNameDoesNotLeakOutsideBody(t *testing.T) {
	st := &ast.ScalarsetType{Bound: big.NewInt(3)}
	leak := &ast.ExprID{Name: "i"}
	m := &ast.Model{Rules: []ast.Rule{
		&ast.Ruleset{
			Name:       "rs",
			Quantifier: ast.Quantifier{Name: "i", Type: st},
			Inner:      []ast.Rule{&ast.SimpleRule{Name: "inner"}},
		},
		&ast.SimpleRule{Name: "outer", Guard: leak},
	}}

	err := Resolve(m)
	require.Error(t, err)
	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "i", unresolved.Name)
}

func TestResolveBindsFunctionCallCallee(t *testing.T) {
	fn := &ast.FunctionDecl{Name: "double", ReturnType: &ast.RangeType{Min: big.NewInt(0), Max: big.NewInt(10)}}
	call := &ast.FunctionCallExpr{Name: "double", Args: []ast.Expr{numLit(2)}}
	m := &ast.Model{
		Functions: []*ast.FunctionDecl{fn},
		Rules: []ast.Rule{
			&ast.PropertyRule{Name: "p", Property: &ast.PropertyStmt{Kind: ast.Invariant, Cond: call}},
		},
	}

	require.NoError(t, Resolve(m))
	require.Same(t, fn, call.Callee)
}

func TestResolveAliasBindsNameWithinRuleset(t *testing.T) {
	aliasVal := numLit(5)
	ref := &ast.ExprID{Name: "five"}
	m := &ast.Model{Rules: []ast.Rule{
		&ast.AliasRule{
			Decls: []ast.Decl{&ast.AliasDecl{Name: "five", Value: aliasVal}},
			Inner: []ast.Rule{
				&ast.SimpleRule{Name: "r", Guard: ref},
			},
		},
	}}

	require.NoError(t, Resolve(m))
	alias, ok := ref.Decl.(*ast.AliasDecl)
	require.True(t, ok)
	require.Same(t, aliasVal, alias.Value)
}
