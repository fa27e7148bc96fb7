package traverse

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/pkg/ast"
)

func numLit(v int64) *ast.NumberExpr { return &ast.NumberExpr{Value: big.NewInt(v)} }

func TestPreOrderVisitsParentBeforeChildren(t *testing.T) {
	bin := &ast.BinaryExpr{Op: ast.Add, Left: numLit(1), Right: numLit(2)}

	var order []ast.Node
	PreOrder(bin, func(n ast.Node) bool {
		order = append(order, n)
		return true
	})
	require.Len(t, order, 3)
	require.Same(t, bin, order[0])
}

func TestPreOrderPruning(t *testing.T) {
	bin := &ast.BinaryExpr{Op: ast.Add, Left: numLit(1), Right: numLit(2)}

	var order []ast.Node
	PreOrder(bin, func(n ast.Node) bool {
		order = append(order, n)
		return n == bin // prune below the root
	})
	require.Len(t, order, 1)
}

func TestPostOrderVisitsChildrenBeforeParent(t *testing.T) {
	bin := &ast.BinaryExpr{Op: ast.Add, Left: numLit(1), Right: numLit(2)}

	var order []ast.Node
	PostOrder(bin, func(n ast.Node) {
		order = append(order, n)
	})
	require.Len(t, order, 3)
	require.Same(t, bin, order[2])
}

type countingVisitor struct {
	BaseVisitor
	binaries int
	numbers  int
}

func (v *countingVisitor) VisitBinaryExpr(*ast.BinaryExpr) { v.binaries++ }
func (v *countingVisitor) VisitNumberExpr(*ast.NumberExpr) { v.numbers++ }

func TestWalkDispatchesToConcreteVisitorMethods(t *testing.T) {
	bin := &ast.BinaryExpr{
		Op:    ast.Add,
		Left:  &ast.BinaryExpr{Op: ast.Mul, Left: numLit(2), Right: numLit(3)},
		Right: numLit(4),
	}

	v := &countingVisitor{}
	Walk(v, bin)
	require.Equal(t, 2, v.binaries)
	require.Equal(t, 3, v.numbers)
}

func TestExprTraversalRewritesBottomUp(t *testing.T) {
	fn := &ast.FunctionDecl{
		Body: []ast.Stmt{
			&ast.AssignmentStmt{
				LHS: &ast.ExprID{Name: "x"},
				RHS: &ast.BinaryExpr{Op: ast.Add, Left: numLit(1), Right: numLit(2)},
			},
		},
	}

	var seen []ast.Expr
	ExprTraversal(fn, func(e ast.Expr) ast.Expr {
		seen = append(seen, e)
		return e
	})
	// both leaves visited before the binary expr that contains them
	require.Len(t, seen, 4)
	_, lastIsBinary := seen[len(seen)-1].(*ast.BinaryExpr)
	require.True(t, lastIsBinary)
}

func TestExprTraversalAppliesReplacement(t *testing.T) {
	ret := &ast.ReturnStmt{Value: numLit(1)}
	fn := &ast.FunctionDecl{Body: []ast.Stmt{ret}}

	replacement := numLit(99)
	ExprTraversal(fn, func(e ast.Expr) ast.Expr {
		if _, ok := e.(*ast.NumberExpr); ok {
			return replacement
		}
		return e
	})
	require.Same(t, replacement, ret.Value)
}

func TestStmtTraversalDescendsIntoNestedBodies(t *testing.T) {
	inner := &ast.AssignmentStmt{LHS: &ast.ExprID{Name: "x"}, RHS: numLit(1)}
	outer := &ast.IfStmt{Clauses: []ast.IfClause{{Cond: numLit(1), Body: []ast.Stmt{inner}}}}
	fn := &ast.FunctionDecl{Body: []ast.Stmt{outer}}

	var seen []ast.Stmt
	StmtTraversal(fn, func(s ast.Stmt) { seen = append(seen, s) })
	require.Len(t, seen, 2)
	require.Same(t, outer, seen[0])
	require.Same(t, inner, seen[1])
}

func TestTypeTraversalDescendsIntoRecordFields(t *testing.T) {
	rec := &ast.RecordType{Fields: []ast.RecordField{
		{Name: "a", Type: &ast.RangeType{Min: big.NewInt(0), Max: big.NewInt(1)}},
	}}
	decl := &ast.TypeDecl{Name: "t", Type: rec}

	var seen []ast.TypeExpr
	TypeTraversal(decl, func(t ast.TypeExpr) { seen = append(seen, t) })
	require.Len(t, seen, 2)
	require.Same(t, rec, seen[0])
}
