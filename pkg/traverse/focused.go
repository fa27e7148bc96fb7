package traverse

import "github.com/specc-lang/specc/pkg/ast"

// ExprTraversal rewrites every expression reachable from root.
// It descends through decl/type/stmt/rule scaffolding — the node
// kinds it has no opinion about — purely to reach the Expr fields
// underneath, then applies visit bottom-up: a node's own
// subexpressions are rewritten before visit sees the node itself, so
// a constant-folding or SMT-simplifying visit function only ever
// needs to look at its immediate operands. visit may return its
// argument unchanged.
func ExprTraversal(root ast.Node, visit func(ast.Expr) ast.Expr) {
	rewriteExprsIn(root, visit)
}

// rewriteExpr rewrites e's children then e itself, returning the
// replacement to store back into the parent field.
func rewriteExpr(e ast.Expr, visit func(ast.Expr) ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	switch ee := e.(type) {
	case *ast.BinaryExpr:
		ee.Left = rewriteExpr(ee.Left, visit)
		ee.Right = rewriteExpr(ee.Right, visit)
	case *ast.UnaryExpr:
		ee.Operand = rewriteExpr(ee.Operand, visit)
	case *ast.TernaryExpr:
		ee.Cond = rewriteExpr(ee.Cond, visit)
		ee.Then = rewriteExpr(ee.Then, visit)
		ee.Else = rewriteExpr(ee.Else, visit)
	case *ast.QuantifiedExpr:
		ee.Quantifier.From = rewriteExpr(ee.Quantifier.From, visit)
		ee.Quantifier.To = rewriteExpr(ee.Quantifier.To, visit)
		ee.Quantifier.Step = rewriteExpr(ee.Quantifier.Step, visit)
		ee.Body = rewriteExpr(ee.Body, visit)
	case *ast.FieldExpr:
		ee.Record = rewriteExpr(ee.Record, visit)
	case *ast.ElementExpr:
		ee.Array = rewriteExpr(ee.Array, visit)
		ee.Index = rewriteExpr(ee.Index, visit)
	case *ast.FunctionCallExpr:
		for i, a := range ee.Args {
			ee.Args[i] = rewriteExpr(a, visit)
		}
	case *ast.IsUndefinedExpr:
		ee.Operand = rewriteExpr(ee.Operand, visit)
	case *ast.ExprID, *ast.NumberExpr:
		// leaves, nothing to descend into
	}
	return visit(e)
}

// rewriteExprsIn walks root looking for Expr-bearing fields on
// non-Expr nodes (decls, stmts, rules) and rewrites each via
// rewriteExpr. Expr-to-Expr nesting is handled by rewriteExpr itself,
// so this only needs one level of recursion into child statements.
func rewriteExprsIn(n ast.Node, visit func(ast.Expr) ast.Expr) {
	switch nn := n.(type) {
	case *ast.ConstDecl:
		nn.Value = rewriteExpr(nn.Value, visit)
	case *ast.AliasDecl:
		nn.Value = rewriteExpr(nn.Value, visit)
	case *ast.FunctionDecl:
		for _, s := range nn.Body {
			rewriteExprsIn(s, visit)
		}
	case *ast.AssignmentStmt:
		nn.LHS = rewriteExpr(nn.LHS, visit)
		nn.RHS = rewriteExpr(nn.RHS, visit)
	case *ast.ClearStmt:
		nn.LHS = rewriteExpr(nn.LHS, visit)
	case *ast.UndefineStmt:
		nn.LHS = rewriteExpr(nn.LHS, visit)
	case *ast.IfStmt:
		for i := range nn.Clauses {
			if nn.Clauses[i].Cond != nil {
				nn.Clauses[i].Cond = rewriteExpr(nn.Clauses[i].Cond, visit)
			}
			for _, s := range nn.Clauses[i].Body {
				rewriteExprsIn(s, visit)
			}
		}
	case *ast.SwitchStmt:
		nn.Tag = rewriteExpr(nn.Tag, visit)
		for i := range nn.Cases {
			for j, m := range nn.Cases[i].Matches {
				nn.Cases[i].Matches[j] = rewriteExpr(m, visit)
			}
			for _, s := range nn.Cases[i].Body {
				rewriteExprsIn(s, visit)
			}
		}
	case *ast.ForStmt:
		nn.Quantifier.From = rewriteExpr(nn.Quantifier.From, visit)
		nn.Quantifier.To = rewriteExpr(nn.Quantifier.To, visit)
		nn.Quantifier.Step = rewriteExpr(nn.Quantifier.Step, visit)
		for _, s := range nn.Body {
			rewriteExprsIn(s, visit)
		}
	case *ast.WhileStmt:
		nn.Cond = rewriteExpr(nn.Cond, visit)
		for _, s := range nn.Body {
			rewriteExprsIn(s, visit)
		}
	case *ast.ReturnStmt:
		nn.Value = rewriteExpr(nn.Value, visit)
	case *ast.ProcedureCallStmt:
		for i, a := range nn.Args {
			nn.Args[i] = rewriteExpr(a, visit)
		}
	case *ast.PropertyStmt:
		nn.Cond = rewriteExpr(nn.Cond, visit)
	case *ast.AliasStmt:
		for _, d := range nn.Decls {
			rewriteExprsIn(d, visit)
		}
		for _, s := range nn.Body {
			rewriteExprsIn(s, visit)
		}
	case *ast.PutStmt:
		nn.Value = rewriteExpr(nn.Value, visit)
	case *ast.StartStateRule:
		for _, s := range nn.Body {
			rewriteExprsIn(s, visit)
		}
	case *ast.SimpleRule:
		if nn.Guard != nil {
			nn.Guard = rewriteExpr(nn.Guard, visit)
		}
		for _, s := range nn.Body {
			rewriteExprsIn(s, visit)
		}
	case *ast.PropertyRule:
		rewriteExprsIn(nn.Property, visit)
	case *ast.Ruleset:
		nn.Quantifier.From = rewriteExpr(nn.Quantifier.From, visit)
		nn.Quantifier.To = rewriteExpr(nn.Quantifier.To, visit)
		nn.Quantifier.Step = rewriteExpr(nn.Quantifier.Step, visit)
		for _, r := range nn.Inner {
			rewriteExprsIn(r, visit)
		}
	case *ast.AliasRule:
		for _, d := range nn.Decls {
			rewriteExprsIn(d, visit)
		}
		for _, r := range nn.Inner {
			rewriteExprsIn(r, visit)
		}
	}
}

// StmtTraversal calls visit on every statement reachable from root,
// descending through if/switch/for/while/alias-stmt bodies (the
// scaffolding it isn't directly interested in) to reach nested
// statements, parent before children.
func StmtTraversal(root ast.Node, visit func(ast.Stmt)) {
	var walkStmts func([]ast.Stmt)
	walkStmts = func(body []ast.Stmt) {
		for _, s := range body {
			visit(s)
			switch ss := s.(type) {
			case *ast.IfStmt:
				for _, c := range ss.Clauses {
					walkStmts(c.Body)
				}
			case *ast.SwitchStmt:
				for _, c := range ss.Cases {
					walkStmts(c.Body)
				}
			case *ast.ForStmt:
				walkStmts(ss.Body)
			case *ast.WhileStmt:
				walkStmts(ss.Body)
			case *ast.AliasStmt:
				walkStmts(ss.Body)
			}
		}
	}

	switch nn := root.(type) {
	case *ast.FunctionDecl:
		walkStmts(nn.Body)
	case *ast.StartStateRule:
		walkStmts(nn.Body)
	case *ast.SimpleRule:
		walkStmts(nn.Body)
	case *ast.Model:
		for _, f := range nn.Functions {
			walkStmts(f.Body)
		}
		for _, r := range nn.Rules {
			StmtTraversal(r, visit)
		}
	case *ast.Ruleset:
		for _, r := range nn.Inner {
			StmtTraversal(r, visit)
		}
	case *ast.AliasRule:
		for _, r := range nn.Inner {
			StmtTraversal(r, visit)
		}
	}
}

// TypeTraversal calls visit on every type expression reachable from
// root, descending through array/record scaffolding to reach element
// and field types nested inside.
func TypeTraversal(root ast.Node, visit func(ast.TypeExpr)) {
	var walkType func(ast.TypeExpr)
	walkType = func(t ast.TypeExpr) {
		if t == nil {
			return
		}
		visit(t)
		switch tt := t.(type) {
		case *ast.ArrayType:
			walkType(tt.Index)
			walkType(tt.Element)
		case *ast.RecordType:
			for _, f := range tt.Fields {
				walkType(f.Type)
			}
		}
	}

	switch nn := root.(type) {
	case *ast.TypeDecl:
		walkType(nn.Type)
	case *ast.VarDecl:
		walkType(nn.Type)
	case *ast.FunctionDecl:
		for _, p := range nn.Params {
			walkType(p.Type)
		}
		walkType(nn.ReturnType)
	case *ast.Model:
		for _, d := range nn.Decls {
			TypeTraversal(d, visit)
		}
		for _, f := range nn.Functions {
			TypeTraversal(f, visit)
		}
	}
}
