package traverse

import "github.com/specc-lang/specc/pkg/ast"

// Children is the single Expander: it returns n's immediate children,
// in evaluation order, regardless of which of the five node
// categories n belongs to. PreOrder, PostOrder and Walk are built on
// Children; Dispatch, the Visitor interface and the focused traversals
// (ExprTraversal, StmtTraversal, TypeTraversal) keep their own per-kind
// switches, so a new node kind is added to each of those as well.
func Children(n ast.Node) []ast.Node {
	switch nn := n.(type) {

	// Decls
	case *ast.ConstDecl:
		return exprChild(nn.Value)
	case *ast.TypeDecl:
		return typeChild(nn.Type)
	case *ast.VarDecl:
		return typeChild(nn.Type)
	case *ast.AliasDecl:
		return exprChild(nn.Value)
	case *ast.FunctionDecl:
		var out []ast.Node
		for _, p := range nn.Params {
			out = append(out, p)
		}
		out = append(out, typeChild(nn.ReturnType)...)
		for _, s := range nn.Body {
			out = append(out, s)
		}
		return out

	// Types
	case *ast.ArrayType:
		return []ast.Node{nn.Index, nn.Element}
	case *ast.RecordType:
		var out []ast.Node
		for _, f := range nn.Fields {
			out = append(out, f.Type)
		}
		return out
	case *ast.RangeType, *ast.EnumType, *ast.ScalarsetType, *ast.TypeExprID:
		return nil

	// Exprs
	case *ast.BinaryExpr:
		return []ast.Node{nn.Left, nn.Right}
	case *ast.UnaryExpr:
		return []ast.Node{nn.Operand}
	case *ast.TernaryExpr:
		return []ast.Node{nn.Cond, nn.Then, nn.Else}
	case *ast.QuantifiedExpr:
		out := quantifierChildren(nn.Quantifier)
		return append(out, nn.Body)
	case *ast.FieldExpr:
		return []ast.Node{nn.Record}
	case *ast.ElementExpr:
		return []ast.Node{nn.Array, nn.Index}
	case *ast.FunctionCallExpr:
		var out []ast.Node
		for _, a := range nn.Args {
			out = append(out, a)
		}
		return out
	case *ast.IsUndefinedExpr:
		return []ast.Node{nn.Operand}
	case *ast.ExprID, *ast.NumberExpr:
		return nil

	// Stmts
	case *ast.AssignmentStmt:
		return []ast.Node{nn.LHS, nn.RHS}
	case *ast.ClearStmt:
		return []ast.Node{nn.LHS}
	case *ast.UndefineStmt:
		return []ast.Node{nn.LHS}
	case *ast.IfStmt:
		var out []ast.Node
		for _, c := range nn.Clauses {
			if c.Cond != nil {
				out = append(out, c.Cond)
			}
			for _, s := range c.Body {
				out = append(out, s)
			}
		}
		return out
	case *ast.SwitchStmt:
		out := []ast.Node{nn.Tag}
		for _, c := range nn.Cases {
			for _, m := range c.Matches {
				out = append(out, m)
			}
			for _, s := range c.Body {
				out = append(out, s)
			}
		}
		return out
	case *ast.ForStmt:
		out := quantifierChildren(nn.Quantifier)
		for _, s := range nn.Body {
			out = append(out, s)
		}
		return out
	case *ast.WhileStmt:
		out := []ast.Node{nn.Cond}
		for _, s := range nn.Body {
			out = append(out, s)
		}
		return out
	case *ast.ReturnStmt:
		return exprChild(nn.Value)
	case *ast.ProcedureCallStmt:
		var out []ast.Node
		for _, a := range nn.Args {
			out = append(out, a)
		}
		return out
	case *ast.PropertyStmt:
		return []ast.Node{nn.Cond}
	case *ast.ErrorStmt:
		return nil
	case *ast.AliasStmt:
		var out []ast.Node
		for _, d := range nn.Decls {
			out = append(out, d)
		}
		for _, s := range nn.Body {
			out = append(out, s)
		}
		return out
	case *ast.PutStmt:
		return exprChild(nn.Value)

	// Rules
	case *ast.StartStateRule:
		var out []ast.Node
		for _, s := range nn.Body {
			out = append(out, s)
		}
		return out
	case *ast.SimpleRule:
		var out []ast.Node
		if nn.Guard != nil {
			out = append(out, nn.Guard)
		}
		for _, s := range nn.Body {
			out = append(out, s)
		}
		return out
	case *ast.PropertyRule:
		return []ast.Node{nn.Property}
	case *ast.Ruleset:
		out := quantifierChildren(nn.Quantifier)
		for _, r := range nn.Inner {
			out = append(out, r)
		}
		return out
	case *ast.AliasRule:
		var out []ast.Node
		for _, d := range nn.Decls {
			out = append(out, d)
		}
		for _, r := range nn.Inner {
			out = append(out, r)
		}
		return out

	default:
		return nil
	}
}

func exprChild(e ast.Expr) []ast.Node {
	if e == nil {
		return nil
	}
	return []ast.Node{e}
}

func typeChild(t ast.TypeExpr) []ast.Node {
	if t == nil {
		return nil
	}
	return []ast.Node{t}
}

func quantifierChildren(q ast.Quantifier) []ast.Node {
	var out []ast.Node
	if q.Type != nil {
		out = append(out, q.Type)
	}
	if q.From != nil {
		out = append(out, q.From)
	}
	if q.To != nil {
		out = append(out, q.To)
	}
	if q.Step != nil {
		out = append(out, q.Step)
	}
	return out
}

// ModelChildren returns the top-level nodes of a Model: its
// declarations, functions and rules in that order, the entry point
// PreOrder/PostOrder callers start from.
func ModelChildren(m *ast.Model) []ast.Node {
	var out []ast.Node
	for _, d := range m.Decls {
		out = append(out, d)
	}
	for _, f := range m.Functions {
		out = append(out, f)
	}
	for _, r := range m.Rules {
		out = append(out, r)
	}
	return out
}
