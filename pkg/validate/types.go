package validate

import "github.com/specc-lang/specc/pkg/ast"

// underlying follows a chain of TypeExprID references to the
// concrete type node they ultimately name, returning t itself if it's
// not a TypeExprID or its Decl is unresolved.
func underlying(t ast.TypeExpr) ast.TypeExpr {
	for {
		id, ok := t.(*ast.TypeExprID)
		if !ok || id.Decl == nil {
			return t
		}
		t = id.Decl.Type
	}
}

// isIndexType reports whether t (after following TypeExprID
// references) is a valid array index type: Range, Enum or Scalarset.
func isIndexType(t ast.TypeExpr) bool {
	switch underlying(t).(type) {
	case *ast.RangeType, *ast.EnumType, *ast.ScalarsetType:
		return true
	default:
		return false
	}
}

// sameBaseType reports whether a and b may appear on either side of a
// comparison or assignment. A nil type (StaticType's "untyped integer
// literal" result) is compatible with anything; otherwise the two
// types must resolve to the identical underlying node — two named
// types are compatible only when they're literally the same
// declaration, not merely structurally alike.
func sameBaseType(a, b ast.TypeExpr) bool {
	if a == nil || b == nil {
		return true
	}
	return underlying(a) == underlying(b)
}

// isOrderable reports whether values of t may appear on either side
// of Lt/Leq/Gt/Geq: Range and Enum, but never Scalarset (per §3,
// scalarset values admit only equality and indexing) nor any
// composite type.
func isOrderable(t ast.TypeExpr) bool {
	if t == nil {
		return true // untyped integer literal
	}
	switch underlying(t).(type) {
	case *ast.RangeType, *ast.EnumType:
		return true
	default:
		return false
	}
}
