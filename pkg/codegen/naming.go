package codegen

import (
	"fmt"
	"regexp"

	"github.com/specc-lang/specc/pkg/ast"
)

// underlying follows a chain of TypeExprID references to the concrete
// type node they ultimately name. ast's own equivalent helper is
// unexported, so codegen keeps a small local copy rather than reaching
// across package boundaries for it.
func underlying(t ast.TypeExpr) ast.TypeExpr {
	for {
		id, ok := t.(*ast.TypeExprID)
		if !ok || id.Decl == nil {
			return t
		}
		t = id.Decl.Type
	}
}

func asRecord(t ast.TypeExpr) (*ast.RecordType, bool) {
	rt, ok := underlying(t).(*ast.RecordType)
	return rt, ok
}

func asArray(t ast.TypeExpr) (*ast.ArrayType, bool) {
	at, ok := underlying(t).(*ast.ArrayType)
	return at, ok
}

// scalarBounds returns the [lo, hi] of values a Range/Enum/Scalarset
// type encodes, the pair every state.Handle.Read/Write call needs.
func scalarBounds(t ast.TypeExpr) (lo, hi int64, err error) {
	switch tt := underlying(t).(type) {
	case *ast.RangeType:
		return tt.Min.Int64(), tt.Max.Int64(), nil
	case *ast.EnumType:
		return 0, int64(len(tt.Members) - 1), nil
	case *ast.ScalarsetType:
		return 0, tt.Bound.Int64() - 1, nil
	default:
		return 0, 0, fmt.Errorf("codegen: %T is not a scalar type", t)
	}
}

var identSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// sanitizeIdent maps an arbitrary source-language name to one legal as
// a Go identifier fragment; it is only ever used as part of a
// larger, uniquified name (see scope/emitter), so collisions between
// two distinct source names that happen to sanitize the same way are
// harmless.
func sanitizeIdent(name string) string {
	s := identSanitizer.ReplaceAllString(name, "_")
	if s == "" {
		return "x"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// scope tracks the Go identifier standing in for each value currently
// addressable as a plain local rather than a state.Handle: function
// parameters (keyed by the stable *ast.VarDecl the parser allocated
// once) and quantifier bindings (keyed by name, since pkg/resolve
// allocates a fresh synthetic VarDecl every time it opens a
// quantifier's scope and does not hand that pointer back to callers —
// codegen instead walks the tree in the same lexical order resolve.go
// did, so a name-keyed stack reproduces the same shadowing).
type scope struct {
	params map[*ast.VarDecl]string
	names  []string // quantifier name stack, innermost last
	idents []string // parallel Go identifier stack
	n      int
}

func newScope() *scope {
	return &scope{params: map[*ast.VarDecl]string{}}
}

// bindParam records the Go identifier for a function parameter,
// addressed by its stable VarDecl pointer.
func (s *scope) bindParam(vd *ast.VarDecl) string {
	s.n++
	ident := fmt.Sprintf("p%d_%s", s.n, sanitizeIdent(vd.Name))
	s.params[vd] = ident
	return ident
}

// pushQuantifier introduces name as a new innermost local binding,
// shadowing any outer binding of the same name, and returns the Go
// identifier to use for it.
func (s *scope) pushQuantifier(name string) string {
	s.n++
	ident := fmt.Sprintf("q%d_%s", s.n, sanitizeIdent(name))
	s.names = append(s.names, name)
	s.idents = append(s.idents, ident)
	return ident
}

func (s *scope) popQuantifier() {
	s.names = s.names[:len(s.names)-1]
	s.idents = s.idents[:len(s.idents)-1]
}

// lookup resolves an ExprID's Decl against the current scope: the
// quantifier stack (innermost first), falling back to the parameter
// map. Returns ok=false for anything else (ScopeState vars, which are
// addressed through a Handle instead).
func (s *scope) lookup(name string, decl *ast.VarDecl) (string, bool) {
	for i := len(s.names) - 1; i >= 0; i-- {
		if s.names[i] == name {
			return s.idents[i], true
		}
	}
	if ident, ok := s.params[decl]; ok {
		return ident, true
	}
	return "", false
}
