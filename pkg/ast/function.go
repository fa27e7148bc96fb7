package ast

// FunctionDecl is a named function or procedure. A procedure is a
// FunctionDecl with a nil ReturnType.
type FunctionDecl struct {
	Base
	Name       string
	Params     []*VarDecl
	ReturnType TypeExpr // nil for a procedure
	Body       []Stmt
}

// Name is looked up through its own namespace during resolution
// (pkg/resolve), distinct from the four Decl kinds: a FunctionDecl is
// a callable, not a value/type/storage/alias binding.

// IsProcedure reports whether f returns no value.
func (f *FunctionDecl) IsProcedure() bool { return f.ReturnType == nil }
