package ast

// Decl is the tagged union of declarations: ConstDecl binds a name to
// a constant value, TypeDecl binds a name to a type, VarDecl allocates
// storage (state-level or local), and AliasDecl binds a name to an
// expression that is substituted wherever the alias is used.
type Decl interface {
	Node
	DeclName() string
	isDecl()
}

// ConstDecl binds Name to the constant-folded Value of an expression.
type ConstDecl struct {
	Base
	Name  string
	Value Expr
}

func (d *ConstDecl) DeclName() string { return d.Name }
func (*ConstDecl) isDecl()            {}

// TypeDecl binds Name to Type. TypeExprID nodes elsewhere in the tree
// hold a back-reference to the TypeDecl once resolution runs.
type TypeDecl struct {
	Base
	Name string
	Type TypeExpr
}

func (d *TypeDecl) DeclName() string { return d.Name }
func (*TypeDecl) isDecl()            {}

// VarScope distinguishes where a VarDecl's storage lives.
type VarScope int

const (
	// ScopeState variables tile the packed state; Offset is valid.
	ScopeState VarScope = iota
	// ScopeLocal variables (locals, parameters, quantifier bindings)
	// get a separately allocated buffer instead of a state offset.
	ScopeLocal
)

// VarDecl binds Name to storage of the given Type. Offset is assigned
// by the layout pass (pkg/layout) for ScopeState variables only; it is
// -1 until then, matching "non-negative once layout runs".
type VarDecl struct {
	Base
	Name   string
	Type   TypeExpr
	Scope  VarScope
	Offset int // bit offset into the state; -1 until layout assigns one
}

func (d *VarDecl) DeclName() string { return d.Name }
func (*VarDecl) isDecl()            {}

// HasOffset reports whether the layout pass has assigned d a bit
// offset yet.
func (d *VarDecl) HasOffset() bool { return d.Offset >= 0 }

// AliasDecl binds Name to Value; every ExprID resolving to an
// AliasDecl is semantically a textual substitution of Value.
type AliasDecl struct {
	Base
	Name  string
	Value Expr
}

func (d *AliasDecl) DeclName() string { return d.Name }
func (*AliasDecl) isDecl()            {}

// NewVarDecl returns a VarDecl with Offset initialized to the
// unassigned sentinel.
func NewVarDecl(name string, t TypeExpr, scope VarScope) *VarDecl {
	return &VarDecl{Name: name, Type: t, Scope: scope, Offset: -1}
}
