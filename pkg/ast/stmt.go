package ast

// Stmt is the tagged union of statements.
type Stmt interface {
	Node
	isStmt()
}

// AssignmentStmt is `LHS := RHS`.
type AssignmentStmt struct {
	Base
	LHS, RHS Expr
}

func (*AssignmentStmt) isStmt() {}

// ClearStmt zeroes LHS's entire encoded representation (every bit 0,
// which for a composite type recursively clears every leaf).
type ClearStmt struct {
	Base
	LHS Expr
}

func (*ClearStmt) isStmt() {}

// UndefineStmt sets LHS to the undefined-marker encoding.
type UndefineStmt struct {
	Base
	LHS Expr
}

func (*UndefineStmt) isStmt() {}

// IfClause is one `Cond -> Body` arm of an IfStmt; the final else arm
// (if present) has a nil Cond.
type IfClause struct {
	Cond Expr // nil for the trailing else
	Body []Stmt
}

// IfStmt is an ordered sequence of guarded clauses, evaluated in
// order; the first whose Cond is true (or the trailing else) runs.
type IfStmt struct {
	Base
	Clauses []IfClause
}

func (*IfStmt) isStmt() {}

// SwitchCase is one `case Matches: Body` arm; an empty Matches list
// marks the default arm.
type SwitchCase struct {
	Matches []Expr
	Body    []Stmt
}

// SwitchStmt dispatches on Tag against each case's Matches in order.
type SwitchStmt struct {
	Base
	Tag   Expr
	Cases []SwitchCase
}

func (*SwitchStmt) isStmt() {}

// ForStmt runs Body once per binding of Quantifier's domain, in
// ascending order.
type ForStmt struct {
	Base
	Quantifier Quantifier
	Body       []Stmt
}

func (*ForStmt) isStmt() {}

// WhileStmt runs Body while Cond holds.
type WhileStmt struct {
	Base
	Cond Expr
	Body []Stmt
}

func (*WhileStmt) isStmt() {}

// ReturnStmt returns from the enclosing function, optionally with a
// Value (nil for a procedure).
type ReturnStmt struct {
	Base
	Value Expr // nil for a procedure return
}

func (*ReturnStmt) isStmt() {}

// ProcedureCallStmt invokes a procedure for effect, discarding any
// return value.
type ProcedureCallStmt struct {
	Base
	Name   string
	Args   []Expr
	Callee *FunctionDecl
}

func (*ProcedureCallStmt) isStmt() {}

// PropertyKind distinguishes the three property statement forms that
// collapse to the same AST node: an invariant, an assumption used to
// prune exploration, or a cover property that must be hit at least
// once.
type PropertyKind int

const (
	Invariant PropertyKind = iota
	Assumption
	Cover
	Liveness
)

// PropertyStmt asserts Cond as a property of Kind. Name, if non-empty,
// labels it in diagnostics.
type PropertyStmt struct {
	Base
	Kind PropertyKind
	Name string
	Cond Expr
}

func (*PropertyStmt) isStmt() {}

// ErrorStmt unconditionally reports Message as a user-raised error
// when control reaches it.
type ErrorStmt struct {
	Base
	Message string
}

func (*ErrorStmt) isStmt() {}

// AliasStmt introduces Decls (AliasDecl bindings) visible only within
// Body.
type AliasStmt struct {
	Base
	Decls []Decl
	Body  []Stmt
}

func (*AliasStmt) isStmt() {}

// PutStmt prints Value (or a literal Text, when Value is nil) to the
// checker's diagnostic output; used for ad hoc tracing in a model.
type PutStmt struct {
	Base
	Text  string
	Value Expr
}

func (*PutStmt) isStmt() {}
