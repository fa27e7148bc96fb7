package ast

// Rule is the tagged union of top-level rules: a start-state
// initializer, a guarded transition, a standalone property claim, or
// a ruleset/aliasrule wrapper that Flatten expands away before
// codegen.
type Rule interface {
	Node
	RuleName() string
	isRule()
}

// StartStateRule constructs one initial state by running Body against
// a freshly zeroed state.
type StartStateRule struct {
	Base
	Name string
	Body []Stmt
}

func (r *StartStateRule) RuleName() string { return r.Name }
func (*StartStateRule) isRule()            {}

// SimpleRule fires Body against a copy of the current state whenever
// Guard holds.
type SimpleRule struct {
	Base
	Name  string
	Guard Expr // nil means "always enabled"
	Body  []Stmt
}

func (r *SimpleRule) RuleName() string { return r.Name }
func (*SimpleRule) isRule()            {}

// PropertyRule declares a standalone invariant/assumption/cover/
// liveness claim outside of any rule body.
type PropertyRule struct {
	Base
	Name     string
	Property *PropertyStmt
}

func (r *PropertyRule) RuleName() string { return r.Name }
func (*PropertyRule) isRule()            {}

// Ruleset wraps Inner rules, each parameterized by Quantifier. Flatten
// does not copy Inner per binding: it records Quantifier in the
// FlatRule of every leaf rule inside.
type Ruleset struct {
	Base
	Name       string
	Quantifier Quantifier
	Inner      []Rule
}

func (r *Ruleset) RuleName() string { return r.Name }
func (*Ruleset) isRule()            {}

// AliasRule wraps Inner rules, each with Decls (alias bindings)
// visible within it. Flatten records Decls in the FlatRule of every
// leaf rule inside.
type AliasRule struct {
	Base
	Name  string
	Decls []Decl
	Inner []Rule
}

func (r *AliasRule) RuleName() string { return r.Name }
func (*AliasRule) isRule()            {}
