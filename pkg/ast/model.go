package ast

// Model is the root of a parsed specification: its declarations (in
// source order, mixing Const/Type/Var/Alias), its functions and
// procedures, and its rules (start states, simple rules, standalone
// property rules, rulesets and aliasrules). Derived, by-kind views are
// computed on demand rather than stored, so a pass that mutates Decls
// never has to remember to keep a cached index in sync.
type Model struct {
	Name      string
	Decls     []Decl
	Functions []*FunctionDecl
	Rules     []Rule
}

// StateVars returns every ScopeState VarDecl in Decls, in source
// (and therefore layout) order.
func (m *Model) StateVars() []*VarDecl {
	var out []*VarDecl
	for _, d := range m.Decls {
		if v, ok := d.(*VarDecl); ok && v.Scope == ScopeState {
			out = append(out, v)
		}
	}
	return out
}

// TypeDecls returns every TypeDecl in Decls.
func (m *Model) TypeDecls() []*TypeDecl {
	var out []*TypeDecl
	for _, d := range m.Decls {
		if t, ok := d.(*TypeDecl); ok {
			out = append(out, t)
		}
	}
	return out
}

// ScalarsetTypeDecls returns every TypeDecl whose Type is a
// ScalarsetType, the set eligible for symmetry reduction (C13).
func (m *Model) ScalarsetTypeDecls() []*TypeDecl {
	var out []*TypeDecl
	for _, t := range m.TypeDecls() {
		if _, ok := t.Type.(*ScalarsetType); ok {
			out = append(out, t)
		}
	}
	return out
}

// StartStates returns every StartStateRule in Rules, including those
// nested inside a Ruleset/AliasRule (call Flatten first to get a flat
// list suitable for codegen).
func (m *Model) StartStates() []*StartStateRule {
	var out []*StartStateRule
	var visit func(Rule)
	visit = func(r Rule) {
		switch rr := r.(type) {
		case *StartStateRule:
			out = append(out, rr)
		case *Ruleset:
			for _, inner := range rr.Inner {
				visit(inner)
			}
		case *AliasRule:
			for _, inner := range rr.Inner {
				visit(inner)
			}
		}
	}
	for _, r := range m.Rules {
		visit(r)
	}
	return out
}
