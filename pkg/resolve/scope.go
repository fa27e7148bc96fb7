package resolve

import "github.com/specc-lang/specc/pkg/ast"

// Scope is one level of the lexical stack: model scope at the root,
// a rule or function scope nested inside it, and a block/quantifier
// scope nested further for each For, Ruleset, quantified expression,
// AliasStmt or AliasRule. Lookup walks outward through Parent until a
// binding is found or the chain is exhausted.
type Scope struct {
	Parent *Scope
	names  map[string]ast.Decl
}

// NewScope opens a new scope nested inside parent. parent may be nil
// for the outermost (model) scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, names: make(map[string]ast.Decl)}
}

// Define binds name to d in s, shadowing any binding of the same name
// in an enclosing scope. Redeclaration within the same scope is a
// validator concern (pkg/validate), not resolve's: the later Define
// simply wins.
func (s *Scope) Define(name string, d ast.Decl) {
	s.names[name] = d
}

// Lookup returns the nearest enclosing binding of name, searching s
// and then each Parent in turn.
func (s *Scope) Lookup(name string) (ast.Decl, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if d, ok := sc.names[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// FunctionScope is the flat, non-nested namespace functions and
// procedures are called through: the source language allows mutual
// recursion, so every function name is registered before any body is
// resolved.
type FunctionScope struct {
	byName map[string]*ast.FunctionDecl
}

// NewFunctionScope returns an empty function namespace.
func NewFunctionScope() *FunctionScope {
	return &FunctionScope{byName: make(map[string]*ast.FunctionDecl)}
}

// Define registers f under its own name.
func (fs *FunctionScope) Define(f *ast.FunctionDecl) {
	fs.byName[f.Name] = f
}

// Lookup returns the function or procedure named name, if any.
func (fs *FunctionScope) Lookup(name string) (*ast.FunctionDecl, bool) {
	f, ok := fs.byName[name]
	return f, ok
}
