// Package resolve walks a parsed Model maintaining a lexical scope
// stack — model scope enclosing rule/function scope enclosing
// block/quantifier scope — and binds every ExprID and TypeExprID to
// the nearest enclosing declaration of that name. The SMT simplifier
// (pkg/smt) does not use Scope: it keeps its own stack of solver
// declaration frames, pushed where a scope declares names, so that
// solver symbols shadow the same way source identifiers do.
package resolve
