// Package ast is the in-memory intermediate representation of a parsed
// specification: declarations, types, expressions, statements, rules
// and the model that owns them all.
//
// Every node embeds Base, which carries the node's source Location and
// a process-unique ID assigned by Reindex. Nodes form an ownership
// tree: a parent's children are copied by value when the tree is
// cloned. Cross-tree references produced by symbol resolution
// (ExprID.Decl, TypeExprID.Decl) are non-owning back-pointers into the
// same tree; Clone re-resolves them against the cloned tree instead of
// copying the pointer, so two clones never alias each other's state.
//
// Each of the five node categories (Decl, TypeExpr, Expr, Stmt, Rule)
// is a Go interface implemented by a small set of concrete struct
// types — the tagged-union idiom for a language without virtual
// dispatch: a type switch over the concrete type plays the role the
// original's visitor pattern played.
package ast
