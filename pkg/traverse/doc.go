// Package traverse provides generic tree-walking facilities over a
// pkg/ast tree: a child-expansion function shared by every node kind, a
// generic visitor dispatched by concrete type, pre-order/post-order
// iteration over a subtree, and three specialized traversals
// (ExprTraversal, StmtTraversal, TypeTraversal) that descend only
// through the node kinds they are not directly interested in,
// surfacing just the nodes of their target kind for a focused
// rewrite.
package traverse
