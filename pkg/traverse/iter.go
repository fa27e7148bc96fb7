package traverse

import "github.com/specc-lang/specc/pkg/ast"

// PreOrder visits root and every descendant, parent before children,
// using Children as the sole Expander. visit returning false prunes
// that subtree (its children are not visited) but PreOrder continues
// with the node's remaining siblings.
func PreOrder(root ast.Node, visit func(ast.Node) bool) {
	if root == nil {
		return
	}
	if !visit(root) {
		return
	}
	for _, c := range Children(root) {
		PreOrder(c, visit)
	}
}

// PostOrder visits every descendant of root before root itself,
// children before parent. Unlike PreOrder it has no pruning signal —
// post-order passes (liveness propagation over the AST, freeing) need
// to see the whole subtree before deciding anything about the parent.
func PostOrder(root ast.Node, visit func(ast.Node)) {
	if root == nil {
		return
	}
	for _, c := range Children(root) {
		PostOrder(c, visit)
	}
	visit(root)
}

// PreOrderModel runs PreOrder over every top-level child of m in
// declaration order.
func PreOrderModel(m *ast.Model, visit func(ast.Node) bool) {
	for _, n := range ModelChildren(m) {
		PreOrder(n, visit)
	}
}

// PostOrderModel runs PostOrder over every top-level child of m in
// declaration order.
func PostOrderModel(m *ast.Model, visit func(ast.Node)) {
	for _, n := range ModelChildren(m) {
		PostOrder(n, visit)
	}
}
