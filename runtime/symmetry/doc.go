// Package symmetry implements §4.12's symmetry reduction: a swap_S
// operation per scalarset type and Heap's-algorithm canonicalization
// over the product of every scalarset type's permutation group.
// Codegen emits one Plan per named Scalarset type, describing where in
// the packed state that type's values live; this package only ever
// operates on raw bytes through those plans, so it carries no
// knowledge of the source model's types itself.
package symmetry
