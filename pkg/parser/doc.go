// Package parser builds a pkg/ast tree from a pkg/token stream scanned
// by pkg/lexer. It is a straightforward recursive-descent parser, one
// method per grammar production, with a small Pratt-style precedence
// table driving expression parsing.
//
// Bound expressions (Range/Scalarset/Array bounds) are constant-folded
// to *big.Int as they are parsed rather than left as Expr: the parser
// keeps a running table of the const declarations seen so far in the
// parse and resolves an ExprID against it locally before
// calling ast.Fold, since general symbol resolution (pkg/resolve) has
// not run yet at parse time. This mirrors how a one-pass compiler
// typically handles "must be declared before use" constant references.
//
// A separate comment pass (pkg/lexer.Comments) returns every comment
// in source order for a caller to interleave with the parsed tree by
// Location; this package's grammar stays comment-free.
package parser
