package smt

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/specc-lang/specc/pkg/ast"
)

// symtab assigns every Decl visible to the simplifier a unique
// SMT-LIB symbol name the first time it's declared, and recalls it on
// later lookups. Declarations never get reassigned a new name even
// after their scope closes, so a name is never reused for a different
// Decl within one Simplify run — the one-shot, no-push/pop subprocess
// model means every query is a fresh script built from whatever
// frames are currently open, so a stale-but-unambiguous name costs
// nothing.
type symtab struct {
	mu    sync.Mutex
	names map[ast.Decl]string
	next  int
}

func newSymtab() *symtab { return &symtab{names: make(map[ast.Decl]string)} }

func (s *symtab) declare(d ast.Decl) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name, ok := s.names[d]; ok {
		return name
	}
	name := fmt.Sprintf("v%d", s.next)
	s.next++
	s.names[d] = name
	return name
}

func (s *symtab) lookup(d ast.Decl) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.names[d]
	return name, ok
}

// preludeFrame is one lexical level's worth of solver declarations —
// the SMT-LIB analogue of a resolve.Scope. Opened and closed at
// exactly the points pkg/resolve opens and closes a Scope (model,
// then each rule/function, then each block/quantifier that declares
// locals), so that a name visible to a query is exactly the set of
// source identifiers visible at that point in the tree.
type preludeFrame struct {
	lines []string
}

// preludeStack accumulates frames; Script concatenates every open
// frame's lines in order, giving the full prelude visible at the
// current point in the walk.
type preludeStack struct {
	frames []*preludeFrame
}

func (s *preludeStack) push() *preludeFrame {
	f := &preludeFrame{}
	s.frames = append(s.frames, f)
	return f
}

func (s *preludeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *preludeStack) Script() string {
	var all []string
	for _, f := range s.frames {
		all = append(all, f.lines...)
	}
	return joinLines(all)
}

// declareVar emits a declare-const for d (an Int symbol) plus an
// assert constraining it to t's encoded range, when t is simple.
// Composite types are not declared to the solver; expressions
// mentioning them are simply left unsupported by the encoder.
func declareVar(f *preludeFrame, syms *symtab, d ast.Decl, t ast.TypeExpr) {
	sym := syms.declare(d)
	f.lines = append(f.lines, fmt.Sprintf("(declare-const %s Int)", sym))
	if lo, hi, ok := simpleBounds(t); ok {
		f.lines = append(f.lines, fmt.Sprintf("(assert (and (>= %s %s) (<= %s %s)))", sym, lo.String(), sym, hi.String()))
	}
}

// declareConst emits a define-fun binding d's constant-folded value,
// when foldable; otherwise it falls back to an unconstrained const so
// references to it don't break encoding, just precision.
func declareConst(f *preludeFrame, syms *symtab, d *ast.ConstDecl) {
	sym := syms.declare(d)
	if folded, err := ast.Fold(d.Value); err == nil {
		if n, ok := folded.(*ast.NumberExpr); ok {
			f.lines = append(f.lines, fmt.Sprintf("(define-fun %s () Int %s)", sym, n.Value.String()))
			return
		}
	}
	f.lines = append(f.lines, fmt.Sprintf("(declare-const %s Int)", sym))
}

// declareAlias emits a define-fun aliasing d's value expression when
// that expression itself encodes (it may reference locals out of this
// package's reach, e.g. a composite field), otherwise an unconstrained
// const as a safe fallback.
func declareAlias(f *preludeFrame, syms *symtab, d *ast.AliasDecl, enc *encoder) {
	sym := syms.declare(d)
	if expr, ok := enc.encode(d.Value); ok {
		f.lines = append(f.lines, fmt.Sprintf("(define-fun %s () Int %s)", sym, expr))
		return
	}
	f.lines = append(f.lines, fmt.Sprintf("(declare-const %s Int)", sym))
}

func simpleBounds(t ast.TypeExpr) (lo, hi *big.Int, ok bool) {
	switch tt := resolveSimple(t).(type) {
	case *ast.RangeType:
		return tt.Min, tt.Max, true
	case *ast.ScalarsetType:
		return big.NewInt(0), new(big.Int).Sub(tt.Bound, big.NewInt(1)), true
	case *ast.EnumType:
		return big.NewInt(0), big.NewInt(int64(len(tt.Members) - 1)), true
	default:
		return nil, nil, false
	}
}

func resolveSimple(t ast.TypeExpr) ast.TypeExpr {
	for {
		id, ok := t.(*ast.TypeExprID)
		if !ok || id.Decl == nil {
			return t
		}
		t = id.Decl.Type
	}
}

// openModelScope declares every model-level Const/Var decl, the
// outermost, always-open frame every query sees.
func openModelScope(m *ast.Model, syms *symtab, stack *preludeStack) {
	f := stack.push()
	for _, d := range m.Decls {
		switch dd := d.(type) {
		case *ast.ConstDecl:
			declareConst(f, syms, dd)
		case *ast.VarDecl:
			declareVar(f, syms, dd, dd.Type)
		}
	}
}

// openLocalScope declares a function's parameters, or a quantifier's
// bound variable treated as a plain local (used when the quantifier
// itself can't be inlined as a native SMT quantifier, e.g. a Ruleset
// quantifier referenced from a sibling rule rather than from within
// the QuantifiedExpr that would otherwise encode it directly).
func openLocalScope(syms *symtab, stack *preludeStack, decls []*ast.VarDecl) {
	f := stack.push()
	for _, d := range decls {
		declareVar(f, syms, d, d.Type)
	}
}
