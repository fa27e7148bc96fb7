package smt

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specc-lang/specc/pkg/ast"
)

// Options configures one Simplify run.
type Options struct {
	SolverPath  string        // path to an SMT-LIB2-compatible solver binary
	QueryBudget int           // max check-sat queries issued across the whole run
	Timeout     time.Duration // per-query subprocess timeout; 0 disables
	Concurrency int           // max solver subprocesses in flight at once; <=1 runs serially
}

// Stats reports what one Simplify run actually did.
type Stats struct {
	queriesIssued int64
	substitutions int64

	QueriesIssued  int
	Substitutions  int
	BudgetExceeded bool
}

// Simplify walks m (which must already be resolved — ast.Reindex must
// have run too, so QuantifiedExpr nodes have stable ids to name their
// inlined SMT quantifier variables). Model-level declarations are
// visible to every query; each top-level function body and each
// top-level rule is otherwise independent of its siblings, so they
// are simplified concurrently, up to Options.Concurrency at a time,
// sharing one query budget. Unsupported shapes are left exactly as
// the parser produced them.
func Simplify(ctx context.Context, m *ast.Model, opts Options) (*Stats, error) {
	syms := newSymtab()
	rootStack := &preludeStack{}
	openModelScope(m, syms, rootStack)
	modelFrame := rootStack.frames[0]

	bud := newBudget(opts.QueryBudget)
	stats := &Stats{}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := semaphore.NewWeighted(int64(concurrency))

	g, gctx := errgroup.WithContext(ctx)

	for _, f := range m.Functions {
		f := f
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			s := &simplifier{ctx: gctx, opts: opts, syms: syms, bud: bud, stats: stats}
			stack := &preludeStack{frames: []*preludeFrame{modelFrame}}
			openLocalScope(syms, stack, f.Params)
			return s.rewriteStmts(f.Body, stack)
		})
	}

	for _, r := range m.Rules {
		r := r
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			s := &simplifier{ctx: gctx, opts: opts, syms: syms, bud: bud, stats: stats}
			stack := &preludeStack{frames: []*preludeFrame{modelFrame}}
			return s.rewriteRule(r, stack)
		})
	}

	err := g.Wait()

	stats.QueriesIssued = int(atomic.LoadInt64(&stats.queriesIssued))
	stats.Substitutions = int(atomic.LoadInt64(&stats.substitutions))
	if opts.QueryBudget > 0 && bud.Spent() <= 0 {
		stats.BudgetExceeded = true
	}
	return stats, err
}

// simplifier holds everything one goroutine needs to rewrite an
// independent fragment (one function body or one top-level rule)
// against a shared symbol table and query budget. Every preludeStack
// a simplifier pushes onto is its own: concurrent fragments never
// share a mutable frame slice, only the read-only model-scope frame
// underneath it and the symtab/budget, both of which are
// concurrency-safe.
type simplifier struct {
	ctx   context.Context
	opts  Options
	syms  *symtab
	bud   *budget
	stats *Stats
}

func (s *simplifier) rewriteRule(r ast.Rule, stack *preludeStack) error {
	switch rr := r.(type) {
	case *ast.StartStateRule:
		return s.rewriteStmts(rr.Body, stack)
	case *ast.SimpleRule:
		if rr.Guard != nil {
			rr.Guard = s.rewriteExpr(rr.Guard, stack)
		}
		return s.rewriteStmts(rr.Body, stack)
	case *ast.PropertyRule:
		if rr.Property != nil {
			rr.Property.Cond = s.rewriteExpr(rr.Property.Cond, stack)
		}
		return nil
	case *ast.Ruleset:
		local := stack.push()
		qv := ast.NewVarDecl(rr.Quantifier.Name, rr.Quantifier.Type, ast.ScopeLocal)
		declareVar(local, s.syms, qv, rr.Quantifier.Type)
		defer stack.pop()
		for _, ir := range rr.Inner {
			if err := s.rewriteRule(ir, stack); err != nil {
				return err
			}
		}
		return nil
	case *ast.AliasRule:
		local := stack.push()
		enc := &encoder{syms: s.syms}
		for _, d := range rr.Decls {
			if ad, ok := d.(*ast.AliasDecl); ok {
				declareAlias(local, s.syms, ad, enc)
			}
		}
		defer stack.pop()
		for _, ir := range rr.Inner {
			if err := s.rewriteRule(ir, stack); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func (s *simplifier) rewriteStmts(body []ast.Stmt, stack *preludeStack) error {
	for i, st := range body {
		rewritten, err := s.rewriteStmt(st, stack)
		if err != nil {
			return err
		}
		body[i] = rewritten
	}
	return nil
}

func (s *simplifier) rewriteStmt(st ast.Stmt, stack *preludeStack) (ast.Stmt, error) {
	switch ss := st.(type) {
	case *ast.AssignmentStmt:
		ss.RHS = s.rewriteExpr(ss.RHS, stack)
	case *ast.IfStmt:
		for i := range ss.Clauses {
			if ss.Clauses[i].Cond != nil {
				ss.Clauses[i].Cond = s.rewriteExpr(ss.Clauses[i].Cond, stack)
			}
			if err := s.rewriteStmts(ss.Clauses[i].Body, stack); err != nil {
				return nil, err
			}
		}
	case *ast.SwitchStmt:
		for i := range ss.Cases {
			if err := s.rewriteStmts(ss.Cases[i].Body, stack); err != nil {
				return nil, err
			}
		}
	case *ast.ForStmt:
		local := stack.push()
		qv := ast.NewVarDecl(ss.Quantifier.Name, ss.Quantifier.Type, ast.ScopeLocal)
		declareVar(local, s.syms, qv, ss.Quantifier.Type)
		err := s.rewriteStmts(ss.Body, stack)
		stack.pop()
		if err != nil {
			return nil, err
		}
	case *ast.WhileStmt:
		ss.Cond = s.rewriteExpr(ss.Cond, stack)
		if err := s.rewriteStmts(ss.Body, stack); err != nil {
			return nil, err
		}
	case *ast.PropertyStmt:
		ss.Cond = s.rewriteExpr(ss.Cond, stack)
	case *ast.AliasStmt:
		local := stack.push()
		enc := &encoder{syms: s.syms}
		for _, d := range ss.Decls {
			if ad, ok := d.(*ast.AliasDecl); ok {
				declareAlias(local, s.syms, ad, enc)
			}
		}
		err := s.rewriteStmts(ss.Body, stack)
		stack.pop()
		if err != nil {
			return nil, err
		}
	}
	return st, nil
}

// rewriteExpr rewrites e's children bottom-up, then — if e is boolean
// — asks the solver whether it's a tautology or contradiction.
func (s *simplifier) rewriteExpr(e ast.Expr, stack *preludeStack) ast.Expr {
	switch ee := e.(type) {
	case *ast.BinaryExpr:
		ee.Left = s.rewriteExpr(ee.Left, stack)
		ee.Right = s.rewriteExpr(ee.Right, stack)
	case *ast.UnaryExpr:
		ee.Operand = s.rewriteExpr(ee.Operand, stack)
	case *ast.TernaryExpr:
		ee.Cond = s.rewriteExpr(ee.Cond, stack)
		ee.Then = s.rewriteExpr(ee.Then, stack)
		ee.Else = s.rewriteExpr(ee.Else, stack)
	case *ast.QuantifiedExpr:
		ee.Body = s.rewriteExpr(ee.Body, stack)
	case *ast.FieldExpr:
		ee.Record = s.rewriteExpr(ee.Record, stack)
	case *ast.ElementExpr:
		ee.Array = s.rewriteExpr(ee.Array, stack)
		ee.Index = s.rewriteExpr(ee.Index, stack)
	case *ast.FunctionCallExpr:
		for i, a := range ee.Args {
			ee.Args[i] = s.rewriteExpr(a, stack)
		}
	case *ast.IsUndefinedExpr:
		ee.Operand = s.rewriteExpr(ee.Operand, stack)
	}

	if !isBoolean(e) {
		return e
	}
	enc := &encoder{syms: s.syms}
	candidate, ok := enc.encode(e)
	if !ok {
		return e
	}
	return s.trySubstitute(e, candidate, stack.Script())
}

// trySubstitute asks the two queries §4.8 describes and returns the
// boolean literal replacement when conclusive, e unchanged otherwise.
func (s *simplifier) trySubstitute(e ast.Expr, candidate, prelude string) ast.Expr {
	if !s.bud.Take() {
		return e
	}
	atomic.AddInt64(&s.stats.queriesIssued, 1)
	// "always false": assert the candidate itself; unsat means it can
	// never hold.
	if runQuery(s.ctx, s.opts.SolverPath, buildQuery(prelude, candidate), s.opts.Timeout) == unsat {
		atomic.AddInt64(&s.stats.substitutions, 1)
		return &ast.NumberExpr{Value: boolLit(false)}
	}
	if !s.bud.Take() {
		return e
	}
	atomic.AddInt64(&s.stats.queriesIssued, 1)
	// "always true": assert the negation; unsat means the candidate
	// always holds.
	negated := "(not " + candidate + ")"
	if runQuery(s.ctx, s.opts.SolverPath, buildQuery(prelude, negated), s.opts.Timeout) == unsat {
		atomic.AddInt64(&s.stats.substitutions, 1)
		return &ast.NumberExpr{Value: boolLit(true)}
	}
	return e
}
