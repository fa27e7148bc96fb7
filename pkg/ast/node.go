package ast

import "github.com/specc-lang/specc/pkg/token"

// ID is a process-unique node identifier assigned by Reindex. Codegen
// uses it as a stable symbolic name for emitted functions and labels.
type ID uint64

// Node is implemented by every tree element: declarations, types,
// expressions, statements and rules all embed Base to satisfy it.
type Node interface {
	Loc() token.Location
	NodeID() ID
	setID(ID)
}

// Base carries the fields every concrete node shares. Embed it to
// implement Node without writing the boilerplate three times per
// variant.
type Base struct {
	Location token.Location
	ID       ID
}

func (b *Base) Loc() token.Location { return b.Location }
func (b *Base) NodeID() ID          { return b.ID }
func (b *Base) setID(id ID)         { b.ID = id }

// Reindexer assigns fresh, process-unique IDs to every node reachable
// from a Model, overwriting whatever IDs (if any) the nodes carried
// before. It is run once after parsing and again after any pass that
// clones or splices subtrees (the SMT simplifier's substitutions), so
// that codegen always has a total, collision-free naming scheme to
// work from.
type Reindexer struct {
	next ID
}

// NewReindexer starts numbering at 1; 0 is reserved to mean "no node".
func NewReindexer() *Reindexer {
	return &Reindexer{next: 1}
}

// Assign gives n the next unused ID and returns it.
func (r *Reindexer) Assign(n Node) ID {
	id := r.next
	r.next++
	n.setID(id)
	return id
}

// Reindex walks m's children and functions, depth-first, assigning a
// fresh ID to every node. Returns the total number of nodes numbered.
func Reindex(m *Model) int {
	r := NewReindexer()
	count := 0
	var walkDecl func(Decl)
	var walkType func(TypeExpr)
	var walkExpr func(Expr)
	var walkStmt func(Stmt)
	var walkRule func(Rule)

	walkType = func(t TypeExpr) {
		if t == nil {
			return
		}
		r.Assign(t)
		count++
		switch tt := t.(type) {
		case *ArrayType:
			walkType(tt.Index)
			walkType(tt.Element)
		case *RecordType:
			for _, f := range tt.Fields {
				walkType(f.Type)
			}
		}
	}

	walkDecl = func(d Decl) {
		if d == nil {
			return
		}
		r.Assign(d)
		count++
		switch dd := d.(type) {
		case *ConstDecl:
			walkExpr(dd.Value)
		case *TypeDecl:
			walkType(dd.Type)
		case *VarDecl:
			walkType(dd.Type)
		case *AliasDecl:
			walkExpr(dd.Value)
		}
	}

	walkExpr = func(e Expr) {
		if e == nil {
			return
		}
		r.Assign(e)
		count++
		switch ee := e.(type) {
		case *BinaryExpr:
			walkExpr(ee.Left)
			walkExpr(ee.Right)
		case *UnaryExpr:
			walkExpr(ee.Operand)
		case *TernaryExpr:
			walkExpr(ee.Cond)
			walkExpr(ee.Then)
			walkExpr(ee.Else)
		case *QuantifiedExpr:
			walkType(ee.Quantifier.Type)
			walkExpr(ee.Quantifier.From)
			walkExpr(ee.Quantifier.To)
			walkExpr(ee.Quantifier.Step)
			walkExpr(ee.Body)
		case *FieldExpr:
			walkExpr(ee.Record)
		case *ElementExpr:
			walkExpr(ee.Array)
			walkExpr(ee.Index)
		case *FunctionCallExpr:
			for _, a := range ee.Args {
				walkExpr(a)
			}
		case *IsUndefinedExpr:
			walkExpr(ee.Operand)
		}
	}

	walkStmt = func(s Stmt) {
		if s == nil {
			return
		}
		r.Assign(s)
		count++
		switch ss := s.(type) {
		case *AssignmentStmt:
			walkExpr(ss.LHS)
			walkExpr(ss.RHS)
		case *ClearStmt:
			walkExpr(ss.LHS)
		case *UndefineStmt:
			walkExpr(ss.LHS)
		case *IfStmt:
			for _, c := range ss.Clauses {
				walkExpr(c.Cond)
				for _, b := range c.Body {
					walkStmt(b)
				}
			}
		case *SwitchStmt:
			walkExpr(ss.Tag)
			for _, c := range ss.Cases {
				for _, m := range c.Matches {
					walkExpr(m)
				}
				for _, b := range c.Body {
					walkStmt(b)
				}
			}
		case *ForStmt:
			walkType(ss.Quantifier.Type)
			walkExpr(ss.Quantifier.From)
			walkExpr(ss.Quantifier.To)
			walkExpr(ss.Quantifier.Step)
			for _, b := range ss.Body {
				walkStmt(b)
			}
		case *WhileStmt:
			walkExpr(ss.Cond)
			for _, b := range ss.Body {
				walkStmt(b)
			}
		case *ReturnStmt:
			walkExpr(ss.Value)
		case *ProcedureCallStmt:
			for _, a := range ss.Args {
				walkExpr(a)
			}
		case *PropertyStmt:
			walkExpr(ss.Cond)
		case *AliasStmt:
			for _, d := range ss.Decls {
				walkDecl(d)
			}
			for _, b := range ss.Body {
				walkStmt(b)
			}
		case *PutStmt:
			walkExpr(ss.Value)
		}
	}

	walkRule = func(rl Rule) {
		if rl == nil {
			return
		}
		r.Assign(rl)
		count++
		switch rr := rl.(type) {
		case *StartStateRule:
			for _, b := range rr.Body {
				walkStmt(b)
			}
		case *SimpleRule:
			walkExpr(rr.Guard)
			for _, b := range rr.Body {
				walkStmt(b)
			}
		case *PropertyRule:
			walkExpr(rr.Property.Cond)
		case *Ruleset:
			walkType(rr.Quantifier.Type)
			walkExpr(rr.Quantifier.From)
			walkExpr(rr.Quantifier.To)
			walkExpr(rr.Quantifier.Step)
			for _, inner := range rr.Inner {
				walkRule(inner)
			}
		case *AliasRule:
			for _, d := range rr.Decls {
				walkDecl(d)
			}
			for _, inner := range rr.Inner {
				walkRule(inner)
			}
		}
	}

	for _, d := range m.Decls {
		walkDecl(d)
	}
	for _, f := range m.Functions {
		r.Assign(f)
		count++
		for _, p := range f.Params {
			walkDecl(p)
		}
		if f.ReturnType != nil {
			walkType(f.ReturnType)
		}
		for _, b := range f.Body {
			walkStmt(b)
		}
	}
	for _, rl := range m.Rules {
		walkRule(rl)
	}
	return count
}
