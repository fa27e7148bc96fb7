package ast

import "math/big"

// cloner deep-copies a Model. Declaration sites are cloned before the
// expressions/statements that reference them (Model.Decls, then
// Functions, then Rules, and within each, quantifier/alias bindings
// before the body that uses them) so declMap/funcMap are always
// populated by the time a back-reference needs rewriting.
type cloner struct {
	declMap map[Decl]Decl
	funcMap map[*FunctionDecl]*FunctionDecl
}

// Clone returns a deep copy of m. No node or slice is shared with the
// original; ExprID.Decl, TypeExprID.Decl and *Callee back-references
// are re-resolved against the clone's own declaration sites rather
// than copied as pointers into the original tree.
func Clone(m *Model) *Model {
	c := &cloner{declMap: map[Decl]Decl{}, funcMap: map[*FunctionDecl]*FunctionDecl{}}
	out := &Model{Name: m.Name}
	for _, d := range m.Decls {
		out.Decls = append(out.Decls, c.cloneDecl(d))
	}
	for _, f := range m.Functions {
		out.Functions = append(out.Functions, c.cloneFunction(f))
	}
	for _, r := range m.Rules {
		out.Rules = append(out.Rules, c.cloneRule(r))
	}
	return out
}

func (c *cloner) cloneType(t TypeExpr) TypeExpr {
	if t == nil {
		return nil
	}
	switch tt := t.(type) {
	case *RangeType:
		n := *tt
		if tt.Min != nil {
			n.Min = new(big.Int).Set(tt.Min)
		}
		if tt.Max != nil {
			n.Max = new(big.Int).Set(tt.Max)
		}
		return &n
	case *EnumType:
		n := *tt
		n.Members = append([]string(nil), tt.Members...)
		return &n
	case *ScalarsetType:
		n := *tt
		if tt.Bound != nil {
			n.Bound = new(big.Int).Set(tt.Bound)
		}
		return &n
	case *ArrayType:
		n := *tt
		n.Index = c.cloneType(tt.Index)
		n.Element = c.cloneType(tt.Element)
		return &n
	case *RecordType:
		n := *tt
		n.Fields = make([]RecordField, len(tt.Fields))
		for i, f := range tt.Fields {
			n.Fields[i] = RecordField{Name: f.Name, Type: c.cloneType(f.Type)}
		}
		return &n
	case *TypeExprID:
		n := *tt
		if tt.Decl != nil {
			if nd, ok := c.declMap[tt.Decl]; ok {
				n.Decl = nd.(*TypeDecl)
			}
		}
		return &n
	default:
		return t
	}
}

func (c *cloner) cloneDecl(d Decl) Decl {
	if d == nil {
		return nil
	}
	var out Decl
	switch dd := d.(type) {
	case *ConstDecl:
		n := *dd
		n.Value = c.cloneExpr(dd.Value)
		out = &n
	case *TypeDecl:
		n := *dd
		out = &n // register before cloning Type, in case Type self-references via an alias cycle broken elsewhere
		c.declMap[d] = out
		n.Type = c.cloneType(dd.Type)
		return out
	case *VarDecl:
		n := *dd
		n.Type = c.cloneType(dd.Type)
		out = &n
	case *AliasDecl:
		n := *dd
		n.Value = c.cloneExpr(dd.Value)
		out = &n
	default:
		return d
	}
	c.declMap[d] = out
	return out
}

func (c *cloner) cloneFunction(f *FunctionDecl) *FunctionDecl {
	n := &FunctionDecl{Base: f.Base, Name: f.Name}
	c.funcMap[f] = n
	for _, p := range f.Params {
		n.Params = append(n.Params, c.cloneDecl(p).(*VarDecl))
	}
	n.ReturnType = c.cloneType(f.ReturnType)
	for _, s := range f.Body {
		n.Body = append(n.Body, c.cloneStmt(s))
	}
	return n
}

func (c *cloner) cloneQuantifier(q Quantifier) Quantifier {
	return Quantifier{
		Name: q.Name,
		Type: c.cloneType(q.Type),
		From: c.cloneExpr(q.From),
		To:   c.cloneExpr(q.To),
		Step: c.cloneExpr(q.Step),
	}
}

func (c *cloner) cloneExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch ee := e.(type) {
	case *BinaryExpr:
		n := *ee
		n.Left = c.cloneExpr(ee.Left)
		n.Right = c.cloneExpr(ee.Right)
		return &n
	case *UnaryExpr:
		n := *ee
		n.Operand = c.cloneExpr(ee.Operand)
		return &n
	case *TernaryExpr:
		n := *ee
		n.Cond = c.cloneExpr(ee.Cond)
		n.Then = c.cloneExpr(ee.Then)
		n.Else = c.cloneExpr(ee.Else)
		return &n
	case *QuantifiedExpr:
		n := *ee
		n.Quantifier = c.cloneQuantifier(ee.Quantifier)
		n.Body = c.cloneExpr(ee.Body)
		return &n
	case *ExprID:
		n := *ee
		if ee.Decl != nil {
			if nd, ok := c.declMap[ee.Decl]; ok {
				n.Decl = nd
			}
		}
		return &n
	case *FieldExpr:
		n := *ee
		n.Record = c.cloneExpr(ee.Record)
		return &n
	case *ElementExpr:
		n := *ee
		n.Array = c.cloneExpr(ee.Array)
		n.Index = c.cloneExpr(ee.Index)
		return &n
	case *FunctionCallExpr:
		n := *ee
		n.Args = c.cloneExprs(ee.Args)
		if ee.Callee != nil {
			if nf, ok := c.funcMap[ee.Callee]; ok {
				n.Callee = nf
			}
		}
		return &n
	case *NumberExpr:
		n := *ee
		return &n
	case *IsUndefinedExpr:
		n := *ee
		n.Operand = c.cloneExpr(ee.Operand)
		return &n
	default:
		return e
	}
}

func (c *cloner) cloneExprs(es []Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = c.cloneExpr(e)
	}
	return out
}

func (c *cloner) cloneStmts(ss []Stmt) []Stmt {
	if ss == nil {
		return nil
	}
	out := make([]Stmt, len(ss))
	for i, s := range ss {
		out[i] = c.cloneStmt(s)
	}
	return out
}

func (c *cloner) cloneStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	switch ss := s.(type) {
	case *AssignmentStmt:
		n := *ss
		n.LHS, n.RHS = c.cloneExpr(ss.LHS), c.cloneExpr(ss.RHS)
		return &n
	case *ClearStmt:
		n := *ss
		n.LHS = c.cloneExpr(ss.LHS)
		return &n
	case *UndefineStmt:
		n := *ss
		n.LHS = c.cloneExpr(ss.LHS)
		return &n
	case *IfStmt:
		n := *ss
		n.Clauses = make([]IfClause, len(ss.Clauses))
		for i, cl := range ss.Clauses {
			n.Clauses[i] = IfClause{Cond: c.cloneExpr(cl.Cond), Body: c.cloneStmts(cl.Body)}
		}
		return &n
	case *SwitchStmt:
		n := *ss
		n.Tag = c.cloneExpr(ss.Tag)
		n.Cases = make([]SwitchCase, len(ss.Cases))
		for i, cs := range ss.Cases {
			n.Cases[i] = SwitchCase{Matches: c.cloneExprs(cs.Matches), Body: c.cloneStmts(cs.Body)}
		}
		return &n
	case *ForStmt:
		n := *ss
		n.Quantifier = c.cloneQuantifier(ss.Quantifier)
		n.Body = c.cloneStmts(ss.Body)
		return &n
	case *WhileStmt:
		n := *ss
		n.Cond = c.cloneExpr(ss.Cond)
		n.Body = c.cloneStmts(ss.Body)
		return &n
	case *ReturnStmt:
		n := *ss
		n.Value = c.cloneExpr(ss.Value)
		return &n
	case *ProcedureCallStmt:
		n := *ss
		n.Args = c.cloneExprs(ss.Args)
		if ss.Callee != nil {
			if nf, ok := c.funcMap[ss.Callee]; ok {
				n.Callee = nf
			}
		}
		return &n
	case *PropertyStmt:
		n := *ss
		n.Cond = c.cloneExpr(ss.Cond)
		return &n
	case *ErrorStmt:
		n := *ss
		return &n
	case *AliasStmt:
		n := *ss
		n.Decls = make([]Decl, len(ss.Decls))
		for i, d := range ss.Decls {
			n.Decls[i] = c.cloneDecl(d)
		}
		n.Body = c.cloneStmts(ss.Body)
		return &n
	case *PutStmt:
		n := *ss
		n.Value = c.cloneExpr(ss.Value)
		return &n
	default:
		return s
	}
}

func (c *cloner) cloneRule(r Rule) Rule {
	if r == nil {
		return nil
	}
	switch rr := r.(type) {
	case *StartStateRule:
		n := *rr
		n.Body = c.cloneStmts(rr.Body)
		return &n
	case *SimpleRule:
		n := *rr
		n.Guard = c.cloneExpr(rr.Guard)
		n.Body = c.cloneStmts(rr.Body)
		return &n
	case *PropertyRule:
		n := *rr
		n.Property = c.cloneStmt(rr.Property).(*PropertyStmt)
		return &n
	case *Ruleset:
		n := *rr
		n.Quantifier = c.cloneQuantifier(rr.Quantifier)
		n.Inner = make([]Rule, len(rr.Inner))
		for i, inner := range rr.Inner {
			n.Inner[i] = c.cloneRule(inner)
		}
		return &n
	case *AliasRule:
		n := *rr
		n.Decls = make([]Decl, len(rr.Decls))
		for i, d := range rr.Decls {
			n.Decls[i] = c.cloneDecl(d)
		}
		n.Inner = make([]Rule, len(rr.Inner))
		for i, inner := range rr.Inner {
			n.Inner[i] = c.cloneRule(inner)
		}
		return &n
	default:
		return r
	}
}
