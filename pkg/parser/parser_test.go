package parser

import (
	"testing"

	"github.com/specc-lang/specc/pkg/ast"
	"github.com/specc-lang/specc/pkg/token"
)

const togglingModel = `
const
  NumProcs: 2;

type
  proc: 0..NumProcs-1;
  state: enum { Idle, Busy };

var
  phase: array [proc] of state;

startstate "init"
begin
  for p: proc do
    phase[p] := Idle;
  endfor;
end;

ruleset p: proc do
  rule "start work"
    phase[p] = Idle ==>
  begin
    phase[p] := Busy;
  end;
endruleset;

invariant "never all busy"
  exists p: proc do phase[p] = Idle endexists;
`

func parse(t *testing.T, src string) *ast.Model {
	t.Helper()
	m, _, err := Parse(&token.File{Name: "test.m"}, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestParse_ConstAndTypeSections(t *testing.T) {
	m := parse(t, togglingModel)

	var constDecl *ast.ConstDecl
	var typeDecls []*ast.TypeDecl
	for _, d := range m.Decls {
		switch dd := d.(type) {
		case *ast.ConstDecl:
			constDecl = dd
		case *ast.TypeDecl:
			typeDecls = append(typeDecls, dd)
		}
	}
	if constDecl == nil || constDecl.Name != "NumProcs" {
		t.Fatalf("expected a NumProcs const decl, got %+v", constDecl)
	}
	if _, ok := constDecl.Value.(*ast.NumberExpr); !ok {
		t.Errorf("NumProcs value = %T, want *ast.NumberExpr", constDecl.Value)
	}
	if len(typeDecls) != 2 {
		t.Fatalf("len(typeDecls) = %d, want 2", len(typeDecls))
	}
	rangeType, ok := typeDecls[0].Type.(*ast.RangeType)
	if !ok {
		t.Fatalf("proc type = %T, want *ast.RangeType", typeDecls[0].Type)
	}
	if rangeType.Min.Int64() != 0 || rangeType.Max.Int64() != 1 {
		t.Errorf("proc range = %s..%s, want 0..1", rangeType.Min, rangeType.Max)
	}
	enumType, ok := typeDecls[1].Type.(*ast.EnumType)
	if !ok {
		t.Fatalf("state type = %T, want *ast.EnumType", typeDecls[1].Type)
	}
	if len(enumType.Members) != 2 || enumType.Members[0] != "Idle" || enumType.Members[1] != "Busy" {
		t.Errorf("state members = %v, want [Idle Busy]", enumType.Members)
	}
}

func TestParse_VarSectionArrayType(t *testing.T) {
	m := parse(t, togglingModel)

	var phase *ast.VarDecl
	for _, d := range m.Decls {
		if vd, ok := d.(*ast.VarDecl); ok && vd.Name == "phase" {
			phase = vd
		}
	}
	if phase == nil {
		t.Fatalf("expected a phase var decl")
	}
	if phase.Scope != ast.ScopeState {
		t.Errorf("phase.Scope = %v, want ScopeState", phase.Scope)
	}
	if _, ok := phase.Type.(*ast.ArrayType); !ok {
		t.Errorf("phase.Type = %T, want *ast.ArrayType", phase.Type)
	}
}

func TestParse_RulesExpandFromRuleset(t *testing.T) {
	m := parse(t, togglingModel)

	var start *ast.StartStateRule
	var ruleset *ast.Ruleset
	var prop *ast.PropertyRule
	for _, r := range m.Rules {
		switch rr := r.(type) {
		case *ast.StartStateRule:
			start = rr
		case *ast.Ruleset:
			ruleset = rr
		case *ast.PropertyRule:
			prop = rr
		}
	}
	if start == nil || start.Name != "init" {
		t.Fatalf("expected a named start state, got %+v", start)
	}
	if len(start.Body) != 1 {
		t.Fatalf("len(start.Body) = %d, want 1", len(start.Body))
	}
	if _, ok := start.Body[0].(*ast.ForStmt); !ok {
		t.Errorf("start.Body[0] = %T, want *ast.ForStmt", start.Body[0])
	}

	if ruleset == nil {
		t.Fatalf("expected a ruleset rule")
	}
	if ruleset.Quantifier.Name != "p" {
		t.Errorf("ruleset.Quantifier.Name = %q, want %q", ruleset.Quantifier.Name, "p")
	}
	if len(ruleset.Inner) != 1 {
		t.Fatalf("len(ruleset.Inner) = %d, want 1", len(ruleset.Inner))
	}
	simple, ok := ruleset.Inner[0].(*ast.SimpleRule)
	if !ok {
		t.Fatalf("ruleset.Inner[0] = %T, want *ast.SimpleRule", ruleset.Inner[0])
	}
	if simple.Guard == nil {
		t.Errorf("expected a non-nil guard")
	}

	if prop == nil || prop.Property.Kind != ast.Invariant {
		t.Fatalf("expected an invariant property rule, got %+v", prop)
	}
	if _, ok := prop.Property.Cond.(*ast.QuantifiedExpr); !ok {
		t.Errorf("invariant cond = %T, want *ast.QuantifiedExpr", prop.Property.Cond)
	}
}

func TestParse_MultiQuantifierRulesetDesugarsToNesting(t *testing.T) {
	src := `
type
  t: 0..1;
ruleset i: t; j: t do
  rule "noop" true ==> begin end;
endruleset;
`
	m := parse(t, src)
	if len(m.Rules) != 1 {
		t.Fatalf("len(m.Rules) = %d, want 1", len(m.Rules))
	}
	outer, ok := m.Rules[0].(*ast.Ruleset)
	if !ok {
		t.Fatalf("m.Rules[0] = %T, want *ast.Ruleset", m.Rules[0])
	}
	if outer.Quantifier.Name != "i" {
		t.Errorf("outer quantifier = %q, want i", outer.Quantifier.Name)
	}
	if len(outer.Inner) != 1 {
		t.Fatalf("len(outer.Inner) = %d, want 1", len(outer.Inner))
	}
	inner, ok := outer.Inner[0].(*ast.Ruleset)
	if !ok {
		t.Fatalf("outer.Inner[0] = %T, want *ast.Ruleset", outer.Inner[0])
	}
	if inner.Quantifier.Name != "j" {
		t.Errorf("inner quantifier = %q, want j", inner.Quantifier.Name)
	}
	if len(inner.Inner) != 1 {
		t.Fatalf("len(inner.Inner) = %d, want 1", len(inner.Inner))
	}
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	src := `
const
  X: 1 + 2 * 3;
`
	m := parse(t, src)
	cd, ok := m.Decls[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("m.Decls[0] = %T, want *ast.ConstDecl", m.Decls[0])
	}
	// ConstDecl.Value is left unfolded by the parser (only Range/
	// Scalarset/Array bounds are eagerly folded); check the shape
	// directly, then fold to confirm precedence was respected.
	bin, ok := cd.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("X value = %T, want *ast.BinaryExpr", cd.Value)
	}
	if bin.Op != ast.Add {
		t.Errorf("X top-level op = %v, want Add (multiplication binds tighter)", bin.Op)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("X right operand = %T, want *ast.BinaryExpr (the 2*3 term)", bin.Right)
	}
	folded, err := ast.Fold(cd.Value)
	if err != nil {
		t.Fatalf("Fold: %v", err)
	}
	n, ok := folded.(*ast.NumberExpr)
	if !ok || n.Value.Int64() != 7 {
		t.Errorf("folded X = %v, want 7", folded)
	}
}

func TestParse_TernaryAndAssignmentStatements(t *testing.T) {
	src := `
var
  x: 0..1;
  y: 0..1;
startstate
begin
  x := 1;
  y := x = 1 ? 0 : 1;
end;
`
	m := parse(t, src)
	var start *ast.StartStateRule
	for _, r := range m.Rules {
		if s, ok := r.(*ast.StartStateRule); ok {
			start = s
		}
	}
	if start == nil {
		t.Fatalf("expected a start state rule")
	}
	if len(start.Body) != 2 {
		t.Fatalf("len(start.Body) = %d, want 2", len(start.Body))
	}
	assign, ok := start.Body[1].(*ast.AssignmentStmt)
	if !ok {
		t.Fatalf("start.Body[1] = %T, want *ast.AssignmentStmt", start.Body[1])
	}
	if _, ok := assign.RHS.(*ast.TernaryExpr); !ok {
		t.Errorf("assign.RHS = %T, want *ast.TernaryExpr", assign.RHS)
	}
}

func TestParse_ProcedureCallStatement(t *testing.T) {
	src := `
procedure bump(var v: 0..1);
begin
  v := 1;
end;

startstate
begin
  bump(x);
end;
`
	m := parse(t, src)
	if len(m.Functions) != 1 || m.Functions[0].Name != "bump" {
		t.Fatalf("expected one bump function, got %+v", m.Functions)
	}
	var start *ast.StartStateRule
	for _, r := range m.Rules {
		if s, ok := r.(*ast.StartStateRule); ok {
			start = s
		}
	}
	if start == nil || len(start.Body) != 1 {
		t.Fatalf("expected one statement in start state body")
	}
	call, ok := start.Body[0].(*ast.ProcedureCallStmt)
	if !ok {
		t.Fatalf("start.Body[0] = %T, want *ast.ProcedureCallStmt", start.Body[0])
	}
	if call.Name != "bump" || len(call.Args) != 1 {
		t.Errorf("call = %+v, want Name=bump, 1 arg", call)
	}
}

func TestParse_ReindexAssignsUniqueIDs(t *testing.T) {
	m := parse(t, togglingModel)
	if len(m.Decls) == 0 {
		t.Fatalf("expected at least one decl")
	}
	seen := map[ast.ID]bool{}
	for _, d := range m.Decls {
		id := d.NodeID()
		if id == 0 {
			t.Errorf("decl %q left unindexed", d.DeclName())
		}
		if seen[id] {
			t.Errorf("duplicate node ID %d", id)
		}
		seen[id] = true
	}
}
