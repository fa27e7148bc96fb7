package traverse

import "github.com/specc-lang/specc/pkg/ast"

// Visitor has one method per concrete node kind. Dispatch picks the
// right method by a type switch on n's concrete type — the tagged-
// union analogue of the original's virtual-dispatch visitor.
// Embedding BaseVisitor gives every method a no-op default so a
// caller only overrides the kinds it cares about.
type Visitor interface {
	VisitConstDecl(*ast.ConstDecl)
	VisitTypeDecl(*ast.TypeDecl)
	VisitVarDecl(*ast.VarDecl)
	VisitAliasDecl(*ast.AliasDecl)
	VisitFunctionDecl(*ast.FunctionDecl)

	VisitRangeType(*ast.RangeType)
	VisitEnumType(*ast.EnumType)
	VisitScalarsetType(*ast.ScalarsetType)
	VisitArrayType(*ast.ArrayType)
	VisitRecordType(*ast.RecordType)
	VisitTypeExprID(*ast.TypeExprID)

	VisitBinaryExpr(*ast.BinaryExpr)
	VisitUnaryExpr(*ast.UnaryExpr)
	VisitTernaryExpr(*ast.TernaryExpr)
	VisitQuantifiedExpr(*ast.QuantifiedExpr)
	VisitExprID(*ast.ExprID)
	VisitFieldExpr(*ast.FieldExpr)
	VisitElementExpr(*ast.ElementExpr)
	VisitFunctionCallExpr(*ast.FunctionCallExpr)
	VisitNumberExpr(*ast.NumberExpr)
	VisitIsUndefinedExpr(*ast.IsUndefinedExpr)

	VisitAssignmentStmt(*ast.AssignmentStmt)
	VisitClearStmt(*ast.ClearStmt)
	VisitUndefineStmt(*ast.UndefineStmt)
	VisitIfStmt(*ast.IfStmt)
	VisitSwitchStmt(*ast.SwitchStmt)
	VisitForStmt(*ast.ForStmt)
	VisitWhileStmt(*ast.WhileStmt)
	VisitReturnStmt(*ast.ReturnStmt)
	VisitProcedureCallStmt(*ast.ProcedureCallStmt)
	VisitPropertyStmt(*ast.PropertyStmt)
	VisitErrorStmt(*ast.ErrorStmt)
	VisitAliasStmt(*ast.AliasStmt)
	VisitPutStmt(*ast.PutStmt)

	VisitStartStateRule(*ast.StartStateRule)
	VisitSimpleRule(*ast.SimpleRule)
	VisitPropertyRule(*ast.PropertyRule)
	VisitRuleset(*ast.Ruleset)
	VisitAliasRule(*ast.AliasRule)
}

// BaseVisitor implements Visitor with every method a no-op. Embed it
// in a concrete visitor struct and override only the methods needed.
type BaseVisitor struct{}

func (BaseVisitor) VisitConstDecl(*ast.ConstDecl)             {}
func (BaseVisitor) VisitTypeDecl(*ast.TypeDecl)                {}
func (BaseVisitor) VisitVarDecl(*ast.VarDecl)                  {}
func (BaseVisitor) VisitAliasDecl(*ast.AliasDecl)              {}
func (BaseVisitor) VisitFunctionDecl(*ast.FunctionDecl)        {}
func (BaseVisitor) VisitRangeType(*ast.RangeType)              {}
func (BaseVisitor) VisitEnumType(*ast.EnumType)                {}
func (BaseVisitor) VisitScalarsetType(*ast.ScalarsetType)      {}
func (BaseVisitor) VisitArrayType(*ast.ArrayType)              {}
func (BaseVisitor) VisitRecordType(*ast.RecordType)            {}
func (BaseVisitor) VisitTypeExprID(*ast.TypeExprID)            {}
func (BaseVisitor) VisitBinaryExpr(*ast.BinaryExpr)            {}
func (BaseVisitor) VisitUnaryExpr(*ast.UnaryExpr)              {}
func (BaseVisitor) VisitTernaryExpr(*ast.TernaryExpr)          {}
func (BaseVisitor) VisitQuantifiedExpr(*ast.QuantifiedExpr)    {}
func (BaseVisitor) VisitExprID(*ast.ExprID)                    {}
func (BaseVisitor) VisitFieldExpr(*ast.FieldExpr)              {}
func (BaseVisitor) VisitElementExpr(*ast.ElementExpr)          {}
func (BaseVisitor) VisitFunctionCallExpr(*ast.FunctionCallExpr) {}
func (BaseVisitor) VisitNumberExpr(*ast.NumberExpr)            {}
func (BaseVisitor) VisitIsUndefinedExpr(*ast.IsUndefinedExpr)  {}
func (BaseVisitor) VisitAssignmentStmt(*ast.AssignmentStmt)    {}
func (BaseVisitor) VisitClearStmt(*ast.ClearStmt)              {}
func (BaseVisitor) VisitUndefineStmt(*ast.UndefineStmt)        {}
func (BaseVisitor) VisitIfStmt(*ast.IfStmt)                    {}
func (BaseVisitor) VisitSwitchStmt(*ast.SwitchStmt)            {}
func (BaseVisitor) VisitForStmt(*ast.ForStmt)                  {}
func (BaseVisitor) VisitWhileStmt(*ast.WhileStmt)              {}
func (BaseVisitor) VisitReturnStmt(*ast.ReturnStmt)            {}
func (BaseVisitor) VisitProcedureCallStmt(*ast.ProcedureCallStmt) {}
func (BaseVisitor) VisitPropertyStmt(*ast.PropertyStmt)        {}
func (BaseVisitor) VisitErrorStmt(*ast.ErrorStmt)              {}
func (BaseVisitor) VisitAliasStmt(*ast.AliasStmt)              {}
func (BaseVisitor) VisitPutStmt(*ast.PutStmt)                  {}
func (BaseVisitor) VisitStartStateRule(*ast.StartStateRule)    {}
func (BaseVisitor) VisitSimpleRule(*ast.SimpleRule)            {}
func (BaseVisitor) VisitPropertyRule(*ast.PropertyRule)        {}
func (BaseVisitor) VisitRuleset(*ast.Ruleset)                  {}
func (BaseVisitor) VisitAliasRule(*ast.AliasRule)              {}

// Dispatch is the traversal engine's single entry point: it type
// switches on n's concrete type and calls the matching Visitor method.
func Dispatch(v Visitor, n ast.Node) {
	switch nn := n.(type) {
	case *ast.ConstDecl:
		v.VisitConstDecl(nn)
	case *ast.TypeDecl:
		v.VisitTypeDecl(nn)
	case *ast.VarDecl:
		v.VisitVarDecl(nn)
	case *ast.AliasDecl:
		v.VisitAliasDecl(nn)
	case *ast.FunctionDecl:
		v.VisitFunctionDecl(nn)
	case *ast.RangeType:
		v.VisitRangeType(nn)
	case *ast.EnumType:
		v.VisitEnumType(nn)
	case *ast.ScalarsetType:
		v.VisitScalarsetType(nn)
	case *ast.ArrayType:
		v.VisitArrayType(nn)
	case *ast.RecordType:
		v.VisitRecordType(nn)
	case *ast.TypeExprID:
		v.VisitTypeExprID(nn)
	case *ast.BinaryExpr:
		v.VisitBinaryExpr(nn)
	case *ast.UnaryExpr:
		v.VisitUnaryExpr(nn)
	case *ast.TernaryExpr:
		v.VisitTernaryExpr(nn)
	case *ast.QuantifiedExpr:
		v.VisitQuantifiedExpr(nn)
	case *ast.ExprID:
		v.VisitExprID(nn)
	case *ast.FieldExpr:
		v.VisitFieldExpr(nn)
	case *ast.ElementExpr:
		v.VisitElementExpr(nn)
	case *ast.FunctionCallExpr:
		v.VisitFunctionCallExpr(nn)
	case *ast.NumberExpr:
		v.VisitNumberExpr(nn)
	case *ast.IsUndefinedExpr:
		v.VisitIsUndefinedExpr(nn)
	case *ast.AssignmentStmt:
		v.VisitAssignmentStmt(nn)
	case *ast.ClearStmt:
		v.VisitClearStmt(nn)
	case *ast.UndefineStmt:
		v.VisitUndefineStmt(nn)
	case *ast.IfStmt:
		v.VisitIfStmt(nn)
	case *ast.SwitchStmt:
		v.VisitSwitchStmt(nn)
	case *ast.ForStmt:
		v.VisitForStmt(nn)
	case *ast.WhileStmt:
		v.VisitWhileStmt(nn)
	case *ast.ReturnStmt:
		v.VisitReturnStmt(nn)
	case *ast.ProcedureCallStmt:
		v.VisitProcedureCallStmt(nn)
	case *ast.PropertyStmt:
		v.VisitPropertyStmt(nn)
	case *ast.ErrorStmt:
		v.VisitErrorStmt(nn)
	case *ast.AliasStmt:
		v.VisitAliasStmt(nn)
	case *ast.PutStmt:
		v.VisitPutStmt(nn)
	case *ast.StartStateRule:
		v.VisitStartStateRule(nn)
	case *ast.SimpleRule:
		v.VisitSimpleRule(nn)
	case *ast.PropertyRule:
		v.VisitPropertyRule(nn)
	case *ast.Ruleset:
		v.VisitRuleset(nn)
	case *ast.AliasRule:
		v.VisitAliasRule(nn)
	}
}

// Walk runs PreOrder over root, calling Dispatch(v, node) at every
// node. Combine with PostOrder-style visitors by calling Dispatch
// directly from a traverse.PostOrder callback instead.
func Walk(v Visitor, root ast.Node) {
	PreOrder(root, func(n ast.Node) bool {
		Dispatch(v, n)
		return true
	})
}
