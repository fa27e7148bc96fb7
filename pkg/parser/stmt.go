package parser

import (
	"github.com/specc-lang/specc/pkg/ast"
	"github.com/specc-lang/specc/pkg/token"
)

// statementEnd reports whether the current token is one of the
// caller-supplied terminating keywords, without consuming it.
func (p *Parser) statementEnd(endKeywords []string) bool {
	for _, kw := range endKeywords {
		if p.atKeyword(kw) {
			return true
		}
	}
	return false
}

// parseStmtsUntil parses a `;`-separated statement sequence up to (but
// not consuming) whichever of endKeywords comes first.
func (p *Parser) parseStmtsUntil(endKeywords ...string) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.atEOF() && !p.statementEnd(endKeywords) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if err := p.expectKind(token.SEMI); err != nil {
			return nil, err
		}
	}
	return stmts, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	loc := p.cur().Location
	switch {
	case p.matchKeyword("clear"):
		lhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ClearStmt{Base: ast.Base{Location: loc}, LHS: lhs}, nil

	case p.matchKeyword("undefine"):
		lhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UndefineStmt{Base: ast.Base{Location: loc}, LHS: lhs}, nil

	case p.atKeyword("if"):
		return p.parseIfStmt()

	case p.atKeyword("switch"):
		return p.parseSwitchStmt()

	case p.atKeyword("for"):
		return p.parseForStmt()

	case p.atKeyword("while"):
		return p.parseWhileStmt()

	case p.matchKeyword("return"):
		if p.atSemiOrEnd() {
			return &ast.ReturnStmt{Base: ast.Base{Location: loc}}, nil
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Base: ast.Base{Location: loc}, Value: v}, nil

	case p.matchKeyword("assert"):
		name, err := p.parseOptionalName()
		if err != nil {
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.PropertyStmt{Base: ast.Base{Location: loc}, Kind: ast.Invariant, Name: name, Cond: cond}, nil

	case p.matchKeyword("assume"):
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.PropertyStmt{Base: ast.Base{Location: loc}, Kind: ast.Assumption, Cond: cond}, nil

	case p.matchKeyword("error"):
		msg, err := p.expectKindTok(token.STRING)
		if err != nil {
			return nil, err
		}
		return &ast.ErrorStmt{Base: ast.Base{Location: loc}, Message: unquote(msg.Text)}, nil

	case p.atKeyword("alias"):
		return p.parseAliasStmt()

	case p.matchKeyword("put"):
		return p.parsePutStmt(loc)

	default:
		return p.parseAssignmentOrCall(loc)
	}
}

// atSemiOrEnd reports whether the cursor sits at a bare `return;`
// terminator (a following SEMI with no expression).
func (p *Parser) atSemiOrEnd() bool {
	return p.cur().Kind == token.SEMI
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	loc := p.cur().Location
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	var clauses []ast.IfClause
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	body, err := p.parseStmtsUntil("elsif", "else", "endif")
	if err != nil {
		return nil, err
	}
	clauses = append(clauses, ast.IfClause{Cond: cond, Body: body})

	for p.matchKeyword("elsif") {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("then"); err != nil {
			return nil, err
		}
		body, err := p.parseStmtsUntil("elsif", "else", "endif")
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.IfClause{Cond: cond, Body: body})
	}

	if p.matchKeyword("else") {
		body, err := p.parseStmtsUntil("endif")
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.IfClause{Body: body})
	}

	if err := p.expectKeyword("endif"); err != nil {
		return nil, err
	}
	return &ast.IfStmt{Base: ast.Base{Location: loc}, Clauses: clauses}, nil
}

func (p *Parser) parseSwitchStmt() (ast.Stmt, error) {
	loc := p.cur().Location
	if err := p.expectKeyword("switch"); err != nil {
		return nil, err
	}
	tag, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var cases []ast.SwitchCase
	for p.matchKeyword("case") {
		var matches []ast.Expr
		for {
			m, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			matches = append(matches, m)
			if !p.matchKind(token.COMMA) {
				break
			}
		}
		if err := p.expectColon(); err != nil {
			return nil, err
		}
		body, err := p.parseStmtsUntil("case", "else", "endswitch")
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.SwitchCase{Matches: matches, Body: body})
	}
	if p.matchKeyword("else") {
		body, err := p.parseStmtsUntil("endswitch")
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.SwitchCase{Body: body})
	}
	if err := p.expectKeyword("endswitch"); err != nil {
		return nil, err
	}
	return &ast.SwitchStmt{Base: ast.Base{Location: loc}, Tag: tag, Cases: cases}, nil
}

func (p *Parser) parseForStmt() (ast.Stmt, error) {
	loc := p.cur().Location
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	q, err := p.parseQuantifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.parseStmtsUntil("endfor")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("endfor"); err != nil {
		return nil, err
	}
	return &ast.ForStmt{Base: ast.Base{Location: loc}, Quantifier: q, Body: body}, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	loc := p.cur().Location
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.parseStmtsUntil("endwhile")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("endwhile"); err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Base: ast.Base{Location: loc}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseAliasStmt() (ast.Stmt, error) {
	loc := p.cur().Location
	if err := p.expectKeyword("alias"); err != nil {
		return nil, err
	}
	decls, err := p.parseAliasDecls()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.parseStmtsUntil("endalias")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("endalias"); err != nil {
		return nil, err
	}
	return &ast.AliasStmt{Base: ast.Base{Location: loc}, Decls: decls, Body: body}, nil
}

func (p *Parser) parsePutStmt(loc token.Location) (ast.Stmt, error) {
	if p.cur().Kind == token.STRING {
		t := p.cur()
		p.advance()
		return &ast.PutStmt{Base: ast.Base{Location: loc}, Text: unquote(t.Text)}, nil
	}
	v, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.PutStmt{Base: ast.Base{Location: loc}, Value: v}, nil
}

// parseAssignmentOrCall parses either `LHS := RHS` or a bare procedure
// call used as a statement; both start with the same postfix-chained
// expression, so the distinguishing `:=` is checked only after it.
func (p *Parser) parseAssignmentOrCall(loc token.Location) (ast.Stmt, error) {
	e, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.matchOp(":=") {
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentStmt{Base: ast.Base{Location: loc}, LHS: e, RHS: rhs}, nil
	}
	call, ok := e.(*ast.FunctionCallExpr)
	if !ok {
		return nil, p.errorf("expected assignment or procedure call")
	}
	return &ast.ProcedureCallStmt{Base: ast.Base{Location: loc}, Name: call.Name, Args: call.Args}, nil
}

// unquote returns a STRING token's text for use as a name or message.
// The lexer already leaves the surrounding quote characters out of a
// STRING token's Text, and murphi string literals have no escape
// sequences to decode, so the text is returned as is.
func unquote(s string) string {
	return s
}
