package parser

import (
	"math/big"

	"github.com/specc-lang/specc/pkg/ast"
	"github.com/specc-lang/specc/pkg/token"
)

// parseExpr parses a full expression: the ternary form sits above
// implication, which sits above the usual logical/relational/
// arithmetic precedence ladder.
func (p *Parser) parseExpr() (ast.Expr, error) {
	cond, err := p.parseImplication()
	if err != nil {
		return nil, err
	}
	if p.matchOp("?") {
		then, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectColon(); err != nil {
			return nil, err
		}
		els, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpr{Base: ast.Base{Location: cond.Loc()}, Cond: cond, Then: then, Else: els}, nil
	}
	return cond, nil
}

// parseImplication parses '==>' as implication, except where the token
// after it is 'begin': that '==>' is a rule's guard arrow and is left
// for parseSimpleRule.
func (p *Parser) parseImplication() (ast.Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.atOp("==>") && !(p.peekAt(1).Kind == token.ID && p.peekAt(1).Text == "begin") {
		p.advance()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Location: left.Loc()}, Op: ast.Implication, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.parseBinaryLevel([]string{"||"}, map[string]ast.BinOp{"||": ast.Or}, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.parseBinaryLevel([]string{"&&"}, map[string]ast.BinOp{"&&": ast.And}, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryLevel([]string{"=", "==", "!="},
		map[string]ast.BinOp{"=": ast.Eq, "==": ast.Eq, "!=": ast.Neq}, p.parseRelational)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.parseBinaryLevel([]string{"<", "<=", ">", ">="},
		map[string]ast.BinOp{"<": ast.Lt, "<=": ast.Leq, ">": ast.Gt, ">=": ast.Geq}, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel([]string{"+", "-"}, map[string]ast.BinOp{"+": ast.Add, "-": ast.Sub}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel([]string{"*", "/", "%"},
		map[string]ast.BinOp{"*": ast.Mul, "/": ast.Div, "%": ast.Mod}, p.parseUnary)
}

// parseBinaryLevel is shared by every left-associative binary
// precedence level: parse one operand with next, then fold in as many
// trailing `op operand` pairs as match one of ops.
func (p *Parser) parseBinaryLevel(ops []string, kinds map[string]ast.BinOp, next func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := ""
		for _, op := range ops {
			if p.atOp(op) {
				matched = op
				break
			}
		}
		if matched == "" {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Location: left.Loc()}, Op: kinds[matched], Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	loc := p.cur().Location
	switch {
	case p.matchOp("-"):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: ast.Base{Location: loc}, Op: ast.Negative, Operand: operand}, nil
	case p.matchOp("!"):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: ast.Base{Location: loc}, Op: ast.Not, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// '.field' or '[index]' suffixes. A call's '(args)' is parsed by
// parsePrimary, directly after the function name.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		loc := p.cur().Location
		switch {
		case p.matchKind(token.DOT):
			name, err := p.expectID()
			if err != nil {
				return nil, err
			}
			e = &ast.FieldExpr{Base: ast.Base{Location: loc}, Record: e, Name: name.Text}
		case p.matchKind(token.OPEN_BRACE):
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectKind(token.CLOSE_BRACE); err != nil {
				return nil, err
			}
			e = &ast.ElementExpr{Base: ast.Base{Location: loc}, Array: e, Index: idx}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	loc := t.Location
	switch {
	case t.Kind == token.NUMBER:
		p.advance()
		n, ok := new(big.Int).SetString(t.Text, 10)
		if !ok {
			return nil, &SyntaxError{Loc: loc, Message: "malformed integer literal " + t.Text}
		}
		return &ast.NumberExpr{Base: ast.Base{Location: loc}, Value: n}, nil
	case t.Kind == token.OPEN_PAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKind(token.CLOSE_PAREN); err != nil {
			return nil, err
		}
		return e, nil
	case p.atKeyword("forall"):
		return p.parseQuantifiedExpr(ast.Forall)
	case p.atKeyword("exists"):
		return p.parseQuantifiedExpr(ast.Exists)
	case p.atKeyword("isundefined"):
		p.advance()
		if err := p.expectKind(token.OPEN_PAREN); err != nil {
			return nil, err
		}
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKind(token.CLOSE_PAREN); err != nil {
			return nil, err
		}
		return &ast.IsUndefinedExpr{Base: ast.Base{Location: loc}, Operand: operand}, nil
	case t.Kind == token.ID:
		p.advance()
		if p.matchKind(token.OPEN_PAREN) {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.FunctionCallExpr{Base: ast.Base{Location: loc}, Name: t.Text, Args: args}, nil
		}
		return &ast.ExprID{Base: ast.Base{Location: loc}, Name: t.Text}, nil
	}
	return nil, p.errorf("unexpected token %q in expression", t.Text)
}

func (p *Parser) parseArgList() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.matchKind(token.CLOSE_PAREN) {
		return args, nil
	}
	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if !p.matchKind(token.COMMA) {
			break
		}
	}
	if err := p.expectKind(token.CLOSE_PAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseQuantifiedExpr(kind ast.QuantKind) (ast.Expr, error) {
	loc := p.cur().Location
	p.advance() // forall/exists
	q, err := p.parseQuantifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end := "endforall"
	if kind == ast.Exists {
		end = "endexists"
	}
	p.matchKeyword(end) // optional terminator; some dialects omit it
	return &ast.QuantifiedExpr{Base: ast.Base{Location: loc}, Kind: kind, Quantifier: q, Body: body}, nil
}
