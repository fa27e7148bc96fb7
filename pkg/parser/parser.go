package parser

import (
	"math/big"

	"github.com/specc-lang/specc/pkg/ast"
	"github.com/specc-lang/specc/pkg/lexer"
	"github.com/specc-lang/specc/pkg/token"
)

// Parser holds the filtered token cursor and the const table used to
// fold bound expressions as they are parsed.
type Parser struct {
	file   *token.File
	toks   []token.Token
	pos    int
	consts map[string]*ast.ConstDecl
}

// New returns a Parser positioned at the start of src's token stream.
func New(file *token.File, src string) *Parser {
	toks := lexer.New(file, src).Tokens()
	filtered := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		switch t.Kind {
		case token.LINE_COMMENT, token.MULTILINE_COMMENT, token.NL_COMMENT, token.BREAK, token.RAW:
			continue
		}
		filtered = append(filtered, t)
	}
	return &Parser{file: file, toks: filtered, consts: map[string]*ast.ConstDecl{}}
}

// Parse scans and parses file in one call, returning the resulting
// Model and, separately, every comment in the source (so a caller can
// interleave them with the tree by Location).
func Parse(file *token.File, src string) (*ast.Model, []token.Comment, error) {
	p := New(file, src)
	m, err := p.ParseModel()
	if err != nil {
		return nil, nil, err
	}
	return m, lexer.Comments(file, src), nil
}

// --- token cursor ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *Parser) atKeyword(kw string) bool {
	t := p.cur()
	return t.Kind == token.ID && t.Text == kw
}

func (p *Parser) atOp(op string) bool {
	t := p.cur()
	return t.Kind == token.OPERATOR && t.Text == op
}

func (p *Parser) matchKeyword(kw string) bool {
	if p.atKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchOp(op string) bool {
	if p.atOp(op) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKind(k token.Kind) bool {
	if p.cur().Kind == k {
		p.advance()
		return true
	}
	return false
}

// matchColon/expectColon handle the bare ':' token, a distinct
// token.COLON kind rather than token.OPERATOR — the lexer only
// classifies ':=' as an operator.
func (p *Parser) matchColon() bool { return p.matchKind(token.COLON) }

func (p *Parser) expectColon() error {
	if !p.matchColon() {
		return p.errorf("expected ':', found %q", p.cur().Text)
	}
	return nil
}

func (p *Parser) atCloseParen() bool { return p.cur().Kind == token.CLOSE_PAREN }

func (p *Parser) expectKeyword(kw string) error {
	if !p.matchKeyword(kw) {
		return p.errorf("expected %q, found %q", kw, p.cur().Text)
	}
	return nil
}

func (p *Parser) expectOp(op string) error {
	if !p.matchOp(op) {
		return p.errorf("expected %q, found %q", op, p.cur().Text)
	}
	return nil
}

func (p *Parser) expectKindTok(k token.Kind) (token.Token, error) {
	t := p.cur()
	if t.Kind != k {
		return token.Token{}, p.errorf("expected %s, found %s %q", k, t.Kind, t.Text)
	}
	p.advance()
	return t, nil
}

func (p *Parser) expectKind(k token.Kind) error {
	_, err := p.expectKindTok(k)
	return err
}

func (p *Parser) expectID() (token.Token, error) { return p.expectKindTok(token.ID) }

// sectionEnd reports whether the current token starts a new top-level
// section or rule form, i.e. whether the caller's const/type/var list
// has ended.
var topLevelKeywords = map[string]bool{
	"const": true, "type": true, "var": true,
	"procedure": true, "function": true,
	"ruleset": true, "alias": true, "aliasrule": true,
	"startstate": true, "rule": true,
	"invariant": true, "assume": true, "cover": true, "liveness": true,
}

func (p *Parser) atSectionEnd() bool {
	if p.atEOF() {
		return true
	}
	t := p.cur()
	return t.Kind == token.ID && topLevelKeywords[t.Text]
}

// --- top level ---

// ParseModel parses an entire specification.
func (p *Parser) ParseModel() (*ast.Model, error) {
	m := &ast.Model{Name: p.file.Name}

	for !p.atEOF() {
		var err error
		switch {
		case p.matchKeyword("const"):
			err = p.parseConstSection(m)
		case p.matchKeyword("type"):
			err = p.parseTypeSection(m)
		case p.matchKeyword("var"):
			err = p.parseVarSection(m)
		case p.atKeyword("procedure") || p.atKeyword("function"):
			var fn *ast.FunctionDecl
			fn, err = p.parseFunction()
			if err == nil {
				m.Functions = append(m.Functions, fn)
			}
		case p.atKeyword("ruleset"):
			var r ast.Rule
			r, err = p.parseRuleset()
			if err == nil {
				m.Rules = append(m.Rules, r)
			}
		case p.atKeyword("alias") || p.atKeyword("aliasrule"):
			var r ast.Rule
			r, err = p.parseAliasRule()
			if err == nil {
				m.Rules = append(m.Rules, r)
			}
		case p.atKeyword("startstate"):
			var r ast.Rule
			r, err = p.parseStartState()
			if err == nil {
				m.Rules = append(m.Rules, r)
			}
		case p.atKeyword("rule"):
			var r ast.Rule
			r, err = p.parseSimpleRule()
			if err == nil {
				m.Rules = append(m.Rules, r)
			}
		case p.atKeyword("invariant") || p.atKeyword("assume") || p.atKeyword("cover") || p.atKeyword("liveness"):
			var r ast.Rule
			r, err = p.parsePropertyRule()
			if err == nil {
				m.Rules = append(m.Rules, r)
			}
		default:
			err = p.errorf("unexpected token %q at top level", p.cur().Text)
		}
		if err != nil {
			return nil, err
		}
	}

	ast.Reindex(m)
	return m, nil
}

// --- const/type/var sections ---

func (p *Parser) parseConstSection(m *ast.Model) error {
	for !p.atSectionEnd() {
		loc := p.cur().Location
		name, err := p.expectID()
		if err != nil {
			return err
		}
		if err := p.expectColon(); err != nil {
			// Murphi const syntax uses ':' the same as type/var.
			return err
		}
		val, err := p.parseExpr()
		if err != nil {
			return err
		}
		if err := p.expectKind(token.SEMI); err != nil {
			return err
		}
		d := &ast.ConstDecl{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Name: name.Text, Value: val}
		p.consts[name.Text] = d
		m.Decls = append(m.Decls, d)
	}
	return nil
}

func (p *Parser) parseTypeSection(m *ast.Model) error {
	for !p.atSectionEnd() {
		loc := p.cur().Location
		name, err := p.expectID()
		if err != nil {
			return err
		}
		if err := p.expectColon(); err != nil {
			return err
		}
		t, err := p.parseTypeExpr()
		if err != nil {
			return err
		}
		if err := p.expectKind(token.SEMI); err != nil {
			return err
		}
		m.Decls = append(m.Decls, &ast.TypeDecl{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Name: name.Text, Type: t})
	}
	return nil
}

func (p *Parser) parseVarSection(m *ast.Model) error {
	decls, err := p.parseVarList(ast.ScopeState)
	if err != nil {
		return err
	}
	for _, d := range decls {
		m.Decls = append(m.Decls, d)
	}
	return nil
}

// parseVarList parses `name1, name2: Type;` groups until the current
// section ends, used for both the top-level var section and a
// function's parameter list (scope ScopeLocal there).
func (p *Parser) parseVarList(scope ast.VarScope) ([]*ast.VarDecl, error) {
	var out []*ast.VarDecl
	for !p.atSectionEnd() && !p.atCloseParen() {
		loc := p.cur().Location
		var names []string
		for {
			n, err := p.expectID()
			if err != nil {
				return nil, err
			}
			names = append(names, n.Text)
			if !p.matchKind(token.COMMA) {
				break
			}
		}
		if err := p.expectColon(); err != nil {
			return nil, err
		}
		t, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			d := ast.NewVarDecl(n, t, scope)
			d.Location = token.Span(loc, p.cur().Location)
			out = append(out, d)
		}
		if scope == ast.ScopeLocal && p.atCloseParen() {
			break
		}
		if err := p.expectKind(token.SEMI); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// --- type expressions ---

func (p *Parser) parseTypeExpr() (ast.TypeExpr, error) {
	loc := p.cur().Location
	switch {
	case p.matchKeyword("boolean"):
		return &ast.EnumType{Base: ast.Base{Location: loc}, Members: []string{"false", "true"}}, nil
	case p.matchKeyword("enum"):
		if err := p.expectKind(token.OPEN_BRACE); err != nil {
			return nil, err
		}
		var members []string
		for {
			m, err := p.expectID()
			if err != nil {
				return nil, err
			}
			members = append(members, m.Text)
			if !p.matchKind(token.COMMA) {
				break
			}
		}
		if err := p.expectKind(token.CLOSE_BRACE); err != nil {
			return nil, err
		}
		return &ast.EnumType{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Members: members}, nil
	case p.matchKeyword("scalarset"):
		if err := p.expectKind(token.OPEN_PAREN); err != nil {
			return nil, err
		}
		bound, err := p.parseConstIntExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKind(token.CLOSE_PAREN); err != nil {
			return nil, err
		}
		return &ast.ScalarsetType{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Bound: bound}, nil
	case p.matchKeyword("array"):
		if err := p.expectKind(token.OPEN_BRACE); err != nil {
			return nil, err
		}
		idx, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKind(token.CLOSE_BRACE); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("of"); err != nil {
			return nil, err
		}
		elem, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Index: idx, Element: elem}, nil
	case p.matchKeyword("record"):
		var fields []ast.RecordField
		for !p.atKeyword("end") {
			n, err := p.expectID()
			if err != nil {
				return nil, err
			}
			names := []string{n.Text}
			for p.matchKind(token.COMMA) {
				n2, err := p.expectID()
				if err != nil {
					return nil, err
				}
				names = append(names, n2.Text)
			}
			if err := p.expectColon(); err != nil {
				return nil, err
			}
			ft, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			for _, nm := range names {
				fields = append(fields, ast.RecordField{Name: nm, Type: ft})
			}
			if err := p.expectKind(token.SEMI); err != nil {
				return nil, err
			}
		}
		if err := p.expectKeyword("end"); err != nil {
			return nil, err
		}
		return &ast.RecordType{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Fields: fields}, nil
	}

	// Remaining forms: a bare range "lo..hi" or a reference to a named
	// type. Both start with an expression, so parse one and disambiguate
	// on whether ".." follows.
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.matchOp("..") {
		hi, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		lo, err := p.foldToInt(first)
		if err != nil {
			return nil, err
		}
		hiV, err := p.foldToInt(hi)
		if err != nil {
			return nil, err
		}
		return &ast.RangeType{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Min: lo, Max: hiV}, nil
	}
	id, ok := first.(*ast.ExprID)
	if !ok {
		return nil, &SyntaxError{Loc: loc, Message: "expected a type name or range"}
	}
	return &ast.TypeExprID{Base: ast.Base{Location: loc}, Name: id.Name}, nil
}

// parseConstIntExpr parses an expression and folds it to a constant
// integer, looking the identifier up against decls seen so far when
// it is a bare name (general symbol resolution has not run yet).
func (p *Parser) parseConstIntExpr() (*big.Int, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.foldToInt(e)
}

func (p *Parser) foldToInt(e ast.Expr) (*big.Int, error) {
	p.bindLocalConsts(e)
	folded, err := ast.Fold(e)
	if err != nil {
		return nil, err
	}
	n, ok := folded.(*ast.NumberExpr)
	if !ok {
		return nil, &SyntaxError{Loc: e.Loc(), Message: "expected a constant integer expression"}
	}
	return n.Value, nil
}

// bindLocalConsts sets ExprID.Decl for any identifier in e that names
// a const declared earlier in this parse, so ast.Fold can see through
// it before general symbol resolution runs.
func (p *Parser) bindLocalConsts(e ast.Expr) {
	switch ee := e.(type) {
	case *ast.ExprID:
		if d, ok := p.consts[ee.Name]; ok {
			ee.Decl = d
		}
	case *ast.BinaryExpr:
		p.bindLocalConsts(ee.Left)
		p.bindLocalConsts(ee.Right)
	case *ast.UnaryExpr:
		p.bindLocalConsts(ee.Operand)
	case *ast.TernaryExpr:
		p.bindLocalConsts(ee.Cond)
		p.bindLocalConsts(ee.Then)
		p.bindLocalConsts(ee.Else)
	}
}

// --- functions/procedures ---

func (p *Parser) parseFunction() (*ast.FunctionDecl, error) {
	loc := p.cur().Location
	isFunc := p.matchKeyword("function")
	if !isFunc {
		if err := p.expectKeyword("procedure"); err != nil {
			return nil, err
		}
	}
	name, err := p.expectID()
	if err != nil {
		return nil, err
	}
	if err := p.expectKind(token.OPEN_PAREN); err != nil {
		return nil, err
	}
	p.matchKeyword("var") // optional by-ref marker on the whole list; not modeled
	params, err := p.parseVarList(ast.ScopeLocal)
	if err != nil {
		return nil, err
	}
	if err := p.expectKind(token.CLOSE_PAREN); err != nil {
		return nil, err
	}
	var ret ast.TypeExpr
	if isFunc {
		if err := p.expectColon(); err != nil {
			return nil, err
		}
		ret, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectKind(token.SEMI); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("begin"); err != nil {
		return nil, err
	}
	body, err := p.parseStmtsUntil("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Base:       ast.Base{Location: token.Span(loc, p.cur().Location)},
		Name:       name.Text,
		Params:     params,
		ReturnType: ret,
		Body:       body,
	}, nil
}

// --- rules ---

func (p *Parser) parseStartState() (*ast.StartStateRule, error) {
	loc := p.cur().Location
	if err := p.expectKeyword("startstate"); err != nil {
		return nil, err
	}
	name, err := p.parseOptionalName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("begin"); err != nil {
		return nil, err
	}
	body, err := p.parseStmtsUntil("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.StartStateRule{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Name: name, Body: body}, nil
}

func (p *Parser) parseSimpleRule() (*ast.SimpleRule, error) {
	loc := p.cur().Location
	if err := p.expectKeyword("rule"); err != nil {
		return nil, err
	}
	name, err := p.parseOptionalName()
	if err != nil {
		return nil, err
	}
	var guard ast.Expr
	if !p.atOp("==>") {
		guard, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectOp("==>"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("begin"); err != nil {
		return nil, err
	}
	body, err := p.parseStmtsUntil("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.SimpleRule{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Name: name, Guard: guard, Body: body}, nil
}

func (p *Parser) parsePropertyRule() (*ast.PropertyRule, error) {
	loc := p.cur().Location
	var kind ast.PropertyKind
	switch {
	case p.matchKeyword("invariant"):
		kind = ast.Invariant
	case p.matchKeyword("assume"):
		kind = ast.Assumption
	case p.matchKeyword("cover"):
		kind = ast.Cover
	case p.matchKeyword("liveness"):
		kind = ast.Liveness
	default:
		return nil, p.errorf("expected a property keyword")
	}
	name, err := p.parseOptionalName()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKind(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.PropertyRule{
		Base: ast.Base{Location: token.Span(loc, p.cur().Location)},
		Name: name,
		Property: &ast.PropertyStmt{
			Base: ast.Base{Location: loc},
			Kind: kind,
			Name: name,
			Cond: cond,
		},
	}, nil
}

func (p *Parser) parseRuleset() (ast.Rule, error) {
	loc := p.cur().Location
	if err := p.expectKeyword("ruleset"); err != nil {
		return nil, err
	}
	quants, err := p.parseQuantifierList()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	inner, err := p.parseRuleBodyUntil("endruleset")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("endruleset"); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.SEMI); err != nil {
		return nil, err
	}
	end := p.cur().Location
	// Nest one Ruleset per quantifier, innermost wrapping inner.
	rules := inner
	for i := len(quants) - 1; i >= 0; i-- {
		rules = []ast.Rule{&ast.Ruleset{
			Base:       ast.Base{Location: token.Span(loc, end)},
			Quantifier: quants[i],
			Inner:      rules,
		}}
	}
	return rules[0], nil
}

func (p *Parser) parseAliasRule() (ast.Rule, error) {
	loc := p.cur().Location
	// Both spellings introduce the same construct; "aliasrule" is the
	// form that wraps nested rules, "alias" the statement form (see
	// parseAliasStmt), but at the top level either keyword starts it.
	if !p.matchKeyword("aliasrule") {
		if err := p.expectKeyword("alias"); err != nil {
			return nil, err
		}
	}
	decls, err := p.parseAliasDecls()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	inner, err := p.parseRuleBodyUntil("endalias")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("endalias"); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.AliasRule{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Decls: decls, Inner: inner}, nil
}

func (p *Parser) parseAliasDecls() ([]ast.Decl, error) {
	var out []ast.Decl
	for {
		loc := p.cur().Location
		name, err := p.expectID()
		if err != nil {
			return nil, err
		}
		if err := p.expectColon(); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.AliasDecl{Base: ast.Base{Location: token.Span(loc, p.cur().Location)}, Name: name.Text, Value: val})
		if !p.matchKind(token.SEMI) {
			break
		}
		if p.atKeyword("do") {
			break
		}
	}
	return out, nil
}

// parseRuleBodyUntil parses a sequence of nested rule forms (used
// inside a ruleset/aliasrule body), stopping at endKeyword.
func (p *Parser) parseRuleBodyUntil(endKeyword string) ([]ast.Rule, error) {
	var out []ast.Rule
	for !p.atKeyword(endKeyword) {
		var r ast.Rule
		var err error
		switch {
		case p.atKeyword("startstate"):
			r, err = p.parseStartState()
		case p.atKeyword("rule"):
			r, err = p.parseSimpleRule()
		case p.atKeyword("ruleset"):
			r, err = p.parseRuleset()
		case p.atKeyword("alias") || p.atKeyword("aliasrule"):
			r, err = p.parseAliasRule()
		case p.atKeyword("invariant") || p.atKeyword("assume") || p.atKeyword("cover") || p.atKeyword("liveness"):
			r, err = p.parsePropertyRule()
		default:
			err = p.errorf("unexpected token %q inside rule body", p.cur().Text)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// parseOptionalName consumes a STRING naming the construct, if
// present; the source language allows anonymous rules.
func (p *Parser) parseOptionalName() (string, error) {
	if p.cur().Kind == token.STRING {
		return unquote(p.advance().Text), nil
	}
	return "", nil
}

// parseQuantifierList parses one or more ';'-separated quantifiers,
// used by ruleset and for/forall/exists.
func (p *Parser) parseQuantifierList() ([]ast.Quantifier, error) {
	var out []ast.Quantifier
	for {
		q, err := p.parseQuantifier()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
		if !p.matchKind(token.SEMI) {
			break
		}
	}
	return out, nil
}

func (p *Parser) parseQuantifier() (ast.Quantifier, error) {
	name, err := p.expectID()
	if err != nil {
		return ast.Quantifier{}, err
	}
	switch {
	case p.matchColon():
		t, err := p.parseTypeExpr()
		if err != nil {
			return ast.Quantifier{}, err
		}
		return ast.Quantifier{Name: name.Text, Type: t}, nil
	case p.matchOp(":="):
		from, err := p.parseExpr()
		if err != nil {
			return ast.Quantifier{}, err
		}
		if err := p.expectKeyword("to"); err != nil {
			return ast.Quantifier{}, err
		}
		to, err := p.parseExpr()
		if err != nil {
			return ast.Quantifier{}, err
		}
		var step ast.Expr
		if p.matchKeyword("by") {
			step, err = p.parseExpr()
			if err != nil {
				return ast.Quantifier{}, err
			}
		}
		return ast.Quantifier{Name: name.Text, From: from, To: to, Step: step}, nil
	}
	return ast.Quantifier{}, p.errorf("expected ':' or ':=' in quantifier binding")
}
