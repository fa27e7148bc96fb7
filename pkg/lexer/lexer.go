// Package lexer scans source-language text into a token stream.
//
// The lexer follows hivekit's zero-copy-where-possible style (it
// walks a rune slice rather than re-allocating per token) but its
// failure semantics are the opposite of a typical hand-rolled scanner:
// it never returns an error. Anything it cannot classify is emitted as
// a single token.UNKNOWN and scanning continues, so that downstream
// tooling (a reformatter, in particular) always receives a complete
// token stream for even badly malformed input.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/specc-lang/specc/pkg/token"
)

// operator lists every multi- or single-character operator the source
// language accepts, matched greedy-longest-first. Each ASCII spelling
// is paired with the Unicode glyph a specification author may use
// instead; both normalize to the same Text in the emitted token so the
// parser never has to special-case the Unicode spellings.
var operators = buildOperatorTable([]struct {
	ascii   string
	unicode string
}{
	{":=", "≔"},
	{"==>", "⇒"},
	{">=", "≥"},
	{"<=", "≤"},
	{"!=", "≠"},
	{"==", "=="},
	{"&&", "∧"},
	{"||", "∨"},
	{"!", "¬"},
	{"..", ".."},
	{"+", "+"},
	{"-", "-"},
	{"*", "*"},
	{"/", "/"},
	{"%", "%"},
	{"<", "<"},
	{">", ">"},
	{"=", "="},
	{"?", "?"},
})

type opEntry struct {
	text     string // canonical ASCII spelling emitted in the token
	variants []string
}

func buildOperatorTable(pairs []struct{ ascii, unicode string }) []opEntry {
	byCanonical := map[string][]string{}
	order := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := byCanonical[p.ascii]; !ok {
			order = append(order, p.ascii)
		}
		byCanonical[p.ascii] = appendUnique(byCanonical[p.ascii], p.ascii)
		byCanonical[p.ascii] = appendUnique(byCanonical[p.ascii], p.unicode)
	}
	entries := make([]opEntry, 0, len(order))
	for _, c := range order {
		entries = append(entries, opEntry{text: c, variants: byCanonical[c]})
	}
	// Greedy-longest match requires trying longer variant spellings
	// before shorter ones regardless of declaration order.
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if maxLen(entries[j].variants) > maxLen(entries[i].variants) {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}
	return entries
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func maxLen(variants []string) int {
	n := 0
	for _, v := range variants {
		if l := utf8.RuneCountInString(v); l > n {
			n = l
		}
	}
	return n
}

const (
	formatOffMagic = "murphi-format: off"
	formatOnMagic  = "murphi-format: on"
)

// Lexer scans one source file into a flat token.Token stream.
type Lexer struct {
	file    *token.File
	src     []rune
	pos     int
	line    int
	col     int
	inRaw   bool
	rawText strings.Builder
	rawLoc  token.Location
}

// New returns a Lexer over src, Unicode-normalizing it up front so
// that confusable forms (fullwidth digits/letters, decomposed accents
// in identifiers) compare equal to their canonical spelling.
func New(file *token.File, src string) *Lexer {
	normalized := norm.NFC.String(width.Fold.String(src))
	return &Lexer{
		file: file,
		src:  []rune(normalized),
		line: 1,
		col:  1,
	}
}

// Tokens scans the entire input and returns the resulting stream,
// terminated by a single token.EOF. It never returns an error.
func (l *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		t := l.next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (l *Lexer) here() token.Location {
	return token.Location{File: l.file, BeginLine: l.line, BeginColumn: l.col, EndLine: l.line, EndColumn: l.col}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	if l.pos+offset >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos+offset], true
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) next() token.Token {
	if l.inRaw {
		return l.scanRaw()
	}

	start := l.here()

	// Blank-line BREAK tokens: a run of whitespace containing two or
	// more newlines collapses to one BREAK so layout can be rebuilt.
	n := l.countBlankRun()
	if n >= 2 {
		l.skipWhitespaceExceptOne()
		return token.Token{Kind: token.BREAK, Text: "\n\n", Location: start}
	}
	// A single preceding newline still matters for `--` comments: it
	// distinguishes a comment that starts its own line (NL_COMMENT)
	// from one trailing code on the same line (LINE_COMMENT), the
	// distinction the original lexer's TOKEN_NL_COMMENT encodes.
	precededByNewline := n >= 1
	l.skipSimpleWhitespace()

	start = l.here()
	r, ok := l.peek()
	if !ok {
		return token.Token{Kind: token.EOF, Location: start}
	}

	switch {
	case r == '-' && l.matchAt(1, '-'):
		return l.scanLineComment(start, precededByNewline)
	case r == '/' && l.matchAt(1, '*'):
		return l.scanMultilineComment(start)
	case r == '"' || r == '“':
		return l.scanString(start)
	case unicode.IsDigit(r):
		return l.scanNumber(start)
	case isIdentStart(r):
		return l.scanIdent(start)
	case r == '(':
		l.advance()
		return token.Token{Kind: token.OPEN_PAREN, Text: "(", Location: start}
	case r == ')':
		l.advance()
		return token.Token{Kind: token.CLOSE_PAREN, Text: ")", Location: start}
	case r == '{' || r == '[':
		l.advance()
		return token.Token{Kind: token.OPEN_BRACE, Text: string(r), Location: start}
	case r == '}' || r == ']':
		l.advance()
		return token.Token{Kind: token.CLOSE_BRACE, Text: string(r), Location: start}
	case r == '.':
		if !l.matchAt(1, '.') {
			l.advance()
			return token.Token{Kind: token.DOT, Text: ".", Location: start}
		}
	case r == ',':
		l.advance()
		return token.Token{Kind: token.COMMA, Text: ",", Location: start}
	case r == ';':
		l.advance()
		return token.Token{Kind: token.SEMI, Text: ";", Location: start}
	case r == ':':
		if !l.matchAt(1, '=') {
			l.advance()
			return token.Token{Kind: token.COLON, Text: ":", Location: start}
		}
	}

	if op, text, ok := l.matchOperator(); ok {
		for range []rune(text) {
			l.advance()
		}
		return token.Token{Kind: token.OPERATOR, Text: op, Location: token.Span(start, l.here())}
	}

	// Anything unrecognized is a single rune of UNKNOWN; the lexer
	// never halts.
	l.advance()
	return token.Token{Kind: token.UNKNOWN, Text: string(r), Location: start}
}

func (l *Lexer) matchAt(offset int, want rune) bool {
	r, ok := l.peekAt(offset)
	return ok && r == want
}

func (l *Lexer) matchOperator() (canonical, matchedText string, ok bool) {
	for _, entry := range operators {
		for _, variant := range entry.variants {
			vr := []rune(variant)
			if l.hasRunesAt(vr) {
				return entry.text, variant, true
			}
		}
	}
	return "", "", false
}

func (l *Lexer) hasRunesAt(want []rune) bool {
	if l.pos+len(want) > len(l.src) {
		return false
	}
	for i, w := range want {
		if l.src[l.pos+i] != w {
			return false
		}
	}
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanIdent(start token.Location) token.Token {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !isIdentCont(r) {
			break
		}
		b.WriteRune(l.advance())
	}
	return token.Token{Kind: token.ID, Text: b.String(), Location: token.Span(start, l.here())}
}

func (l *Lexer) scanNumber(start token.Location) token.Token {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		b.WriteRune(l.advance())
	}
	return token.Token{Kind: token.NUMBER, Text: b.String(), Location: token.Span(start, l.here())}
}

func (l *Lexer) scanString(start token.Location) token.Token {
	open := l.advance() // " or “
	close := '"'
	if open == '“' {
		close = '”'
	}
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || r == close {
			break
		}
		b.WriteRune(l.advance())
	}
	if _, ok := l.peek(); ok {
		l.advance() // closing quote
	}
	return token.Token{Kind: token.STRING, Text: b.String(), Location: token.Span(start, l.here())}
}

func (l *Lexer) scanLineComment(start token.Location, precededByNewline bool) token.Token {
	l.advance()
	l.advance() // "--"
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || r == '\n' {
			break
		}
		b.WriteRune(l.advance())
	}
	kind := token.LINE_COMMENT
	if precededByNewline {
		kind = token.NL_COMMENT
	}
	text := strings.TrimSpace(b.String())
	if text == formatOffMagic {
		l.inRaw = true
		l.rawLoc = start
		l.rawText.Reset()
		return token.Token{Kind: kind, Text: b.String(), Location: token.Span(start, l.here())}
	}
	return token.Token{Kind: kind, Text: b.String(), Location: token.Span(start, l.here())}
}

func (l *Lexer) scanMultilineComment(start token.Location) token.Token {
	l.advance()
	l.advance() // "/*"
	var b strings.Builder
	for {
		if l.matchAt(0, '*') && l.matchAt(1, '/') {
			l.advance()
			l.advance()
			break
		}
		_, ok := l.peek()
		if !ok {
			break
		}
		b.WriteRune(l.advance())
	}
	return token.Token{Kind: token.MULTILINE_COMMENT, Text: b.String(), Location: token.Span(start, l.here())}
}

// scanRaw emits the entire verbatim span between a
// "murphi-format: off" comment and its matching "murphi-format: on" as
// one token.RAW, so a reformatter can reproduce it byte-for-byte.
func (l *Lexer) scanRaw() token.Token {
	start := l.here()
	for {
		if !l.hasMore() {
			l.inRaw = false
			return token.Token{Kind: token.RAW, Text: l.rawText.String(), Location: token.Span(start, l.here())}
		}
		if l.matchAt(0, '-') && l.matchAt(1, '-') {
			save := l.pos
			saveLine, saveCol := l.line, l.col
			l.advance()
			l.advance()
			var b strings.Builder
			for l.hasMore() && !l.matchAt(0, '\n') {
				b.WriteRune(l.advance())
			}
			if strings.TrimSpace(b.String()) == formatOnMagic {
				l.inRaw = false
				return token.Token{Kind: token.RAW, Text: l.rawText.String(), Location: token.Span(start, l.here())}
			}
			// Not the closing marker: rewind and consume as raw text.
			l.pos, l.line, l.col = save, saveLine, saveCol
		}
		l.rawText.WriteRune(l.advance())
	}
}

func (l *Lexer) hasMore() bool {
	_, ok := l.peek()
	return ok
}

func (l *Lexer) skipSimpleWhitespace() {
	for {
		r, ok := l.peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		l.advance()
	}
}

// countBlankRun reports how many newlines occur before the next
// non-whitespace rune, without consuming anything.
func (l *Lexer) countBlankRun() int {
	n := 0
	for i := 0; ; i++ {
		r, ok := l.peekAt(i)
		if !ok || !unicode.IsSpace(r) {
			return n
		}
		if r == '\n' {
			n++
		}
	}
}

// skipWhitespaceExceptOne consumes a whitespace run up to, but not
// including, its last newline, so the next token still sees that it
// starts its own line.
func (l *Lexer) skipWhitespaceExceptOne() {
	for n := l.countBlankRun(); n > 1; {
		if l.advance() == '\n' {
			n--
		}
	}
}
