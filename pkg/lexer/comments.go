package lexer

import "github.com/specc-lang/specc/pkg/token"

// Comments re-scans src independently of Tokens and returns every
// comment it finds, in source order. Keeping this as a second pass
// (rather than folding comments into the main token stream) lets the
// parser's grammar stay comment-free while a reformatter can still
// zipper comments back in by Location.
func Comments(file *token.File, src string) []token.Comment {
	l := New(file, src)
	var out []token.Comment
	for {
		t := l.next()
		switch t.Kind {
		case token.EOF:
			return out
		case token.LINE_COMMENT, token.NL_COMMENT:
			out = append(out, token.Comment{Location: t.Location, Multiline: false, Content: t.Text})
		case token.MULTILINE_COMMENT:
			out = append(out, token.Comment{Location: t.Location, Multiline: true, Content: t.Text})
		}
	}
}
