package token

// Kind enumerates the token categories the lexer can produce. The
// lexer never fails: anything it cannot classify becomes Unknown
// rather than an error, and layout-only tokens (comments, blank-line
// breaks) are retained so a reformatter could reconstruct the original
// layout from the token stream alone.
type Kind int

const (
	EOF Kind = iota
	ID
	NUMBER
	STRING
	OPERATOR
	OPEN_PAREN
	CLOSE_PAREN
	OPEN_BRACE // '{' or '[': both are grouping brackets to the grammar
	CLOSE_BRACE
	DOT
	COMMA
	SEMI
	COLON
	LINE_COMMENT
	NL_COMMENT
	MULTILINE_COMMENT
	BREAK
	UNKNOWN
	RAW
)

var kindNames = map[Kind]string{
	EOF:               "EOF",
	ID:                "ID",
	NUMBER:            "NUMBER",
	STRING:            "STRING",
	OPERATOR:          "OPERATOR",
	OPEN_PAREN:        "OPEN_PAREN",
	CLOSE_PAREN:       "CLOSE_PAREN",
	OPEN_BRACE:        "OPEN_BRACE",
	CLOSE_BRACE:       "CLOSE_BRACE",
	DOT:               "DOT",
	COMMA:             "COMMA",
	SEMI:              "SEMI",
	COLON:             "COLON",
	LINE_COMMENT:      "LINE_COMMENT",
	NL_COMMENT:        "NL_COMMENT",
	MULTILINE_COMMENT: "MULTILINE_COMMENT",
	BREAK:             "BREAK",
	UNKNOWN:           "UNKNOWN",
	RAW:               "RAW",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "INVALID_KIND"
}

// Token is one lexical unit: its kind, the literal text it was
// scanned from, and the Location it occupies.
type Token struct {
	Kind     Kind
	Text     string
	Location Location
}

// Comment is a retained comment, returned by the lexer's separate
// comment pass so it can be interleaved with the AST by Location
// without bloating every node with comment-carrying fields.
type Comment struct {
	Location  Location
	Multiline bool
	Content   string
}
