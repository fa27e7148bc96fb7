package parser

import (
	"fmt"

	"github.com/specc-lang/specc/pkg/token"
)

// SyntaxError reports a malformed construct at Loc.
type SyntaxError struct {
	Loc     token.Location
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{Loc: p.cur().Location, Message: fmt.Sprintf(format, args...)}
}
