// Package diag carries a located compiler Error type, plus the logrus
// wiring and printing
// helpers the compiler CLI uses for --verbose/--debug/--quiet/--trace
// output. The generated runtime does not import this package: it is a
// freestanding emitted program and uses its own plain stdout/stderr
// printing (see runtime/driver).
package diag

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/specc-lang/specc/pkg/token"
)

// ErrCompile is the sentinel every Error wraps, so callers can test
// errors.Is(err, diag.ErrCompile).
var ErrCompile = errors.New("compile error")

// Error is a located compiler diagnostic. Lexing never fails (it emits
// UNKNOWN tokens instead, per pkg/lexer's doc comment). The parse,
// resolve and validate stages do not construct this type: they report
// through their own located error types (parser.SyntaxError,
// resolve.UnresolvedError and DuplicateFunctionError,
// validate.TypeError and DuplicateNameError), which do not wrap
// ErrCompile.
type Error struct {
	Loc     token.Location
	Message string
}

func New(loc token.Location, format string, args ...any) error {
	return &Error{Loc: loc, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

func (e *Error) Unwrap() error { return ErrCompile }

// XML renders e the way the generated runtime's machine-readable
// reporter wraps a runtime error (§7): an <error> element with an
// includes_trace attribute and a <message> child. The compiler itself
// reuses the same shape for --json-style tooling integration.
type XML struct {
	XMLName       xml.Name `xml:"error"`
	IncludesTrace bool     `xml:"includes_trace,attr"`
	Location      string   `xml:"location,attr,omitempty"`
	Message       string   `xml:"message"`
}

func (e *Error) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	return enc.Encode(XML{Location: e.Loc.String(), Message: e.Message})
}

// NewLogger builds the single *logrus.Logger cmd/specc constructs at
// startup and threads down to every compile stage, mirroring
// hivectl's global verbose/quiet flags but as an explicit value rather
// than a package-level var (§9 "global process state ... a
// single process-owned context passed explicitly").
func NewLogger(debug, verbose, quiet bool) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch {
	case quiet:
		l.SetLevel(logrus.ErrorLevel)
	case debug:
		l.SetLevel(logrus.DebugLevel)
	case verbose:
		l.SetLevel(logrus.InfoLevel)
	default:
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}
