package state

// Outcome is the structured result codegen-emitted rule bodies return
// in place of the setjmp/longjmp recovery the source implementation
// uses (§9 "long-jump control flow": "choose a structured result type
// to avoid unwinding through FFI-style boundaries"). A rule body
// returns Outcome after every handle operation and arithmetic op that
// can fail; the caller (the driver's exploration step) decides whether
// to abandon just this rule firing (an assumption violation) or to
// treat it as a fatal, MAX_ERRORS-counted error.
type Outcome struct {
	Err       error
	Abandoned bool // true for an assume-statement violation: skip this rule, keep the thread alive
}

// OK is the zero Outcome: no error, rule body ran to completion.
var OK = Outcome{}

// Abandon reports an assumption violation: the current rule iteration
// is discarded without being treated as a counted error.
func Abandon() Outcome { return Outcome{Abandoned: true} }

// Fail wraps err as a counted, fatal-to-this-firing error.
func Fail(err error) Outcome { return Outcome{Err: err} }

// Failed reports whether o represents a genuine (non-assumption,
// non-nil) error.
func (o Outcome) Failed() bool { return o.Err != nil && !o.Abandoned }
