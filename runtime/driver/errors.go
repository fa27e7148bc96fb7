package driver

import (
	"errors"
	"fmt"

	"github.com/specc-lang/specc/runtime/state"
)

// Kind enumerates §4.13's error taxonomy.
type Kind int

const (
	KindOutOfRangeRead Kind = iota
	KindOutOfRangeWrite
	KindUndefinedRead
	KindIndexOutOfRange
	KindIntegerOverflow
	KindDivisionByZero
	KindModuloByZero
	KindFailedInvariant
	KindFailedCover
	KindFailedLiveness
	KindDeadlock
	KindAssumptionViolation
)

func (k Kind) String() string {
	switch k {
	case KindOutOfRangeRead:
		return "out-of-range read"
	case KindOutOfRangeWrite:
		return "out-of-range write"
	case KindUndefinedRead:
		return "undefined read"
	case KindIndexOutOfRange:
		return "index out of range"
	case KindIntegerOverflow:
		return "integer overflow"
	case KindDivisionByZero:
		return "division by zero"
	case KindModuloByZero:
		return "modulo by zero"
	case KindFailedInvariant:
		return "failed invariant"
	case KindFailedCover:
		return "failed cover"
	case KindFailedLiveness:
		return "failed liveness"
	case KindDeadlock:
		return "deadlock"
	case KindAssumptionViolation:
		return "assumption violation"
	default:
		return "unknown error"
	}
}

// CheckerError is one reported failure: its Kind, a human message, and
// the name of the property/rule involved, if any.
type CheckerError struct {
	Kind    Kind
	Name    string
	Message string
}

func (e *CheckerError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Name, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

var errMaxErrorsReached = errors.New("max errors reached")

// kindOf maps a failed Outcome's Err to its §4.13 taxonomy Kind by
// matching it against runtime/state's sentinel errors with errors.Is,
// falling back to KindOutOfRangeWrite for an Err this taxonomy has no
// sentinel for (start/rule bodies otherwise only ever fail with one of
// the sentinels below).
func kindOf(err error) Kind {
	switch {
	case errors.Is(err, state.ErrOutOfRangeRead):
		return KindOutOfRangeRead
	case errors.Is(err, state.ErrOutOfRangeWrite):
		return KindOutOfRangeWrite
	case errors.Is(err, state.ErrUndefinedRead):
		return KindUndefinedRead
	case errors.Is(err, state.ErrIndexOutOfRange):
		return KindIndexOutOfRange
	case errors.Is(err, state.ErrIntegerOverflow):
		return KindIntegerOverflow
	case errors.Is(err, state.ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, state.ErrModuloByZero):
		return KindModuloByZero
	default:
		return KindOutOfRangeWrite
	}
}
