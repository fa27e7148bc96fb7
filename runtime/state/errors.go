package state

import "errors"

// The error taxonomy §4.13 names for handle/arithmetic faults. Driver
// code compares against these with errors.Is; codegen-emitted rule
// bodies return them wrapped in an Outcome rather than panicking, so
// recovery (assume-violation rollback, MAX_ERRORS>1 continuation) is a
// structured control-flow decision instead of an unwind (§9
// "long-jump control flow").
var (
	ErrUndefinedRead = errors.New("undefined read")
	ErrOutOfRangeRead  = errors.New("out-of-range read")
	ErrOutOfRangeWrite = errors.New("out-of-range write")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrIntegerOverflow = errors.New("integer overflow")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrModuloByZero    = errors.New("modulo by zero")
)
