package executor

import (
	"errors"
)

// Evaluation faults. They abort the running program and are returned
// wrapped with context.
var (
	ErrUndefinedName     = errors.New("undefined name")
	ErrUndefinedFunction = errors.New("undefined function")
	ErrInternalNode      = errors.New("unsupported node")
	ErrType              = errors.New("type error")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrRecursion         = errors.New("maximum recursion depth exceeded")
	ErrOverflow          = errors.New("overflow")
)

// Control flow travels as errors until a loop or a call consumes it.

type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return" }
