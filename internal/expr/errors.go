package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefined indicates a variable missing from the evaluation scope.
	ErrUndefined = errors.New("expr: undefined variable")

	// ErrDomain indicates a function argument outside its real domain.
	ErrDomain = errors.New("expr: argument outside function domain")
)

// ParseError reports malformed source or an unknown identifier at compile time.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expr: %s (at %d)", e.Msg, e.Pos)
}

// EvalError reports a failure while evaluating a compiled program.
type EvalError struct {
	Name    string
	Wrapped error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%v: %s", e.Wrapped, e.Name)
}

func (e *EvalError) Unwrap() error {
	return e.Wrapped
}
