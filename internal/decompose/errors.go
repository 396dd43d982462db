package decompose

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyExpression = errors.New("decompose: empty expression")
	ErrUnbalanced      = errors.New("decompose: unbalanced parentheses")
	ErrAxisInCall      = errors.New("decompose: axis symbol inside function call")
	ErrAxisDivisor     = errors.New("decompose: axis symbol used as divisor")
	ErrAxisExponent    = errors.New("decompose: axis symbol used in exponent")
	ErrRepeatedAxis    = errors.New("decompose: axis symbol repeated within term")
)

// DecompositionError reports a structurally malformed expression or term.
type DecompositionError struct {
	Input   string
	Wrapped error
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("%v in %q", e.Wrapped, e.Input)
}

func (e *DecompositionError) Unwrap() error {
	return e.Wrapped
}

func failf(input string, err error) error {
	return &DecompositionError{Input: input, Wrapped: err}
}
