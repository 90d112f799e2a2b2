package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when the source contains no tokens.
	ErrEmpty = errors.New("empty expression")

	// ErrDivisionByZero is returned when a divisor evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrOverflow is returned when a literal or intermediate result is not finite.
	ErrOverflow = errors.New("result out of range")
)

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}
