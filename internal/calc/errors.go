package calc

import (
	"fmt"
	"strings"
)

// EvaluationError is returned by Evaluate when the buffer cannot be reduced
// to a number. Err is the underlying expr error.
type EvaluationError struct {
	Expr string
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate %q: %v", e.Expr, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// ErrorPolicy decides what happens to the buffer when evaluation fails.
type ErrorPolicy int

const (
	// PolicyKeep leaves the buffer untouched so the input can be corrected.
	PolicyKeep ErrorPolicy = iota
	// PolicyReset empties the buffer.
	PolicyReset
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyKeep:
		return "keep"
	case PolicyReset:
		return "reset"
	}
	return fmt.Sprintf("ErrorPolicy(%d)", int(p))
}

// ParsePolicy converts a config value to an ErrorPolicy.
func ParsePolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return PolicyKeep, nil
	case "reset":
		return PolicyReset, nil
	}
	return PolicyKeep, fmt.Errorf("invalid error policy: %s", s)
}
