// Package calc holds the calculator's expression buffer.
package calc

import (
	"unicode/utf8"

	"github.com/abacus-tui/abacus/internal/expr"
)

// Accumulator builds an expression from keypad tokens and evaluates it.
//
// An Accumulator is not safe for concurrent use; the UI event loop
// serializes calls.
type Accumulator struct {
	content string
	err     error
	policy  ErrorPolicy
	display Display
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithDisplay publishes the buffer to d after every operation.
func WithDisplay(d Display) Option {
	return func(a *Accumulator) {
		if d != nil {
			a.display = d
		}
	}
}

// WithPolicy sets how the buffer reacts to a failed evaluation.
func WithPolicy(p ErrorPolicy) Option {
	return func(a *Accumulator) {
		a.policy = p
	}
}

// New returns an empty Accumulator.
func New(opts ...Option) *Accumulator {
	a := &Accumulator{display: nopDisplay{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Content returns the current buffer.
func (a *Accumulator) Content() string {
	return a.content
}

// Err returns the error from the last failed evaluation, or nil once the
// buffer has been touched again.
func (a *Accumulator) Err() error {
	return a.err
}

// Policy returns the configured error policy.
func (a *Accumulator) Policy() ErrorPolicy {
	return a.policy
}

// Append adds token to the end of the buffer. An empty token is ignored.
func (a *Accumulator) Append(token string) {
	if token != "" {
		a.content += token
		a.err = nil
	}
	a.publish()
}

// Backspace removes the last character.
func (a *Accumulator) Backspace() {
	if len(a.content) > 0 {
		_, size := utf8.DecodeLastRuneInString(a.content)
		a.content = a.content[:len(a.content)-size]
	}
	a.err = nil
	a.publish()
}

// Clear empties the buffer.
func (a *Accumulator) Clear() {
	a.content = ""
	a.err = nil
	a.publish()
}

// Evaluate replaces the buffer with the value of the expression it holds.
// On failure it returns an *EvaluationError and applies the error policy.
func (a *Accumulator) Evaluate() error {
	v, err := expr.Evaluate(a.content)
	if err != nil {
		a.err = &EvaluationError{Expr: a.content, Err: err}
		if a.policy == PolicyReset {
			a.content = ""
		}
		a.publish()
		return a.err
	}

	a.content = expr.FormatNumber(v)
	a.err = nil
	a.publish()
	return nil
}

func (a *Accumulator) publish() {
	a.display.Show(a.content)
}
