package calc

import (
	"fmt"
	"io"
)

// Display receives the buffer contents after every operation.
type Display interface {
	Show(content string)
}

// DisplayFunc adapts a plain function to Display.
type DisplayFunc func(content string)

// Show calls f(content).
func (f DisplayFunc) Show(content string) {
	f(content)
}

// WriterDisplay writes one line per published value.
type WriterDisplay struct {
	W io.Writer
}

// Show writes content followed by a newline. Write errors are dropped; a
// display cannot fail an operation.
func (d WriterDisplay) Show(content string) {
	_, _ = fmt.Fprintln(d.W, content)
}

type nopDisplay struct{}

func (nopDisplay) Show(string) {}
