package ui

import (
	"fmt"
	"strings"
)

// RenderDisplay draws the expression buffer in a right-aligned box of the
// given inner width. Content that does not fit keeps its tail.
func RenderDisplay(content string, width int) string {
	return DisplayStyle.Width(width).Render(Fit(content, width))
}

// Fit truncates s from the left so it fits in width cells.
func Fit(s string, width int) string {
	if s == "" {
		return " "
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return "…" + string(runes[len(runes)-width+1:])
}

// RenderStatus renders the single status line under the display.
func RenderStatus(err error) string {
	if err == nil {
		return DimStyle.Render("ready")
	}
	return ErrorStyle.Render(fmt.Sprintf("Error: %s", statusText(err)))
}

// statusText drops the quoted expression from evaluation errors; the
// display already shows it.
func statusText(err error) string {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok && u.Unwrap() != nil {
		err = u.Unwrap()
	}
	return strings.TrimSpace(err.Error())
}
