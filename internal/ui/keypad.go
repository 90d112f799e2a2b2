package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Action is what a keypad button does to the expression buffer.
type Action int

const (
	ActionAppend Action = iota
	ActionEvaluate
	ActionClear
	ActionBackspace
)

// Button is one keypad cell. Token is what ActionAppend adds to the buffer;
// Label is what is drawn.
type Button struct {
	Label  string
	Action Action
	Token  string
}

func digit(d string) Button { return Button{Label: d, Action: ActionAppend, Token: d} }

// Keypad is a grid of buttons laid out one text line per row.
type Keypad struct {
	rows [][]Button
}

const (
	// CellWidth is the rendered width of one button, brackets included.
	CellWidth = 5
	// Indent is the left margin before the first column.
	Indent  = 2
	cellGap = 1
)

// DefaultKeypad is the standard four-function layout.
func DefaultKeypad() Keypad {
	return NewKeypad([][]Button{
		{
			{Label: "C", Action: ActionClear},
			{Label: "⌫", Action: ActionBackspace},
			{Label: "(", Action: ActionAppend, Token: "("},
			{Label: ")", Action: ActionAppend, Token: ")"},
		},
		{digit("7"), digit("8"), digit("9"), {Label: "÷", Action: ActionAppend, Token: "/"}},
		{digit("4"), digit("5"), digit("6"), {Label: "×", Action: ActionAppend, Token: "*"}},
		{digit("1"), digit("2"), digit("3"), {Label: "−", Action: ActionAppend, Token: "-"}},
		{digit("0"), {Label: ".", Action: ActionAppend, Token: "."}, {Label: "=", Action: ActionEvaluate}, {Label: "+", Action: ActionAppend, Token: "+"}},
	})
}

// NewKeypad builds a keypad from explicit rows.
func NewKeypad(rows [][]Button) Keypad {
	return Keypad{rows: rows}
}

// Rows returns the number of rows.
func (k Keypad) Rows() int {
	return len(k.rows)
}

// Cols returns the number of buttons in row.
func (k Keypad) Cols(row int) int {
	if row < 0 || row >= len(k.rows) {
		return 0
	}
	return len(k.rows[row])
}

// At returns the button at row, col.
func (k Keypad) At(row, col int) (Button, bool) {
	if col < 0 || col >= k.Cols(row) {
		return Button{}, false
	}
	return k.rows[row][col], true
}

// Find returns the position of the first button with the given label.
func (k Keypad) Find(label string) (row, col int, ok bool) {
	for r, buttons := range k.rows {
		for c, b := range buttons {
			if b.Label == label {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Render draws the grid, highlighting the button under the cursor.
func (k Keypad) Render(cursorRow, cursorCol int) string {
	var b strings.Builder

	for r, buttons := range k.rows {
		b.WriteString(strings.Repeat(" ", Indent))
		for c, btn := range buttons {
			if c > 0 {
				b.WriteString(strings.Repeat(" ", cellGap))
			}
			cell := "[" + center(btn.Label, CellWidth-2) + "]"
			style := buttonStyle(btn)
			if r == cursorRow && c == cursorCol {
				style = ActiveStyle
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HitTest maps a cell offset relative to the keypad's top-left corner to
// a button. Gaps and the indent hit nothing.
func (k Keypad) HitTest(x, y int) (row, col int, ok bool) {
	if y < 0 || y >= len(k.rows) {
		return 0, 0, false
	}
	x -= Indent
	if x < 0 {
		return 0, 0, false
	}
	stride := CellWidth + cellGap
	if x%stride >= CellWidth {
		return 0, 0, false
	}
	col = x / stride
	if col >= len(k.rows[y]) {
		return 0, 0, false
	}
	return y, col, true
}

func buttonStyle(b Button) lipgloss.Style {
	switch {
	case b.Action == ActionEvaluate:
		return SuccessStyle
	case b.Action == ActionClear || b.Action == ActionBackspace:
		return ErrorStyle
	case b.Token != "" && strings.Contains("+-*/()", b.Token):
		return OperatorStyle
	}
	return lipgloss.NewStyle()
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
