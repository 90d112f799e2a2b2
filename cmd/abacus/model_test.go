package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abacus-tui/abacus/internal/calc"
	"github.com/abacus-tui/abacus/internal/config"
)

func newTestModel() model {
	return initialModel(calc.PolicyKeep, config.DefaultDisplayWidth)
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("expected model, got %T", next)
	}
	return nm
}

func enter() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// pressKey moves the cursor onto label and presses enter.
func pressKey(t *testing.T, m model, label string) model {
	t.Helper()
	r, c, ok := m.keypad.Find(label)
	if !ok {
		t.Fatalf("no button %q", label)
	}
	m.row, m.col = r, c
	return update(t, m, enter())
}

// click sends a left click somewhere inside the button's cell.
func click(t *testing.T, m model, label string) model {
	t.Helper()
	r, c, ok := m.keypad.Find(label)
	if !ok {
		t.Fatalf("no button %q", label)
	}
	for x := 0; x < 80; x++ {
		if hr, hc, hit := m.keypad.HitTest(x, r); hit && hr == r && hc == c {
			return update(t, m, tea.MouseMsg{
				X:      x,
				Y:      m.keypadTop() + r,
				Action: tea.MouseActionPress,
				Button: tea.MouseButtonLeft,
			})
		}
	}
	t.Fatalf("button %q has no clickable cell", label)
	return m
}

func TestKeyboardRoundTrip(t *testing.T) {
	m := newTestModel()
	for _, label := range []string{"2", "+", "3", "="} {
		m = pressKey(t, m, label)
	}
	if m.screen.text != "5" {
		t.Fatalf("expected '5', got %q", m.screen.text)
	}
}

func TestOperatorLabelsAppendTokens(t *testing.T) {
	m := newTestModel()
	for _, label := range []string{"8", "÷", "2", "×", "3", "−", "1"} {
		m = pressKey(t, m, label)
	}
	if m.acc.Content() != "8/2*3-1" {
		t.Fatalf("expected '8/2*3-1', got %q", m.acc.Content())
	}
	m = pressKey(t, m, "=")
	if m.screen.text != "11" {
		t.Fatalf("expected '11', got %q", m.screen.text)
	}
}

func TestMouseClickPressesButton(t *testing.T) {
	m := newTestModel()
	for _, label := range []string{"2", "+", "3", "×", "4", "="} {
		m = click(t, m, label)
	}
	if m.screen.text != "14" {
		t.Fatalf("expected '14', got %q", m.screen.text)
	}
}

func TestMouseReleaseIgnored(t *testing.T) {
	m := newTestModel()
	r, _, _ := m.keypad.Find("7")
	m = update(t, m, tea.MouseMsg{X: 3, Y: m.keypadTop() + r, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.acc.Content() != "" {
		t.Fatalf("expected empty buffer, got %q", m.acc.Content())
	}
}

func TestClickOutsideKeypad(t *testing.T) {
	m := newTestModel()
	m = update(t, m, tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.acc.Content() != "" {
		t.Fatalf("expected empty buffer, got %q", m.acc.Content())
	}
}

func TestEvaluationErrorShowsIndicator(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "+")
	m = pressKey(t, m, "=")

	if m.acc.Err() == nil {
		t.Fatal("expected evaluation error")
	}
	if m.screen.text != "+" {
		t.Fatalf("expected buffer kept as '+', got %q", m.screen.text)
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Fatalf("expected error indicator in view:\n%s", m.View())
	}

	m = pressKey(t, m, "C")
	if m.acc.Err() != nil || m.screen.text != "" {
		t.Fatalf("expected clear to reset state, got %q / %v", m.screen.text, m.acc.Err())
	}
	if strings.Contains(m.View(), "Error:") {
		t.Fatal("expected error indicator to be gone after clear")
	}
}

func TestResetPolicyEmptiesBuffer(t *testing.T) {
	m := initialModel(calc.PolicyReset, config.DefaultDisplayWidth)
	m = pressKey(t, m, "5")
	m = pressKey(t, m, "÷")
	m = pressKey(t, m, "0")
	m = pressKey(t, m, "=")
	if m.screen.text != "" {
		t.Fatalf("expected empty buffer, got %q", m.screen.text)
	}
	if m.acc.Err() == nil {
		t.Fatal("expected evaluation error")
	}
}

func TestBackspaceButton(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "1")
	m = pressKey(t, m, "2")
	m = pressKey(t, m, "⌫")
	if m.screen.text != "1" {
		t.Fatalf("expected '1', got %q", m.screen.text)
	}
}

func TestTypedDigitsAreIgnored(t *testing.T) {
	m := newTestModel()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	if m.acc.Content() != "" {
		t.Fatalf("expected typed text to be ignored, got %q", m.acc.Content())
	}
}

func TestCursorClampsToGrid(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 10; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
		m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.row != 0 || m.col != 0 {
		t.Fatalf("expected cursor at (0, 0), got (%d, %d)", m.row, m.col)
	}

	for i := 0; i < 10; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.row != m.keypad.Rows()-1 || m.col != m.keypad.Cols(m.row)-1 {
		t.Fatalf("expected cursor at bottom-right, got (%d, %d)", m.row, m.col)
	}
}

func TestCursorStartsOnEquals(t *testing.T) {
	m := newTestModel()
	b, ok := m.keypad.At(m.row, m.col)
	if !ok || b.Label != "=" {
		t.Fatalf("expected cursor on '=', got %+v", b)
	}
}

func TestKeypadTopMatchesView(t *testing.T) {
	m := newTestModel()
	lines := strings.Split(m.View(), "\n")
	top := m.keypadTop()
	if top >= len(lines) {
		t.Fatalf("keypad top %d beyond view of %d lines", top, len(lines))
	}
	if !strings.Contains(lines[top], "C") || !strings.Contains(lines[top], "(") {
		t.Fatalf("expected first keypad row on line %d, got %q", top, lines[top])
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.help.ShowAll {
		t.Fatal("expected full help after '?'")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if v := next.(model).View(); v != "" {
		t.Fatalf("expected empty view after quit, got %q", v)
	}
}
