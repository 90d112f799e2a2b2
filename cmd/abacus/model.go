package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/abacus-tui/abacus/internal/calc"
	"github.com/abacus-tui/abacus/internal/logger"
	"github.com/abacus-tui/abacus/internal/ui"
)

// screen is the accumulator's display sink; View draws whatever was last
// published to it.
type screen struct {
	text string
}

func (s *screen) Show(content string) {
	s.text = content
}

type model struct {
	acc      *calc.Accumulator
	screen   *screen
	keypad   ui.Keypad
	row, col int
	width    int
	keys     keyMap
	help     help.Model
	quitting bool
}

func initialModel(policy calc.ErrorPolicy, displayWidth int) model {
	s := &screen{}
	m := model{
		acc:    calc.New(calc.WithPolicy(policy), calc.WithDisplay(s)),
		screen: s,
		keypad: ui.DefaultKeypad(),
		width:  displayWidth,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	// Start on "=" so a single enter after clicking digits evaluates.
	if r, c, ok := m.keypad.Find("="); ok {
		m.row, m.col = r, c
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.row-1, m.col)
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.row+1, m.col)
	case key.Matches(msg, m.keys.Left):
		m.moveTo(m.row, m.col-1)
	case key.Matches(msg, m.keys.Right):
		m.moveTo(m.row, m.col+1)
	case key.Matches(msg, m.keys.Press):
		if b, ok := m.keypad.At(m.row, m.col); ok {
			m.press(b)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row, col, ok := m.keypad.HitTest(msg.X, msg.Y-m.keypadTop())
	if !ok {
		return m, nil
	}
	m.row, m.col = row, col
	b, _ := m.keypad.At(row, col)
	m.press(b)
	return m, nil
}

// moveTo clamps the cursor into the grid.
func (m *model) moveTo(row, col int) {
	if row < 0 {
		row = 0
	}
	if row >= m.keypad.Rows() {
		row = m.keypad.Rows() - 1
	}
	if n := m.keypad.Cols(row); col >= n {
		col = n - 1
	}
	if col < 0 {
		col = 0
	}
	m.row, m.col = row, col
}

func (m *model) press(b ui.Button) {
	logger.Debug("button pressed", zap.String("label", b.Label))

	switch b.Action {
	case ui.ActionAppend:
		m.acc.Append(b.Token)
	case ui.ActionBackspace:
		m.acc.Backspace()
	case ui.ActionClear:
		m.acc.Clear()
	case ui.ActionEvaluate:
		expr := m.acc.Content()
		if err := m.acc.Evaluate(); err != nil {
			logger.Warn("evaluation failed",
				zap.String("expr", expr),
				zap.Stringer("policy", m.acc.Policy()),
				zap.Error(err))
			return
		}
		logger.Debug("evaluated", zap.String("expr", expr), zap.String("result", m.acc.Content()))
	}
}

// --- Views ---

func (m model) header() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("abacus"))
	b.WriteString("\n\n")
	b.WriteString(ui.RenderDisplay(m.screen.text, m.width))
	b.WriteString("\n")
	b.WriteString(ui.RenderStatus(m.acc.Err()))
	b.WriteString("\n\n")
	return b.String()
}

// keypadTop is the screen line the first keypad row is drawn on.
func (m model) keypadTop() int {
	return strings.Count(m.header(), "\n")
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString(m.keypad.Render(m.row, m.col))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
