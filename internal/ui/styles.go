package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	ActiveStyle   = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(lipgloss.Color("2"))
	DimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	SuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	OperatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	DisplayStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Align(lipgloss.Right)
)
