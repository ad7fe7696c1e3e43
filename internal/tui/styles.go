package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	warnStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
