package tui

import "github.com/charmbracelet/lipgloss"

// Help footer styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	HelpSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3C3C3C"))
)
