package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Panel border style
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	// Modal frame shared by help, prompts and file pickers
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3)

	ModalTitleStyle = lipgloss.NewStyle().Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)
