package tui

import "github.com/charmbracelet/lipgloss"

// Shared panel styling for the reader.
var (
	colorAccent = lipgloss.Color("212")
	colorDim    = lipgloss.Color("240")
	colorText   = lipgloss.Color("252")
	colorBar    = lipgloss.Color("236")

	titleFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Underline(true).
				Padding(0, 1)

	titleBlurredStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorDim).
				Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

func panelTitle(label string, focused bool) string {
	if focused {
		return titleFocusedStyle.Render(label)
	}
	return titleBlurredStyle.Render(label)
}
