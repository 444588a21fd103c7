package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary  = lipgloss.Color("#04D361")
	colorText     = lipgloss.Color("#3D3D4D")
	colorMuted    = lipgloss.Color("#A8A8B3")
	colorError    = lipgloss.Color("#C53030")
	colorAccent   = lipgloss.Color("#6C6C80")
	colorDisabled = lipgloss.Color("#4A4A55")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Italic(true).
			MarginBottom(1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	focusedInputStyle = inputStyle.
				BorderForeground(colorPrimary)

	// errorInputStyle marks the input border when the last add failed.
	errorInputStyle = inputStyle.
			BorderForeground(colorError)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 2).
			MarginLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(colorPrimary)

	nameStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	counterValueStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Bold(true)

	pagerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	pagerDisabledStyle = lipgloss.NewStyle().
				Foreground(colorDisabled)
)
