package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#626262", Dark: "#a8a8a8"}
	greenColor   = lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}
	pinkColor    = lipgloss.AdaptiveColor{Light: "#d33682", Dark: "#ff79c6"}
	yellowColor  = lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#f1fa8c"}
	redColor     = lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#ff5555"}
	inverseColor = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).
			Bold(true).
			Margin(1, 0)

	subtitleStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true).MarginTop(1)

	menuItemStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Margin(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#262626", Dark: "#d9d9d9"})

	selectedMenuItemStyle = menuItemStyle.Foreground(inverseColor).Background(accentColor).Bold(true)

	helpStyle    = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	summaryStyle = helpStyle

	labelStyle        = lipgloss.NewStyle().Foreground(greenColor).Bold(true).Width(22)
	focusedLabelStyle = labelStyle.Foreground(pinkColor)
	selectorStyle     = lipgloss.NewStyle().Foreground(pinkColor)

	successStyle = lipgloss.NewStyle().Foreground(greenColor).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(yellowColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(redColor).Bold(true)
)

// GetAdaptiveStyles sizes the title and the bordered form box to the terminal.
// Narrow terminals get unconstrained widths.
func GetAdaptiveStyles(width int) (title, form lipgloss.Style) {
	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 0
	}

	form = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2).
		Width(maxWidth)

	return titleStyle.Width(maxWidth), form
}
