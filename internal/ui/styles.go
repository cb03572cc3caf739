package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorAccent = lipgloss.Color("#4ecca3")
	ColorDim    = lipgloss.Color("#555555")
	ColorError  = lipgloss.Color("#e94560")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorDim)
	ActiveTabStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorAccent).Bold(true).Underline(true)

	DimText   = lipgloss.NewStyle().Foreground(ColorDim)
	ErrorText = lipgloss.NewStyle().Foreground(ColorError)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim)
)
