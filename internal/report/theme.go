package report

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	accent  = lipgloss.Color("#F97316") // Orange
	success = lipgloss.Color("#22C55E") // Green
	failure = lipgloss.Color("#F43F5E") // Rose
	text    = lipgloss.Color("#F8FAFC") // White
	textDim = lipgloss.Color("#94A3B8") // Slate
	border  = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	labelStyle = lipgloss.NewStyle().
			Foreground(textDim)

	valueStyle = lipgloss.NewStyle().
			Foreground(text).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(textDim).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(accent)

	correctStyle = lipgloss.NewStyle().
			Foreground(success).
			Bold(true)

	incorrectStyle = lipgloss.NewStyle().
			Foreground(failure).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)

	headerCell = lipgloss.NewStyle().Foreground(primary).Bold(true).Padding(0, 1)
	bodyCell   = lipgloss.NewStyle().Foreground(text).Padding(0, 1)
)

func field(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}
