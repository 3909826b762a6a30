package render

import "charm.land/lipgloss/v2"

// Color palette for terminal report output.
var (
	accent  = lipgloss.Color("#8B5CF6") // Purple
	danger  = lipgloss.Color("#F43F5E") // Rose
	caution = lipgloss.Color("#F97316") // Orange
	ok      = lipgloss.Color("#22C55E") // Green
	dim     = lipgloss.Color("#94A3B8") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	labelStyle = lipgloss.NewStyle().
			Foreground(dim)

	countStyle = lipgloss.NewStyle().
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(danger)

	cautionStyle = lipgloss.NewStyle().
			Foreground(caution)

	okStyle = lipgloss.NewStyle().
		Foreground(ok)

	barStyle = lipgloss.NewStyle().
			Foreground(danger)
)
