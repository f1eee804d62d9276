package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle styles the heading above the progress table.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))

	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	// LatestStyle marks the newest stable release in version listings.
	LatestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))

	// ActiveStyle marks the installed release in version listings.
	ActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	statusStyles = map[string]lipgloss.Style{
		"complete": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"running":  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"error":    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"pending":  lipgloss.NewStyle().Faint(true),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
