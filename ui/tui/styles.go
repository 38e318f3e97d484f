package tui

import "github.com/charmbracelet/lipgloss"

// cellWidth is the number of columns each tile takes, including padding.
const cellWidth = 20

// styles are the lipgloss styles of the parts of the view.
type styles struct {
	Title    lipgloss.Style
	Count    lipgloss.Style
	Cell     lipgloss.Style
	Used     lipgloss.Style
	Selected lipgloss.Style
	Log      map[string]lipgloss.Style
	Prompt   lipgloss.Style
	Faint    lipgloss.Style
}

// defaultStyles returns the styles of the view.
func defaultStyles() styles {
	cell := lipgloss.NewStyle().
		Width(cellWidth).
		Padding(0, 1)
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bd93f9")),
		Count: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50fa7b")),
		Cell: cell,
		Used: cell.
			Faint(true).
			Strikethrough(true),
		Selected: cell.
			Reverse(true),
		Log: map[string]lipgloss.Style{
			"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd")),
			"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")),
			"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")),
		},
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffb86c")),
		Faint: lipgloss.NewStyle().
			Faint(true),
	}
}
