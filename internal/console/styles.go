package console

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	destructive = lipgloss.Color("#e53935")
	muted       = lipgloss.Color("#6b7280")
)

// Styles holds the lipgloss styles the console renders with.
type Styles struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	ErrorRow lipgloss.Style
	Dimmed   lipgloss.Style
	Box      lipgloss.Style
	BoxTitle lipgloss.Style
	Danger   lipgloss.Style
	Alert    lipgloss.Style
}

// DefaultStyles is the console's green-accented theme.
func DefaultStyles() Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Help:     lipgloss.NewStyle().Foreground(muted),
		ErrorRow: lipgloss.NewStyle().Foreground(destructive),
		Dimmed:   lipgloss.NewStyle().Faint(true),
		Box:      box,
		BoxTitle: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Danger:   lipgloss.NewStyle().Bold(true).Foreground(destructive),
		Alert:    box.BorderForeground(destructive),
	}
}
