package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	syncBlue  = lipgloss.Color("#3B82F6")
	slateDark = lipgloss.Color("#1F2937")
	dimGray   = lipgloss.Color("#6B7280")
	lightGray = lipgloss.Color("#9CA3AF")
	white     = lipgloss.Color("#F9FAFB")
	green     = lipgloss.Color("#10B981")
	yellow    = lipgloss.Color("#F59E0B")
	red       = lipgloss.Color("#EF4444")
)

// Styles groups every lipgloss style the views use.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	Selected lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Faint    lipgloss.Style
	Accent   lipgloss.Style

	Connected    lipgloss.Style
	Syncing      lipgloss.Style
	Disconnected lipgloss.Style
	Pending      lipgloss.Style

	Error  lipgloss.Style
	Status lipgloss.Style

	Pane       lipgloss.Style
	ActivePane lipgloss.Style
	Popup      lipgloss.Style
}

// DefaultStyles returns the standard theme.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Foreground(white).Bold(true),
		Tab:       lipgloss.NewStyle().Foreground(dimGray).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(white).Background(syncBlue).Padding(0, 1),

		Selected: lipgloss.NewStyle().Foreground(white).Background(slateDark).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(white),
		Muted:    lipgloss.NewStyle().Foreground(lightGray),
		Faint:    lipgloss.NewStyle().Foreground(dimGray),
		Accent:   lipgloss.NewStyle().Foreground(syncBlue),

		Connected:    lipgloss.NewStyle().Foreground(green),
		Syncing:      lipgloss.NewStyle().Foreground(yellow),
		Disconnected: lipgloss.NewStyle().Foreground(dimGray),
		Pending:      lipgloss.NewStyle().Foreground(yellow),

		Error:  lipgloss.NewStyle().Foreground(red),
		Status: lipgloss.NewStyle().Foreground(lightGray),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimGray).
			Padding(0, 1),
		ActivePane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(syncBlue).
			Padding(0, 1),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(syncBlue).
			Padding(1, 2),
	}
}
