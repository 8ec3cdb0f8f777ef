// Package tui is the terminal front end of the catalog console. It renders
// coordinator snapshots and turns key presses into coordinator calls.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary     = lipgloss.Color("#2563EB")
	colorMuted       = lipgloss.Color("#6B7280")
	colorBorder      = lipgloss.Color("#D1D5DB")
	colorDestructive = lipgloss.Color("#DC2626")
	colorSuccess     = lipgloss.Color("#16A34A")
	colorWarning     = lipgloss.Color("#D97706")
	colorChip        = lipgloss.Color("#DBEAFE")
	colorChart       = lipgloss.Color("#4DB6AC")
)

// Styles holds every lipgloss style the views use.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Chip      lipgloss.Style
	Card      lipgloss.Style
	CardValue lipgloss.Style
	Bar       lipgloss.Style
	Dialog    lipgloss.Style
	Active    lipgloss.Style
	StatusBar lipgloss.Style
}

// DefaultStyles returns the console's styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorDestructive).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(colorSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(colorWarning),

		Chip: lipgloss.NewStyle().
			Background(colorChip).
			Foreground(colorPrimary).
			Padding(0, 1).
			MarginRight(1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginRight(1),

		CardValue: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),

		Bar: lipgloss.NewStyle().
			Foreground(colorChart),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3),

		Active: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Underline(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),
	}
}
