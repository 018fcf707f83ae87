package tui

import "github.com/charmbracelet/lipgloss"

var (
	cardFront = lipgloss.Color("#f4f5f6")
	cardBack  = lipgloss.Color("#26a69a")
	ink       = lipgloss.Color("#101F38")
	muted     = lipgloss.Color("#7f8c8d")
	success   = lipgloss.Color("#8BC34A")
	danger    = lipgloss.Color("#e53935")
)

// Styles holds the lipgloss styles of the trainer screen
type Styles struct {
	Header    lipgloss.Style
	Front     lipgloss.Style
	Back      lipgloss.Style
	Done      lipgloss.Style
	CardTitle lipgloss.Style
	Word      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the flashy colour scheme
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Width(40).
		Height(7).
		Padding(1, 2).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder())

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(ink).
			Background(success).
			Padding(0, 2).
			Bold(true),

		Front: card.
			Background(cardFront).
			Foreground(ink).
			BorderForeground(muted),

		Back: card.
			Background(cardBack).
			Foreground(lipgloss.Color("#ffffff")).
			BorderForeground(cardBack),

		Done: card.
			Foreground(success).
			BorderForeground(success),

		CardTitle: lipgloss.NewStyle().
			Italic(true),

		Word: lipgloss.NewStyle().
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(muted),

		Error: lipgloss.NewStyle().
			Foreground(danger),
	}
}
