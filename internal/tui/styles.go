package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/domain"
)

type styles struct {
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Overlay   lipgloss.Style
	Selected  lipgloss.Style

	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	StatusDone    lipgloss.Style
	StatusOngoing lipgloss.Style
	StatusPending lipgloss.Style
}

// newStyles builds the palette. The "light" theme swaps the muted grays for
// darker ones so text stays readable on light terminals.
func newStyles(theme string) styles {
	muted := lipgloss.Color("241")
	if theme == "light" {
		muted = lipgloss.Color("238")
	}

	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(muted),
		Help: lipgloss.NewStyle().
			Foreground(muted),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true),

		PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),

		StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		StatusOngoing: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		StatusPending: lipgloss.NewStyle().Foreground(muted),
	}
}

func (s styles) priority(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.PriorityHigh
	case domain.PriorityLow:
		return s.PriorityLow
	default:
		return s.PriorityMedium
	}
}

func (s styles) status(st domain.Status) lipgloss.Style {
	switch st {
	case domain.StatusDone:
		return s.StatusDone
	case domain.StatusOngoing:
		return s.StatusOngoing
	default:
		return s.StatusPending
	}
}
