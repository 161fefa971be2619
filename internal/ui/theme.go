// Package ui renders ledger data for the terminal. It only formats what the
// core hands it and never touches the transaction file.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/config"
)

// Theme carries the styles derived from the settings document.
type Theme struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Income    lipgloss.Style
	Expense   lipgloss.Style
	Muted     lipgloss.Style
	Border    lipgloss.Style
}

func NewTheme(s config.Settings) Theme {
	primary := lipgloss.Color(s.PrimaryColor)
	secondary := lipgloss.Color(s.SecondaryColor)

	muted := lipgloss.Color("#666666")
	if s.Theme == "dark" {
		muted = lipgloss.Color("#aaaaaa")
	}

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:      lipgloss.NewStyle().Padding(0, 1),
		Income:    lipgloss.NewStyle().Foreground(primary),
		Expense:   lipgloss.NewStyle().Foreground(secondary),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Border:    lipgloss.NewStyle().Foreground(muted),
	}
}
