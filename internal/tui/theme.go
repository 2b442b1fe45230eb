package tui

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the terminal countdown.
type Theme struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	BarFull  lipgloss.Style
	BarEmpty lipgloss.Style
	Percent  lipgloss.Style
	Unit     lipgloss.Style
	UnitName lipgloss.Style
	Muted    lipgloss.Style
	Modal    lipgloss.Style
	Help     lipgloss.Style
}

// NewTheme returns the light or dark palette.
func NewTheme(dark bool) Theme {
	accent := lipgloss.Color("205")
	text := lipgloss.Color("236")
	muted := lipgloss.Color("244")
	track := lipgloss.Color("252")
	if dark {
		accent = lipgloss.Color("212")
		text = lipgloss.Color("255")
		muted = lipgloss.Color("245")
		track = lipgloss.Color("238")
	}

	return Theme{
		Title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Header:   lipgloss.NewStyle().Foreground(text).Bold(true),
		BarFull:  lipgloss.NewStyle().Foreground(accent),
		BarEmpty: lipgloss.NewStyle().Foreground(track),
		Percent:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Unit: lipgloss.NewStyle().
			Foreground(text).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		UnitName: lipgloss.NewStyle().Foreground(muted),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Modal: lipgloss.NewStyle().
			Foreground(text).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(0, 2),
		Help: lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
