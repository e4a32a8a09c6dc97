package terminal

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	banner  lipgloss.Style
	heading lipgloss.Style
	detail  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	body    lipgloss.Style
	action  lipgloss.Style
	section lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		banner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		body:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		action:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}
