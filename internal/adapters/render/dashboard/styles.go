package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	section    lipgloss.Style
	sectionKey lipgloss.Style
	empty      lipgloss.Style
	name       lipgloss.Style
	detail     lipgloss.Style
	meta       lipgloss.Style
	amount     lipgloss.Style
	statuses   map[string]lipgloss.Style
	senders    map[string]lipgloss.Style
	alert      lipgloss.Style
	insight    lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:    lipgloss.NewStyle().MarginTop(1),
		sectionKey: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		empty:      lipgloss.NewStyle().Faint(true),
		name:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		amount:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		statuses: map[string]lipgloss.Style{
			"active":     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			"publishing": lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
			"idle":       lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
			"offline":    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
		senders: map[string]lipgloss.Style{
			"SYSTEM": lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			"BROKER": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
			"USER":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		},
		alert:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		insight:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
