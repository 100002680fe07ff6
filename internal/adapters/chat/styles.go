package chat

import "github.com/charmbracelet/lipgloss"

// Styles holds the pre-built lipgloss styles for the chat console.
type Styles struct {
	Header      lipgloss.Style
	Help        lipgloss.Style
	Question    lipgloss.Style
	Answer      lipgloss.Style
	BadgeDet    lipgloss.Style
	BadgeHybrid lipgloss.Style
	BadgeRAG    lipgloss.Style
	Source      lipgloss.Style
	Note        lipgloss.Style
	ErrorText   lipgloss.Style
	Prompt      lipgloss.Style
	Waiting     lipgloss.Style
}

func DefaultStyles() Styles {
	var (
		primary = lipgloss.Color("#7C3AED")
		cyan    = lipgloss.Color("#06B6D4")
		muted   = lipgloss.Color("#6C7086")
		green   = lipgloss.Color("#A6E3A1")
		yellow  = lipgloss.Color("#F9E2AF")
		red     = lipgloss.Color("#F38BA8")
	)

	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(primary),
		Help:        lipgloss.NewStyle().Foreground(muted),
		Question:    lipgloss.NewStyle().Bold(true).Foreground(cyan),
		Answer:      lipgloss.NewStyle(),
		BadgeDet:    badge.Foreground(green),
		BadgeHybrid: badge.Foreground(yellow),
		BadgeRAG:    badge.Foreground(muted),
		Source:      lipgloss.NewStyle().Foreground(muted),
		Note:        lipgloss.NewStyle().Italic(true).Foreground(yellow),
		ErrorText:   lipgloss.NewStyle().Foreground(red),
		Prompt:      lipgloss.NewStyle().Bold(true).Foreground(primary),
		Waiting:     lipgloss.NewStyle().Foreground(muted),
	}
}
