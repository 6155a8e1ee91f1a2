package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factforge/internal/question"
)

// Palette. Muted editorial tones on a dark background.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Issue = lipgloss.NewStyle().
		Foreground(Error)

	Tag = lipgloss.NewStyle().
		Foreground(Accent)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// DifficultyStyle colours a difficulty badge.
func DifficultyStyle(d question.Difficulty) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch d {
	case question.DifficultyEasy:
		return base.Foreground(Success)
	case question.DifficultyMedium:
		return base.Foreground(Accent)
	case question.DifficultyHard:
		return base.Foreground(Error)
	}
	return base.Foreground(TextDim)
}

// ScoreColor maps a 0-100 quality score to a traffic-light colour.
func ScoreColor(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return lipgloss.NewStyle().Foreground(Success)
	case score >= 60:
		return lipgloss.NewStyle().Foreground(Accent)
	}
	return lipgloss.NewStyle().Foreground(Error)
}
