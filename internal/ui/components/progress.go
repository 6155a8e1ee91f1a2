package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/factforge/internal/ui/theme"
)

// ScoreBar draws a 0-100 quality score as a horizontal bar.
type ScoreBar struct {
	Label string
	Score int
	Width int
}

// NewScoreBar creates a score bar. Scores outside 0-100 are clamped.
func NewScoreBar(label string, score, width int) ScoreBar {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return ScoreBar{Label: label, Score: score, Width: width}
}

// View renders the bar followed by the numeric score.
func (b ScoreBar) View() string {
	var result string
	if b.Label != "" {
		result = theme.Dim.Render(b.Label) + "  "
	}

	// "  100"
	barWidth := b.Width - lipgloss.Width(result) - 5
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * b.Score / 100
	color := theme.ScoreColor(b.Score)

	result += color.Reverse(true).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		color.Render(fmt.Sprintf("  %3d", b.Score))
	return result
}
