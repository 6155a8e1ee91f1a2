package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factforge/internal/router"
	"github.com/abhisek/factforge/internal/screen"
	"github.com/abhisek/factforge/internal/ui/components"
	"github.com/abhisek/factforge/internal/ui/layout"
	"github.com/abhisek/factforge/internal/ui/theme"
)

// DetailScreen shows one question in full: stem, payload with the key
// marked, explanation and validation. It can step through the list it was
// opened from.
type DetailScreen struct {
	item   Item
	scroll int

	siblings []Item
	pos      int
}

var (
	_ screen.Screen          = (*DetailScreen)(nil)
	_ screen.KeyHintProvider = (*DetailScreen)(nil)
)

func newDetail(it Item) *DetailScreen {
	return &DetailScreen{item: it}
}

// newDetailAt opens siblings[pos] with paging over siblings.
func newDetailAt(siblings []Item, pos int) *DetailScreen {
	return &DetailScreen{item: siblings[pos], siblings: siblings, pos: pos}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }

func (d *DetailScreen) Title() string {
	return fmt.Sprintf("%s · %s", d.item.Question.Type, d.item.Question.Difficulty)
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if len(d.siblings) > 1 {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Prev/Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "up", "k":
			d.scroll = max(d.scroll-1, 0)
		case "down", "j":
			d.scroll++
		case "home", "g":
			d.scroll = 0
		case "left", "p":
			return d, d.step(-1)
		case "right", "n":
			return d, d.step(1)
		}
	}
	return d, nil
}

// step swaps this page for its neighbour so Esc still returns to the list.
func (d *DetailScreen) step(delta int) tea.Cmd {
	next := d.pos + delta
	if next < 0 || next >= len(d.siblings) {
		return nil
	}
	s := newDetailAt(d.siblings, next)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: s}
	}
}

func (d *DetailScreen) View(width, height int) string {
	lines := strings.Split(d.render(max(width-4, 20)), "\n")
	if height <= 0 {
		return ""
	}
	d.scroll = min(d.scroll, max(len(lines)-height, 0))
	end := min(d.scroll+height, len(lines))
	return strings.Join(lines[d.scroll:end], "\n")
}

func (d *DetailScreen) render(width int) string {
	q := d.item.Question
	v := d.item.Validation
	wrap := lipgloss.NewStyle().Width(width).PaddingLeft(2)

	var b strings.Builder
	section := func(title string) {
		b.WriteString("\n" + theme.Heading.Render("  "+title) + "\n")
	}

	b.WriteString(theme.Dim.Render(fmt.Sprintf("  %s  fact %s  %ds  %d marks", q.ID, q.BaseFactID, q.TimeToSolve, q.Marks)) + "\n")
	if len(q.Tags) > 0 {
		b.WriteString("  " + theme.Tag.Render(strings.Join(q.Tags, "  ")) + "\n")
	}
	b.WriteString("\n" + wrap.Inherit(theme.Body).Bold(true).Render(q.Text) + "\n")

	section("Answer")
	for _, line := range payloadLines(q.Payload) {
		style := theme.Body
		if strings.HasPrefix(line, correctMark) {
			style = theme.Correct
		}
		b.WriteString(wrap.Inherit(style).Render(line) + "\n")
	}

	ex := q.Explanation
	section("Explanation")
	b.WriteString(wrap.Render("Correct: "+ex.CorrectAnswer) + "\n")
	if ex.WhyCorrect != "" {
		b.WriteString(wrap.Render(ex.WhyCorrect) + "\n")
	}
	for _, w := range ex.WhyOthersWrong {
		b.WriteString(wrap.Inherit(theme.Dim).Render("• "+w) + "\n")
	}
	if ex.ConceptClarity != "" {
		b.WriteString(wrap.Inherit(theme.Dim).Render("Concept: "+ex.ConceptClarity) + "\n")
	}
	if ex.MemoryTrick != "" {
		b.WriteString(wrap.Inherit(theme.Hint).Render("Trick: "+ex.MemoryTrick) + "\n")
	}

	section("Validation")
	b.WriteString("  " + components.NewScoreBar("Quality", v.QualityScore, min(width, 60)).View() + "\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  valid %t  cognitive %s  difficulty ok %t  unambiguous %t",
		v.IsValid, v.CognitiveLevel, v.DifficultyAppropriate, v.AmbiguityFree)) + "\n")
	for i, issue := range v.Issues {
		b.WriteString(wrap.Inherit(theme.Issue).Render("! "+issue) + "\n")
		if i < len(v.Suggestions) {
			b.WriteString(wrap.Inherit(theme.Hint).Render("  "+v.Suggestions[i]) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
