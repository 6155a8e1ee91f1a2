// Package browse is the terminal browser for a generated batch: a
// filterable question list and a detail page per question.
package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factforge/internal/question"
	"github.com/abhisek/factforge/internal/router"
	"github.com/abhisek/factforge/internal/screen"
	"github.com/abhisek/factforge/internal/ui/components"
	"github.com/abhisek/factforge/internal/ui/layout"
	"github.com/abhisek/factforge/internal/ui/theme"
)

// Item is one question with its validation result.
type Item struct {
	Question   *question.Question
	Validation question.ValidationResult
}

// ListScreen lists a batch and narrows it with a free-text filter.
type ListScreen struct {
	title   string
	items   []Item
	visible []int // indexes into items that pass the filter
	cursor  int   // index into visible
	scroll  int
	filter  components.TextInput
}

var (
	_ screen.Screen          = (*ListScreen)(nil)
	_ screen.KeyHintProvider = (*ListScreen)(nil)
	_ screen.InputCapturer   = (*ListScreen)(nil)
)

// New creates a list over items.
func New(title string, items []Item) *ListScreen {
	s := &ListScreen{
		title:  title,
		items:  items,
		filter: components.NewTextInput("/ ", "type, difficulty or words", 64),
	}
	s.applyFilter()
	return s
}

func (s *ListScreen) Init() tea.Cmd { return nil }

func (s *ListScreen) Title() string { return s.title }

// CapturingInput reports whether the filter prompt owns the keyboard.
func (s *ListScreen) CapturingInput() bool { return s.filter.Focused() }

func (s *ListScreen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "/", Description: "Filter"},
		{Key: "Enter", Description: "Open"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		return s, cmd
	}

	if s.filter.Focused() {
		switch key.String() {
		case "enter":
			s.filter.Blur()
			return s, nil
		case "esc":
			s.clearFilter()
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.applyFilter()
		return s, cmd
	}

	switch key.String() {
	case "up", "k":
		s.move(-1)
	case "down", "j":
		s.move(1)
	case "home", "g":
		s.cursor = 0
	case "end", "G":
		s.cursor = max(len(s.visible)-1, 0)
	case "/":
		return s, s.filter.Focus()
	case "esc":
		s.clearFilter()
	case "enter":
		return s, s.open()
	case "q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("  " + s.filter.View() + "\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  %d of %d questions", len(s.visible), len(s.items))) + "\n\n")

	rows := max(height-3, 1)
	s.adjustScroll(rows)

	if len(s.visible) == 0 {
		b.WriteString(theme.Hint.Render("  No questions match the filter."))
		return b.String()
	}

	showTags := !layout.IsCompactWidth(width)
	end := min(s.scroll+rows, len(s.visible))
	lines := make([]string, 0, end-s.scroll)
	for i := s.scroll; i < end; i++ {
		lines = append(lines, s.renderRow(s.items[s.visible[i]], i == s.cursor, width, showTags))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// Selected returns the item under the cursor.
func (s *ListScreen) Selected() (Item, bool) {
	if len(s.visible) == 0 {
		return Item{}, false
	}
	return s.items[s.visible[s.cursor]], true
}

func (s *ListScreen) renderRow(it Item, selected bool, width int, showTags bool) string {
	q := it.Question
	marker := "  "
	if selected {
		marker = theme.Selected.Render("▸ ")
	}

	typ := fmt.Sprintf("%-21s", q.Type)
	diff := theme.DifficultyStyle(q.Difficulty).Render(fmt.Sprintf("%-6s", q.Difficulty))
	score := theme.ScoreColor(it.Validation.QualityScore).Render(fmt.Sprintf("%3d", it.Validation.QualityScore))

	tags := ""
	if showTags {
		tags = theme.Tag.Render(fmt.Sprintf(" %-22s", truncate(strings.Join(q.Tags, ","), 22)))
	}

	// marker, type, difficulty, score and separators.
	used := 2 + 21 + 1 + 6 + 1 + 3 + 2
	if showTags {
		used += 23
	}
	text := truncate(q.Text, width-used-2)

	style := theme.Body
	if selected {
		style = theme.Selected
	}
	return marker + style.Render(typ) + " " + diff + " " + score + tags + "  " + style.Render(text)
}

func (s *ListScreen) move(delta int) {
	next := s.cursor + delta
	if next >= 0 && next < len(s.visible) {
		s.cursor = next
	}
}

func (s *ListScreen) adjustScroll(rows int) {
	if s.cursor < s.scroll {
		s.scroll = s.cursor
	}
	if s.cursor >= s.scroll+rows {
		s.scroll = s.cursor - rows + 1
	}
}

func (s *ListScreen) open() tea.Cmd {
	if len(s.visible) == 0 {
		return nil
	}
	siblings := make([]Item, len(s.visible))
	for i, idx := range s.visible {
		siblings[i] = s.items[idx]
	}
	detail := newDetailAt(siblings, s.cursor)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func (s *ListScreen) clearFilter() {
	s.filter.Reset()
	s.filter.Blur()
	s.applyFilter()
}

// applyFilter keeps items whose type, difficulty, tags or stem contain
// every whitespace-separated term, case-insensitively.
func (s *ListScreen) applyFilter() {
	terms := strings.Fields(strings.ToLower(s.filter.Value()))
	s.visible = s.visible[:0]
	for i, it := range s.items {
		if matches(it.Question, terms) {
			s.visible = append(s.visible, i)
		}
	}
	if s.cursor >= len(s.visible) {
		s.cursor = max(len(s.visible)-1, 0)
	}
	s.scroll = 0
}

func matches(q *question.Question, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	hay := strings.ToLower(strings.Join([]string{
		q.Type.String(),
		string(q.Difficulty),
		strings.Join(q.Tags, " "),
		q.Text,
	}, " "))
	for _, t := range terms {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}
