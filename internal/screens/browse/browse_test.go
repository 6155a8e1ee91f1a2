package browse

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factforge/internal/question"
	"github.com/abhisek/factforge/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *ListScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func testItems() []Item {
	single := &question.Question{
		ID:         "q1",
		Type:       question.TypeSingleCorrectMCQ,
		Text:       "Which of the following is guaranteed by Article 21?",
		Difficulty: question.DifficultyEasy,
		BaseFactID: "polity-art21",
		Payload: &question.SingleCorrectPayload{Options: []question.Option{
			{Label: "A", Text: "Right to life", IsCorrect: true},
			{Label: "B", Text: "Right to vote"},
			{Label: "C", Text: "Right to property"},
			{Label: "D", Text: "Right to strike"},
		}},
		Explanation: question.Explanation{CorrectAnswer: "A", WhyCorrect: "Article 21 protects life."},
	}
	statement := &question.Question{
		ID:         "q2",
		Type:       question.TypeStatementBased,
		Text:       "Which of the statements given above are correct?",
		Difficulty: question.DifficultyHard,
		Tags:       []string{"false-statement"},
		Payload: &question.StatementPayload{
			Statements: []question.Statement{
				{Number: 1, Text: "It applies to citizens only.", IsTrue: false},
				{Number: 2, Text: "It covers personal liberty.", IsTrue: true},
			},
			CorrectCombination: []int{2},
			Options:            question.CombinationOptions(2, []int{2}),
		},
	}
	match := &question.Question{
		ID:         "q3",
		Type:       question.TypeMatchTheFollowing,
		Text:       "Match List I with List II",
		Difficulty: question.DifficultyHard,
		Payload: &question.MatchPayload{
			LeftColumn:   []string{"Art 14", "Art 19"},
			RightColumn:  []string{"Freedoms", "Equality"},
			CorrectPairs: []question.Pair{{Left: 0, Right: 1}, {Left: 1, Right: 0}},
		},
	}
	return []Item{
		{Question: single, Validation: question.ValidationResult{IsValid: true, QualityScore: 100}},
		{Question: statement, Validation: question.ValidationResult{
			QualityScore: 80,
			Issues:       []string{"question text too short"},
			Suggestions:  []string{"Expand the stem."},
		}},
		{Question: match, Validation: question.ValidationResult{IsValid: true, QualityScore: 90}},
	}
}

func TestListShowsAllItems(t *testing.T) {
	s := New("Batch", testItems())
	view := s.View(120, 30)
	if !strings.Contains(view, "3 of 3 questions") {
		t.Errorf("expected count line, got:\n%s", view)
	}
	for _, want := range []string{"single_correct_mcq", "statement_based", "match_the_following"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCursorMovementIsBounded(t *testing.T) {
	s := New("Batch", testItems())

	s.Update(specialKey(tea.KeyUp))
	if s.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", s.cursor)
	}

	for i := 0; i < 5; i++ {
		s.Update(specialKey(tea.KeyDown))
	}
	if s.cursor != 2 {
		t.Errorf("cursor = %d after many downs, want 2", s.cursor)
	}

	s.Update(keyPress('g'))
	if s.cursor != 0 {
		t.Errorf("cursor = %d after g, want 0", s.cursor)
	}
}

func TestFilterNarrowsList(t *testing.T) {
	s := New("Batch", testItems())

	s.Update(keyPress('/'))
	if !s.CapturingInput() {
		t.Fatal("expected filter to capture input after /")
	}
	typeText(s, "hard")
	if len(s.visible) != 2 {
		t.Fatalf("visible = %d for 'hard', want 2", len(s.visible))
	}

	typeText(s, " match")
	if len(s.visible) != 1 {
		t.Fatalf("visible = %d for 'hard match', want 1", len(s.visible))
	}
	it, ok := s.Selected()
	if !ok || it.Question.ID != "q3" {
		t.Errorf("selected = %+v, want q3", it.Question)
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.CapturingInput() {
		t.Error("enter should apply the filter and release input")
	}
	if len(s.visible) != 1 {
		t.Errorf("filter should persist after enter, visible = %d", len(s.visible))
	}
}

func TestFilterMatchesTags(t *testing.T) {
	s := New("Batch", testItems())
	s.Update(keyPress('/'))
	typeText(s, "FALSE-statement")
	if len(s.visible) != 1 || s.items[s.visible[0]].Question.ID != "q2" {
		t.Errorf("visible = %v, want only q2", s.visible)
	}
}

func TestEscClearsFilter(t *testing.T) {
	s := New("Batch", testItems())
	s.Update(keyPress('/'))
	typeText(s, "zzz")
	if len(s.visible) != 0 {
		t.Fatalf("visible = %d, want 0", len(s.visible))
	}
	if !strings.Contains(s.View(120, 30), "No questions match") {
		t.Error("expected empty-state message")
	}

	s.Update(specialKey(tea.KeyEscape))
	if s.CapturingInput() {
		t.Error("esc should release input")
	}
	if len(s.visible) != 3 {
		t.Errorf("visible = %d after esc, want 3", len(s.visible))
	}
}

func TestEnterPushesDetail(t *testing.T) {
	s := New("Batch", testItems())
	s.Update(specialKey(tea.KeyDown))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	detail, ok := push.Screen.(*DetailScreen)
	if !ok {
		t.Fatalf("pushed %T, want *DetailScreen", push.Screen)
	}
	if detail.item.Question.ID != "q2" {
		t.Errorf("detail for %s, want q2", detail.item.Question.ID)
	}
}

func TestEnterOnEmptyListIsNoop(t *testing.T) {
	s := New("Batch", nil)
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected no command on empty list")
	}
}

func TestDetailStepsThroughList(t *testing.T) {
	s := New("Batch", testItems())
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	d := cmd().(router.PushScreenMsg).Screen.(*DetailScreen)

	if _, cmd := d.Update(specialKey(tea.KeyLeft)); cmd != nil {
		t.Error("expected no command stepping before the first question")
	}

	for _, want := range []string{"q2", "q3"} {
		_, cmd := d.Update(specialKey(tea.KeyRight))
		if cmd == nil {
			t.Fatalf("expected a command stepping to %s", want)
		}
		replace, ok := cmd().(router.ReplaceScreenMsg)
		if !ok {
			t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
		}
		d = replace.Screen.(*DetailScreen)
		if d.item.Question.ID != want {
			t.Errorf("stepped to %s, want %s", d.item.Question.ID, want)
		}
	}

	if _, cmd := d.Update(keyPress('n')); cmd != nil {
		t.Error("expected no command stepping past the last question")
	}
	_, cmd = d.Update(keyPress('p'))
	if got := cmd().(router.ReplaceScreenMsg).Screen.(*DetailScreen).item.Question.ID; got != "q2" {
		t.Errorf("stepped back to %s, want q2", got)
	}
}

func TestDetailRendersKeyAndIssues(t *testing.T) {
	items := testItems()

	view := newDetail(items[0]).View(100, 80)
	for _, want := range []string{"Article 21", correctMark + " A. Right to life", "Quality", "100"} {
		if !strings.Contains(view, want) {
			t.Errorf("single detail missing %q", want)
		}
	}

	view = newDetail(items[1]).View(100, 80)
	for _, want := range []string{"question text too short", "Expand the stem.", "[false]", "2 only"} {
		if !strings.Contains(view, want) {
			t.Errorf("statement detail missing %q", want)
		}
	}
}

func TestDetailScrollIsClamped(t *testing.T) {
	d := newDetail(testItems()[0])
	d.Update(specialKey(tea.KeyUp))
	if d.scroll != 0 {
		t.Errorf("scroll = %d after up at top, want 0", d.scroll)
	}
	for i := 0; i < 500; i++ {
		d.Update(specialKey(tea.KeyDown))
	}
	d.View(100, 10)
	lines := strings.Count(d.render(96), "\n") + 1
	if d.scroll > lines-10 {
		t.Errorf("scroll = %d beyond last page (%d lines)", d.scroll, lines)
	}
}

func TestPayloadLines(t *testing.T) {
	tests := []struct {
		name    string
		payload question.Payload
		want    string
	}{
		{"nil", nil, "(no payload)"},
		{"match key", testItems()[2].Question.Payload, "Key: A-2, B-1"},
		{"sequence", &question.SequencePayload{Items: []string{"x", "y"}, CorrectSequence: []int{2, 1}}, "Order: 2 → 1"},
		{"odd one", &question.OddOneOutPayload{Options: []string{"a", "b", "c", "d"}, OddOneIndex: 2, Category: "rights"}, correctMark + " C. c"},
		{"data", &question.DataPayload{DataSource: "Petitions", DataPoints: []question.DataPoint{{Label: "2019", Value: "1240"}}}, "2019: 1240"},
		{"map", &question.MapPayload{MapDescription: "India", Locations: []question.Location{{Name: "Chennai", Clue: "south", IsCorrect: true}}}, correctMark + " Chennai (south)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(payloadLines(tt.payload), "\n")
			if !strings.Contains(got, tt.want) {
				t.Errorf("payloadLines missing %q in:\n%s", tt.want, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"x", 0, ""},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
