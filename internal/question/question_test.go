package question

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeTextRoundTrip(t *testing.T) {
	for _, typ := range AllTypes() {
		b, err := typ.MarshalText()
		require.NoError(t, err)

		var got Type
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, typ, got)
	}

	_, err := TypeInvalid.MarshalText()
	assert.Error(t, err)
	_, err = ParseType("essay")
	assert.Error(t, err)
	assert.Len(t, AllTypes(), 10)
}

func TestQuestionJSONDecodesPayloadByType(t *testing.T) {
	in := []byte(`{
		"id": "q1",
		"type": "sequence_arrangement",
		"question_text": "Arrange the following in order.",
		"difficulty": "easy",
		"payload": {"items": ["b", "a", "c"], "correct_sequence": [2, 1, 3]}
	}`)

	var q Question
	require.NoError(t, json.Unmarshal(in, &q))
	assert.Equal(t, TypeSequenceArrangement, q.Type)
	p, ok := q.Payload.(*SequencePayload)
	require.True(t, ok, "payload is %T", q.Payload)
	assert.Equal(t, []int{2, 1, 3}, p.CorrectSequence)
}

func TestQuestionJSONRejectsUnknownType(t *testing.T) {
	var q Question
	err := json.Unmarshal([]byte(`{"id":"q1","type":"essay","payload":{}}`), &q)
	assert.Error(t, err)
}

func TestQuestionJSONWithoutPayload(t *testing.T) {
	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"id":"q1","type":"map_based"}`), &q))
	assert.Nil(t, q.Payload)
}

func TestQuestionJSONRoundTrip(t *testing.T) {
	q := &Question{
		ID:   "q2",
		Type: TypeMatchTheFollowing,
		Text: "Match List I with List II.",
		Payload: &MatchPayload{
			LeftColumn:   []string{"a", "b"},
			RightColumn:  []string{"x", "y"},
			CorrectPairs: []Pair{{Left: 0, Right: 1}, {Left: 1, Right: 0}},
		},
		Difficulty: DifficultyMedium,
		Tags:       []string{"t"},
	}
	b, err := json.Marshal(q)
	require.NoError(t, err)

	var got Question
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, q, &got)
}

func TestQuestionCloneDoesNotAlias(t *testing.T) {
	opts := []Option{{Text: "a", IsCorrect: true}, {Text: "b"}}
	q := &Question{
		Type:           TypeSingleCorrectMCQ,
		Payload:        &SingleCorrectPayload{Options: opts},
		ConceptsTested: []string{"c1"},
		Tags:           []string{"t1"},
		Explanation:    Explanation{WhyOthersWrong: []string{"w"}},
	}
	c := q.Clone()
	c.Payload.(*SingleCorrectPayload).Options[0].IsCorrect = false
	c.ConceptsTested[0] = "changed"
	c.Tags = append(c.Tags, "t2")
	c.Explanation.WhyOthersWrong[0] = "changed"

	assert.True(t, opts[0].IsCorrect)
	assert.Equal(t, []string{"c1"}, q.ConceptsTested)
	assert.Equal(t, []string{"t1"}, q.Tags)
	assert.Equal(t, "w", q.Explanation.WhyOthersWrong[0])
}

func TestCombinationLabel(t *testing.T) {
	tests := []struct {
		combo []int
		total int
		want  string
	}{
		{nil, 3, "None of the statements"},
		{[]int{2}, 3, "2 only"},
		{[]int{1, 3}, 3, "1 and 3 only"},
		{[]int{1, 2, 4}, 4, "1, 2 and 4 only"},
		{[]int{1, 2, 3}, 3, "All of the statements"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CombinationLabel(tt.combo, tt.total))
	}
}

func TestCombinationOptions(t *testing.T) {
	for total := 2; total <= 4; total++ {
		for mask := 0; mask < 1<<total; mask++ {
			var combo []int
			for i := 0; i < total; i++ {
				if mask&(1<<i) != 0 {
					combo = append(combo, i+1)
				}
			}
			opts := CombinationOptions(total, combo)
			require.Len(t, opts, 4)
			assert.Equal(t, 1, CountCorrect(opts))
			for i, o := range opts {
				assert.Equal(t, OptionLabels[i], o.Label)
				if o.IsCorrect {
					assert.Equal(t, CombinationLabel(combo, total), o.Text)
				}
			}
		}
	}
}

func TestParseBaseFact(t *testing.T) {
	yamlFact := []byte(`
id: polity-art14
subject: Polity
topic: Fundamental Rights
content: The State shall not deny to any person equality before the law.
source: Article 14
importance: high
concepts: [Equality, Rule of law]
related_facts: [Article 15 prohibits discrimination]
`)
	fact, err := ParseBaseFact(yamlFact, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "Article 14", fact.Source)
	assert.Equal(t, ImportanceHigh, fact.Importance)
	assert.Equal(t, []string{"Article 15 prohibits discrimination"}, fact.RelatedFacts)

	jsonFact := []byte(`{"id":"geo-1","subject":"Geography","topic":"Rivers","content":"The Ganga rises at Gangotri.","importance":"low"}`)
	fact, err = ParseBaseFact(jsonFact, ".JSON")
	require.NoError(t, err)
	assert.Equal(t, "Geography", fact.Subject)
}

func TestParseBaseFactErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"unknown yaml field", "id: a\nsubject: s\ncontent: c\nimportance: low\ncolour: red\n", ".yaml"},
		{"unknown json field", `{"id":"a","subject":"s","content":"c","importance":"low","colour":"red"}`, ".json"},
		{"two yaml documents", "id: a\nsubject: s\ncontent: c\nimportance: low\n---\nid: b\n", ".yml"},
		{"two json documents", `{"id":"a","subject":"s","content":"c","importance":"low"} {}`, ".json"},
		{"missing content", "id: a\nsubject: s\nimportance: low\n", ".yaml"},
		{"bad importance", "id: a\nsubject: s\ncontent: c\nimportance: urgent\n", ".yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBaseFact([]byte(tt.data), tt.ext)
			assert.Error(t, err)
		})
	}
}

func TestLoadQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	data := `[{"id":"q1","type":"odd_one_out","payload":{"options":["a","b","c","d"],"odd_one_index":2,"category":"letters"}}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	qs, err := LoadQuestions(path)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	p := qs[0].Payload.(*OddOneOutPayload)
	assert.Equal(t, 2, p.OddOneIndex)

	_, err = LoadQuestions(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadQuestions_RejectsNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`[null]`), 0o644))

	_, err := LoadQuestions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 0 is null")
}

func TestDifficultySteps(t *testing.T) {
	assert.Equal(t, DifficultyEasy, DifficultyEasy.Easier())
	assert.Equal(t, DifficultyEasy, DifficultyMedium.Easier())
	assert.Equal(t, DifficultyHard, DifficultyMedium.Harder())
	assert.Equal(t, DifficultyHard, DifficultyHard.Harder())
	assert.False(t, Difficulty("extreme").Valid())
}
