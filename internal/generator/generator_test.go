package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/factforge/internal/policy"
	"github.com/abhisek/factforge/internal/question"
)

func testFact() question.BaseFact {
	return question.BaseFact{
		ID:           "polity-art21",
		Subject:      "Polity",
		Topic:        "Fundamental Rights",
		Content:      "No person shall be deprived of his life or personal liberty except according to procedure established by law.",
		Source:       "Article 21",
		Importance:   question.ImportanceHigh,
		Concepts:     []string{"Right to life", "Personal liberty", "Procedure established by law"},
		RelatedFacts: []string{"Article 14 guarantees equality before law"},
		Tags:         []string{"fundamental-rights"},
	}
}

func counterIDs() Option {
	n := 0
	return WithIDFunc(func() string {
		n++
		return fmt.Sprintf("q-%03d", n)
	})
}

var fixedClock = WithClock(func() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
})

func testRegistry(t *testing.T) Registry {
	t.Helper()
	return NewRegistry(policy.Default(), counterIDs(), fixedClock)
}

func generateAll(t *testing.T, gen Generator, seed uint64) []*question.Question {
	t.Helper()
	qs, err := gen.Generate(context.Background(), Config{
		BaseFact:          testFact(),
		IncludeVariations: true,
		Rand:              rand.New(rand.NewPCG(seed, 1)),
	})
	require.NoError(t, err)
	require.NotEmpty(t, qs)
	return qs
}

func TestRegistry_CoversEveryType(t *testing.T) {
	reg := testRegistry(t)
	for _, typ := range question.AllTypes() {
		g, err := reg.For(typ)
		require.NoError(t, err, typ.String())
		assert.Equal(t, typ, g.Type())
		assert.Equal(t, []question.Type{typ}, g.SupportedTypes())
	}

	_, err := reg.For(question.TypeInvalid)
	assert.Error(t, err)
}

func TestGenerate_PayloadInvariants(t *testing.T) {
	reg := testRegistry(t)
	for _, typ := range question.AllTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			g, _ := reg.For(typ)
			for seed := uint64(1); seed <= 5; seed++ {
				for _, q := range generateAll(t, g, seed) {
					assertInvariants(t, q)

					r := &report{}
					builderFor(typ).validateByType(q, r)
					assert.Empty(t, r.issues, "type issues for %s/%s", q.Type, q.Difficulty)
				}
			}
		})
	}
}

func assertInvariants(t *testing.T, q *question.Question) {
	t.Helper()
	require.NotNil(t, q.Payload)
	assert.Equal(t, q.Type, q.Payload.Kind())
	assert.NotEmpty(t, q.ID)
	assert.GreaterOrEqual(t, q.Metadata.QualityScore, 0)
	assert.LessOrEqual(t, q.Metadata.QualityScore, 100)
	assert.Positive(t, q.TimeToSolve)
	assert.Positive(t, q.Marks)
	assert.NotContains(t, q.Text, "{")

	switch p := q.Payload.(type) {
	case *question.SingleCorrectPayload:
		assert.Len(t, p.Options, 4)
		assert.Equal(t, 1, question.CountCorrect(p.Options))
	case *question.MultipleCorrectPayload:
		assert.Len(t, p.Options, 4)
		c := question.CountCorrect(p.Options)
		assert.True(t, c >= 2 && c <= 3, "correct count %d", c)
		assert.Equal(t, c, p.CorrectCount)
	case *question.MatchPayload:
		assert.Len(t, p.LeftColumn, 5)
		assert.Len(t, p.RightColumn, 5)
		assert.Len(t, p.CorrectPairs, 5)
	case *question.SequencePayload:
		n := len(p.Items)
		assert.True(t, n >= 3 && n <= 6, "items %d", n)
		sorted := append([]int(nil), p.CorrectSequence...)
		sort.Ints(sorted)
		for i, v := range sorted {
			assert.Equal(t, i+1, v)
		}
	case *question.StatementPayload:
		n := len(p.Statements)
		assert.True(t, n >= 2 && n <= 4, "statements %d", n)
		for i, st := range p.Statements {
			assert.Equal(t, i+1, st.Number)
		}
		for _, c := range p.CorrectCombination {
			assert.True(t, c >= 1 && c <= n)
		}
	case *question.OddOneOutPayload:
		assert.Len(t, p.Options, 4)
		assert.False(t, duplicateTexts(p.Options))
		assert.True(t, p.OddOneIndex >= 0 && p.OddOneIndex <= 3)
	case *question.DataPayload:
		assert.Len(t, p.Interpretations, 4)
		assert.Equal(t, 1, question.CountCorrect(p.Interpretations))
	}
}

func TestGenerate_OneMainQuestionPerDifficulty(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.For(question.TypeSingleCorrectMCQ)

	qs, err := g.Generate(context.Background(), Config{
		BaseFact:     testFact(),
		Difficulties: []question.Difficulty{question.DifficultyEasy, question.DifficultyHard},
		Rand:         rand.New(rand.NewPCG(7, 7)),
	})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, question.DifficultyEasy, qs[0].Difficulty)
	assert.Equal(t, question.DifficultyHard, qs[1].Difficulty)
	for _, q := range qs {
		assert.False(t, q.HasTag("variation"))
		assert.Equal(t, "polity-art21", q.BaseFactID)
		assert.True(t, q.Metadata.HighYieldTopic)
	}
}

func TestGenerate_VariationsAreTaggedAndCapped(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.For(question.TypeSingleCorrectMCQ)

	qs := generateAll(t, g, 3)
	// Two scenarios per tier: three main questions and three variations.
	require.Len(t, qs, 6)
	for _, q := range qs[3:] {
		assert.True(t, q.HasTag("variation"))
		assert.True(t, q.HasTag("alternate-scenario"))
	}

	capped, err := g.Generate(context.Background(), Config{
		BaseFact:            testFact(),
		IncludeVariations:   true,
		MaxQuestionsPerType: 4,
		Rand:                rand.New(rand.NewPCG(3, 1)),
	})
	require.NoError(t, err)
	assert.Len(t, capped, 4)
}

func TestGenerate_UnsupportedTypeIsConfigurationError(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.For(question.TypeMapBased)

	_, err := g.Generate(context.Background(), Config{
		BaseFact:      testFact(),
		QuestionTypes: []question.Type{question.TypeMapBased, question.TypeDataBased},
	})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, question.TypeMapBased, cfgErr.Generator)
	assert.Equal(t, []question.Type{question.TypeDataBased}, cfgErr.Requested)
	assert.Contains(t, err.Error(), "data_based")
}

func TestGenerate_RejectsInvalidInput(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.For(question.TypeOddOneOut)

	fact := testFact()
	fact.Content = ""
	_, err := g.Generate(context.Background(), Config{BaseFact: fact})
	assert.Error(t, err)

	_, err = g.Generate(context.Background(), Config{
		BaseFact:     testFact(),
		Difficulties: []question.Difficulty{"extreme"},
	})
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestGenerate_HonoursCancelledContext(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.For(question.TypeSingleCorrectMCQ)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, Config{BaseFact: testFact()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_DeterministicWithSeed(t *testing.T) {
	run := func() []*question.Question {
		reg := NewRegistry(policy.Default(), counterIDs(), fixedClock)
		g, _ := reg.For(question.TypeMatchTheFollowing)
		return generateAll(t, g, 42)
	}
	assert.Equal(t, run(), run())
}

func TestTimeToSolve(t *testing.T) {
	p := policy.Default()
	tests := []struct {
		typ  question.Type
		d    question.Difficulty
		want int
	}{
		{question.TypeSingleCorrectMCQ, question.DifficultyEasy, 29},
		{question.TypeSingleCorrectMCQ, question.DifficultyMedium, 36},
		{question.TypeStatementBased, question.DifficultyHard, 81},
		// Held at the tier bounds.
		{question.TypeSingleCorrectMCQ, question.DifficultyHard, 61},
		{question.TypeDataBased, question.DifficultyEasy, 30},
		{question.TypeCaseStudyBased, question.DifficultyMedium, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeToSolve(p, tt.typ, tt.d), "%s/%s", tt.typ, tt.d)
	}
}

func TestGenerate_ScenariosFitTheirTier(t *testing.T) {
	reg := testRegistry(t)
	var total int
	var misfits []string
	for _, typ := range question.AllTypes() {
		g, _ := reg.For(typ)
		for _, q := range generateAll(t, g, 1) {
			total++
			if !q.Metadata.DifficultyValidated {
				res := g.Validate(q)
				misfits = append(misfits, fmt.Sprintf("%s/%s: %v", q.Type, q.Difficulty, res.Issues))
			}
		}
	}
	require.Positive(t, total)
	assert.LessOrEqual(t, float64(len(misfits))/float64(total), 0.1, "misfits:\n%s", strings.Join(misfits, "\n"))
}

func TestClassifyCognitiveLevel(t *testing.T) {
	tests := []struct {
		text string
		want question.CognitiveLevel
	}{
		{"What does Article 21 provide?", question.CognitiveRecall},
		{"Which of the following is correct?", question.CognitiveApplication},
		{"Consider the following statements.", question.CognitiveAnalysis},
		{"Compare Article 14 with Article 15.", question.CognitiveAnalysis},
		{"Propose a reform of the writ system.", question.CognitiveSynthesis},
		{"Critically examine the doctrine.", question.CognitiveEvaluation},
		{"Reevaluated positions are recall here.", question.CognitiveRecall},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyCognitiveLevel(tt.text), tt.text)
	}
}

func validSingle() *question.Question {
	opts := []question.Option{
		{Text: "Equality before law", IsCorrect: true},
		{Text: "Freedom of speech"},
		{Text: "Right to property"},
		{Text: "Uniform civil code"},
	}
	question.Relabel(opts)
	return &question.Question{
		Type:           question.TypeSingleCorrectMCQ,
		Text:           "What does Article 14 provide?",
		Payload:        &question.SingleCorrectPayload{Options: opts},
		Difficulty:     question.DifficultyEasy,
		TimeToSolve:    29,
		ConceptsTested: []string{"Equality"},
		Explanation: question.Explanation{
			CorrectAnswer:  "A) Equality before law",
			WhyCorrect:     "Article 14 guarantees equality before law.",
			WhyOthersWrong: []string{"Option B is incorrect: that is Article 19."},
		},
	}
}

func TestValidate_CleanQuestionScoresFull(t *testing.T) {
	reg := testRegistry(t)
	res := reg.Validate(validSingle())

	assert.True(t, res.IsValid, res.Issues)
	assert.Equal(t, 100, res.QualityScore)
	assert.True(t, res.FactualAccuracy)
	assert.True(t, res.DifficultyAppropriate)
	assert.True(t, res.AmbiguityFree)
	assert.Equal(t, question.CognitiveRecall, res.CognitiveLevel)
}

func TestValidate_Deductions(t *testing.T) {
	reg := testRegistry(t)
	tests := []struct {
		name   string
		mutate func(q *question.Question)
		score  int
		issue  string
	}{
		{"short text", func(q *question.Question) { q.Text = "Art 14?" }, 80, "at least 10 characters"},
		{"no correct answer", func(q *question.Question) { q.Explanation.CorrectAnswer = "" }, 85, "missing the correct answer"},
		{"no rationale", func(q *question.Question) { q.Explanation.WhyOthersWrong = nil }, 90, "why other options are wrong"},
		{"placeholder left", func(q *question.Question) { q.Explanation.WhyCorrect = "{source} says so." }, 75, "factual accuracy"},
		{"hedge word", func(q *question.Question) { q.Text = "What does Article 14 usually provide?" }, 80, "ambiguous word"},
		{"too slow for easy", func(q *question.Question) { q.TimeToSolve = 45 }, 85, "not appropriate"},
		{"two correct options", func(q *question.Question) {
			q.Payload.(*question.SingleCorrectPayload).Options[1].IsCorrect = true
		}, 90, "exactly 1 correct option"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validSingle()
			tt.mutate(q)
			res := reg.Validate(q)
			assert.False(t, res.IsValid)
			assert.Equal(t, tt.score, res.QualityScore)
			assert.True(t, containsIssue(res.Issues, tt.issue), "issues: %v", res.Issues)
		})
	}
}

func TestValidate_ScoreFloorsAtZero(t *testing.T) {
	reg := testRegistry(t)
	q := &question.Question{
		Type:        question.TypeSingleCorrectMCQ,
		Text:        "Some?",
		Payload:     &question.SingleCorrectPayload{},
		Difficulty:  question.DifficultyHard,
		Explanation: question.Explanation{},
	}
	res := reg.Validate(q)
	assert.False(t, res.IsValid)
	assert.Equal(t, 0, res.QualityScore)
	assert.False(t, res.AmbiguityFree)
	assert.False(t, res.DifficultyAppropriate)
}

func TestValidate_MultipleCorrectCountMismatch(t *testing.T) {
	reg := testRegistry(t)
	q := validSingle()
	q.Type = question.TypeMultipleCorrectMCQ
	opts := q.Payload.(*question.SingleCorrectPayload).Options
	opts[1].IsCorrect = true
	q.Payload = &question.MultipleCorrectPayload{Options: opts, CorrectCount: 3}

	res := reg.Validate(q)
	assert.True(t, containsIssue(res.Issues, "correct count mismatch"), "issues: %v", res.Issues)
}

func TestValidate_PayloadKindMismatch(t *testing.T) {
	reg := testRegistry(t)
	q := validSingle()
	q.Type = question.TypeOddOneOut

	res := reg.Validate(q)
	assert.False(t, res.IsValid)
	assert.True(t, containsIssue(res.Issues, "payload kind"), "issues: %v", res.Issues)
}

func TestValidate_TypeMismatchIsReported(t *testing.T) {
	reg := testRegistry(t)
	g, err := reg.For(question.TypeMultipleCorrectMCQ)
	require.NoError(t, err)

	var res question.ValidationResult
	require.NotPanics(t, func() { res = g.Validate(validSingle()) })
	assert.False(t, res.IsValid)
	assert.True(t, containsIssue(res.Issues, "does not match validator"), "issues: %v", res.Issues)
}

func TestRegistry_ValidateNil(t *testing.T) {
	reg := testRegistry(t)

	var res question.ValidationResult
	require.NotPanics(t, func() { res = reg.Validate(nil) })
	assert.False(t, res.IsValid)
	assert.Zero(t, res.QualityScore)
	assert.True(t, containsIssue(res.Issues, "null"), "issues: %v", res.Issues)
}

func TestValidate_DataSourceNeedsNumbers(t *testing.T) {
	reg := testRegistry(t)
	interp := []question.Option{
		{Text: "Filings rose", IsCorrect: true},
		{Text: "Filings fell"},
		{Text: "Filings were flat"},
		{Text: "Filings doubled"},
	}
	question.Relabel(interp)
	q := &question.Question{
		Type: question.TypeDataBased,
		Text: "Which of the following inferences is correct?",
		Payload: &question.DataPayload{
			DataSource:      "Petitions filed per year: rising steadily",
			Interpretations: interp,
		},
		Difficulty:  question.DifficultyMedium,
		TimeToSolve: 60,
		Explanation: question.Explanation{
			CorrectAnswer:  "A) Filings rose",
			WhyCorrect:     "The series rises.",
			WhyOthersWrong: []string{"Option B is incorrect."},
		},
	}

	res := reg.Validate(q)
	assert.False(t, res.IsValid)
	assert.True(t, containsIssue(res.Issues, "numerical content"), "issues: %v", res.Issues)
}

func TestValidate_AssertionFlagsMustAgree(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.For(question.TypeAssertionReasoning)
	q := generateAll(t, g, 9)[0]
	p := q.Payload.(*question.AssertionReasonPayload)
	p.AssertionTrue = !p.AssertionTrue
	p.ReasonTrue = true
	p.ReasonExplains = false

	res := g.Validate(q)
	assert.True(t, containsIssue(res.Issues, "truth flags"), "issues: %v", res.Issues)
}

func TestValidate_FalseStatementKey(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.For(question.TypeStatementBased)
	q := generateAll(t, g, 5)[1]
	p := q.Payload.(*question.StatementPayload)

	RebuildFalseStatementKey(p)
	res := g.Validate(q)
	assert.True(t, containsIssue(res.Issues, "correct combination does not match"), "issues: %v", res.Issues)

	q.Tags = append(q.Tags, TagFalseStatement)
	res = g.Validate(q)
	assert.False(t, containsIssue(res.Issues, "correct combination"), "issues: %v", res.Issues)
	assert.False(t, containsIssue(res.Issues, "does not name combination"), "issues: %v", res.Issues)
}

func TestCheckSingleKey(t *testing.T) {
	r := &report{}
	checkSingleKey(r, "item", []question.Option{{Text: "a", IsCorrect: true}, {Text: ""}}, 4)
	require.Len(t, r.issues, 2)
	assert.Contains(t, r.issues[0], "exactly 4 options")
	assert.Contains(t, r.issues[1], "option 2 is empty")
}

func containsIssue(issues []string, sub string) bool {
	for _, i := range issues {
		if strings.Contains(i, sub) {
			return true
		}
	}
	return false
}
