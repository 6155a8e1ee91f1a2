package generator

import (
	"fmt"
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

type claim struct {
	text  string
	holds bool
	why   string
}

type statementScenario struct {
	stem    string
	claims  []claim
	clarity string
	trick   string
}

var statementPool = tierPool[statementScenario]{
	easy: []statementScenario{
		{
			stem: "With reference to {source}, which of the statements given above is/are correct?",
			claims: []claim{
				{text: "{content}.", holds: true, why: "this is the text of {source}."},
				{text: "{source} can be set aside by an ordinary executive order.", why: "an executive order cannot override a constitutional provision."},
			},
			clarity: "{source}: {content}.",
			trick:   "Text beats executive action.",
		},
	},
	medium: []statementScenario{
		{
			stem: "Consider the following statements about {source}. Which of the statements given above are correct?",
			claims: []claim{
				{text: "{content}.", holds: true, why: "this is what {source} lays down."},
				{text: "{source} deals with {concept1}.", holds: true, why: "{concept1} is the core concern of {source}."},
				{text: "{source} applies only to citizens residing outside India.", why: "the provision is not confined to non-resident citizens."},
			},
			clarity: "Read each statement on its own against {source}.",
			trick:   "Eliminate the one absolute claim first.",
		},
		{
			stem: "Consider the following statements on {topic}. Which of the statements given above are correct?",
			claims: []claim{
				{text: "{content}.", holds: true, why: "{source} provides exactly this."},
				{text: "{source} has no bearing on {concept1}.", why: "{source} directly governs {concept1}."},
				{text: "{related} is read together with {source}.", holds: true, why: "both belong to the scheme on {topic}."},
			},
			clarity: "Provisions on {topic} are read together, not in isolation.",
			trick:   "Watch for \"no bearing\" style negations.",
		},
	},
	hard: []statementScenario{
		{
			stem: "Critically evaluate the following statements on {concept1}, {concept2} and {concept3}. Which of the statements given above are correct?",
			claims: []claim{
				{text: "{content}.", holds: true, why: "this is the operative rule of {source}."},
				{text: "{concept2} is interpreted in the light of {source}.", holds: true, why: "courts read {concept2} alongside {source}."},
				{text: "{source} can be amended by a simple majority in a State Legislature.", why: "a State Legislature cannot amend {source}."},
				{text: "{related} supplements {source} on {concept3}.", holds: true, why: "{related} builds on the same foundation."},
			},
			clarity: "Hard statement sets mix text, interpretation and amendment procedure.",
			trick:   "Amendment questions: always ask who can amend and by what majority.",
		},
	},
}

type statementBuilder struct{}

func (statementBuilder) questionType() question.Type { return question.TypeStatementBased }

func (statementBuilder) scenarios(d question.Difficulty) int { return len(statementPool.get(d)) }

func (statementBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(statementPool.get(s.d), idx)
	statements := make([]question.Statement, len(sc.claims))
	var combo []int
	var whyWrong []string
	for i, c := range sc.claims {
		statements[i] = question.Statement{Number: i + 1, Text: s.fill(c.text), IsTrue: c.holds}
		if c.holds {
			combo = append(combo, i+1)
		} else {
			whyWrong = append(whyWrong, fmt.Sprintf("Statement %d is incorrect: %s", i+1, s.fill(c.why)))
		}
	}
	opts := question.CombinationOptions(len(statements), combo)

	var why []string
	for i, c := range sc.claims {
		if c.holds {
			why = append(why, fmt.Sprintf("Statement %d is correct: %s", i+1, s.fill(c.why)))
		}
	}

	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.StatementPayload{
			Statements:         statements,
			CorrectCombination: combo,
			Options:            opts,
		},
		Explanation: question.Explanation{
			CorrectAnswer:  question.CorrectOptions(opts)[0],
			WhyCorrect:     strings.Join(why, " "),
			WhyOthersWrong: whyWrong,
			ConceptClarity: s.fill(sc.clarity),
			MemoryTrick:    s.fill(sc.trick),
			CommonMistakes: []string{"Accepting a statement because part of it is true", "Missing an absolute qualifier such as \"only\""},
		},
	}
}

// rebuildStatementKey recomputes CorrectCombination and the options from
// the IsTrue flags, or from the false statements when wantFalse is set.
func rebuildStatementKey(p *question.StatementPayload, wantFalse bool) {
	var combo []int
	for _, st := range p.Statements {
		if st.IsTrue != wantFalse {
			combo = append(combo, st.Number)
		}
	}
	p.CorrectCombination = combo
	p.Options = question.CombinationOptions(len(p.Statements), combo)
}

// RebuildFalseStatementKey re-keys p so the answer names the false
// statements.
func RebuildFalseStatementKey(p *question.StatementPayload) {
	rebuildStatementKey(p, true)
}

func (statementBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.StatementPayload)
	n := len(p.Statements)
	if n < 2 || n > 4 {
		r.addf("Use between two and four statements.", "statement based must have 2-4 statements, got %d", n)
	}
	var trueSet, falseSet []int
	for i, st := range p.Statements {
		if st.Number != i+1 {
			r.addf("Number statements 1..N in order.", "statement %d is numbered %d", i+1, st.Number)
		}
		if st.IsTrue {
			trueSet = append(trueSet, st.Number)
		} else {
			falseSet = append(falseSet, st.Number)
		}
	}
	for _, c := range p.CorrectCombination {
		if c < 1 || c > n {
			r.addf("Reference only existing statements.", "correct combination references missing statement %d", c)
		}
	}
	// A FALSE-statement rewrite keys the answer on the false set.
	wantSet := trueSet
	if q.HasTag(TagFalseStatement) {
		wantSet = falseSet
	}
	if !sameSet(p.CorrectCombination, wantSet) {
		r.add("correct combination does not match the statements flagged true", "Recompute the combination from the statement flags.")
	}
	checkSingleKey(r, "statement based", p.Options, 4)
	if len(p.Options) > 0 {
		label := question.CombinationLabel(p.CorrectCombination, n)
		for _, o := range p.Options {
			if o.IsCorrect && o.Text != label {
				r.addf("Align the correct option with the combination.", "correct option %q does not name combination %q", o.Text, label)
			}
		}
	}
}

func (statementBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.StatementPayload)
	return duplicateTexts(optionTexts(p.Options))
}

// TagFalseStatement marks a statement question keyed on its false claims.
const TagFalseStatement = "false-statement"

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		if seen[v] == 0 {
			return false
		}
		seen[v]--
	}
	return true
}
