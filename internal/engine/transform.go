package engine

import (
	"fmt"
	"strings"

	"github.com/abhisek/factforge/internal/generator"
	"github.com/abhisek/factforge/internal/question"
	"github.com/abhisek/factforge/internal/rewrite"
)

// Tags attached to derived questions.
const (
	TagVariation        = "variation"
	TagDifficultyShift  = "difficulty-shift"
	TagPerspectiveShift = "perspective-shift"
	TagNegative         = "negative"
	TagNot              = "not"
	TagExcept           = "except"
)

// GenerateVariations derives difficulty-shifted and perspective-shifted
// copies of q. The original is never modified.
func (e *Engine) GenerateVariations(q *question.Question) []*question.Question {
	var out []*question.Question
	if q.Difficulty != question.DifficultyEasy {
		out = append(out, e.shiftDifficulty(q, q.Difficulty.Easier(), rewrite.Simplify))
	}
	if q.Difficulty != question.DifficultyHard {
		out = append(out, e.shiftDifficulty(q, q.Difficulty.Harder(), rewrite.Complexify))
	}
	for _, frame := range []rewrite.RuleSet{rewrite.HistoricalFrame, rewrite.ContemporaryFrame} {
		v := e.derive(q, TagVariation, TagPerspectiveShift, frame.Name)
		v.Text = e.applyRewrite(frame, q).Text
		out = append(out, e.score(v))
	}
	return out
}

func (e *Engine) shiftDifficulty(q *question.Question, to question.Difficulty, rules rewrite.RuleSet) *question.Question {
	v := e.derive(q, TagVariation, TagDifficultyShift, string(q.Difficulty)+"-to-"+string(to))
	v.Text = e.applyRewrite(rules, q).Text
	v.Difficulty = to
	v.Marks = e.policy.MarksFor(v.Type, to)

	vp := e.policy.Variation
	step := vp.TimeStep
	if to == q.Difficulty.Easier() {
		step = -step
	}
	v.TimeToSolve = clamp(q.TimeToSolve+step, vp.MinTime, vp.MaxTime)
	v.ConceptsTested = shiftConcepts(q, to)
	return e.score(v)
}

// shiftConcepts trims the tested concepts for an easier tier and extends
// them with topic linkages for a harder one.
func shiftConcepts(q *question.Question, to question.Difficulty) []string {
	concepts := append([]string(nil), q.ConceptsTested...)
	switch to {
	case question.DifficultyEasy:
		if len(concepts) > 1 {
			concepts = concepts[:1]
		}
	case question.DifficultyMedium:
		if len(concepts) > 3 {
			concepts = concepts[:3]
		}
		if len(concepts) < 2 {
			concepts = append(concepts, "Application of "+q.Topic)
		}
	case question.DifficultyHard:
		extra := []string{"Inter-linkages within " + q.Topic, "Critical evaluation of " + q.Topic, "Constitutional implications"}
		for i := 0; len(concepts) < 3 && i < len(extra); i++ {
			concepts = append(concepts, extra[i])
		}
	}
	return concepts
}

// CreateNotVersion negates an MCQ stem and inverts every option. The result
// is re-typed so the option invariants hold: one correct option yields a
// single-correct MCQ, two or three a multiple-correct MCQ. It reports false
// for non-MCQ types or when the stem has no negatable form.
func (e *Engine) CreateNotVersion(q *question.Question) (*question.Question, bool) {
	if !q.Type.IsMCQ() {
		return nil, false
	}
	res := e.applyRewrite(rewrite.Negate, q)
	if !res.Matched {
		return nil, false
	}
	v, ok := e.invertOptions(q, TagNot)
	if !ok {
		return nil, false
	}
	v.Text = res.Text
	return e.score(v), true
}

// CreateExceptVersion rewrites the stem into its EXCEPT form. MCQ options
// are inverted as for the NOT form; other types keep their payload.
func (e *Engine) CreateExceptVersion(q *question.Question) (*question.Question, bool) {
	res := e.applyRewrite(rewrite.Except, q)
	if !res.Matched {
		return nil, false
	}
	var v *question.Question
	if q.Type.IsMCQ() {
		var ok bool
		if v, ok = e.invertOptions(q, TagExcept); !ok {
			return nil, false
		}
	} else {
		v = e.derive(q, TagNegative, TagExcept)
	}
	v.Text = res.Text
	return e.score(v), true
}

// CreateFalseStatementVersion asks for the false statements of a
// statement-based question and re-keys the answer accordingly.
func (e *Engine) CreateFalseStatementVersion(q *question.Question) (*question.Question, bool) {
	if q.Type != question.TypeStatementBased {
		return nil, false
	}
	p, ok := q.Payload.(*question.StatementPayload)
	if !ok {
		return nil, false
	}
	res := e.applyRewrite(rewrite.FalseStatement, q)
	if !res.Matched {
		return nil, false
	}
	v := e.derive(q, TagNegative, generator.TagFalseStatement)
	v.Text = res.Text
	np := p.Clone().(*question.StatementPayload)
	generator.RebuildFalseStatementKey(np)
	v.Payload = np

	v.Explanation.CorrectAnswer = strings.Join(question.CorrectOptions(np.Options), "; ")
	var why, wrong []string
	for _, st := range np.Statements {
		if st.IsTrue {
			wrong = append(wrong, fmt.Sprintf("Statement %d is a correct statement, so it is not an answer here.", st.Number))
		} else {
			why = append(why, fmt.Sprintf("Statement %d is incorrect.", st.Number))
		}
	}
	if len(why) == 0 {
		why = []string{"Every statement is correct, so none qualifies."}
	}
	v.Explanation.WhyCorrect = strings.Join(why, " ")
	if len(wrong) > 0 {
		v.Explanation.WhyOthersWrong = wrong
	}
	return e.score(v), true
}

// CreateNegativeVersions returns every negative form q supports.
func (e *Engine) CreateNegativeVersions(q *question.Question) []*question.Question {
	var out []*question.Question
	for _, fn := range []func(*question.Question) (*question.Question, bool){
		e.CreateNotVersion,
		e.CreateExceptVersion,
		e.CreateFalseStatementVersion,
	} {
		if v, ok := fn(q); ok {
			out = append(out, v)
		}
	}
	return out
}

// invertOptions copies q with every MCQ option flipped and re-types the
// copy to match the resulting correct count.
func (e *Engine) invertOptions(q *question.Question, kind string) (*question.Question, bool) {
	var opts []question.Option
	switch p := q.Payload.(type) {
	case *question.SingleCorrectPayload:
		opts = p.Options
	case *question.MultipleCorrectPayload:
		opts = p.Options
	default:
		return nil, false
	}

	flipped := make([]question.Option, len(opts))
	var oldKeys []string
	for i, o := range opts {
		if o.IsCorrect {
			oldKeys = append(oldKeys, o.Label)
		}
		o.IsCorrect = !o.IsCorrect
		flipped[i] = o
	}

	v := e.derive(q, TagNegative, kind)
	switch n := question.CountCorrect(flipped); {
	case n == 1:
		v.Type = question.TypeSingleCorrectMCQ
		v.Payload = &question.SingleCorrectPayload{Options: flipped}
	case n >= 2 && n <= 3:
		v.Type = question.TypeMultipleCorrectMCQ
		v.Payload = &question.MultipleCorrectPayload{Options: flipped, CorrectCount: n}
	default:
		e.log.Debug("negation leaves no valid key", "question_id", q.ID, "correct", n)
		return nil, false
	}
	v.Marks = e.policy.MarksFor(v.Type, v.Difficulty)
	v.TimeToSolve = generator.TimeToSolve(e.policy, v.Type, v.Difficulty)
	v.Tags = replaceTag(v.Tags, q.Type.String(), v.Type.String())

	v.Explanation.CorrectAnswer = strings.Join(question.CorrectOptions(flipped), "; ")
	v.Explanation.WhyCorrect = "These options do not hold for the provision. " + q.Explanation.WhyCorrect
	wrong := make([]string, 0, len(oldKeys))
	for _, k := range oldKeys {
		wrong = append(wrong, fmt.Sprintf("Option %s is incorrect here: it is a true statement about the provision.", k))
	}
	v.Explanation.WhyOthersWrong = wrong
	return v, true
}

// derive clones q under a fresh id with the given tags appended.
func (e *Engine) derive(q *question.Question, tags ...string) *question.Question {
	v := q.Clone()
	v.ID = e.newID()
	v.Metadata.CreatedAt = e.now()
	v.Tags = appendUnique(v.Tags, tags...)
	return v
}

func (e *Engine) applyRewrite(rules rewrite.RuleSet, q *question.Question) rewrite.Result {
	res := rules.Apply(q.Text)
	if !res.Matched {
		e.log.Debug("rewrite rule did not match", "rules", rules.Name, "question_id", q.ID, "type", q.Type.String())
	}
	return res
}

// score re-validates v with its type's generator.
func (e *Engine) score(v *question.Question) *question.Question {
	if g, err := e.registry.For(v.Type); err == nil {
		generator.Score(g, v)
	}
	return v
}

func appendUnique(tags []string, add ...string) []string {
	for _, t := range add {
		found := false
		for _, have := range tags {
			if have == t {
				found = true
				break
			}
		}
		if !found {
			tags = append(tags, t)
		}
	}
	return tags
}

func replaceTag(tags []string, from, to string) []string {
	for i, t := range tags {
		if t == from {
			tags[i] = to
		}
	}
	return tags
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
