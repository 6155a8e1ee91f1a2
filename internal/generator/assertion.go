package generator

import (
	"fmt"

	"github.com/abhisek/factforge/internal/question"
)

// assertionOptions are the four standard A/R codes in their fixed order.
var assertionOptions = []string{
	"Both A and R are true and R is the correct explanation of A",
	"Both A and R are true but R is not the correct explanation of A",
	"A is true but R is false",
	"A is false but R is true",
}

// assertionKey returns the index of the standard option implied by the
// truth flags, or -1 when no standard option fits.
func assertionKey(aTrue, rTrue, explains bool) int {
	switch {
	case aTrue && rTrue && explains:
		return 0
	case aTrue && rTrue:
		return 1
	case aTrue && !rTrue:
		return 2
	case !aTrue && rTrue:
		return 3
	}
	return -1
}

type assertionScenario struct {
	stem      string
	assertion string
	reason    string
	aTrue     bool
	rTrue     bool
	explains  bool
	clarity   string
	trick     string
}

var assertionPool = tierPool[assertionScenario]{
	easy: []assertionScenario{
		{
			stem:      "Read the Assertion (A) and Reason (R) on {topic} and select the right code.",
			assertion: "{content}.",
			reason:    "{source} is the provision that lays down this rule on {concept1}.",
			aTrue:     true,
			rTrue:     true,
			explains:  true,
			clarity:   "When R names the source of A, R explains A.",
			trick:     "Source explains substance.",
		},
	},
	medium: []assertionScenario{
		{
			stem:      "Consider the following Assertion (A) and Reason (R) about {source}.",
			assertion: "{content}.",
			reason:    "{source} is a non-justiciable Directive Principle of State Policy.",
			aTrue:     true,
			rTrue:     false,
			clarity:   "{source} is not a Directive Principle; check the Part before accepting R.",
			trick:     "Check the Part before the claim.",
		},
		{
			stem:      "Consider the following Assertion (A) and Reason (R) on {topic}.",
			assertion: "{source} operates only while a proclamation of emergency is in force.",
			reason:    "{source} deals with {concept1}.",
			aTrue:     false,
			rTrue:     true,
			clarity:   "{source} operates in normal times; emergency limits are separate provisions.",
			trick:     "Normal times first, emergency as exception.",
		},
	},
	hard: []assertionScenario{
		{
			stem:      "Critically examine the Assertion (A) and Reason (R) relating to {concept1} and {concept2}.",
			assertion: "{content}.",
			reason:    "The text of {source} itself secures {concept1}, and {concept2} follows from reading it with {related}.",
			aTrue:     true,
			rTrue:     true,
			explains:  true,
			clarity:   "R explains A when it supplies the legal basis for A.",
			trick:     "Basis = explanation.",
		},
		{
			stem:      "Critically examine the Assertion (A) and Reason (R) on {topic}.",
			assertion: "{content}.",
			reason:    "{related} is also part of the constitutional scheme on {topic}.",
			aTrue:     true,
			rTrue:     true,
			clarity:   "Two true statements on the same topic do not make one the explanation of the other.",
			trick:     "Related is not the reason.",
		},
	},
}

type assertionBuilder struct{}

func (assertionBuilder) questionType() question.Type { return question.TypeAssertionReasoning }

func (assertionBuilder) scenarios(d question.Difficulty) int { return len(assertionPool.get(d)) }

func (assertionBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(assertionPool.get(s.d), idx)
	key := assertionKey(sc.aTrue, sc.rTrue, sc.explains)

	opts := make([]question.Option, len(assertionOptions))
	var whyWrong []string
	for i, text := range assertionOptions {
		opts[i] = question.Option{Text: text, IsCorrect: i == key}
	}
	question.Relabel(opts)
	for i, o := range opts {
		if i != key {
			whyWrong = append(whyWrong, fmt.Sprintf("Option %s is incorrect: %s", o.Label, assertionRationale(i, sc)))
		}
	}

	assertion := s.fill(sc.assertion)
	reason := s.fill(sc.reason)
	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.AssertionReasonPayload{
			Assertion:      assertion,
			Reason:         reason,
			AssertionTrue:  sc.aTrue,
			ReasonTrue:     sc.rTrue,
			ReasonExplains: sc.explains,
			Options:        opts,
		},
		Explanation: question.Explanation{
			CorrectAnswer:  question.CorrectOptions(opts)[0],
			WhyCorrect:     fmt.Sprintf("Assertion is %s and Reason is %s. %s", truth(sc.aTrue), truth(sc.rTrue), s.fill(sc.clarity)),
			WhyOthersWrong: whyWrong,
			ConceptClarity: s.fill(sc.clarity),
			MemoryTrick:    s.fill(sc.trick),
			CommonMistakes: []string{
				"Treating any true Reason as the explanation of the Assertion",
				"Judging A and R together instead of one at a time",
			},
		},
	}
}

func assertionRationale(option int, sc assertionScenario) string {
	switch option {
	case 0:
		if !sc.aTrue || !sc.rTrue {
			return "both statements are not true."
		}
		return "R does not explain A."
	case 1:
		if !sc.aTrue || !sc.rTrue {
			return "both statements are not true."
		}
		return "R is in fact the explanation of A."
	case 2:
		if !sc.aTrue {
			return "A is false."
		}
		return "R is true."
	default:
		if sc.aTrue {
			return "A is true."
		}
		return "R is false."
	}
}

func truth(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (assertionBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.AssertionReasonPayload)
	checkSingleKey(r, "assertion reasoning", p.Options, 4)
	if p.Assertion == "" || p.Reason == "" {
		r.add("assertion and reason must both be present", "Write both the Assertion and the Reason.")
	}
	if p.ReasonExplains && (!p.AssertionTrue || !p.ReasonTrue) {
		r.add("reason cannot explain assertion unless both are true", "Clear reason_explains or fix the truth flags.")
	}
	key := assertionKey(p.AssertionTrue, p.ReasonTrue, p.ReasonExplains)
	if key < 0 {
		r.add("truth flags do not map to a standard assertion-reason option", "Make at least one of A and R true.")
		return
	}
	if len(p.Options) == 4 && !p.Options[key].IsCorrect {
		r.addf("Mark the option implied by the truth flags.", "correct option does not agree with truth flags, want %s", question.OptionLabels[key])
	}
}

func (assertionBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.AssertionReasonPayload)
	return p.Assertion != "" && p.Assertion == p.Reason
}
