package generator

import (
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

var multipleCorrectPool = tierPool[mcqScenario]{
	easy: []mcqScenario{
		{
			stem:    "Select the two features of {source} from the options below.",
			correct: []string{"{content}", "It forms part of the law on {topic}"},
			wrong: []choice{
				{text: "It can be suspended by a departmental circular", why: "a circular cannot suspend {source}."},
				{text: "It has no bearing on {concept1}", why: "{source} is the basis of {concept1}."},
			},
			whyCorrect: "{source} provides that {content}, and it is part of {topic}.",
			clarity:    "Two keys: what the provision says and where it sits.",
			trick:      "Say it, place it.",
			mistakes:   []string{"Selecting only one option when two are correct"},
		},
	},
	medium: []mcqScenario{
		{
			stem:    "Which of the following statements about {source} are correct? Select every correct option.",
			correct: []string{"{content}", "It is central to {concept1}", "It is read together with {related}"},
			wrong: []choice{
				{text: "It lies outside the scope of judicial review", why: "courts review action under {source}."},
			},
			whyCorrect: "{content}; it anchors {concept1} and is read with {related}.",
			clarity:    "Multiple-correct items reward complete, not partial, knowledge.",
			trick:      "Eliminate the absolute claim first.",
			mistakes:   []string{"Stopping after the first correct option"},
		},
		{
			stem:    "Which of the following would be consistent with {source}?",
			correct: []string{"A law that respects the rule that {content}", "A court order giving effect to {concept1}"},
			wrong: []choice{
				{text: "An executive order that sets {source} aside without any law", why: "the executive cannot set the provision aside."},
				{text: "A policy that treats {concept1} as irrelevant to {topic}", why: "{concept1} is integral to {topic}."},
			},
			whyCorrect: "Both keys give effect to {source} instead of bypassing it.",
			clarity:    "Consistency means giving effect to the provision.",
			trick:      "Does it honour or bypass the text?",
			mistakes:   []string{"Assuming executive action can displace constitutional text"},
		},
	},
	hard: []mcqScenario{
		{
			stem:    "Critically assess which of these propositions about {source} hold good.",
			correct: []string{"{content}", "It informs how {concept2} is interpreted", "Its scope has been shaped by {related}"},
			wrong: []choice{
				{text: "It operates independently of {concept3}", why: "{source} is closely tied to {concept3}."},
			},
			whyCorrect: "{content}; the provision interacts with {concept2} and has been shaped by {related}.",
			clarity:    "At this tier, interpretation and linkages matter as much as text.",
			trick:      "Text, link, lineage.",
			mistakes:   []string{"Treating a provision in isolation"},
		},
	},
}

type multipleCorrectBuilder struct{}

func (multipleCorrectBuilder) questionType() question.Type { return question.TypeMultipleCorrectMCQ }

func (multipleCorrectBuilder) scenarios(d question.Difficulty) int {
	return len(multipleCorrectPool.get(d))
}

func (multipleCorrectBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(multipleCorrectPool.get(s.d), idx)
	opts, whyWrong := s.options(mcqChoices(sc))
	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.MultipleCorrectPayload{
			Options:      opts,
			CorrectCount: question.CountCorrect(opts),
		},
		Explanation: mcqExplanation(s, sc, opts, whyWrong),
	}
}

func (multipleCorrectBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.MultipleCorrectPayload)
	if len(p.Options) != 4 {
		r.addf("Provide exactly 4 options.", "multiple correct MCQ must have exactly 4 options, got %d", len(p.Options))
	}
	actual := question.CountCorrect(p.Options)
	if actual < 2 || actual > 3 {
		r.addf("Mark two or three options as correct.", "multiple correct MCQ must have 2-3 correct options, got %d", actual)
	}
	if p.CorrectCount != actual {
		r.addf("Recompute correct_count from the options.", "correct count mismatch: declared %d, actual %d", p.CorrectCount, actual)
	}
	for i, o := range p.Options {
		if strings.TrimSpace(o.Text) == "" {
			r.addf("Fill in every option.", "multiple correct MCQ option %d is empty", i+1)
		}
	}
}

func (multipleCorrectBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.MultipleCorrectPayload)
	return duplicateTexts(optionTexts(p.Options)) || question.CountCorrect(p.Options) == len(p.Options)
}
