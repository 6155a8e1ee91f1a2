package generator

import (
	"fmt"

	"github.com/abhisek/factforge/internal/question"
)

type oddScenario struct {
	stem     string
	members  []string
	odd      string
	category string
	whyOdd   string
	clarity  string
	trick    string
}

var oddOneOutPool = tierPool[oddScenario]{
	easy: []oddScenario{
		{
			stem:     "Identify the odd one out among the following provisions related to {topic}.",
			members:  []string{"{source}", "Article 32 (Right to constitutional remedies)", "Article 19 (Protection of certain freedoms)"},
			odd:      "Article 39 (Directive Principles on livelihood)",
			category: "Justiciable provisions",
			whyOdd:   "Article 39 is a Directive Principle and cannot be enforced in court, unlike {source}.",
			clarity:  "Part III is enforceable; Part IV guides policy.",
			trick:    "III enforces, IV encourages.",
		},
	},
	medium: []oddScenario{
		{
			stem:     "Which of the following does not belong with the others as a means of enforcing {source}?",
			members:  []string{"Habeas Corpus", "Mandamus", "Certiorari"},
			odd:      "Impeachment",
			category: "Writs for enforcing rights",
			whyOdd:   "impeachment removes constitutional functionaries; it is not a writ for enforcing {concept1}.",
			clarity:  "Writs under Articles 32 and 226 enforce rights such as {source}.",
			trick:    "Five writs: HM-PQC.",
		},
	},
	hard: []oddScenario{
		{
			stem:     "Examine the following features and identify the one that does not share the constitutional character of {concept1}.",
			members:  []string{"Judicial review", "Federalism", "Secularism"},
			odd:      "Laws placed in the Ninth Schedule after 24 April 1973",
			category: "Elements of the basic structure",
			whyOdd:   "Ninth Schedule laws after Kesavananda Bharati remain open to basic structure review; they are not themselves part of it.",
			clarity:  "The basic structure limits amendments touching {source}.",
			trick:    "Structure protects, schedules are tested.",
		},
	},
}

type oddOneOutBuilder struct{}

func (oddOneOutBuilder) questionType() question.Type { return question.TypeOddOneOut }

func (oddOneOutBuilder) scenarios(d question.Difficulty) int { return len(oddOneOutPool.get(d)) }

func (oddOneOutBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(oddOneOutPool.get(s.d), idx)
	opts := append(s.fillAll(sc.members), s.fill(sc.odd))
	oddIdx := len(opts) - 1
	s.rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
		switch oddIdx {
		case i:
			oddIdx = j
		case j:
			oddIdx = i
		}
	})

	category := s.fill(sc.category)
	var whyWrong []string
	for i, o := range opts {
		if i != oddIdx {
			whyWrong = append(whyWrong, fmt.Sprintf("Option %s (%s) is incorrect: it belongs to %s.", question.OptionLabels[i], o, category))
		}
	}

	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.OddOneOutPayload{
			Options:     opts,
			OddOneIndex: oddIdx,
			Category:    category,
		},
		Explanation: question.Explanation{
			CorrectAnswer:  fmt.Sprintf("%s) %s", question.OptionLabels[oddIdx], opts[oddIdx]),
			WhyCorrect:     s.fill(sc.whyOdd),
			WhyOthersWrong: whyWrong,
			ConceptClarity: s.fill(sc.clarity),
			MemoryTrick:    s.fill(sc.trick),
			CommonMistakes: []string{"Grouping by surface wording instead of legal character"},
		},
	}
}

func (oddOneOutBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.OddOneOutPayload)
	if len(p.Options) != 4 {
		r.addf("Provide exactly 4 options.", "odd one out must have exactly 4 options, got %d", len(p.Options))
	}
	if duplicateTexts(p.Options) {
		r.add("odd one out options must be unique", "Replace duplicated options.")
	}
	if p.OddOneIndex < 0 || p.OddOneIndex > 3 || p.OddOneIndex >= len(p.Options) {
		r.addf("Point odd_one_index at one of the options.", "odd one index %d out of range", p.OddOneIndex)
	}
	if p.Category == "" {
		r.add("odd one out must name the shared category", "State what the other three options have in common.")
	}
}

func (oddOneOutBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.OddOneOutPayload)
	return duplicateTexts(p.Options)
}
