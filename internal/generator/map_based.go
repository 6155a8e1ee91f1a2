package generator

import (
	"fmt"

	"github.com/abhisek/factforge/internal/question"
)

type mapScenario struct {
	stem        string
	description string
	answer      question.Location
	others      []question.Location
	why         string
	clarity     string
	trick       string
}

var mapPool = tierPool[mapScenario]{
	easy: []mapScenario{
		{
			stem:        "Identify the marked city that is the seat of the Supreme Court, which hears petitions under {source}.",
			description: "Outline map of India with four metropolitan cities marked.",
			answer:      question.Location{Name: "New Delhi", Clue: "National capital on the Yamuna"},
			others: []question.Location{
				{Name: "Mumbai", Clue: "Port city on the western coast"},
				{Name: "Kolkata", Clue: "City on the Hooghly in the east"},
				{Name: "Chennai", Clue: "Port city on the Coromandel coast"},
			},
			why:     "The Supreme Court sits in New Delhi and enforces {source} under Article 32.",
			clarity: "Article 130 fixes the seat of the Supreme Court at Delhi.",
			trick:   "Apex court, capital city.",
		},
	},
	medium: []mapScenario{
		{
			stem:        "Which of the following marked cities is the principal seat of the High Court where {source} would be enforced for residents of Puducherry?",
			description: "Outline map of peninsular India with four High Court seats marked.",
			answer:      question.Location{Name: "Chennai", Clue: "Seat of the Madras High Court"},
			others: []question.Location{
				{Name: "Bengaluru", Clue: "Seat of the Karnataka High Court"},
				{Name: "Hyderabad", Clue: "Seat of the Telangana High Court"},
				{Name: "Kochi", Clue: "Seat of the Kerala High Court"},
			},
			why:     "The Madras High Court at Chennai has jurisdiction over Puducherry and can enforce {source}.",
			clarity: "Union Territories are attached to a High Court by law.",
			trick:   "Puducherry looks to Madras.",
		},
	},
	hard: []mapScenario{
		{
			stem:        "Examine the clues and identify the seat of the oldest High Court in India, an institution that interprets {source}.",
			description: "Outline map of India with the seats of the three Chartered High Courts and one later High Court marked.",
			answer:      question.Location{Name: "Kolkata", Clue: "Chartered High Court established on 1 July 1862"},
			others: []question.Location{
				{Name: "Mumbai", Clue: "Chartered High Court established on 14 August 1862"},
				{Name: "Chennai", Clue: "Chartered High Court established on 15 August 1862"},
				{Name: "Prayagraj", Clue: "High Court established in 1866"},
			},
			why:     "The Calcutta High Court, set up on 1 July 1862, is the oldest; it enforces {source} under Article 226.",
			clarity: "Compare founding dates, not city size.",
			trick:   "Calcutta came first in 1862.",
		},
	},
}

type mapBuilder struct{}

func (mapBuilder) questionType() question.Type { return question.TypeMapBased }

func (mapBuilder) scenarios(d question.Difficulty) int { return len(mapPool.get(d)) }

func (mapBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(mapPool.get(s.d), idx)
	locs := make([]question.Location, 0, len(sc.others)+1)
	answer := sc.answer
	answer.IsCorrect = true
	locs = append(locs, answer)
	locs = append(locs, sc.others...)
	s.rng.Shuffle(len(locs), func(i, j int) { locs[i], locs[j] = locs[j], locs[i] })

	var correct string
	var whyWrong []string
	for i, l := range locs {
		if l.IsCorrect {
			correct = fmt.Sprintf("%s) %s", question.OptionLabels[i], l.Name)
			continue
		}
		whyWrong = append(whyWrong, fmt.Sprintf("Option %s (%s) is incorrect: %s.", question.OptionLabels[i], l.Name, l.Clue))
	}

	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.MapPayload{
			MapDescription: s.fill(sc.description),
			Locations:      locs,
		},
		Explanation: question.Explanation{
			CorrectAnswer:  correct,
			WhyCorrect:     s.fill(sc.why),
			WhyOthersWrong: whyWrong,
			ConceptClarity: s.fill(sc.clarity),
			MemoryTrick:    s.fill(sc.trick),
			CommonMistakes: []string{"Choosing the largest city rather than the institutional seat"},
		},
	}
}

func (mapBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.MapPayload)
	if p.MapDescription == "" {
		r.add("map based question needs a map description", "Describe the region and markers shown.")
	}
	if len(p.Locations) < 3 {
		r.addf("Mark at least three locations.", "map based must have at least 3 locations, got %d", len(p.Locations))
	}
	n := 0
	for _, l := range p.Locations {
		if l.IsCorrect {
			n++
		}
	}
	if n != 1 {
		r.addf("Mark exactly one location as correct.", "map based must have exactly 1 correct location, got %d", n)
	}
}

func (mapBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.MapPayload)
	names := make([]string, len(p.Locations))
	for i, l := range p.Locations {
		names[i] = l.Name
	}
	return duplicateTexts(names)
}
