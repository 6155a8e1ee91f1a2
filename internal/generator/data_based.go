package generator

import (
	"strings"
	"unicode"

	"github.com/abhisek/factforge/internal/question"
)

type dataScenario struct {
	stem    string
	caption string
	points  []question.DataPoint
	correct string
	wrong   []choice
	why     string
	clarity string
	trick   string
}

// petitionSeries is an illustrative filing series reused across tiers.
var petitionSeries = []question.DataPoint{
	{Label: "2019", Value: "1240"},
	{Label: "2020", Value: "1580"},
	{Label: "2021", Value: "1410"},
	{Label: "2022", Value: "1720"},
}

var dataPool = tierPool[dataScenario]{
	easy: []dataScenario{
		{
			stem:    "Study the data on petitions invoking {source} and identify the year with the highest filings.",
			caption: "Petitions invoking {source} filed per year (illustrative)",
			points:  petitionSeries,
			correct: "2022",
			wrong: []choice{
				{text: "2019", why: "2019 has the lowest count, 1240."},
				{text: "2020", why: "1580 in 2020 is below 1720."},
				{text: "2021", why: "1410 in 2021 is below 1720."},
			},
			why:     "2022 records 1720 petitions, the highest value in the series.",
			clarity: "Read the largest value directly off the table.",
			trick:   "Scan for the biggest number first.",
		},
	},
	medium: []dataScenario{
		{
			stem:    "Which of the following inferences from the data on {topic} is correct?",
			caption: "Petitions invoking {source} filed per year (illustrative)",
			points:  petitionSeries,
			correct: "Filings fell between 2020 and 2021 before rising in 2022",
			wrong: []choice{
				{text: "Filings rose every year from 2019 to 2022", why: "filings dropped from 1580 to 1410 in 2021."},
				{text: "Filings in 2021 were lower than in 2019", why: "1410 in 2021 exceeds 1240 in 2019."},
				{text: "Filings doubled between 2019 and 2022", why: "1720 is well short of double 1240."},
			},
			why:     "The series moves 1580 to 1410 to 1720, a dip in 2021 followed by a rise.",
			clarity: "Check every year-on-year step before accepting a trend claim about {concept1}.",
			trick:   "One dip breaks \"every year\".",
		},
	},
	hard: []dataScenario{
		{
			stem:    "Critically assess the trend in petitions invoking {source} and select the most accurate interpretation.",
			caption: "Petitions invoking {source} filed per year (illustrative)",
			points:  petitionSeries,
			correct: "Filings grew by about 39% between 2019 and 2022 despite a fall in 2021",
			wrong: []choice{
				{text: "Filings grew by about 72% between 2019 and 2022", why: "the growth is (1720 - 1240) / 1240, about 39%."},
				{text: "The 2021 fall shows awareness of {concept1} declined permanently", why: "filings recovered to a new high in 2022."},
				{text: "Average annual filings exceeded 1600", why: "the average is 1487.5."},
			},
			why:     "(1720 - 1240) / 1240 is roughly 0.39; the 2021 dip to 1410 does not reverse the overall rise.",
			clarity: "Separate the overall change from year-on-year noise when reading data on {concept1} and {concept2}.",
			trick:   "End minus start over start.",
		},
	},
}

type dataBuilder struct{}

func (dataBuilder) questionType() question.Type { return question.TypeDataBased }

func (dataBuilder) scenarios(d question.Difficulty) int { return len(dataPool.get(d)) }

func (dataBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(dataPool.get(s.d), idx)
	points := make([]question.DataPoint, len(sc.points))
	copy(points, sc.points)

	rows := make([]string, len(points))
	for i, p := range points {
		rows[i] = p.Label + ": " + p.Value
	}
	source := s.fill(sc.caption) + ". " + strings.Join(rows, "; ")

	choices := append([]choice{{text: sc.correct, correct: true}}, sc.wrong...)
	opts, whyWrong := s.options(choices)
	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.DataPayload{
			DataSource:      source,
			DataPoints:      points,
			Interpretations: opts,
		},
		Explanation: question.Explanation{
			CorrectAnswer:  strings.Join(question.CorrectOptions(opts), "; "),
			WhyCorrect:     s.fill(sc.why),
			WhyOthersWrong: whyWrong,
			ConceptClarity: s.fill(sc.clarity),
			MemoryTrick:    s.fill(sc.trick),
			CommonMistakes: []string{"Reading a single year as a trend", "Computing growth on the end value instead of the start"},
		},
	}
}

func (dataBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.DataPayload)
	if !strings.ContainsFunc(p.DataSource, unicode.IsDigit) {
		r.add("data source must contain numerical content", "Include the figures the interpretations rely on.")
	}
	checkSingleKey(r, "data based interpretation", p.Interpretations, 4)
}

func (dataBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.DataPayload)
	return duplicateTexts(optionTexts(p.Interpretations))
}
