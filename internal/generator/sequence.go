package generator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

type sequenceScenario struct {
	stem    string
	ordered []string // items in their correct order
	clarity string
	trick   string
}

var sequencePool = tierPool[sequenceScenario]{
	easy: []sequenceScenario{
		{
			stem: "Arrange the following milestones relevant to {topic} in chronological order.",
			ordered: []string{
				"Adoption of the Constitution (26 November 1949)",
				"Commencement of the Constitution (26 January 1950)",
				"First general elections (1951-52)",
			},
			clarity: "{source} came into force with the Constitution on 26 January 1950.",
			trick:   "Adopt, commence, elect.",
		},
	},
	medium: []sequenceScenario{
		{
			stem: "Which of the following is the correct chronological sequence of events leading to {source}?",
			ordered: []string{
				"First meeting of the Constituent Assembly (9 December 1946)",
				"Objectives Resolution moved (13 December 1946)",
				"Adoption of the Constitution (26 November 1949)",
				"Commencement of the Constitution (26 January 1950)",
			},
			clarity: "The Objectives Resolution shaped the Preamble and the scheme in which {source} sits.",
			trick:   "Meet, resolve, adopt, commence.",
		},
	},
	hard: []sequenceScenario{
		{
			stem: "Examine the stages through which {source} could be amended and arrange them in the correct logical order.",
			ordered: []string{
				"Introduction of an amendment Bill in either House of Parliament",
				"Passage by a special majority in each House",
				"Ratification by half of the State Legislatures where federal provisions are affected",
				"Assent of the President",
				"Judicial review of the amendment against the basic structure",
			},
			clarity: "Article 368 fixes the procedure; the basic structure doctrine limits the outcome.",
			trick:   "Introduce, pass, ratify, assent, review.",
		},
		{
			stem: "Analyze the remedy for a breach of {concept1} under {source} and arrange the steps in the correct logical order.",
			ordered: []string{
				"Violation of {concept1} alleged by the aggrieved person",
				"Writ petition filed under Article 32 or Article 226",
				"Notice issued to the State",
				"Hearing on the merits",
				"Judgment applying {source}",
				"Compliance by the authority concerned",
			},
			clarity: "Constitutional remedies convert {source} from text into an enforceable right.",
			trick:   "Wrong, writ, notice, hearing, judgment, compliance.",
		},
	},
}

type sequenceBuilder struct{}

func (sequenceBuilder) questionType() question.Type { return question.TypeSequenceArrangement }

func (sequenceBuilder) scenarios(d question.Difficulty) int { return len(sequencePool.get(d)) }

func (sequenceBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(sequencePool.get(s.d), idx)
	ordered := s.fillAll(sc.ordered)

	// perm[i] is the correct rank of the item displayed at position i.
	perm := s.rng.Perm(len(ordered))
	items := make([]string, len(ordered))
	correct := make([]int, len(ordered))
	for pos, rank := range perm {
		items[pos] = ordered[rank]
		correct[rank] = pos + 1
	}

	codes := make([]string, len(correct))
	for i, c := range correct {
		codes[i] = strconv.Itoa(c)
	}
	var whyWrong []string
	for i := 0; i+1 < len(ordered) && i < 2; i++ {
		whyWrong = append(whyWrong, fmt.Sprintf("Any order placing %q before %q is incorrect.", ordered[i+1], ordered[i]))
	}

	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.SequencePayload{
			Items:           items,
			CorrectSequence: correct,
		},
		Explanation: question.Explanation{
			CorrectAnswer:  strings.Join(codes, "-"),
			WhyCorrect:     "The correct order is: " + strings.Join(ordered, ", then ") + ".",
			WhyOthersWrong: whyWrong,
			ConceptClarity: s.fill(sc.clarity),
			MemoryTrick:    s.fill(sc.trick),
			CommonMistakes: []string{"Confusing adoption with commencement", "Reversing adjacent stages"},
		},
	}
}

func (sequenceBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.SequencePayload)
	n := len(p.Items)
	if n < 3 || n > 6 {
		r.addf("Use between three and six items.", "sequence arrangement must have 3-6 items, got %d", n)
	}
	if !isPermutation(p.CorrectSequence, n) {
		r.addf("List every item position exactly once.", "correct sequence must be a permutation of 1..%d", n)
	}
	if duplicateTexts(p.Items) {
		r.add("sequence items must be unique", "Replace duplicated items.")
	}
}

func (sequenceBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.SequencePayload)
	return duplicateTexts(p.Items)
}

// isPermutation reports whether seq sorted equals 1..n.
func isPermutation(seq []int, n int) bool {
	if len(seq) != n {
		return false
	}
	sorted := append([]int(nil), seq...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i+1 {
			return false
		}
	}
	return true
}
