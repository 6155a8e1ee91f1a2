package generator

import (
	"fmt"
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

type matchScenario struct {
	stem       string
	left       []string
	right      []string // right[i] matches left[i] before shuffling
	whyCorrect string
	clarity    string
	trick      string
}

var matchPool = tierPool[matchScenario]{
	easy: []matchScenario{
		{
			stem:       "Match the provisions in List I with their subject matter in List II.",
			left:       []string{"{source}", "Article 14", "Article 19", "Article 32", "Article 44"},
			right:      []string{"{content}", "Equality before law", "Protection of certain freedoms of speech, assembly and movement", "Right to constitutional remedies", "Uniform civil code for citizens"},
			whyCorrect: "Each provision is paired with its own subject; {source} provides that {content}.",
			clarity:    "Learn provisions as number-subject pairs.",
			trick:      "14 equal, 19 freedoms, 32 remedies, 44 uniform code.",
		},
	},
	medium: []matchScenario{
		{
			stem:       "Which of the following is the correct matching of List I with List II?",
			left:       []string{"{source}", "Preamble", "Seventh Schedule", "Part IV", "Article 368"},
			right:      []string{"{content}", "Objectives and ideals of the Constitution", "Division of legislative subjects", "Directive Principles of State Policy", "Procedure for amending the Constitution"},
			whyCorrect: "Every item in List I has one textual home in List II; {source} covers {topic}.",
			clarity:    "Parts, schedules and articles each have a distinct role.",
			trick:      "Schedules list, Parts group, Articles rule.",
		},
	},
	hard: []matchScenario{
		{
			stem:       "Examine the doctrines in List I and match each with its basis in List II.",
			left:       []string{"{concept1}", "Basic structure doctrine", "Judicial review", "Doctrine of eclipse", "Doctrine of severability"},
			right:      []string{"Tested through {source}: {content}", "Kesavananda Bharati v. State of Kerala (1973)", "Articles 13, 32 and 226", "Pre-constitutional laws inconsistent with Fundamental Rights", "Only the inconsistent part of a law is void"},
			whyCorrect: "Each doctrine is tied to the case or provision that grounds it; {concept1} is tested through {source}.",
			clarity:    "Doctrines are judicial constructions anchored in specific text or cases.",
			trick:      "Case for structure, Articles for review, timing for eclipse, surgery for severability.",
		},
	},
}

type matchBuilder struct{}

func (matchBuilder) questionType() question.Type { return question.TypeMatchTheFollowing }

func (matchBuilder) scenarios(d question.Difficulty) int { return len(matchPool.get(d)) }

func (matchBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(matchPool.get(s.d), idx)
	left := s.fillAll(sc.left)
	right := s.fillAll(sc.right)

	// perm[i] is the original index of the item displayed at right position i.
	perm := s.rng.Perm(len(right))
	shuffled := make([]string, len(right))
	position := make([]int, len(right))
	for i, orig := range perm {
		shuffled[i] = right[orig]
		position[orig] = i
	}

	pairs := make([]question.Pair, len(left))
	codes := make([]string, len(left))
	for i := range left {
		pairs[i] = question.Pair{Left: i, Right: position[i]}
		codes[i] = fmt.Sprintf("%s-%d", question.OptionLabels[i], position[i]+1)
	}

	var whyWrong []string
	for i := range left {
		wrong := (position[i] + 1) % len(shuffled)
		whyWrong = append(whyWrong, fmt.Sprintf("%s does not correspond to %q; it matches %q.", left[i], shuffled[wrong], shuffled[position[i]]))
		if len(whyWrong) == 2 {
			break
		}
	}

	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.MatchPayload{
			LeftColumn:   left,
			RightColumn:  shuffled,
			CorrectPairs: pairs,
		},
		Explanation: question.Explanation{
			CorrectAnswer:  strings.Join(codes, ", "),
			WhyCorrect:     s.fill(sc.whyCorrect),
			WhyOthersWrong: whyWrong,
			ConceptClarity: s.fill(sc.clarity),
			MemoryTrick:    s.fill(sc.trick),
			CommonMistakes: []string{"Matching on a shared keyword rather than the actual subject", "Swapping adjacent provisions"},
		},
	}
}

func (matchBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.MatchPayload)
	if len(p.LeftColumn) != 5 || len(p.RightColumn) != 5 || len(p.CorrectPairs) != 5 {
		r.addf("Use five items in each column and five pairs.",
			"match the following must have 5 items per column and 5 pairs, got %d/%d/%d",
			len(p.LeftColumn), len(p.RightColumn), len(p.CorrectPairs))
	}
	seenLeft := map[int]bool{}
	seenRight := map[int]bool{}
	for _, pr := range p.CorrectPairs {
		if pr.Left < 0 || pr.Left >= len(p.LeftColumn) || pr.Right < 0 || pr.Right >= len(p.RightColumn) {
			r.addf("Reference only existing column items.", "pair %d-%d is out of range", pr.Left, pr.Right)
			continue
		}
		if seenLeft[pr.Left] || seenRight[pr.Right] {
			r.add("each item must appear in exactly one pair", "Make the pairing one-to-one.")
		}
		seenLeft[pr.Left] = true
		seenRight[pr.Right] = true
	}
	if duplicateTexts(p.LeftColumn) || duplicateTexts(p.RightColumn) {
		r.add("column items must be unique", "Replace duplicated column entries.")
	}
}

func (matchBuilder) multipleValidAnswers(*question.Question) bool { return false }
