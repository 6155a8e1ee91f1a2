package generator

import (
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

type mcqScenario struct {
	stem       string
	correct    []string
	wrong      []choice
	whyCorrect string
	clarity    string
	trick      string
	mistakes   []string
}

var singleCorrectPool = tierPool[mcqScenario]{
	easy: []mcqScenario{
		{
			stem:    "What does {source} provide with respect to {topic}?",
			correct: []string{"{content}"},
			wrong: []choice{
				{text: "It is a non-binding guideline that courts cannot enforce", why: "{source} carries binding legal force; it is not a mere guideline."},
				{text: "It applies only during a proclamation of national emergency", why: "the provision operates in normal times and is not limited to emergencies."},
				{text: "It was deleted from the text by a later amendment", why: "{source} remains in force."},
			},
			whyCorrect: "{source} lays down that {content}.",
			clarity:    "Anchor {topic} to its textual source: {source}.",
			trick:      "Link the number to the idea: {source} = {concept1}.",
			mistakes:   []string{"Confusing {source} with a neighbouring provision", "Treating the provision as advisory"},
		},
		{
			stem:    "Identify the provision that deals with {concept1}.",
			correct: []string{"{source}"},
			wrong: []choice{
				{text: "The Preamble", why: "the Preamble states objectives but is not the operative provision on {concept1}."},
				{text: "The Seventh Schedule", why: "the Seventh Schedule distributes legislative subjects; it does not govern {concept1}."},
				{text: "Part IV (Directive Principles of State Policy)", why: "Directive Principles are non-justiciable and are not the provision on {concept1}."},
			},
			whyCorrect: "{concept1} is dealt with in {source}: {content}.",
			clarity:    "Know which part of the text each concept lives in.",
			trick:      "Pair {concept1} with {source} on a flashcard.",
			mistakes:   []string{"Citing the Preamble for operative rights"},
		},
	},
	medium: []mcqScenario{
		{
			stem:    "Which of the following correctly describes {source} in the context of {topic}?",
			correct: []string{"{content}"},
			wrong: []choice{
				{text: "It confers a discretionary power the executive may exercise at will", why: "the provision is not a matter of executive discretion."},
				{text: "It is enforceable only against private individuals and never against the State", why: "the provision binds the State."},
				{text: "It lays down a rule that no court may interpret", why: "courts interpret {source} routinely."},
			},
			whyCorrect: "The text of {source} establishes that {content}.",
			clarity:    "Distinguish what {source} says from how it is commonly paraphrased.",
			trick:      "Ask: who is bound, who benefits, who enforces.",
			mistakes:   []string{"Reading the provision as applying to private parties only"},
		},
		{
			stem:    "In which situation would {source} be directly invoked?",
			correct: []string{"When a question concerning {concept1} arises under {topic}"},
			wrong: []choice{
				{text: "When a dispute concerns only the internal rules of a private club", why: "purely private rules fall outside {source}."},
				{text: "When Parliament debates the annual financial statement", why: "budget debates are governed by other provisions."},
				{text: "When a State Public Service Commission publishes its annual report", why: "that is an administrative act unrelated to {concept1}."},
			},
			whyCorrect: "{source} is engaged whenever {concept1} is in issue, because {content}.",
			clarity:    "Map facts to provisions: identify the concept at stake first.",
			trick:      "Concept first, provision second.",
			mistakes:   []string{"Invoking the provision for unrelated administrative acts"},
		},
	},
	hard: []mcqScenario{
		{
			stem:    "Critically evaluate which statement best captures the constitutional significance of {source}.",
			correct: []string{"{content}, which shapes how {concept1} and {concept2} are interpreted"},
			wrong: []choice{
				{text: "{source} matters only as a historical record with no present legal effect", why: "the provision is operative law today."},
				{text: "{source} draws its force solely from judicial decisions rather than from the text", why: "the force comes from the text; judgments interpret it."},
				{text: "{source} overrides every other part of the Constitution", why: "no single provision overrides the whole text."},
			},
			whyCorrect: "{content}; its reach extends to {concept1} and {concept2}.",
			clarity:    "Significance combines text, interpretation and consequences.",
			trick:      "Text + Interpretation + Impact.",
			mistakes:   []string{"Overstating a provision as supreme", "Ignoring the textual basis"},
		},
		{
			stem:    "Analyze the relationship between {source} and {related}. Which inference is most accurate?",
			correct: []string{"They are complementary: {content}, and {related} extends that position"},
			wrong: []choice{
				{text: "They conflict, so {related} has been struck down", why: "no such conflict has been recognised."},
				{text: "They are unrelated and never read together", why: "they are routinely read together under {topic}."},
				{text: "{related} has replaced {source} entirely", why: "{source} continues to operate."},
			},
			whyCorrect: "{content}; {related} builds on the same foundation.",
			clarity:    "Provisions on {topic} are read harmoniously.",
			trick:      "Harmony over hierarchy.",
			mistakes:   []string{"Assuming later provisions repeal earlier ones"},
		},
	},
}

type singleCorrectBuilder struct{}

func (singleCorrectBuilder) questionType() question.Type { return question.TypeSingleCorrectMCQ }

func (singleCorrectBuilder) scenarios(d question.Difficulty) int {
	return len(singleCorrectPool.get(d))
}

func (singleCorrectBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(singleCorrectPool.get(s.d), idx)
	opts, whyWrong := s.options(mcqChoices(sc))
	return &question.Question{
		Text:        s.fill(sc.stem),
		Payload:     &question.SingleCorrectPayload{Options: opts},
		Explanation: mcqExplanation(s, sc, opts, whyWrong),
	}
}

func (singleCorrectBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.SingleCorrectPayload)
	checkSingleKey(r, "single correct MCQ", p.Options, 4)
}

func (singleCorrectBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.SingleCorrectPayload)
	return duplicateTexts(optionTexts(p.Options))
}

func mcqChoices(sc mcqScenario) []choice {
	out := make([]choice, 0, len(sc.correct)+len(sc.wrong))
	for _, c := range sc.correct {
		out = append(out, choice{text: c, correct: true})
	}
	return append(out, sc.wrong...)
}

func mcqExplanation(s *scene, sc mcqScenario, opts []question.Option, whyWrong []string) question.Explanation {
	return question.Explanation{
		CorrectAnswer:  strings.Join(question.CorrectOptions(opts), "; "),
		WhyCorrect:     s.fill(sc.whyCorrect),
		WhyOthersWrong: whyWrong,
		ConceptClarity: s.fill(sc.clarity),
		MemoryTrick:    s.fill(sc.trick),
		CommonMistakes: s.fillAll(sc.mistakes),
	}
}
