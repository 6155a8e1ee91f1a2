package generator

import (
	"fmt"
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

type subScenario struct {
	text    string
	correct string
	wrong   []choice
}

type caseScenario struct {
	stem    string
	passage string
	subs    []subScenario
	why     string
	clarity string
	trick   string
}

var caseStudyPool = tierPool[caseScenario]{
	easy: []caseScenario{
		{
			stem:    "Read the passage on {topic} and answer the questions that follow.",
			passage: "A citizen approaches a legal aid clinic after a government department denies a request that touches on {concept1}. The clinic explains that {source} governs the matter because {content}.",
			subs: []subScenario{
				{
					text:    "Which provision governs the citizen's request?",
					correct: "{source}",
					wrong: []choice{
						{text: "The Seventh Schedule", why: "the Seventh Schedule distributes legislative subjects."},
						{text: "The Tenth Schedule", why: "the Tenth Schedule deals with defection."},
						{text: "Article 368", why: "Article 368 concerns amendment procedure."},
					},
				},
				{
					text:    "What does that provision lay down?",
					correct: "{content}",
					wrong: []choice{
						{text: "That the department may decide at its discretion", why: "the matter is governed by {source}, not departmental discretion."},
						{text: "That only Parliament may hear the grievance", why: "Parliament does not adjudicate individual grievances."},
						{text: "That the request lapses after thirty days", why: "no such time bar appears in {source}."},
					},
				},
			},
			why:     "The passage ties the request to {source}, which provides that {content}.",
			clarity: "Identify the provision first, then its content.",
			trick:   "Who decides? The text decides.",
		},
	},
	medium: []caseScenario{
		{
			stem:    "Read the following situation and answer the questions that follow.",
			passage: "A State government issues an order affecting {concept1}. Affected residents argue that the order conflicts with {source}, under which {content}. The State argues the order is a routine administrative measure under {topic}.",
			subs: []subScenario{
				{
					text:    "On which ground would the residents challenge the order?",
					correct: "That the order is inconsistent with {source}",
					wrong: []choice{
						{text: "That the order was not published in a newspaper", why: "publication is not the constitutional ground raised."},
						{text: "That the Governor did not sign the order personally", why: "the challenge is substantive, not about the signature."},
						{text: "That the order was issued on a holiday", why: "the date of issue is irrelevant to {source}."},
					},
				},
				{
					text:    "Which forum can the residents approach directly?",
					correct: "The High Court under Article 226 or the Supreme Court under Article 32",
					wrong: []choice{
						{text: "The Election Commission", why: "the Election Commission supervises elections."},
						{text: "The Finance Commission", why: "the Finance Commission recommends tax devolution."},
						{text: "The Comptroller and Auditor General", why: "the CAG audits public accounts."},
					},
				},
			},
			why:     "An executive order that conflicts with {source} can be struck down; writ courts enforce {concept1}.",
			clarity: "Administrative convenience does not override {source}.",
			trick:   "Conflict with text means writ court.",
		},
	},
	hard: []caseScenario{
		{
			stem:    "Critically evaluate the case below and answer the questions that follow.",
			passage: "Parliament passes an amendment that narrows {concept1} while expanding {concept2}. Petitioners contend that the amendment damages the basic structure because {content}, as secured by {source}. The Union responds that {related} permits the change and that {concept3} is unaffected.",
			subs: []subScenario{
				{
					text:    "What test will the court apply to the amendment?",
					correct: "Whether the amendment damages or destroys the basic structure",
					wrong: []choice{
						{text: "Whether the amendment was supported by every State", why: "universal State support is not the test."},
						{text: "Whether the amendment was passed within one session", why: "the session of passage is irrelevant."},
						{text: "Whether the President consulted the Attorney General", why: "consultation is not a validity test."},
					},
				},
				{
					text:    "Which outcome follows if the petitioners succeed?",
					correct: "The amendment is void to the extent it abrogates {source}",
					wrong: []choice{
						{text: "Parliament is dissolved", why: "judicial review does not dissolve Parliament."},
						{text: "{related} stands repealed", why: "the court tests the amendment, not {related}."},
						{text: "The amendment becomes a Directive Principle", why: "courts cannot convert an amendment into a Directive Principle."},
					},
				},
				{
					text:    "Which concept does the Union rely on as unaffected?",
					correct: "{concept3}",
					wrong: []choice{
						{text: "Parliamentary privilege", why: "the Union's reply does not rest on privilege."},
						{text: "President's Rule", why: "President's Rule is not raised in the passage."},
						{text: "Doctrine of pleasure", why: "the doctrine of pleasure concerns civil servants."},
					},
				},
			},
			why:     "Amendments touching {source} are valid only if they leave the basic structure intact; {content}.",
			clarity: "Amending power is wide but bounded by the basic structure.",
			trick:   "Amend yes, destroy no.",
		},
	},
}

type caseStudyBuilder struct{}

func (caseStudyBuilder) questionType() question.Type { return question.TypeCaseStudyBased }

func (caseStudyBuilder) scenarios(d question.Difficulty) int { return len(caseStudyPool.get(d)) }

func (caseStudyBuilder) build(s *scene, idx int) *question.Question {
	sc := pick(caseStudyPool.get(s.d), idx)
	subs := make([]question.SubQuestion, len(sc.subs))
	var answers, whyWrong []string
	for i, sub := range sc.subs {
		choices := append([]choice{{text: sub.correct, correct: true}}, sub.wrong...)
		opts, wrong := s.options(choices)
		subs[i] = question.SubQuestion{Text: s.fill(sub.text), Options: opts}
		answers = append(answers, fmt.Sprintf("(%d) %s", i+1, strings.Join(question.CorrectOptions(opts), "; ")))
		for _, w := range wrong {
			whyWrong = append(whyWrong, fmt.Sprintf("Q%d: %s", i+1, w))
		}
	}
	return &question.Question{
		Text: s.fill(sc.stem),
		Payload: &question.CaseStudyPayload{
			Passage:      s.fill(sc.passage),
			SubQuestions: subs,
		},
		Explanation: question.Explanation{
			CorrectAnswer:  strings.Join(answers, " "),
			WhyCorrect:     s.fill(sc.why),
			WhyOthersWrong: whyWrong,
			ConceptClarity: s.fill(sc.clarity),
			MemoryTrick:    s.fill(sc.trick),
			CommonMistakes: []string{"Answering from general knowledge instead of the passage", "Ignoring the provision named in the passage"},
		},
	}
}

func (caseStudyBuilder) validateByType(q *question.Question, r *report) {
	p := q.Payload.(*question.CaseStudyPayload)
	if len(strings.TrimSpace(p.Passage)) < 80 {
		r.add("case study passage must be at least 80 characters", "Expand the passage with the facts the sub-questions rely on.")
	}
	if len(p.SubQuestions) < 2 {
		r.addf("Attach at least two sub-questions.", "case study must have at least 2 sub-questions, got %d", len(p.SubQuestions))
	}
	for i, sub := range p.SubQuestions {
		what := fmt.Sprintf("case study sub-question %d", i+1)
		if strings.TrimSpace(sub.Text) == "" {
			r.addf("Write every sub-question.", "%s has no text", what)
		}
		checkSingleKey(r, what, sub.Options, 4)
	}
}

func (caseStudyBuilder) multipleValidAnswers(q *question.Question) bool {
	p := q.Payload.(*question.CaseStudyPayload)
	for _, sub := range p.SubQuestions {
		if duplicateTexts(optionTexts(sub.Options)) {
			return true
		}
	}
	return false
}
