package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/factforge/internal/policy"
	"github.com/abhisek/factforge/internal/question"
)

// report collects issues and suggestions during validation.
type report struct {
	issues      []string
	suggestions []string
}

func (r *report) add(issue, suggestion string) {
	r.issues = append(r.issues, issue)
	if suggestion != "" {
		r.suggestions = append(r.suggestions, suggestion)
	}
}

func (r *report) addf(suggestion, format string, args ...any) {
	r.add(fmt.Sprintf(format, args...), suggestion)
}

var placeholderPattern = regexp.MustCompile(`\{[a-z0-9_]+\}`)

// cognitiveKeywords are checked in order; the first level with a matching
// keyword wins.
var cognitiveKeywords = []struct {
	level    question.CognitiveLevel
	keywords []string
}{
	{question.CognitiveEvaluation, []string{"critically", "evaluate", "assess", "justify", "judge"}},
	{question.CognitiveSynthesis, []string{"design", "propose", "formulate", "synthesize", "synthesise", "integrate", "devise"}},
	{question.CognitiveAnalysis, []string{"analyze", "analyse", "compare", "examine", "distinguish", "consider the following", "relationship", "implication"}},
	{question.CognitiveApplication, []string{"apply", "application", "scenario", "situation", "which of the following", "would"}},
}

// ClassifyCognitiveLevel infers the thinking level a stem demands from
// keyword heuristics.
func ClassifyCognitiveLevel(text string) question.CognitiveLevel {
	lower := strings.ToLower(text)
	for _, group := range cognitiveKeywords {
		for _, kw := range group.keywords {
			if containsWord(lower, kw) {
				return group.level
			}
		}
	}
	return question.CognitiveRecall
}

// validate runs the common checks, then the builder's type checks, and
// computes the quality score.
func validate(p *policy.Policy, b builder, q *question.Question) question.ValidationResult {
	vp := p.Validation
	ded := vp.Deductions
	r := &report{}
	score := 100

	if len(strings.TrimSpace(q.Text)) < vp.MinTextLength {
		r.addf("Expand the stem so the question is self-contained.",
			"question text must be at least %d characters", vp.MinTextLength)
		score -= ded.ShortText
	}
	if strings.TrimSpace(q.Explanation.CorrectAnswer) == "" {
		r.add("explanation is missing the correct answer", "State the correct answer explicitly in the explanation.")
		score -= ded.MissingCorrectAnswer
	}
	if len(uniqueNonEmpty(q.Explanation.WhyOthersWrong)) == 0 {
		r.add("explanation has no rationale for why other options are wrong", "Explain why each distractor is incorrect.")
		score -= ded.MissingWrongRationale
	}

	factual := factuallyAccurate(q)
	if !factual {
		r.add("factual accuracy concern: explanation lacks grounding or template text is unresolved",
			"Cite the source provision and resolve every template placeholder.")
		score -= ded.FactualAccuracy
	}

	level := ClassifyCognitiveLevel(q.Text)
	difficultyOK, why := difficultyAppropriate(p, q, level)
	if !difficultyOK {
		r.addf("Rebalance concepts, time or stem wording to match the tier.",
			"difficulty %s not appropriate: %s", q.Difficulty, why)
		score -= ded.DifficultyMismatch
	}

	ambiguityFree := true
	if w, ok := hedgeWord(q.Text, vp.HedgeWords); ok {
		ambiguityFree = false
		r.addf("Replace hedge words with precise qualifiers.", "question text contains ambiguous word %q", w)
	} else if q.Type == b.questionType() && q.Payload != nil && q.Payload.Kind() == q.Type && b.multipleValidAnswers(q) {
		ambiguityFree = false
		r.add("question may have multiple valid answers", "Make distractors clearly distinct from the key.")
	}
	if !ambiguityFree {
		score -= ded.Ambiguity
	}

	tr := &report{}
	switch {
	case q.Type != b.questionType():
		tr.addf("Route the question to the matching generator.", "question type %s does not match validator %s", q.Type, b.questionType())
	case q.Payload == nil:
		tr.add("question has no payload", "Populate the type-specific payload.")
	case q.Payload.Kind() != q.Type:
		tr.addf("Rebuild the payload for the declared type.", "payload kind %s does not match question type %s", q.Payload.Kind(), q.Type)
	default:
		b.validateByType(q, tr)
	}
	score -= ded.TypeIssue * len(tr.issues)
	r.issues = append(r.issues, tr.issues...)
	r.suggestions = append(r.suggestions, tr.suggestions...)

	return question.ValidationResult{
		IsValid:               len(r.issues) == 0,
		QualityScore:          clampScore(score),
		Issues:                r.issues,
		Suggestions:           r.suggestions,
		FactualAccuracy:       factual,
		DifficultyAppropriate: difficultyOK,
		AmbiguityFree:         ambiguityFree,
		CognitiveLevel:        level,
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// factuallyAccurate flags a missing justification or any unresolved
// template placeholder.
func factuallyAccurate(q *question.Question) bool {
	if strings.TrimSpace(q.Explanation.WhyCorrect) == "" {
		return false
	}
	texts := []string{q.Text, q.Explanation.CorrectAnswer, q.Explanation.WhyCorrect, q.Explanation.ConceptClarity}
	texts = append(texts, q.Explanation.WhyOthersWrong...)
	if q.Payload != nil {
		if raw, err := json.Marshal(q.Payload); err == nil {
			texts = append(texts, string(raw))
		}
	}
	for _, t := range texts {
		if placeholderPattern.MatchString(t) {
			return false
		}
	}
	return true
}

// difficultyAppropriate cross-checks concept count, cognitive level and
// solving time against the tier rule.
func difficultyAppropriate(p *policy.Policy, q *question.Question, level question.CognitiveLevel) (bool, string) {
	rule, ok := p.TierRule(q.Difficulty)
	if !ok {
		return false, fmt.Sprintf("unknown difficulty %q", q.Difficulty)
	}
	n := len(q.ConceptsTested)
	var reasons []string
	if rule.MaxConcepts > 0 && n > rule.MaxConcepts {
		reasons = append(reasons, fmt.Sprintf("tests %d concepts, at most %d allowed", n, rule.MaxConcepts))
	}
	if rule.MinConcepts > 0 && n < rule.MinConcepts {
		reasons = append(reasons, fmt.Sprintf("tests %d concepts, at least %d required", n, rule.MinConcepts))
	}
	if rule.MaxSeconds > 0 && q.TimeToSolve > rule.MaxSeconds {
		reasons = append(reasons, fmt.Sprintf("time %ds exceeds %ds", q.TimeToSolve, rule.MaxSeconds))
	}
	if rule.MinSeconds > 0 && q.TimeToSolve < rule.MinSeconds {
		reasons = append(reasons, fmt.Sprintf("time %ds below %ds", q.TimeToSolve, rule.MinSeconds))
	}
	levelOK := false
	for _, l := range rule.Levels {
		if question.CognitiveLevel(l) == level {
			levelOK = true
			break
		}
	}
	if !levelOK {
		reasons = append(reasons, fmt.Sprintf("cognitive level %s, want one of %s", level, strings.Join(rule.Levels, "/")))
	}
	if len(reasons) > 0 {
		return false, strings.Join(reasons, "; ")
	}
	return true, ""
}

func hedgeWord(text string, words []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, w := range words {
		if containsWord(lower, strings.ToLower(w)) {
			return w, true
		}
	}
	return "", false
}

// containsWord reports whether phrase occurs in s bounded by non-letters.
func containsWord(s, phrase string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(phrase)
		if (i == 0 || !isLetter(s[i-1])) && (end == len(s) || !isLetter(s[end])) {
			return true
		}
		start = i + 1
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// duplicateTexts reports whether any two strings are equal ignoring case
// and surrounding space.
func duplicateTexts(texts []string) bool {
	seen := make(map[string]bool, len(texts))
	for _, t := range texts {
		k := strings.ToLower(strings.TrimSpace(t))
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}

func optionTexts(opts []question.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Text
	}
	return out
}

// checkSingleKey enforces n options with exactly one correct and no blanks.
func checkSingleKey(r *report, what string, opts []question.Option, n int) {
	if len(opts) != n {
		r.addf(fmt.Sprintf("Provide exactly %d options.", n), "%s must have exactly %d options, got %d", what, n, len(opts))
	}
	if c := question.CountCorrect(opts); c != 1 {
		r.addf("Mark exactly one option as correct.", "%s must have exactly 1 correct option, got %d", what, c)
	}
	for i, o := range opts {
		if strings.TrimSpace(o.Text) == "" {
			r.addf("Fill in every option.", "%s option %d is empty", what, i+1)
		}
	}
}
