package engine

import (
	"strings"

	"github.com/abhisek/factforge/internal/policy"
	"github.com/abhisek/factforge/internal/question"
)

// Variant is a synthetic base fact derived from the original for one of
// the reframing passes. The fact keeps the original id so every question
// traces back to its source.
type Variant struct {
	Kind         string
	Fact         question.BaseFact
	Difficulties []question.Difficulty
	Types        []question.Type
}

// Variant kinds.
const (
	VariantTemporal    = "temporal"
	VariantComparative = "comparative"
)

// DeepVariants derives the temporal and comparative reframings of fact.
// The temporal variant exists only when the content cites an Article or an
// Amendment.
func DeepVariants(fact question.BaseFact) []Variant {
	var out []Variant
	if strings.Contains(fact.Content, "Article") || strings.Contains(fact.Content, "Amendment") {
		f := fact.Clone()
		f.Topic = fact.Topic + " (constitutional evolution)"
		f.Content = strings.TrimSuffix(strings.TrimSpace(fact.Content), ".") +
			", a position shaped over time by constitutional amendments and judicial interpretation."
		f.Concepts = append(f.Concepts, "Constitutional evolution")
		f.Tags = append(f.Tags, "deep-variation", VariantTemporal)
		out = append(out, Variant{
			Kind:         VariantTemporal,
			Fact:         f,
			Difficulties: []question.Difficulty{question.DifficultyMedium},
		})
	}

	f := fact.Clone()
	f.Topic = fact.Topic + " (international comparison)"
	f.Content = strings.TrimSuffix(strings.TrimSpace(fact.Content), ".") +
		", a guarantee that invites comparison with other democratic constitutions."
	f.Concepts = append(f.Concepts, "Comparative constitutional law")
	f.Tags = append(f.Tags, "deep-variation", VariantComparative)
	out = append(out, Variant{
		Kind:         VariantComparative,
		Fact:         f,
		Difficulties: []question.Difficulty{question.DifficultyHard},
	})
	return out
}

var contextFraming = []struct {
	name    string
	topic   string
	content string
	concept string
	tag     string
}{
	{policy.ContextCurrentAffairs, " in current affairs", ", a provision that continues to shape recent public debate.", "Current developments", "current-affairs"},
	{policy.ContextGovernance, " in governance", ", which guides how public authorities frame and implement policy.", "Governance and administration", "governance"},
	{policy.ContextInternational, " in international perspective", ", a standard that can be compared with international practice and treaty obligations.", "International perspective", "international"},
}

// ContextualVariants derives the current-affairs, governance and
// international reframings of fact, each paired with its policy type set
// filtered to the fact's relevant types.
func (e *Engine) ContextualVariants(fact question.BaseFact) []Variant {
	relevant := e.relevantSet(fact)
	out := make([]Variant, 0, len(contextFraming))
	for _, c := range contextFraming {
		var types []question.Type
		for _, t := range e.policy.ContextTypes(c.name) {
			if relevant[t] {
				types = append(types, t)
			}
		}
		f := fact.Clone()
		f.Topic = fact.Topic + c.topic
		f.Content = strings.TrimSuffix(strings.TrimSpace(fact.Content), ".") + c.content
		f.Concepts = append(f.Concepts, c.concept)
		f.Tags = append(f.Tags, "contextual", c.tag)
		out = append(out, Variant{
			Kind:         c.name,
			Fact:         f,
			Difficulties: []question.Difficulty{question.DifficultyMedium, question.DifficultyHard},
			Types:        types,
		})
	}
	return out
}
