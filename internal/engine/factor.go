package engine

import (
	"math"
	"sort"

	"github.com/abhisek/factforge/internal/question"
)

// CalculateMultiplicationFactor scores how many questions a fact deserves,
// as an integer clamped to the policy bounds.
func (e *Engine) CalculateMultiplicationFactor(fact question.BaseFact) int {
	fp := e.policy.Factor
	f := e.policy.ImportanceMultiplier(fact.Importance)
	if len(fact.Concepts) > fp.ConceptThreshold {
		f *= fp.ConceptMultiplier
	}
	if len(fact.RelatedFacts) > fp.RelatedThreshold {
		f *= fp.RelatedMultiplier
	}
	f *= e.policy.SubjectWeight(fact.Subject)

	n := int(math.Round(f))
	if n < fp.Min {
		n = fp.Min
	}
	if n > fp.Max {
		n = fp.Max
	}
	return n
}

// RelevantQuestionTypes returns every type not excluded for the fact's
// subject, in declaration order.
func (e *Engine) RelevantQuestionTypes(fact question.BaseFact) []question.Type {
	excluded := e.policy.Excluded(fact.Subject)
	out := make([]question.Type, 0, question.NumTypes)
	for _, t := range question.AllTypes() {
		if !excluded[t] {
			out = append(out, t)
		}
	}
	return out
}

// HighImpactTypes ranks the relevant types by impact score, highest first,
// and returns the top of the list. Ties keep declaration order.
func (e *Engine) HighImpactTypes(fact question.BaseFact) []question.Type {
	types := e.RelevantQuestionTypes(fact)
	sort.SliceStable(types, func(i, j int) bool {
		return e.policy.ImpactScore(fact.Subject, types[i]) > e.policy.ImpactScore(fact.Subject, types[j])
	})
	if n := e.policy.Orchestration.HighImpactCount; n >= 0 && len(types) > n {
		types = types[:n]
	}
	return types
}

func (e *Engine) relevantSet(fact question.BaseFact) map[question.Type]bool {
	set := make(map[question.Type]bool, question.NumTypes)
	for _, t := range e.RelevantQuestionTypes(fact) {
		set[t] = true
	}
	return set
}
