package generator

import (
	"fmt"

	"github.com/abhisek/factforge/internal/policy"
	"github.com/abhisek/factforge/internal/question"
)

// Registry maps every archetype to its generator. It is indexed by
// question.Type so adding a type grows the table at compile time.
type Registry [question.NumTypes]Generator

// NewRegistry builds the ten default generators.
func NewRegistry(p *policy.Policy, opts ...Option) Registry {
	var r Registry
	for _, t := range question.AllTypes() {
		r[t] = newTypeGenerator(builderFor(t), p, opts)
	}
	return r
}

// builderFor is exhaustive over the archetypes.
func builderFor(t question.Type) builder {
	switch t {
	case question.TypeSingleCorrectMCQ:
		return singleCorrectBuilder{}
	case question.TypeMultipleCorrectMCQ:
		return multipleCorrectBuilder{}
	case question.TypeMatchTheFollowing:
		return matchBuilder{}
	case question.TypeAssertionReasoning:
		return assertionBuilder{}
	case question.TypeStatementBased:
		return statementBuilder{}
	case question.TypeSequenceArrangement:
		return sequenceBuilder{}
	case question.TypeOddOneOut:
		return oddOneOutBuilder{}
	case question.TypeCaseStudyBased:
		return caseStudyBuilder{}
	case question.TypeMapBased:
		return mapBuilder{}
	case question.TypeDataBased:
		return dataBuilder{}
	}
	panic(fmt.Sprintf("generator: no builder for %s", t))
}

// For returns the generator for t.
func (r Registry) For(t question.Type) (Generator, error) {
	if !t.Valid() || r[t] == nil {
		return nil, fmt.Errorf("no generator registered for %s", t)
	}
	return r[t], nil
}

// With returns a copy of r with t served by g.
func (r Registry) With(t question.Type, g Generator) Registry {
	r[t] = g
	return r
}

// Validate scores q with the generator for its type. A nil question or one
// of an unregistered type gets a zero-score result naming the problem.
func (r Registry) Validate(q *question.Question) question.ValidationResult {
	if q == nil {
		return question.ValidationResult{
			Issues:      []string{"question is null"},
			Suggestions: []string{"Remove null entries from the input."},
		}
	}
	g, err := r.For(q.Type)
	if err != nil {
		return question.ValidationResult{
			Issues:      []string{err.Error()},
			Suggestions: []string{"Use one of the supported question types."},
		}
	}
	return g.Validate(q)
}
