// Package generator turns a base fact into typed exam questions using
// curated scenario templates, and scores every question it emits.
package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

// Generator produces questions of one archetype.
// Implementations are safe for concurrent use when each call carries its
// own Config.Rand.
type Generator interface {
	// Type returns the archetype this generator emits.
	Type() question.Type

	// SupportedTypes lists the types Generate accepts in Config.QuestionTypes.
	SupportedTypes() []question.Type

	// Generate produces one main question per requested difficulty, plus
	// alternate-scenario variations when Config.IncludeVariations is set.
	// Flawed questions are returned with their validation recorded in
	// metadata rather than dropped.
	Generate(ctx context.Context, cfg Config) ([]*question.Question, error)

	// Validate runs the common structural and heuristic checks followed by
	// the type-specific payload checks.
	Validate(q *question.Question) question.ValidationResult
}

// Config describes one generation request.
type Config struct {
	BaseFact question.BaseFact

	// QuestionTypes restricts the request. Empty means the generator's own
	// type; any unsupported entry fails the call with *ConfigurationError.
	QuestionTypes []question.Type

	// Difficulties to generate, one main question each. Empty means all.
	Difficulties []question.Difficulty

	// GenerateNegatives asks for NOT/EXCEPT forms. Generators leave this to
	// the engine's post-processing; it is carried so one Config describes
	// the whole request.
	GenerateNegatives bool

	// IncludeVariations emits the remaining scenarios of each tier pool.
	IncludeVariations bool

	// MaxQuestionsPerType caps the output. Zero means no cap.
	MaxQuestionsPerType int

	// Rand drives scenario selection and option shuffling. Nil means a
	// time-seeded source.
	Rand *rand.Rand
}

// ConfigurationError reports a request for a type the generator cannot
// produce.
type ConfigurationError struct {
	Generator question.Type
	Requested []question.Type
	Reason    string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("generator %s: %s", e.Generator, e.Reason)
	}
	names := make([]string, len(e.Requested))
	for i, t := range e.Requested {
		names[i] = t.String()
	}
	return fmt.Sprintf("generator %s does not support %s", e.Generator, strings.Join(names, ", "))
}
