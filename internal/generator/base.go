package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/factforge/internal/policy"
	"github.com/abhisek/factforge/internal/question"
)

// builder is the type-specific half of a generator: it authors the stem,
// payload and explanation from a scenario and checks payload invariants.
type builder interface {
	questionType() question.Type

	// scenarios returns the size of the template pool for d.
	scenarios(d question.Difficulty) int

	// build renders scenario idx of the d pool.
	build(s *scene, idx int) *question.Question

	// validateByType records payload-specific issues.
	validateByType(q *question.Question, r *report)

	// multipleValidAnswers reports a type-specific ambiguity signal.
	multipleValidAnswers(q *question.Question) bool
}

// Option customises a generator.
type Option func(*options)

type options struct {
	newID func() string
	now   func() time.Time
}

// WithIDFunc overrides question id generation.
func WithIDFunc(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.now = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// typeGenerator implements Generator on top of a builder.
type typeGenerator struct {
	b      builder
	policy *policy.Policy
	opts   options
}

func newTypeGenerator(b builder, p *policy.Policy, opts []Option) *typeGenerator {
	return &typeGenerator{b: b, policy: p, opts: buildOptions(opts)}
}

func (g *typeGenerator) Type() question.Type { return g.b.questionType() }

func (g *typeGenerator) SupportedTypes() []question.Type {
	return []question.Type{g.b.questionType()}
}

func (g *typeGenerator) Generate(ctx context.Context, cfg Config) ([]*question.Question, error) {
	if err := g.checkTypes(cfg.QuestionTypes); err != nil {
		return nil, err
	}
	if err := cfg.BaseFact.Validate(); err != nil {
		return nil, fmt.Errorf("generator %s: %w", g.Type(), err)
	}

	difficulties := cfg.Difficulties
	if len(difficulties) == 0 {
		difficulties = question.AllDifficulties()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(g.Type())))
	}
	fact := cfg.BaseFact.Clone()

	var main, variations []*question.Question
	for _, d := range difficulties {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !d.Valid() {
			return nil, &ConfigurationError{Generator: g.Type(), Reason: fmt.Sprintf("unknown difficulty %q", d)}
		}
		n := g.b.scenarios(d)
		if n == 0 {
			continue
		}
		pick := rng.IntN(n)
		main = append(main, g.render(fact, d, pick, rng, false))
		if cfg.IncludeVariations {
			for k := 1; k < n; k++ {
				variations = append(variations, g.render(fact, d, (pick+k)%n, rng, true))
			}
		}
	}

	out := append(main, variations...)
	if cfg.MaxQuestionsPerType > 0 && len(out) > cfg.MaxQuestionsPerType {
		out = out[:cfg.MaxQuestionsPerType]
	}
	return out, nil
}

func (g *typeGenerator) Validate(q *question.Question) question.ValidationResult {
	return validate(g.policy, g.b, q)
}

func (g *typeGenerator) checkTypes(requested []question.Type) error {
	var unsupported []question.Type
	for _, t := range requested {
		if t != g.Type() {
			unsupported = append(unsupported, t)
		}
	}
	if len(unsupported) > 0 {
		return &ConfigurationError{Generator: g.Type(), Requested: unsupported}
	}
	return nil
}

// render builds one question and fills every field common to all types.
func (g *typeGenerator) render(fact question.BaseFact, d question.Difficulty, idx int, rng *rand.Rand, variation bool) *question.Question {
	s := newScene(fact, d, rng)
	q := g.b.build(s, idx)

	q.ID = g.opts.newID()
	q.Type = g.Type()
	q.Difficulty = d
	q.Subject = fact.Subject
	q.Topic = fact.Topic
	q.BaseFactID = fact.ID
	q.TimeToSolve = TimeToSolve(g.policy, q.Type, d)
	q.Marks = g.policy.MarksFor(q.Type, d)
	if q.ConceptsTested == nil {
		q.ConceptsTested = conceptsFor(fact, d)
	}
	if len(q.Explanation.RelatedPYQs) == 0 {
		q.Explanation.RelatedPYQs = relatedPYQs(fact)
	}
	q.Tags = append(q.Tags, fact.Tags...)
	q.Tags = append(q.Tags, q.Type.String(), string(d), fmt.Sprintf("scenario-%d", idx+1))
	if variation {
		q.Tags = append(q.Tags, "variation", "alternate-scenario")
	}

	q.Metadata = question.Metadata{
		CreatedAt:      g.opts.now(),
		HighYieldTopic: fact.Importance == question.ImportanceHigh,
	}
	Score(g, q)
	return q
}

// Score validates q with gen and stores the outcome in q.Metadata.
func Score(gen Generator, q *question.Question) question.ValidationResult {
	res := gen.Validate(q)
	q.Metadata.QualityScore = res.QualityScore
	q.Metadata.DifficultyValidated = res.DifficultyAppropriate
	q.Metadata.FactuallyAccurate = res.FactualAccuracy
	q.Metadata.PYQSimilarity = pyqSimilarity(q)
	q.Metadata.DiscriminationIndex = discriminationIndex(q.Difficulty, res.QualityScore)
	return res
}

// TimeToSolve returns base[type] * multiplier[difficulty], rounded and held
// inside the tier's time window so the estimate never contradicts the tier
// rule it is validated against.
func TimeToSolve(p *policy.Policy, t question.Type, d question.Difficulty) int {
	secs := int(math.Round(p.BaseSeconds(t) * p.DifficultyMultiplier(d)))
	rule, ok := p.TierRule(d)
	if !ok {
		return secs
	}
	if rule.MaxSeconds > 0 && secs > rule.MaxSeconds {
		secs = rule.MaxSeconds
	}
	if rule.MinSeconds > 0 && secs < rule.MinSeconds {
		secs = rule.MinSeconds
	}
	return secs
}

func pyqSimilarity(q *question.Question) float64 {
	v := 0.4 + 0.15*float64(len(q.Explanation.RelatedPYQs))
	return math.Min(v, 0.95)
}

func discriminationIndex(d question.Difficulty, quality int) float64 {
	base := 0.5
	switch d {
	case question.DifficultyEasy:
		base = 0.3
	case question.DifficultyHard:
		base = 0.7
	}
	return math.Round(base*float64(quality)) / 100
}
