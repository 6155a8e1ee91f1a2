// Package engine multiplies one base fact into a deduplicated batch of
// questions across every relevant archetype, tier and framing.
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/factforge/internal/generator"
	"github.com/abhisek/factforge/internal/logger"
	"github.com/abhisek/factforge/internal/policy"
	"github.com/abhisek/factforge/internal/question"
)

const (
	DefaultConcurrency = 8
	DefaultCallTimeout = 5 * time.Second
)

// Engine runs multiplication passes over a generator registry. An Engine
// is safe for concurrent use.
type Engine struct {
	policy      *policy.Policy
	registry    generator.Registry
	log         *logger.Logger
	concurrency int
	callTimeout time.Duration
	seed        *uint64
	newID       func() string
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency bounds the number of generator calls in flight.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithCallTimeout bounds each generator call. A call that overruns yields
// no questions.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.callTimeout = d
		}
	}
}

// WithSeed makes scenario selection and option shuffling reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = &seed }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithIDFunc overrides the id source for derived questions.
func WithIDFunc(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithClock overrides the creation timestamp of derived questions.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// New builds an engine over reg using the tables in p.
func New(p *policy.Policy, reg generator.Registry, opts ...Option) *Engine {
	e := &Engine{
		policy:      p,
		registry:    reg,
		log:         logger.Nop(),
		concurrency: DefaultConcurrency,
		callTimeout: DefaultCallTimeout,
		newID:       uuid.NewString,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one multiplication run.
type Result struct {
	Questions []*question.Question
	Report    Report
}

// Report summarises a run.
type Report struct {
	BaseFactID        string
	Subject           string
	Factor            int
	Seed              uint64
	RelevantTypes     []question.Type
	HighImpactTypes   []question.Type
	MainCount         int
	HighImpactCount   int
	ContextualCount   int
	TypeCounts        map[question.Type]int
	Failures          []*GenerationError
	DuplicatesRemoved int
	Total             int
	Duration          time.Duration
}

// call is one planned generator invocation.
type call struct {
	pass    Pass
	context string
	cfg     generator.Config
	// post derives variations and negative forms from the main questions
	// before the per-type cap is applied.
	post bool
}

// MultiplyFromBaseFact returns the deduplicated question batch for fact.
// It never fails: calls that fail are logged and contribute nothing.
func (e *Engine) MultiplyFromBaseFact(ctx context.Context, fact question.BaseFact) []*question.Question {
	return e.Multiply(ctx, fact).Questions
}

// Multiply runs the main, high-impact and contextual passes concurrently,
// then deduplicates the combined output in pass order.
func (e *Engine) Multiply(ctx context.Context, fact question.BaseFact) Result {
	start := time.Now()
	fact = fact.Clone()

	seed := uint64(start.UnixNano())
	if e.seed != nil {
		seed = *e.seed
	}
	factor := e.CalculateMultiplicationFactor(fact)
	report := Report{
		BaseFactID:      fact.ID,
		Subject:         fact.Subject,
		Factor:          factor,
		Seed:            seed,
		RelevantTypes:   e.RelevantQuestionTypes(fact),
		HighImpactTypes: e.HighImpactTypes(fact),
		TypeCounts:      make(map[question.Type]int),
	}
	log := e.log.With("base_fact_id", fact.ID, "factor", factor)

	calls := e.plan(fact, factor, report.RelevantTypes, report.HighImpactTypes)
	results := make([][]*question.Question, len(calls))
	failures := make([]*GenerationError, len(calls))

	// Failures are recorded per slot and never returned, so one failing
	// call cannot cancel its siblings.
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range calls {
		c := calls[i]
		c.cfg.Rand = rand.New(rand.NewPCG(seed, uint64(i)+1))
		g.Go(func() error {
			qs, err := e.run(ctx, c)
			if err != nil {
				failures[i] = err
				log.Warn("generator call failed", "pass", string(c.pass), "type", c.cfg.QuestionTypes[0].String(), "context", c.context, "error", err.Error())
				return nil
			}
			results[i] = qs
			return nil
		})
	}
	_ = g.Wait()

	var all []*question.Question
	for i, qs := range results {
		switch calls[i].pass {
		case PassMain:
			report.MainCount += len(qs)
		case PassHighImpact:
			report.HighImpactCount += len(qs)
		case PassContextual:
			report.ContextualCount += len(qs)
		}
		all = append(all, qs...)
		if failures[i] != nil {
			report.Failures = append(report.Failures, failures[i])
		}
	}

	out := Deduplicate(all)
	for _, q := range out {
		report.TypeCounts[q.Type]++
	}
	report.DuplicatesRemoved = len(all) - len(out)
	report.Total = len(out)
	report.Duration = time.Since(start)

	log.Info("multiplication complete",
		"total", report.Total,
		"main", report.MainCount,
		"high_impact", report.HighImpactCount,
		"contextual", report.ContextualCount,
		"duplicates_removed", report.DuplicatesRemoved,
		"failures", len(report.Failures),
		"duration_ms", report.Duration.Milliseconds(),
	)
	return Result{Questions: out, Report: report}
}

// plan lays out every call of the three passes in output order.
func (e *Engine) plan(fact question.BaseFact, factor int, relevant, highImpact []question.Type) []call {
	op := e.policy.Orchestration
	maxPerType := factor * op.QuestionsPerFactor
	if maxPerType > op.MaxQuestionsPerType {
		maxPerType = op.MaxQuestionsPerType
	}

	var calls []call
	for _, t := range relevant {
		calls = append(calls, call{
			pass: PassMain,
			post: true,
			cfg: generator.Config{
				BaseFact:            fact.Clone(),
				QuestionTypes:       []question.Type{t},
				Difficulties:        question.AllDifficulties(),
				GenerateNegatives:   factor > op.NegativesAbove,
				IncludeVariations:   factor > op.VariationsAbove,
				MaxQuestionsPerType: maxPerType,
			},
		})
	}

	deep := DeepVariants(fact)
	for _, t := range highImpact {
		for _, v := range deep {
			calls = append(calls, call{
				pass:    PassHighImpact,
				context: v.Kind,
				cfg: generator.Config{
					BaseFact:            v.Fact.Clone(),
					QuestionTypes:       []question.Type{t},
					Difficulties:        v.Difficulties,
					IncludeVariations:   true,
					MaxQuestionsPerType: op.DeepVariationMax,
				},
			})
		}
	}

	for _, v := range e.ContextualVariants(fact) {
		for _, t := range v.Types {
			calls = append(calls, call{
				pass:    PassContextual,
				context: v.Kind,
				cfg: generator.Config{
					BaseFact:      v.Fact.Clone(),
					QuestionTypes: []question.Type{t},
					Difficulties:  v.Difficulties,
				},
			})
		}
	}
	return calls
}

// run executes one call under the per-call timeout, converting errors,
// panics and overruns into a GenerationError.
func (e *Engine) run(ctx context.Context, c call) ([]*question.Question, *GenerationError) {
	t := c.cfg.QuestionTypes[0]
	fail := func(err error) *GenerationError {
		return &GenerationError{Pass: c.pass, Type: t, Context: c.context, Err: err}
	}

	gen, err := e.registry.For(t)
	if err != nil {
		return nil, fail(err)
	}

	cctx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	type outcome struct {
		qs  []*question.Question
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.log.Error("generator panicked", "type", t.String(), "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		qs, err := gen.Generate(cctx, c.cfg)
		if err == nil && c.post {
			qs = e.postProcess(c.cfg, qs)
		}
		done <- outcome{qs: qs, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return nil, fail(o.err)
		}
		return o.qs, nil
	case <-cctx.Done():
		return nil, fail(cctx.Err())
	}
}

// postProcess appends variations and negative forms derived from the main
// questions. The generator already caps its own output; each derived
// category gets its own cap, drawn round-robin across the main questions so
// every source contributes.
func (e *Engine) postProcess(cfg generator.Config, qs []*question.Question) []*question.Question {
	var main []*question.Question
	for _, q := range qs {
		if !q.HasTag(TagVariation) {
			main = append(main, q)
		}
	}
	out := qs
	if cfg.IncludeVariations {
		out = append(out, interleave(cfg.MaxQuestionsPerType, main, e.GenerateVariations)...)
	}
	if cfg.GenerateNegatives {
		out = append(out, interleave(cfg.MaxQuestionsPerType, main, e.CreateNegativeVersions)...)
	}
	return out
}

// interleave takes one form from each source's derived set in turn until
// limit forms are collected or every set is exhausted. limit <= 0 means
// no cap.
func interleave(limit int, src []*question.Question, derive func(*question.Question) []*question.Question) []*question.Question {
	groups := make([][]*question.Question, 0, len(src))
	total := 0
	for _, q := range src {
		if d := derive(q); len(d) > 0 {
			groups = append(groups, d)
			total += len(d)
		}
	}
	if limit <= 0 || limit > total {
		limit = total
	}
	out := make([]*question.Question, 0, limit)
	for i := 0; len(out) < limit; i++ {
		for _, g := range groups {
			if i < len(g) && len(out) < limit {
				out = append(out, g[i])
			}
		}
	}
	return out
}
