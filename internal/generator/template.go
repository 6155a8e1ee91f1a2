package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

// scene is the substitution context for one rendered scenario.
type scene struct {
	fact     question.BaseFact
	d        question.Difficulty
	rng      *rand.Rand
	replacer *strings.Replacer
}

func newScene(fact question.BaseFact, d question.Difficulty, rng *rand.Rand) *scene {
	concepts := paddedConcepts(fact, 3)
	related := "the related provisions on " + fact.Topic
	if len(fact.RelatedFacts) > 0 {
		related = fact.RelatedFacts[0]
	}
	source := fact.Source
	if source == "" {
		source = "the relevant provision"
	}
	return &scene{
		fact: fact,
		d:    d,
		rng:  rng,
		replacer: strings.NewReplacer(
			"{content}", strings.TrimSuffix(strings.TrimSpace(fact.Content), "."),
			"{source}", source,
			"{topic}", fact.Topic,
			"{subject}", fact.Subject,
			"{concept1}", concepts[0],
			"{concept2}", concepts[1],
			"{concept3}", concepts[2],
			"{related}", related,
		),
	}
}

// fill substitutes base fact fields into tpl.
func (s *scene) fill(tpl string) string {
	return s.replacer.Replace(tpl)
}

// fillAll substitutes every template in tpls.
func (s *scene) fillAll(tpls []string) []string {
	out := make([]string, len(tpls))
	for i, t := range tpls {
		out[i] = s.fill(t)
	}
	return out
}

// choice is a template option before shuffling.
type choice struct {
	text    string
	correct bool
	why     string
}

// options shuffles choices, labels them A-D and returns the rationale for
// every incorrect option keyed by its final label.
func (s *scene) options(choices []choice) ([]question.Option, []string) {
	shuffled := make([]choice, len(choices))
	copy(shuffled, choices)
	s.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	opts := make([]question.Option, len(shuffled))
	for i, c := range shuffled {
		opts[i] = question.Option{Text: s.fill(c.text), IsCorrect: c.correct}
	}
	question.Relabel(opts)

	var whyWrong []string
	for i, c := range shuffled {
		if !c.correct && c.why != "" {
			whyWrong = append(whyWrong, fmt.Sprintf("Option %s is incorrect: %s", opts[i].Label, s.fill(c.why)))
		}
	}
	return opts, whyWrong
}

// paddedConcepts returns at least n concepts, padding with the topic,
// source and subject when the fact lists fewer.
func paddedConcepts(fact question.BaseFact, n int) []string {
	out := uniqueNonEmpty(fact.Concepts)
	for _, extra := range []string{fact.Topic, fact.Source, fact.Subject} {
		if len(out) >= n {
			break
		}
		out = uniqueNonEmpty(append(out, extra))
	}
	for len(out) < n {
		out = append(out, fact.Topic)
	}
	return out
}

// conceptsFor picks the tested concepts for a tier: one for easy, up to
// three for medium, and at least three for hard.
func conceptsFor(fact question.BaseFact, d question.Difficulty) []string {
	concepts := uniqueNonEmpty(fact.Concepts)
	switch d {
	case question.DifficultyEasy:
		return paddedConcepts(fact, 1)[:1]
	case question.DifficultyMedium:
		if len(concepts) == 0 {
			return paddedConcepts(fact, 1)[:1]
		}
		if len(concepts) > 3 {
			concepts = concepts[:3]
		}
		return concepts
	default:
		if len(concepts) >= 3 {
			return concepts
		}
		return uniqueNonEmpty(paddedConcepts(fact, 3))
	}
}

func relatedPYQs(fact question.BaseFact) []string {
	out := []string{fmt.Sprintf("Previous year questions on %s (%s)", fact.Topic, fact.Subject)}
	for _, r := range fact.RelatedFacts {
		if len(out) == 3 {
			break
		}
		out = append(out, "Linked PYQ theme: "+r)
	}
	return out
}

func uniqueNonEmpty(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// pick returns pool[idx] clamped to the pool bounds.
func pick[T any](pool []T, idx int) T {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(pool) {
		idx = len(pool) - 1
	}
	return pool[idx]
}

// tierPool indexes scenario pools by difficulty.
type tierPool[T any] struct {
	easy, medium, hard []T
}

func (p tierPool[T]) get(d question.Difficulty) []T {
	switch d {
	case question.DifficultyEasy:
		return p.easy
	case question.DifficultyHard:
		return p.hard
	default:
		return p.medium
	}
}
