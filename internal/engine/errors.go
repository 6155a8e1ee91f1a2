package engine

import (
	"fmt"

	"github.com/abhisek/factforge/internal/question"
)

// Pass names one stage of a multiplication run.
type Pass string

const (
	PassMain       Pass = "main"
	PassHighImpact Pass = "high_impact"
	PassContextual Pass = "contextual"
)

// GenerationError reports a single generator call that failed, timed out
// or panicked. It is recorded and logged; it never aborts a run.
type GenerationError struct {
	Pass    Pass
	Type    question.Type
	Context string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s pass: %s (%s): %v", e.Pass, e.Type, e.Context, e.Err)
	}
	return fmt.Sprintf("%s pass: %s: %v", e.Pass, e.Type, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
