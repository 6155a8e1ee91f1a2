package engine

import (
	"fmt"

	"github.com/abhisek/factforge/internal/question"
)

const dedupPrefixRunes = 50

// Deduplicate keeps the first question per type, difficulty and leading
// stem text. It is idempotent and preserves order.
func Deduplicate(qs []*question.Question) []*question.Question {
	seen := make(map[string]bool, len(qs))
	out := make([]*question.Question, 0, len(qs))
	for _, q := range qs {
		k := dedupKey(q)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, q)
	}
	return out
}

func dedupKey(q *question.Question) string {
	text := []rune(q.Text)
	if len(text) > dedupPrefixRunes {
		text = text[:dedupPrefixRunes]
	}
	return fmt.Sprintf("%s-%s-%s", q.Type, q.Difficulty, string(text))
}
