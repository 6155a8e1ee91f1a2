package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

// correctMark prefixes the keyed answer in plain-text renderings.
const correctMark = "✓"

// payloadLines renders a payload as plain text, one entry per line, with
// the keyed answer marked.
func payloadLines(p question.Payload) []string {
	switch p := p.(type) {
	case *question.SingleCorrectPayload:
		return optionLines(p.Options)
	case *question.MultipleCorrectPayload:
		return append(optionLines(p.Options), fmt.Sprintf("(%d correct)", p.CorrectCount))
	case *question.MatchPayload:
		return matchLines(p)
	case *question.AssertionReasonPayload:
		lines := []string{
			"Assertion (A): " + p.Assertion + " " + truthLabel(p.AssertionTrue),
			"Reason (R): " + p.Reason + " " + truthLabel(p.ReasonTrue),
		}
		if p.ReasonExplains {
			lines = append(lines, "R explains A")
		}
		return append(lines, optionLines(p.Options)...)
	case *question.StatementPayload:
		var lines []string
		for _, s := range p.Statements {
			lines = append(lines, fmt.Sprintf("%d. %s %s", s.Number, s.Text, truthLabel(s.IsTrue)))
		}
		lines = append(lines, "Key: "+joinInts(p.CorrectCombination, ", "))
		return append(lines, optionLines(p.Options)...)
	case *question.SequencePayload:
		var lines []string
		for i, item := range p.Items {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
		}
		return append(lines, "Order: "+joinInts(p.CorrectSequence, " → "))
	case *question.OddOneOutPayload:
		var lines []string
		for i, o := range p.Options {
			lines = append(lines, markLine(i == p.OddOneIndex, fmt.Sprintf("%s. %s", optionLabel(i), o)))
		}
		return append(lines, "Shared category: "+p.Category)
	case *question.CaseStudyPayload:
		lines := []string{p.Passage}
		for i, sq := range p.SubQuestions {
			lines = append(lines, "", fmt.Sprintf("Q%d. %s", i+1, sq.Text))
			lines = append(lines, optionLines(sq.Options)...)
		}
		return lines
	case *question.MapPayload:
		lines := []string{p.MapDescription}
		for _, l := range p.Locations {
			lines = append(lines, markLine(l.IsCorrect, fmt.Sprintf("%s (%s)", l.Name, l.Clue)))
		}
		return lines
	case *question.DataPayload:
		lines := []string{p.DataSource}
		for _, d := range p.DataPoints {
			lines = append(lines, fmt.Sprintf("  %s: %s", d.Label, d.Value))
		}
		return append(lines, optionLines(p.Interpretations)...)
	case nil:
		return []string{"(no payload)"}
	}
	return []string{fmt.Sprintf("(unrenderable payload %T)", p)}
}

func optionLines(opts []question.Option) []string {
	lines := make([]string, 0, len(opts))
	for _, o := range opts {
		lines = append(lines, markLine(o.IsCorrect, fmt.Sprintf("%s. %s", o.Label, o.Text)))
	}
	return lines
}

func matchLines(p *question.MatchPayload) []string {
	lines := []string{"List I / List II"}
	n := max(len(p.LeftColumn), len(p.RightColumn))
	for i := 0; i < n; i++ {
		var left, right string
		if i < len(p.LeftColumn) {
			left = p.LeftColumn[i]
		}
		if i < len(p.RightColumn) {
			right = p.RightColumn[i]
		}
		lines = append(lines, fmt.Sprintf("  %s. %-32s %d. %s", optionLabel(i), left, i+1, right))
	}
	pairs := make([]string, 0, len(p.CorrectPairs))
	for _, pr := range p.CorrectPairs {
		pairs = append(pairs, fmt.Sprintf("%s-%d", optionLabel(pr.Left), pr.Right+1))
	}
	return append(lines, "Key: "+strings.Join(pairs, ", "))
}

func optionLabel(i int) string {
	if i >= 0 && i < len(question.OptionLabels) {
		return question.OptionLabels[i]
	}
	return strconv.Itoa(i + 1)
}

func markLine(correct bool, s string) string {
	if correct {
		return correctMark + " " + s
	}
	return "  " + s
}

func truthLabel(b bool) string {
	if b {
		return "[true]"
	}
	return "[false]"
}

func joinInts(ns []int, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
