package question

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Payload is the type-specific body of a question. Exactly one concrete
// payload exists per archetype; Kind names it.
type Payload interface {
	Kind() Type
	Clone() Payload
}

// Option is one selectable answer.
type Option struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// SingleCorrectPayload has four options with exactly one correct.
type SingleCorrectPayload struct {
	Options []Option `json:"options"`
}

// MultipleCorrectPayload has four options with two or three correct.
type MultipleCorrectPayload struct {
	Options      []Option `json:"options"`
	CorrectCount int      `json:"correct_count"`
}

// Pair links LeftColumn[Left] to RightColumn[Right].
type Pair struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// MatchPayload pairs two five-item columns.
type MatchPayload struct {
	LeftColumn   []string `json:"left_column"`
	RightColumn  []string `json:"right_column"`
	CorrectPairs []Pair   `json:"correct_pairs"`
}

// AssertionReasonPayload is an A/R item with the four standard options.
type AssertionReasonPayload struct {
	Assertion      string   `json:"assertion"`
	Reason         string   `json:"reason"`
	AssertionTrue  bool     `json:"assertion_true"`
	ReasonTrue     bool     `json:"reason_true"`
	ReasonExplains bool     `json:"reason_explains"`
	Options        []Option `json:"options"`
}

// Statement is one numbered claim in a statement-based item.
type Statement struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	IsTrue bool   `json:"is_true"`
}

// StatementPayload lists 2-4 statements and the combination that answers
// the stem.
type StatementPayload struct {
	Statements         []Statement `json:"statements"`
	CorrectCombination []int       `json:"correct_combination"`
	Options            []Option    `json:"options"`
}

// SequencePayload lists items in display order. CorrectSequence holds the
// 1-based display positions in their correct chronological/logical order.
type SequencePayload struct {
	Items           []string `json:"items"`
	CorrectSequence []int    `json:"correct_sequence"`
}

// OddOneOutPayload has four options, three sharing Category.
type OddOneOutPayload struct {
	Options     []string `json:"options"`
	OddOneIndex int      `json:"odd_one_index"`
	Category    string   `json:"category"`
}

// SubQuestion is one item attached to a case-study passage.
type SubQuestion struct {
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// CaseStudyPayload is a passage with dependent sub-questions.
type CaseStudyPayload struct {
	Passage      string        `json:"passage"`
	SubQuestions []SubQuestion `json:"sub_questions"`
}

// Location is one candidate place in a map-based item.
type Location struct {
	Name      string `json:"name"`
	Clue      string `json:"clue"`
	IsCorrect bool   `json:"is_correct"`
}

// MapPayload describes a map region and candidate locations.
type MapPayload struct {
	MapDescription string     `json:"map_description"`
	Locations      []Location `json:"locations"`
}

// DataPoint is one row of the data source.
type DataPoint struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DataPayload pairs a numeric data source with four interpretations.
type DataPayload struct {
	DataSource      string      `json:"data_source"`
	DataPoints      []DataPoint `json:"data_points"`
	Interpretations []Option    `json:"interpretations"`
}

func (*SingleCorrectPayload) Kind() Type   { return TypeSingleCorrectMCQ }
func (*MultipleCorrectPayload) Kind() Type { return TypeMultipleCorrectMCQ }
func (*MatchPayload) Kind() Type           { return TypeMatchTheFollowing }
func (*AssertionReasonPayload) Kind() Type { return TypeAssertionReasoning }
func (*StatementPayload) Kind() Type       { return TypeStatementBased }
func (*SequencePayload) Kind() Type        { return TypeSequenceArrangement }
func (*OddOneOutPayload) Kind() Type       { return TypeOddOneOut }
func (*CaseStudyPayload) Kind() Type       { return TypeCaseStudyBased }
func (*MapPayload) Kind() Type             { return TypeMapBased }
func (*DataPayload) Kind() Type            { return TypeDataBased }

func (p *SingleCorrectPayload) Clone() Payload {
	return &SingleCorrectPayload{Options: cloneOptions(p.Options)}
}

func (p *MultipleCorrectPayload) Clone() Payload {
	return &MultipleCorrectPayload{Options: cloneOptions(p.Options), CorrectCount: p.CorrectCount}
}

func (p *MatchPayload) Clone() Payload {
	pairs := make([]Pair, len(p.CorrectPairs))
	copy(pairs, p.CorrectPairs)
	return &MatchPayload{
		LeftColumn:   cloneStrings(p.LeftColumn),
		RightColumn:  cloneStrings(p.RightColumn),
		CorrectPairs: pairs,
	}
}

func (p *AssertionReasonPayload) Clone() Payload {
	c := *p
	c.Options = cloneOptions(p.Options)
	return &c
}

func (p *StatementPayload) Clone() Payload {
	st := make([]Statement, len(p.Statements))
	copy(st, p.Statements)
	return &StatementPayload{
		Statements:         st,
		CorrectCombination: cloneInts(p.CorrectCombination),
		Options:            cloneOptions(p.Options),
	}
}

func (p *SequencePayload) Clone() Payload {
	return &SequencePayload{Items: cloneStrings(p.Items), CorrectSequence: cloneInts(p.CorrectSequence)}
}

func (p *OddOneOutPayload) Clone() Payload {
	return &OddOneOutPayload{Options: cloneStrings(p.Options), OddOneIndex: p.OddOneIndex, Category: p.Category}
}

func (p *CaseStudyPayload) Clone() Payload {
	subs := make([]SubQuestion, len(p.SubQuestions))
	for i, s := range p.SubQuestions {
		subs[i] = SubQuestion{Text: s.Text, Options: cloneOptions(s.Options)}
	}
	return &CaseStudyPayload{Passage: p.Passage, SubQuestions: subs}
}

func (p *MapPayload) Clone() Payload {
	locs := make([]Location, len(p.Locations))
	copy(locs, p.Locations)
	return &MapPayload{MapDescription: p.MapDescription, Locations: locs}
}

func (p *DataPayload) Clone() Payload {
	pts := make([]DataPoint, len(p.DataPoints))
	copy(pts, p.DataPoints)
	return &DataPayload{DataSource: p.DataSource, DataPoints: pts, Interpretations: cloneOptions(p.Interpretations)}
}

// OptionLabels are assigned to options in display order.
var OptionLabels = []string{"A", "B", "C", "D", "E", "F"}

// Relabel assigns A, B, C... to opts in place.
func Relabel(opts []Option) {
	for i := range opts {
		if i < len(OptionLabels) {
			opts[i].Label = OptionLabels[i]
		} else {
			opts[i].Label = strconv.Itoa(i + 1)
		}
	}
}

// CountCorrect returns how many options are flagged correct.
func CountCorrect(opts []Option) int {
	n := 0
	for _, o := range opts {
		if o.IsCorrect {
			n++
		}
	}
	return n
}

// CorrectOptions returns "A) text" style descriptions of the correct options.
func CorrectOptions(opts []Option) []string {
	var out []string
	for _, o := range opts {
		if o.IsCorrect {
			out = append(out, fmt.Sprintf("%s) %s", o.Label, o.Text))
		}
	}
	return out
}

// CombinationLabel renders a statement combination, e.g. "1 and 3 only".
func CombinationLabel(combo []int, total int) string {
	switch {
	case len(combo) == 0:
		return "None of the statements"
	case len(combo) == total && total > 1:
		return "All of the statements"
	case len(combo) == 1:
		return fmt.Sprintf("%d only", combo[0])
	}
	parts := make([]string, len(combo))
	for i, n := range combo {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1] + " only"
}

// CombinationOptions builds four answer options for a statement set of size
// total, one of which is the label for correct. Distractors are the nearest
// subsets by size; options are ordered by subset size for a stable layout.
func CombinationOptions(total int, correct []int) []Option {
	want := sortedCopy(correct)
	var subsets [][]int
	for mask := 0; mask < 1<<total; mask++ {
		var s []int
		for i := 0; i < total; i++ {
			if mask&(1<<i) != 0 {
				s = append(s, i+1)
			}
		}
		subsets = append(subsets, s)
	}
	sort.SliceStable(subsets, func(i, j int) bool {
		di, dj := abs(len(subsets[i])-len(want)), abs(len(subsets[j])-len(want))
		if di != dj {
			return di < dj
		}
		return lexLess(subsets[i], subsets[j])
	})

	chosen := [][]int{want}
	for _, s := range subsets {
		if len(chosen) == 4 {
			break
		}
		if equalInts(s, want) {
			continue
		}
		chosen = append(chosen, s)
	}
	sort.SliceStable(chosen, func(i, j int) bool {
		if len(chosen[i]) != len(chosen[j]) {
			return len(chosen[i]) < len(chosen[j])
		}
		return lexLess(chosen[i], chosen[j])
	})

	opts := make([]Option, len(chosen))
	for i, s := range chosen {
		opts[i] = Option{Text: CombinationLabel(s, total), IsCorrect: equalInts(s, want)}
	}
	Relabel(opts)
	return opts
}

func cloneOptions(o []Option) []Option {
	if o == nil {
		return nil
	}
	out := make([]Option, len(o))
	copy(out, o)
	return out
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func sortedCopy(s []int) []int {
	out := cloneInts(s)
	if out == nil {
		out = []int{}
	}
	sort.Ints(out)
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
