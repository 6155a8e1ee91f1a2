package policy

import (
	"strings"

	"github.com/abhisek/factforge/internal/question"
)

// Policy holds every tunable table used by the generators, the validator
// and the multiplication engine. A loaded Policy is read-only and safe for
// concurrent use.
type Policy struct {
	Version       string               `yaml:"version" json:"version"`
	Factor        FactorPolicy         `yaml:"factor" json:"factor"`
	Orchestration OrchestrationPolicy  `yaml:"orchestration" json:"orchestration"`
	Timing        TimingPolicy         `yaml:"timing" json:"timing"`
	Marks         map[string]TierMarks `yaml:"marks" json:"marks"`
	Validation    ValidationPolicy     `yaml:"validation" json:"validation"`
	Variation     VariationPolicy      `yaml:"variation" json:"variation"`

	resolved *resolvedTables
}

// FactorPolicy drives the multiplication factor calculation.
type FactorPolicy struct {
	Importance           map[string]float64 `yaml:"importance" json:"importance"`
	ConceptThreshold     int                `yaml:"concept_threshold" json:"concept_threshold"`
	ConceptMultiplier    float64            `yaml:"concept_multiplier" json:"concept_multiplier"`
	RelatedThreshold     int                `yaml:"related_threshold" json:"related_threshold"`
	RelatedMultiplier    float64            `yaml:"related_multiplier" json:"related_multiplier"`
	SubjectWeights       map[string]float64 `yaml:"subject_weights" json:"subject_weights"`
	DefaultSubjectWeight float64            `yaml:"default_subject_weight" json:"default_subject_weight"`
	Min                  int                `yaml:"min" json:"min"`
	Max                  int                `yaml:"max" json:"max"`
}

// OrchestrationPolicy controls how many calls each pass makes.
type OrchestrationPolicy struct {
	NegativesAbove      int                       `yaml:"negatives_above" json:"negatives_above"`
	VariationsAbove     int                       `yaml:"variations_above" json:"variations_above"`
	QuestionsPerFactor  int                       `yaml:"questions_per_factor" json:"questions_per_factor"`
	MaxQuestionsPerType int                       `yaml:"max_questions_per_type" json:"max_questions_per_type"`
	HighImpactCount     int                       `yaml:"high_impact_count" json:"high_impact_count"`
	DeepVariationMax    int                       `yaml:"deep_variation_max" json:"deep_variation_max"`
	SubjectExclusions   map[string][]string       `yaml:"subject_exclusions" json:"subject_exclusions"`
	ImpactScores        map[string]int            `yaml:"impact_scores" json:"impact_scores"`
	ImpactOverrides     map[string]map[string]int `yaml:"impact_overrides" json:"impact_overrides"`
	ContextTypes        map[string][]string       `yaml:"context_types" json:"context_types"`
}

// TimingPolicy computes timeToSolve = base[type] * multiplier[difficulty].
type TimingPolicy struct {
	BaseSeconds           map[string]float64 `yaml:"base_seconds" json:"base_seconds"`
	DifficultyMultipliers map[string]float64 `yaml:"difficulty_multipliers" json:"difficulty_multipliers"`
}

// TierMarks is a per-difficulty marks row.
type TierMarks struct {
	Easy   int `yaml:"easy" json:"easy"`
	Medium int `yaml:"medium" json:"medium"`
	Hard   int `yaml:"hard" json:"hard"`
}

// Deductions are the points subtracted from 100 per violated rule.
type Deductions struct {
	ShortText             int `yaml:"short_text" json:"short_text"`
	MissingCorrectAnswer  int `yaml:"missing_correct_answer" json:"missing_correct_answer"`
	MissingWrongRationale int `yaml:"missing_wrong_rationale" json:"missing_wrong_rationale"`
	FactualAccuracy       int `yaml:"factual_accuracy" json:"factual_accuracy"`
	DifficultyMismatch    int `yaml:"difficulty_mismatch" json:"difficulty_mismatch"`
	Ambiguity             int `yaml:"ambiguity" json:"ambiguity"`
	TypeIssue             int `yaml:"type_issue" json:"type_issue"`
}

// TierRule bounds what a difficulty tier may demand. Zero bounds are open.
type TierRule struct {
	MinConcepts int      `yaml:"min_concepts" json:"min_concepts"`
	MaxConcepts int      `yaml:"max_concepts" json:"max_concepts"`
	MinSeconds  int      `yaml:"min_seconds" json:"min_seconds"`
	MaxSeconds  int      `yaml:"max_seconds" json:"max_seconds"`
	Levels      []string `yaml:"levels" json:"levels"`
}

// ValidationPolicy holds the validator's policy constants.
type ValidationPolicy struct {
	MinTextLength int                 `yaml:"min_text_length" json:"min_text_length"`
	HedgeWords    []string            `yaml:"hedge_words" json:"hedge_words"`
	Deductions    Deductions          `yaml:"deductions" json:"deductions"`
	Tiers         map[string]TierRule `yaml:"tiers" json:"tiers"`
}

// VariationPolicy bounds the timeToSolve shift of difficulty variations.
type VariationPolicy struct {
	TimeStep int `yaml:"time_step" json:"time_step"`
	MinTime  int `yaml:"min_time" json:"min_time"`
	MaxTime  int `yaml:"max_time" json:"max_time"`
}

// Context names used by the contextual pass.
const (
	ContextCurrentAffairs = "current_affairs"
	ContextGovernance     = "governance"
	ContextInternational  = "international"
)

// resolvedTables holds the type-keyed tables parsed from their string tags.
type resolvedTables struct {
	impact       [question.NumTypes]int
	overrides    map[string]map[question.Type]int
	exclusions   map[string]map[question.Type]bool
	contextTypes map[string][]question.Type
	baseSeconds  [question.NumTypes]float64
	marks        [question.NumTypes]TierMarks
}

// SubjectWeight returns the weight for subject, matching exactly first and
// then case-insensitively, falling back to the default weight.
func (p *Policy) SubjectWeight(subject string) float64 {
	if w, ok := lookupFold(p.Factor.SubjectWeights, subject); ok {
		return w
	}
	return p.Factor.DefaultSubjectWeight
}

// ImportanceMultiplier returns the factor multiplier for an importance tier.
func (p *Policy) ImportanceMultiplier(imp question.Importance) float64 {
	if m, ok := p.Factor.Importance[string(imp)]; ok {
		return m
	}
	return 1
}

// Excluded returns the types a subject never uses.
func (p *Policy) Excluded(subject string) map[question.Type]bool {
	if ex, ok := lookupFold(p.resolved.exclusions, subject); ok {
		return ex
	}
	return nil
}

// ImpactScore returns the ranking score of t for subject.
func (p *Policy) ImpactScore(subject string, t question.Type) int {
	if ov, ok := lookupFold(p.resolved.overrides, subject); ok {
		if s, ok := ov[t]; ok {
			return s
		}
	}
	return p.resolved.impact[t]
}

// ContextTypes returns the generator subset for a contextual framing.
func (p *Policy) ContextTypes(context string) []question.Type {
	return p.resolved.contextTypes[context]
}

// DifficultyMultiplier returns the time multiplier for d.
func (p *Policy) DifficultyMultiplier(d question.Difficulty) float64 {
	if m, ok := p.Timing.DifficultyMultipliers[string(d)]; ok {
		return m
	}
	return 1
}

// BaseSeconds returns the base solving time for t.
func (p *Policy) BaseSeconds(t question.Type) float64 {
	if !t.Valid() {
		return 0
	}
	return p.resolved.baseSeconds[t]
}

// MarksFor returns the marks awarded for t at difficulty d.
func (p *Policy) MarksFor(t question.Type, d question.Difficulty) int {
	if !t.Valid() {
		return 0
	}
	row := p.resolved.marks[t]
	switch d {
	case question.DifficultyEasy:
		return row.Easy
	case question.DifficultyHard:
		return row.Hard
	default:
		return row.Medium
	}
}

// TierRule returns the appropriateness rule for d.
func (p *Policy) TierRule(d question.Difficulty) (TierRule, bool) {
	r, ok := p.Validation.Tiers[string(d)]
	return r, ok
}

func lookupFold[V any](m map[string]V, key string) (V, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	var zero V
	return zero, false
}
