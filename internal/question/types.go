package question

import (
	"fmt"
	"time"
)

// Importance ranks how central a base fact is to the syllabus.
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// Difficulty is the tier a question is authored for.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns the tiers in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Easier returns the tier one step below d, or d itself for easy.
func (d Difficulty) Easier() Difficulty {
	switch d {
	case DifficultyHard:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// Harder returns the tier one step above d, or d itself for hard.
func (d Difficulty) Harder() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// BaseFact is an authored factual statement used as generation input.
// Values are treated as immutable; use Clone before deriving variants.
type BaseFact struct {
	ID           string     `json:"id" yaml:"id"`
	Subject      string     `json:"subject" yaml:"subject"`
	Topic        string     `json:"topic" yaml:"topic"`
	Content      string     `json:"content" yaml:"content"`
	Source       string     `json:"source" yaml:"source"`
	Importance   Importance `json:"importance" yaml:"importance"`
	Concepts     []string   `json:"concepts" yaml:"concepts"`
	RelatedFacts []string   `json:"related_facts" yaml:"related_facts"`
	Tags         []string   `json:"tags" yaml:"tags"`
}

// Clone returns a deep copy of the fact.
func (f BaseFact) Clone() BaseFact {
	f.Concepts = cloneStrings(f.Concepts)
	f.RelatedFacts = cloneStrings(f.RelatedFacts)
	f.Tags = cloneStrings(f.Tags)
	return f
}

// Validate checks the fields every generator depends on.
func (f BaseFact) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("base fact: id is required")
	}
	if f.Subject == "" {
		return fmt.Errorf("base fact %s: subject is required", f.ID)
	}
	if f.Content == "" {
		return fmt.Errorf("base fact %s: content is required", f.ID)
	}
	switch f.Importance {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
	default:
		return fmt.Errorf("base fact %s: importance must be low, medium or high, got %q", f.ID, f.Importance)
	}
	return nil
}

// Explanation is the pedagogical bundle attached to every question.
type Explanation struct {
	CorrectAnswer  string   `json:"correct_answer"`
	WhyCorrect     string   `json:"why_correct"`
	WhyOthersWrong []string `json:"why_others_wrong"`
	ConceptClarity string   `json:"concept_clarity"`
	MemoryTrick    string   `json:"memory_trick"`
	CommonMistakes []string `json:"common_mistakes"`
	RelatedPYQs    []string `json:"related_pyqs"`
}

// Metadata holds generation-time assessments of a question.
type Metadata struct {
	CreatedAt           time.Time `json:"created_at"`
	QualityScore        int       `json:"quality_score"`
	PYQSimilarity       float64   `json:"pyq_similarity"`
	DiscriminationIndex float64   `json:"discrimination_index"`
	HighYieldTopic      bool      `json:"high_yield_topic"`
	DifficultyValidated bool      `json:"difficulty_validated"`
	FactuallyAccurate   bool      `json:"factually_accurate"`
}

// Question is a fully specified exam item.
type Question struct {
	ID             string      `json:"id"`
	Type           Type        `json:"type"`
	Text           string      `json:"question_text"`
	Payload        Payload     `json:"payload"`
	Difficulty     Difficulty  `json:"difficulty"`
	Subject        string      `json:"subject"`
	Topic          string      `json:"topic"`
	BaseFactID     string      `json:"base_fact_id"`
	TimeToSolve    int         `json:"time_to_solve"`
	Marks          int         `json:"marks"`
	ConceptsTested []string    `json:"concepts_tested"`
	Explanation    Explanation `json:"explanation"`
	Metadata       Metadata    `json:"metadata"`
	Tags           []string    `json:"tags"`
}

// Clone returns a deep copy of q so derived questions never alias the
// original's slices or payload.
func (q *Question) Clone() *Question {
	c := *q
	if q.Payload != nil {
		c.Payload = q.Payload.Clone()
	}
	c.ConceptsTested = cloneStrings(q.ConceptsTested)
	c.Tags = cloneStrings(q.Tags)
	c.Explanation.WhyOthersWrong = cloneStrings(q.Explanation.WhyOthersWrong)
	c.Explanation.CommonMistakes = cloneStrings(q.Explanation.CommonMistakes)
	c.Explanation.RelatedPYQs = cloneStrings(q.Explanation.RelatedPYQs)
	return &c
}

// HasTag reports whether the question carries tag.
func (q *Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CognitiveLevel is the heuristic thinking level a stem demands.
type CognitiveLevel string

const (
	CognitiveRecall      CognitiveLevel = "recall"
	CognitiveApplication CognitiveLevel = "application"
	CognitiveAnalysis    CognitiveLevel = "analysis"
	CognitiveSynthesis   CognitiveLevel = "synthesis"
	CognitiveEvaluation  CognitiveLevel = "evaluation"
)

// ValidationResult is the heuristic quality assessment of one question.
type ValidationResult struct {
	IsValid               bool           `json:"is_valid"`
	QualityScore          int            `json:"quality_score"`
	Issues                []string       `json:"issues"`
	Suggestions           []string       `json:"suggestions"`
	FactualAccuracy       bool           `json:"factual_accuracy"`
	DifficultyAppropriate bool           `json:"difficulty_appropriate"`
	AmbiguityFree         bool           `json:"ambiguity_free"`
	CognitiveLevel        CognitiveLevel `json:"cognitive_level"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
