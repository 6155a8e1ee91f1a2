package policy

import (
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://factforge-policy.json"

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func numberMap() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "number", "minimum": 0},
	}
}

func intMap() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "integer"},
	}
}

func stringListMap() map[string]any {
	return map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	}
}

func nonNegInt() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0}
}

// policySchema is the JSON schema every policy document must satisfy.
func policySchema() map[string]any {
	tierMarks := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"easy":   nonNegInt(),
			"medium": nonNegInt(),
			"hard":   nonNegInt(),
		},
		"required":             []any{"easy", "medium", "hard"},
		"additionalProperties": false,
	}
	tierRule := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"min_concepts": nonNegInt(),
			"max_concepts": nonNegInt(),
			"min_seconds":  nonNegInt(),
			"max_seconds":  nonNegInt(),
			"levels": map[string]any{
				"type": "array",
				"items": map[string]any{
					"enum": []any{"recall", "application", "analysis", "synthesis", "evaluation"},
				},
				"minItems": 1,
			},
		},
		"required":             []any{"levels"},
		"additionalProperties": false,
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"version": map[string]any{"type": "string", "pattern": "^v[0-9]+"},
			"factor": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"importance":             numberMap(),
					"concept_threshold":      nonNegInt(),
					"concept_multiplier":     map[string]any{"type": "number", "exclusiveMinimum": 0},
					"related_threshold":      nonNegInt(),
					"related_multiplier":     map[string]any{"type": "number", "exclusiveMinimum": 0},
					"subject_weights":        numberMap(),
					"default_subject_weight": map[string]any{"type": "number", "exclusiveMinimum": 0},
					"min":                    map[string]any{"type": "integer", "minimum": 1},
					"max":                    map[string]any{"type": "integer", "minimum": 1},
				},
				"required": []any{"importance", "subject_weights", "default_subject_weight", "min", "max"},
			},
			"orchestration": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"negatives_above":        nonNegInt(),
					"variations_above":       nonNegInt(),
					"questions_per_factor":   map[string]any{"type": "integer", "minimum": 1},
					"max_questions_per_type": map[string]any{"type": "integer", "minimum": 1},
					"high_impact_count":      nonNegInt(),
					"deep_variation_max":     map[string]any{"type": "integer", "minimum": 1},
					"subject_exclusions":     stringListMap(),
					"impact_scores":          intMap(),
					"impact_overrides": map[string]any{
						"type":                 "object",
						"additionalProperties": intMap(),
					},
					"context_types": stringListMap(),
				},
				"required": []any{"max_questions_per_type", "impact_scores", "context_types"},
			},
			"timing": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"base_seconds":           numberMap(),
					"difficulty_multipliers": numberMap(),
				},
				"required": []any{"base_seconds", "difficulty_multipliers"},
			},
			"marks": map[string]any{
				"type":                 "object",
				"additionalProperties": tierMarks,
			},
			"validation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"min_text_length": nonNegInt(),
					"hedge_words": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"deductions": map[string]any{
						"type":                 "object",
						"additionalProperties": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					},
					"tiers": map[string]any{
						"type":                 "object",
						"additionalProperties": tierRule,
					},
				},
				"required": []any{"deductions", "tiers"},
			},
			"variation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"time_step": nonNegInt(),
					"min_time":  nonNegInt(),
					"max_time":  nonNegInt(),
				},
			},
		},
		"required": []any{"version", "factor", "orchestration", "timing", "marks", "validation", "variation"},
	}
}

// compiledSchema compiles the policy schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler expects JSON-decoded values, so round-trip the Go
		// literal through encoding/json.
		raw, err := json.Marshal(policySchema())
		if err != nil {
			schemaErr = err
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = err
			return
		}
		schemaCompiled, schemaErr = c.Compile(schemaURL)
	})
	return schemaCompiled, schemaErr
}
