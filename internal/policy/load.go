package policy

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/factforge/internal/question"
)

// SupportedMajor is the policy document major version this build reads.
const SupportedMajor = "v1"

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultOnce   sync.Once
	defaultPolicy *Policy
)

// Default returns the embedded policy. It panics if the embedded document
// is invalid, which the package tests guard against.
func Default() *Policy {
	defaultOnce.Do(func() {
		p, err := Parse(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded policy: %v", err))
		}
		defaultPolicy = p
	})
	return defaultPolicy
}

// DefaultYAML returns the embedded policy document.
func DefaultYAML() []byte {
	return bytes.Clone(defaultYAML)
}

// Load reads and validates a policy file.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	return Parse(data)
}

// Parse validates a YAML policy document against the policy schema, checks
// its version and resolves every type tag.
func Parse(data []byte) (*Policy, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidPolicyError{Reason: "parse yaml", Err: err}
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var p Policy
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, &InvalidPolicyError{Reason: "decode", Err: err}
	}

	if !semver.IsValid(p.Version) {
		return nil, &InvalidPolicyError{Reason: fmt.Sprintf("version %q is not a valid semantic version", p.Version)}
	}
	if major := semver.Major(p.Version); major != SupportedMajor {
		return nil, &InvalidPolicyError{Reason: fmt.Sprintf("version %s: unsupported major %s, want %s", p.Version, major, SupportedMajor)}
	}
	if p.Factor.Min > p.Factor.Max {
		return nil, &InvalidPolicyError{Reason: fmt.Sprintf("factor min %d exceeds max %d", p.Factor.Min, p.Factor.Max)}
	}

	resolved, err := resolve(&p)
	if err != nil {
		return nil, err
	}
	p.resolved = resolved
	return &p, nil
}

// YAML renders the policy back to a YAML document.
func (p *Policy) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}

// validateDocument checks the generic YAML tree against the schema. The
// schema library expects JSON-decoded values, so the tree is round-tripped
// through encoding/json first.
func validateDocument(doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return &InvalidPolicyError{Reason: "policy is not representable as JSON", Err: err}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidPolicyError{Reason: "reparse", Err: err}
	}
	compiled, err := compiledSchema()
	if err != nil {
		return &InvalidPolicyError{Reason: "compile schema", Err: err}
	}
	if err := compiled.Validate(parsed); err != nil {
		return &InvalidPolicyError{Reason: "schema validation failed", Err: err}
	}
	return nil
}

func resolve(p *Policy) (*resolvedTables, error) {
	r := &resolvedTables{
		overrides:    make(map[string]map[question.Type]int),
		exclusions:   make(map[string]map[question.Type]bool),
		contextTypes: make(map[string][]question.Type),
	}

	for tag, score := range p.Orchestration.ImpactScores {
		t, err := parseTag("impact_scores", tag)
		if err != nil {
			return nil, err
		}
		r.impact[t] = score
	}
	for subject, row := range p.Orchestration.ImpactOverrides {
		m := make(map[question.Type]int, len(row))
		for tag, score := range row {
			t, err := parseTag("impact_overrides."+subject, tag)
			if err != nil {
				return nil, err
			}
			m[t] = score
		}
		r.overrides[subject] = m
	}
	for subject, tags := range p.Orchestration.SubjectExclusions {
		m := make(map[question.Type]bool, len(tags))
		for _, tag := range tags {
			t, err := parseTag("subject_exclusions."+subject, tag)
			if err != nil {
				return nil, err
			}
			m[t] = true
		}
		r.exclusions[subject] = m
	}
	for ctx, tags := range p.Orchestration.ContextTypes {
		for _, tag := range tags {
			t, err := parseTag("context_types."+ctx, tag)
			if err != nil {
				return nil, err
			}
			r.contextTypes[ctx] = append(r.contextTypes[ctx], t)
		}
	}
	for tag, secs := range p.Timing.BaseSeconds {
		t, err := parseTag("base_seconds", tag)
		if err != nil {
			return nil, err
		}
		r.baseSeconds[t] = secs
	}
	for tag, row := range p.Marks {
		t, err := parseTag("marks", tag)
		if err != nil {
			return nil, err
		}
		r.marks[t] = row
	}

	for _, t := range question.AllTypes() {
		if r.baseSeconds[t] <= 0 {
			return nil, &InvalidPolicyError{Reason: fmt.Sprintf("timing.base_seconds: missing entry for %s", t)}
		}
		if _, ok := p.Marks[t.String()]; !ok {
			return nil, &InvalidPolicyError{Reason: fmt.Sprintf("marks: missing entry for %s", t)}
		}
	}
	for _, d := range question.AllDifficulties() {
		if _, ok := p.Validation.Tiers[string(d)]; !ok {
			return nil, &InvalidPolicyError{Reason: fmt.Sprintf("validation.tiers: missing tier %s", d)}
		}
	}
	return r, nil
}

func parseTag(table, tag string) (question.Type, error) {
	t, err := question.ParseType(tag)
	if err != nil {
		return question.TypeInvalid, &InvalidPolicyError{Reason: table, Err: err}
	}
	return t, nil
}
