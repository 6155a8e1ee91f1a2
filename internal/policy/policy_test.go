package policy

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/factforge/internal/question"
)

func TestDefault_Valid(t *testing.T) {
	p := Default()
	require.NotNil(t, p)
	assert.Equal(t, "v1.1.0", p.Version)
	assert.Equal(t, 3, p.Factor.Min)
	assert.Equal(t, 15, p.Factor.Max)
}

func TestDefault_SubjectWeights(t *testing.T) {
	p := Default()
	tests := []struct {
		subject string
		want    float64
	}{
		{"Polity", 2.5},
		{"Economy", 2.2},
		{"History", 2.0},
		{"Geography", 2.0},
		{"International Relations", 1.8},
		{"Environment", 1.8},
		{"Science & Technology", 1.7},
		{"Ethics", 1.6},
		{"Current Affairs", 1.5},
		{"Art & Culture", 1.4},
		{"polity", 2.5},
		{"Astronomy", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.InDelta(t, tt.want, p.SubjectWeight(tt.subject), 1e-9)
		})
	}
}

func TestDefault_TablesCoverEveryType(t *testing.T) {
	p := Default()
	for _, qt := range question.AllTypes() {
		assert.Greater(t, p.BaseSeconds(qt), 0.0, "base seconds for %s", qt)
		assert.Greater(t, p.ImpactScore("Economy", qt), 0, "impact for %s", qt)
		for _, d := range question.AllDifficulties() {
			assert.Greater(t, p.MarksFor(qt, d), 0, "marks for %s/%s", qt, d)
		}
	}
}

func TestDefault_ImpactOverrides(t *testing.T) {
	p := Default()
	assert.Equal(t, 10, p.ImpactScore("Economy", question.TypeSingleCorrectMCQ))
	assert.Equal(t, 1, p.ImpactScore("Economy", question.TypeMapBased))
	assert.Equal(t, 9, p.ImpactScore("Geography", question.TypeMapBased))
	assert.Equal(t, 9, p.ImpactScore("Polity", question.TypeCaseStudyBased))
}

func TestDefault_Exclusions(t *testing.T) {
	p := Default()
	assert.True(t, p.Excluded("Geography")[question.TypeAssertionReasoning])
	assert.True(t, p.Excluded("History")[question.TypeMapBased])
	assert.True(t, p.Excluded("History")[question.TypeDataBased])
	assert.Nil(t, p.Excluded("Polity"))
}

func TestDefault_ContextTypes(t *testing.T) {
	p := Default()
	assert.Equal(t, []question.Type{
		question.TypeCaseStudyBased,
		question.TypeAssertionReasoning,
		question.TypeStatementBased,
	}, p.ContextTypes(ContextGovernance))
}

func TestParse_RoundTrip(t *testing.T) {
	out, err := Default().YAML()
	require.NoError(t, err)
	p, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, Default().Orchestration.ImpactScores, p.Orchestration.ImpactScores)
}

func TestParse_Rejects(t *testing.T) {
	base := string(DefaultYAML())
	tests := []struct {
		name string
		doc  string
	}{
		{"not semver", strings.Replace(base, "version: v1.1.0", "version: v1.x", 1)},
		{"wrong major", strings.Replace(base, "version: v1.1.0", "version: v2.0.0", 1)},
		{"unknown type tag", strings.Replace(base, "single_correct_mcq: 10", "true_false: 10", 1)},
		{"negative marks", strings.Replace(base, "data_based: {easy: 2, medium: 3, hard: 4}", "data_based: {easy: -2, medium: 3, hard: 4}", 1)},
		{"unknown field", base + "\nextra: true\n"},
		{"missing section", strings.Replace(base, "variation:", "variations:", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			var perr *InvalidPolicyError
			assert.True(t, errors.As(err, &perr), "expected *InvalidPolicyError, got %T", err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	doc := strings.Replace(string(DefaultYAML()), "Polity: 2.5", "Polity: 3.0", 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, p.SubjectWeight("Polity"), 1e-9)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
