package rewrite

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		set         RuleSet
		in          string
		want        string
		wantMatched bool
	}{
		{"simplify critically analyze", Simplify, "Critically analyze the scope of Article 21.", "What is the scope of Article 21.", true},
		{"simplify evaluate", Simplify, "Evaluate the claim below.", "Identify the claim below.", true},
		{"simplify no match", Simplify, "What is Article 21?", "What is Article 21?", false},
		{"complexify what is", Complexify, "What is the scope of Article 21?", "Critically analyze the scope of Article 21?", true},
		{"not which is", Negate, "Which of the following is correct about Article 21?", "Which of the following is NOT correct about Article 21?", true},
		{"not which are", Negate, "Which of the following are features of federalism?", "Which of the following are NOT features of federalism?", true},
		{"not ignores embedded is", Negate, "Which provision of this chapter is enforceable?", "Which provision of this chapter is NOT enforceable?", true},
		{"not correctly verb", Negate, "Which of the following correctly describes Article 21?", "Which of the following does NOT correctly describe Article 21?", true},
		{"not would", Negate, "Which of the following would be consistent with Article 21?", "Which of the following would NOT be consistent with Article 21?", true},
		{"not without which", Negate, "Arrange the following in order.", "Arrange the following in order.", false},
		{"except which statements", Except, "Which of the following statements are correct regarding Article 21?", "All of the following statements are correct regarding Article 21 EXCEPT:", true},
		{"except generic", Except, "Match List I with List II.", "Match List I with List II EXCEPT:", true},
		{"false statement", FalseStatement, "Which of the statements given above is/are correct?", "Which of the statements given above is/are incorrect?", true},
		{"false statement leaves incorrect", FalseStatement, "Identify the incorrect pair.", "Identify the incorrect pair.", false},
		{"historical frame", HistoricalFrame, "What is Article 21?", "Tracing the historical evolution of the provision: What is Article 21?", true},
		{"contemporary frame", ContemporaryFrame, "What is Article 21?", "In the light of its present-day relevance: What is Article 21?", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.set.Apply(tt.in)
			if got.Text != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.in, got.Text, tt.want)
			}
			if got.Matched != tt.wantMatched {
				t.Errorf("Matched = %v, want %v", got.Matched, tt.wantMatched)
			}
		})
	}
}

func TestApply_AppliedNames(t *testing.T) {
	got := Negate.Apply("Which of the following is true?")
	if len(got.Applied) != 1 || got.Applied[0] != "which-verb-not" {
		t.Errorf("Applied = %v, want [which-verb-not]", got.Applied)
	}
}
