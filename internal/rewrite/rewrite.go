// Package rewrite applies table-driven phrase substitutions to question
// stems. Rewrites are best-effort: Apply reports whether any rule matched so
// callers can decide what an unchanged stem means for them.
package rewrite

import (
	"regexp"
)

// Rule replaces matches of Pattern with Replace. Replace may reference
// capture groups with $1-style syntax. With Once set only the first match
// is rewritten.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
	Once    bool
}

// RuleSet is an ordered list of rules.
type RuleSet struct {
	Name  string
	Rules []Rule
	// FirstOnly stops after the first rule that matches.
	FirstOnly bool
}

// Result describes one Apply call.
type Result struct {
	Text    string
	Matched bool
	Applied []string
}

// Apply runs the rule set over s.
func (rs RuleSet) Apply(s string) Result {
	res := Result{Text: s}
	for _, r := range rs.Rules {
		loc := r.Pattern.FindStringSubmatchIndex(res.Text)
		if loc == nil {
			continue
		}
		if r.Once {
			var dst []byte
			dst = r.Pattern.ExpandString(dst, r.Replace, res.Text, loc)
			res.Text = res.Text[:loc[0]] + string(dst) + res.Text[loc[1]:]
		} else {
			res.Text = r.Pattern.ReplaceAllString(res.Text, r.Replace)
		}
		res.Matched = true
		res.Applied = append(res.Applied, r.Name)
		if rs.FirstOnly {
			break
		}
	}
	return res
}

func rule(name, pattern, replace string, once bool) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern), Replace: replace, Once: once}
}

// Simplify rewrites analytical stems into recall stems.
var Simplify = RuleSet{
	Name:      "simplify",
	FirstOnly: true,
	Rules: []Rule{
		rule("critically-analyze", `(?i)^critically (analy[sz]e|examine)\b`, "What is", true),
		rule("critically-evaluate", `(?i)^critically evaluate\b`, "What is", true),
		rule("evaluate", `(?i)^evaluate\b`, "Identify", true),
		rule("analyze", `(?i)^analy[sz]e\b`, "Describe", true),
		rule("examine", `(?i)^examine\b`, "State", true),
	},
}

// Complexify is the inverse of Simplify.
var Complexify = RuleSet{
	Name:      "complexify",
	FirstOnly: true,
	Rules: []Rule{
		rule("what-is", `^What is\b`, "Critically analyze", true),
		rule("identify", `^Identify\b`, "Evaluate", true),
		rule("describe", `^Describe\b`, "Analyze", true),
		rule("state", `^State\b`, "Examine", true),
	},
}

// Negate turns "Which ... is/are ...?" into "Which ... is/are NOT ...?".
var Negate = RuleSet{
	Name:      "not",
	FirstOnly: true,
	Rules: []Rule{
		rule("correctly-verb", `^(Which of the following) correctly (\w+?)s\b`, "$1 does NOT correctly $2", true),
		rule("which-verb-not", `^(Which\b.*?\b(?:is|are|was|were|does|do|has|have|can|would|should|will))\b`, "$1 NOT", true),
	},
}

// Except turns a stem into its "... EXCEPT" form.
var Except = RuleSet{
	Name:      "except",
	FirstOnly: true,
	Rules: []Rule{
		rule("which-of-the-following", `^Which of the following (statements )?(is|are) (correct|true)(.*?)[?:.]?\s*$`, "All of the following ${1}are ${3}${4} EXCEPT:", true),
		rule("trailing", `^(.*?\S)\s*[?:.]?\s*$`, "$1 EXCEPT:", true),
	},
}

// FalseStatement swaps "correct" for "incorrect" as a whole word.
var FalseStatement = RuleSet{
	Name: "false-statement",
	Rules: []Rule{
		rule("correct-incorrect", `\bcorrect\b`, "incorrect", false),
	},
}

// HistoricalFrame leads the stem with a historical perspective clause.
var HistoricalFrame = RuleSet{
	Name: "historical-frame",
	Rules: []Rule{
		rule("lead-historical", `^\s*(\S.*)$`, "Tracing the historical evolution of the provision: $1", true),
	},
}

// ContemporaryFrame leads the stem with a contemporary framing clause.
var ContemporaryFrame = RuleSet{
	Name: "contemporary-frame",
	Rules: []Rule{
		rule("lead-contemporary", `^\s*(\S.*)$`, "In the light of its present-day relevance: $1", true),
	},
}
