package question

import "fmt"

// Type identifies one of the ten question archetypes. The zero value is
// invalid so an unset type never passes as a real one.
type Type int

const (
	TypeInvalid Type = iota
	TypeSingleCorrectMCQ
	TypeMultipleCorrectMCQ
	TypeMatchTheFollowing
	TypeAssertionReasoning
	TypeStatementBased
	TypeSequenceArrangement
	TypeOddOneOut
	TypeCaseStudyBased
	TypeMapBased
	TypeDataBased

	// NumTypes sizes enum-indexed tables. Keep it last.
	NumTypes
)

var typeNames = [NumTypes]string{
	TypeInvalid:             "invalid",
	TypeSingleCorrectMCQ:    "single_correct_mcq",
	TypeMultipleCorrectMCQ:  "multiple_correct_mcq",
	TypeMatchTheFollowing:   "match_the_following",
	TypeAssertionReasoning:  "assertion_reasoning",
	TypeStatementBased:      "statement_based",
	TypeSequenceArrangement: "sequence_arrangement",
	TypeOddOneOut:           "odd_one_out",
	TypeCaseStudyBased:      "case_study_based",
	TypeMapBased:            "map_based",
	TypeDataBased:           "data_based",
}

// AllTypes returns every valid archetype in declaration order.
func AllTypes() []Type {
	out := make([]Type, 0, NumTypes-1)
	for t := TypeSingleCorrectMCQ; t < NumTypes; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is one of the ten archetypes.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < NumTypes
}

// IsMCQ reports whether t carries a plain option list with isCorrect flags.
func (t Type) IsMCQ() bool {
	return t == TypeSingleCorrectMCQ || t == TypeMultipleCorrectMCQ
}

func (t Type) String() string {
	if t < 0 || t >= NumTypes {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType resolves a type tag such as "single_correct_mcq".
func ParseType(s string) (Type, error) {
	for t := TypeSingleCorrectMCQ; t < NumTypes; t++ {
		if typeNames[t] == s {
			return t, nil
		}
	}
	return TypeInvalid, fmt.Errorf("unknown question type %q", s)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid question type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
