package question

import (
	"encoding/json"
	"fmt"
)

// NewPayload returns an empty payload for t.
func NewPayload(t Type) (Payload, error) {
	switch t {
	case TypeSingleCorrectMCQ:
		return &SingleCorrectPayload{}, nil
	case TypeMultipleCorrectMCQ:
		return &MultipleCorrectPayload{}, nil
	case TypeMatchTheFollowing:
		return &MatchPayload{}, nil
	case TypeAssertionReasoning:
		return &AssertionReasonPayload{}, nil
	case TypeStatementBased:
		return &StatementPayload{}, nil
	case TypeSequenceArrangement:
		return &SequencePayload{}, nil
	case TypeOddOneOut:
		return &OddOneOutPayload{}, nil
	case TypeCaseStudyBased:
		return &CaseStudyPayload{}, nil
	case TypeMapBased:
		return &MapPayload{}, nil
	case TypeDataBased:
		return &DataPayload{}, nil
	}
	return nil, fmt.Errorf("no payload for question type %s", t)
}

// UnmarshalJSON decodes the payload according to the question's type tag.
func (q *Question) UnmarshalJSON(b []byte) error {
	type alias Question
	var raw struct {
		alias
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*q = Question(raw.alias)
	q.Payload = nil

	if len(raw.Payload) == 0 || string(raw.Payload) == "null" {
		return nil
	}
	p, err := NewPayload(q.Type)
	if err != nil {
		return fmt.Errorf("question %s: %w", q.ID, err)
	}
	if err := json.Unmarshal(raw.Payload, p); err != nil {
		return fmt.Errorf("question %s: decode %s payload: %w", q.ID, q.Type, err)
	}
	q.Payload = p
	return nil
}
