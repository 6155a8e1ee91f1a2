package policy

import "fmt"

// InvalidPolicyError reports a policy document that cannot be used.
type InvalidPolicyError struct {
	Reason string
	Err    error
}

func (e *InvalidPolicyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid policy: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid policy: %s", e.Reason)
}

func (e *InvalidPolicyError) Unwrap() error { return e.Err }
