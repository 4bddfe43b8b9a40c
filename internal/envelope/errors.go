// Package envelope turns raw model output into persisted result envelopes.
package envelope

import "fmt"

// MalformedResponseError means the model output held no parseable JSON object
type MalformedResponseError struct {
	Excerpt string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response: %v (response starts with %q)", e.Cause, e.Excerpt)
	}
	return fmt.Sprintf("malformed response (response starts with %q)", e.Excerpt)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
