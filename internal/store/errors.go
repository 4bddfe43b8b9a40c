// Package store persists result envelopes as JSON files: a single-slot
// latest result and a bounded run history.
package store

import (
	"errors"
	"fmt"
)

// ErrNoResult is returned by LatestStore.Read when nothing has been written yet
var ErrNoResult = errors.New("no result has been stored yet")

// CorruptStoreError means a store file exists but does not hold valid JSON
type CorruptStoreError struct {
	Path  string
	Cause error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt store %s: %v", e.Path, e.Cause)
}

func (e *CorruptStoreError) Unwrap() error {
	return e.Cause
}
