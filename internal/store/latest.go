package store

import (
	"github.com/jonathan/digest-agent/internal/types"
)

// LatestStore holds only the most recent envelope
type LatestStore struct {
	path string
}

// NewLatestStore creates a LatestStore backed by the file at path
func NewLatestStore(path string) *LatestStore {
	return &LatestStore{path: path}
}

// Path returns the backing file path
func (s *LatestStore) Path() string {
	return s.path
}

// Write replaces the stored envelope
func (s *LatestStore) Write(env *types.Envelope) error {
	return writeJSON(s.path, env)
}

// Read returns the stored envelope, ErrNoResult when the file was never
// written, or a *CorruptStoreError when it cannot be parsed.
func (s *LatestStore) Read() (*types.Envelope, error) {
	var env types.Envelope
	found, err := readJSON(s.path, &env)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoResult
	}
	return &env, nil
}
