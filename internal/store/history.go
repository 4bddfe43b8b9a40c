package store

import (
	"github.com/jonathan/digest-agent/internal/types"
)

// DefaultHistoryLimit is how many envelopes the history keeps
const DefaultHistoryLimit = 50

// HistoryStore is a bounded log of envelopes, oldest first
type HistoryStore struct {
	path  string
	limit int
}

// NewHistoryStore creates a HistoryStore backed by the file at path.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewHistoryStore(path string, limit int) *HistoryStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryStore{path: path, limit: limit}
}

// Path returns the backing file path
func (s *HistoryStore) Path() string {
	return s.path
}

// Limit returns the maximum number of retained envelopes
func (s *HistoryStore) Limit() int {
	return s.limit
}

// Load returns the stored envelopes, oldest first. A missing file is an empty history.
func (s *HistoryStore) Load() ([]types.Envelope, error) {
	var history []types.Envelope
	if _, err := readJSON(s.path, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []types.Envelope{}
	}
	return history, nil
}

// Append adds env to the end of the history and keeps only the newest entries.
// It returns the resulting history length.
func (s *HistoryStore) Append(env *types.Envelope) (int, error) {
	history, err := s.Load()
	if err != nil {
		return 0, err
	}

	history = append(history, *env)
	if len(history) > s.limit {
		history = history[len(history)-s.limit:]
	}

	if err := writeJSON(s.path, history); err != nil {
		return 0, err
	}
	return len(history), nil
}
