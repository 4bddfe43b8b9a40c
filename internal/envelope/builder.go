package envelope

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/digest-agent/internal/types"
)

// excerptLen bounds how much of a bad response is kept in errors
const excerptLen = 500

// Builder wraps model responses into envelopes
type Builder struct {
	// Now returns the timestamp stamped on new envelopes
	Now func() time.Time
	// NewID returns the run identifier stamped on new envelopes
	NewID func() string
}

// NewBuilder creates a Builder using the wall clock and random UUIDs
func NewBuilder() *Builder {
	return &Builder{
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}
}

// Build parses raw model output and wraps it in a success envelope.
// Only the top-level shape is checked: the payload must be a JSON object.
func (b *Builder) Build(raw, model string) (*types.Envelope, error) {
	candidate, _ := ExtractJSON(raw)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, &MalformedResponseError{Excerpt: excerpt(raw), Cause: err}
	}
	if obj == nil {
		return nil, &MalformedResponseError{
			Excerpt: excerpt(raw),
			Cause:   fmt.Errorf("payload is null, expected a JSON object"),
		}
	}

	return &types.Envelope{
		Timestamp: types.FormatTimestamp(b.Now()),
		Status:    types.StatusSuccess,
		Model:     model,
		RunID:     b.NewID(),
		Data:      json.RawMessage(candidate),
	}, nil
}

// Failure builds an envelope recording a run that produced no payload
func (b *Builder) Failure(model string, cause error) *types.Envelope {
	env := &types.Envelope{
		Timestamp: types.FormatTimestamp(b.Now()),
		Status:    types.StatusFailure,
		Model:     model,
		RunID:     b.NewID(),
	}
	if cause != nil {
		env.Error = cause.Error()
	}
	return env
}

func excerpt(s string) string {
	if len(s) <= excerptLen {
		return s
	}
	cut := excerptLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
