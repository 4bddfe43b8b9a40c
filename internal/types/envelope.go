// Package types provides type definitions for the records persisted and rendered by digest-agent.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Status is the outcome recorded in an Envelope
type Status string

const (
	// StatusSuccess marks an envelope carrying a digest payload
	StatusSuccess Status = "success"
	// StatusFailure marks an envelope for a run that produced no payload
	StatusFailure Status = "failure"
)

// TimestampLayout is the layout written into Envelope.Timestamp
const TimestampLayout = time.RFC3339Nano

// timestampLayouts are accepted when reading timestamps back.
// The last two cover naive ISO-8601 values without a zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ErrNoData is returned when an envelope has no usable digest payload
var ErrNoData = errors.New("envelope has no data")

// Envelope is the unit of persistence: one producer run's outcome
type Envelope struct {
	Timestamp string          `json:"timestamp"`
	Status    Status          `json:"status"`
	Model     string          `json:"model,omitempty"`
	RunID     string          `json:"run_id,omitempty"`
	Error     string          `json:"error,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Digest is the news/trends payload inside a successful envelope
type Digest struct {
	Date    string     `json:"date,omitempty"`
	Summary string     `json:"summary"`
	News    []NewsItem `json:"news"`
	Trends  []string   `json:"trends"`
}

// NewsItem is one news entry within a Digest
type NewsItem struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	URL     string `json:"url,omitempty"`
	Summary string `json:"summary"`
	Impact  string `json:"impact"`
}

// IsSuccess reports whether the envelope was recorded as a success
func (e *Envelope) IsSuccess() bool {
	return e != nil && e.Status == StatusSuccess
}

// HasData reports whether the envelope carries a non-null payload
func (e *Envelope) HasData() bool {
	if e == nil {
		return false
	}
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Digest decodes the payload. Only a payload that is not a JSON object is an
// error; fields that are missing or of an unexpected type stay at their zero values.
func (e *Envelope) Digest() (*Digest, error) {
	if !e.HasData() {
		return nil, ErrNoData
	}
	if !isObject(e.Data) {
		return nil, fmt.Errorf("failed to decode digest: data is not a JSON object")
	}

	var d Digest
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode digest: %w", err)
	}
	return &d, nil
}

// UnmarshalJSON decodes a model-written digest field by field.
// A single trend given as a string becomes a one-entry list; news entries
// that are not objects and trend entries that are not strings are dropped.
func (d *Digest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*d = Digest{
		Date:    looseString(fields["date"]),
		Summary: looseString(fields["summary"]),
		Trends:  looseStrings(fields["trends"]),
	}

	var entries []json.RawMessage
	if json.Unmarshal(fields["news"], &entries) == nil {
		for _, raw := range entries {
			if !isObject(raw) {
				continue
			}
			var item NewsItem
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			d.News = append(d.News, item)
		}
	}
	return nil
}

// UnmarshalJSON decodes a news entry; non-string values are treated as absent
func (n *NewsItem) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*n = NewsItem{
		Title:   looseString(fields["title"]),
		Source:  looseString(fields["source"]),
		URL:     looseString(fields["url"]),
		Summary: looseString(fields["summary"]),
		Impact:  looseString(fields["impact"]),
	}
	return nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// stringValue reports raw as a string; null, numbers and other types are not strings
func stringValue(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if json.Unmarshal(trimmed, &s) != nil {
		return "", false
	}
	return s, true
}

func looseString(raw json.RawMessage) string {
	s, _ := stringValue(raw)
	return s
}

func looseStrings(raw json.RawMessage) []string {
	if s, ok := stringValue(raw); ok {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var entries []json.RawMessage
	if json.Unmarshal(raw, &entries) != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s, ok := stringValue(entry); ok {
			out = append(out, s)
		}
	}
	return out
}

// Time parses the envelope timestamp
func (e *Envelope) Time() (time.Time, error) {
	if e == nil || e.Timestamp == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, e.Timestamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", e.Timestamp)
}

// FormatTimestamp renders a time in the layout stored in envelopes
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
