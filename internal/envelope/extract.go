package envelope

import (
	"regexp"
	"strings"
)

// fencedJSON matches the first ```json ... ``` block anywhere in the text
var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSON picks the text to parse from a model response.
// A fenced json block wins over the whole text, since models often wrap
// the block in prose but rarely emit unfenced JSON next to prose.
// The second return value reports whether a fenced block was found.
func ExtractJSON(raw string) (string, bool) {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return strings.TrimSpace(raw), false
}
