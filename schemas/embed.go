// Package schemas holds the JSON Schemas describing the persisted files.
package schemas

import "embed"

// Schema file names
const (
	Envelope = "envelope.schema.json"
	History  = "history.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of an embedded schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{Envelope, History}
}
