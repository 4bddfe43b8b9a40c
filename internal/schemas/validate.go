// Package schemas checks stored envelopes and history files against JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/digest-agent/schemas"
)

// ValidationError lists every schema violation found in one document
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one violation; Field is the dotted path, "(root)" for the document itself
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError means the schema could not be found or compiled
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func isEmbedded(schema string) bool {
	for _, name := range schemafiles.Names() {
		if schema == name {
			return true
		}
	}
	return false
}

// ValidateFile checks the JSON file at jsonPath. schema is either an embedded
// schema name (envelope.schema.json, history.schema.json) or a schema file path;
// a path may $ref files next to it.
func ValidateFile(schema, jsonPath string) error {
	schemaLoader, err := loadSchema(schema)
	if err != nil {
		return err
	}

	document, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonPath)
		}
		return fmt.Errorf("failed to read %s: %w", jsonPath, err)
	}
	if !json.Valid(document) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "file is not valid JSON"}}}
	}

	return validate(schema, schemaLoader, gojsonschema.NewBytesLoader(document))
}

func loadSchema(schema string) (gojsonschema.JSONLoader, error) {
	if isEmbedded(schema) {
		content, err := schemafiles.Read(schema)
		if err != nil {
			return nil, &SchemaLoadError{Schema: schema, Message: "embedded schema unreadable", Cause: err}
		}
		return gojsonschema.NewBytesLoader(content), nil
	}

	abs, err := filepath.Abs(schema)
	if err != nil {
		return nil, &SchemaLoadError{Schema: schema, Message: "bad schema path", Cause: err}
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &SchemaLoadError{
			Schema:  schema,
			Message: fmt.Sprintf("not an embedded schema (%s) and no such file", strings.Join(schemafiles.Names(), ", ")),
			Cause:   err,
		}
	}
	return gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs)), nil
}

func validate(schema string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Schema: schema, Message: "schema did not compile", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return validationErr
}
