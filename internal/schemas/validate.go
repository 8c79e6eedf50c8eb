// Package schemas provides JSON Schema validation for LLM responses. The
// completion service returns free-form text; every structured response is
// validated against an embedded schema before it is decoded, so malformed
// output surfaces as a typed validation error rather than a partially-filled
// struct.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// SubScores is the schema for the matcher's sub-score response.
const SubScores = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["skills", "experience", "location", "company"],
  "properties": {
    "skills": {"type": "number", "minimum": 0, "maximum": 1},
    "experience": {"type": "number", "minimum": 0, "maximum": 1},
    "location": {"type": "number", "minimum": 0, "maximum": 1},
    "company": {"type": "number", "minimum": 0, "maximum": 1},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "missing_skills": {"type": "array", "items": {"type": "string"}},
    "recommendations": {"type": "array", "items": {"type": "string"}}
  }
}`

// StatusPrediction is the schema for the status predictor's response.
const StatusPrediction = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["status"],
  "properties": {
    "status": {"type": "string"},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "reasoning": {"type": "string"}
  }
}`

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents an error loading or parsing the schema itself.
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks JSON content against a schema. Returns *ValidationError for
// document failures and *SchemaLoadError when the schema or document cannot
// be loaded at all.
func Validate(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Message: "schema validation failed during load", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
