// Package schemas validates raw inference responses against embedded JSON
// Schemas before any unmarshalling happens. A response that does not match
// its stage schema is an evaluator error, never partially accepted.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema names, one per inference call shape
const (
	ResumeEvaluation    = "resume_evaluation"
	AnswerEvaluations   = "answer_evaluations"
	AnswerSetEvaluation = "answer_set_evaluation"
	InterviewEvaluation = "interview_evaluation"
)

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.RWMutex
)

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports every field that failed schema validation
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("response does not match schema %s:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a raw JSON response against the named embedded schema.
// Returns a *ValidationError when the document is well-formed JSON but does
// not match, and a plain error for unreadable documents or unknown schemas.
func Validate(schemaName, jsonText string) error {
	schema, err := load(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return fmt.Errorf("failed to validate against schema %s: %w", schemaName, err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: schemaName}
	for _, resultErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return ve
}

// load compiles and caches an embedded schema by name
func load(schemaName string) (*gojsonschema.Schema, error) {
	compiledMu.RLock()
	if schema, ok := compiled[schemaName]; ok {
		compiledMu.RUnlock()
		return schema, nil
	}
	compiledMu.RUnlock()

	data, err := schemaFiles.ReadFile(schemaName + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", schemaName, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", schemaName, err)
	}

	compiledMu.Lock()
	compiled[schemaName] = schema
	compiledMu.Unlock()

	return schema, nil
}
