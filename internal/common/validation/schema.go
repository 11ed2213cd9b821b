// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError is one field-level failure reported to the client.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a request body against a schema.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// GetErrorMessages returns a simple list of error messages
func (r *Result) GetErrorMessages() []string {
	messages := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// Schema wraps a compiled JSON schema.
type Schema struct {
	compiled *gojsonschema.Schema
}

// MustCompile compiles a schema document and panics on failure. Schemas are
// package-level constants, so a bad one is a programming error.
func MustCompile(schemaJSON string) *Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return &Schema{compiled: compiled}
}

// ValidateBytes validates a raw JSON body against the schema.
func (s *Schema) ValidateBytes(body []byte) *Result {
	docLoader := gojsonschema.NewBytesLoader(body)
	res, err := s.compiled.Validate(docLoader)
	if err != nil {
		return &Result{
			Valid:  false,
			Errors: []ValidationError{{Field: "(body)", Message: err.Error()}},
		}
	}

	if res.Valid() {
		return &Result{Valid: true}
	}

	errs := make([]ValidationError, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		field := e.Field()
		if field == "(root)" {
			field = "(body)"
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: e.Description(),
		})
	}
	return &Result{Valid: false, Errors: errs}
}
