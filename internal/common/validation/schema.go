package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ChatRequestSchema describes the body accepted by POST /chat and the
// variables of the resolve-customer-query job.
const ChatRequestSchema = `{
	"type": "object",
	"properties": {
		"message": {
			"type": "string",
			"description": "Free-text customer question"
		}
	},
	"required": ["message"]
}`

var chatRequestLoader = gojsonschema.NewStringLoader(ChatRequestSchema)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateChatRequest validates a raw JSON document against ChatRequestSchema.
// Blank messages pass here; the pipeline owns that rejection.
func ValidateChatRequest(body []byte) (*ValidationResult, error) {
	return validate(chatRequestLoader, gojsonschema.NewBytesLoader(body))
}

func validate(schema, document gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}
