// Package errors provides standardized error handling for the assistant and
// its BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeContentStoreUnavailable ErrorCode = "CONTENT_STORE_UNAVAILABLE"
	ErrCodeContentQueryFailed      ErrorCode = "CONTENT_QUERY_FAILED"

	ErrCodeGenerativeServiceFailed ErrorCode = "GENERATIVE_SERVICE_FAILED"
	ErrCodeGenerativeTimeout       ErrorCode = "GENERATIVE_TIMEOUT"

	ErrCodeStatsUnavailable ErrorCode = "STATS_UNAVAILABLE"

	ErrCodeWorkflowEngineUnavailable ErrorCode = "WORKFLOW_ENGINE_UNAVAILABLE"
	ErrCodeWorkflowEngineTimeout     ErrorCode = "WORKFLOW_ENGINE_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// AsStandardError unwraps err looking for a *StandardError.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable query validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Query validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContentStoreUnavailableError creates a retryable content store connection error.
func NewContentStoreUnavailableError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContentStoreUnavailable,
		Message:   "Content store unavailable",
		Details:   fmt.Sprintf("backend: %s, error: %s", backend, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewContentQueryFailedError creates a retryable content lookup error.
func NewContentQueryFailedError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContentQueryFailed,
		Message:   "Content store query failed",
		Details:   fmt.Sprintf("backend: %s, error: %s", backend, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerativeServiceFailedError creates a retryable generative service error.
func NewGenerativeServiceFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerativeServiceFailed,
		Message:   "Generative service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerativeTimeoutError creates a retryable generative service timeout error.
func NewGenerativeTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerativeTimeout,
		Message:   "Generative service timeout",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatsUnavailableError creates a stats store error. Stats are best effort,
// so it is never retried.
func NewStatsUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStatsUnavailable,
		Message:   "Stats store unavailable",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkflowEngineError creates a retryable Zeebe gateway error.
func NewWorkflowEngineError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowEngineUnavailable,
		Message:   "Workflow engine unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewWorkflowEngineTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowEngineTimeout,
		Message:   "Workflow engine timeout",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidationFailed:        "VALIDATION_FAILED",
	ErrCodeContentStoreUnavailable: "CONTENT_STORE_UNAVAILABLE",
	ErrCodeContentQueryFailed:      "CONTENT_QUERY_FAILED",
	ErrCodeGenerativeServiceFailed: "GENERATIVE_SERVICE_FAILED",
	ErrCodeGenerativeTimeout:       "GENERATIVE_TIMEOUT",
	ErrCodeStatsUnavailable:        "STATS_UNAVAILABLE",

	ErrCodeWorkflowEngineUnavailable: "WORKFLOW_ENGINE_UNAVAILABLE",
	ErrCodeWorkflowEngineTimeout:     "WORKFLOW_ENGINE_TIMEOUT",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeContentStoreUnavailable,
		ErrCodeContentQueryFailed,
		ErrCodeGenerativeServiceFailed,
		ErrCodeWorkflowEngineUnavailable:
		return 3

	case ErrCodeGenerativeTimeout,
		ErrCodeWorkflowEngineTimeout:
		return 1

	default:
		return 0 // validation and internal errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CONTENT"):
		return "CONTENT_STORE"
	case strings.HasPrefix(codeStr, "GENERATIVE"):
		return "AI"
	case strings.HasPrefix(codeStr, "STATS"):
		return "STATS"
	case strings.HasPrefix(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
