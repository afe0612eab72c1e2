// Package apierror provides standardized error response structures for the
// HTTP boundary. All errors returned to clients go through this package so
// that internal detail (stack traces, store errors) never leaks.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Retry is the generic envelope for compound-operation failures. The store
// may be mid-operation when these occur; clients retry the whole action.
func Retry() *APIError {
	return &APIError{Detail: "Operation could not be completed, please retry"}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Invalid input", Fields: fields}
}
