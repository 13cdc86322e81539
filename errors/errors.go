package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified error type for the render pipeline.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Render pipeline constructors ---

// MissingTypeDirective creates the error for a configuration that carries no
// diagram type at all.
func MissingTypeDirective() *AppError {
	return &AppError{
		Code:       ErrCodeMissingTypeDirective,
		Message:    "Missing mandatory 'type' directive.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidDiagramType creates the error for an unknown diagram type.
func InvalidDiagramType(got string, known []string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidDiagramType,
		Message:    fmt.Sprintf("Invalid diagram type %q. Valid types are: %s.", got, strings.Join(known, ", ")),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"type": got, "valid_types": known},
	}
}

// Grammar tags a grammar collaborator failure without altering its message.
func Grammar(diagramType string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeGrammar,
		Message:    cause.Error(),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"type": diagramType},
		Cause:      cause,
	}
}

// Render tags a layout engine failure without altering its message.
func Render(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeRender,
		Message:    cause.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Stream tags a streaming input failure without altering its message.
func Stream(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeStream,
		Message:    cause.Error(),
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// --- Transport constructors ---

// InvalidInput creates an error for a malformed request.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized creates an error for a missing or invalid credential.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       ErrCodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
