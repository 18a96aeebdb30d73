package api

import "net/http"

// Error categories carried in the error envelope.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryNotFound        = "NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryUnauthorized    = "UNAUTHORIZED"
	CategoryInternal        = "INTERNAL_ERROR"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
	Category      string `json:"category"`
}

// NewNotFoundError creates a 404 error envelope.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryNotFound,
	}
}

// NewValidationError creates a 400 error envelope.
func NewValidationError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
	}
}

// NewConflictError creates a 409 error envelope.
func NewConflictError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryConflict,
	}
}

// NewInternalError creates a 500 error envelope.
func NewInternalError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryInternal,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
