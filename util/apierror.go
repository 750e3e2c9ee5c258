package util

import (
	"errors"
	"net/http"
)

// APIError is a request-boundary error carrying the HTTP status and the JSON
// key it should be rendered under. Validation and conflict errors are always
// recovered at the handler and never propagate as unhandled failures.
type APIError struct {
	Status  int
	Field   string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ValidationError reports malformed, missing or duplicate input scoped to a
// single field.
func ValidationError(field, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Field: field, Message: message}
}

// ConflictError reports that a relation already exists.
func ConflictError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Field: "errors", Message: message}
}

// RelationNotFoundError reports a missing relation on removal. The original
// API renders this as 400, distinct from a missing entity.
func RelationNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Field: "errors", Message: message}
}

// NotFoundError reports a missing entity on a retrieval path.
func NotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Field: "detail", Message: message}
}

// PermissionError reports a non-author attempting to mutate a recipe.
func PermissionError(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Field: "detail", Message: message}
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
