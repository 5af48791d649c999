// Package apperr defines the error taxonomy shared by the authoring layer
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// DefaultMessage is shown when the gateway does not provide a message
const DefaultMessage = "Something went wrong, please try again"

var (
	// ErrConcurrencyReject is returned when a mutation for the same entity is already pending
	ErrConcurrencyReject = errors.New("another change to this item is still in progress")
	// ErrUnsavedChanges is returned when the selection would discard unsaved edits
	ErrUnsavedChanges = errors.New("the current editor has unsaved changes")
	// ErrNotFound is returned when a requested entity is not present
	ErrNotFound = errors.New("not found")
)

// ValidationError is a local, field-level error that never reaches the gateway
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NetworkError is returned when the gateway is unreachable or answers with a failure
type NetworkError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil && e.StatusCode == 0 {
		return fmt.Sprintf("gateway unreachable: %v", e.Err)
	}
	return fmt.Sprintf("gateway error (%d): %s", e.StatusCode, e.UserMessage())
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage returns the gateway message or a generic fallback
func (e *NetworkError) UserMessage() string {
	if e == nil || strings.TrimSpace(e.Message) == "" {
		return DefaultMessage
	}
	return e.Message
}

// SerializationError reports a draft field that could not be persisted
type SerializationError struct {
	Field string
	Err   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("field %q cannot be serialized: %v", e.Field, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// UserMessage returns the message that should be shown to the user for err
func UserMessage(err error) string {
	var netErr *NetworkError
	var valErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr):
		return netErr.UserMessage()
	case errors.As(err, &valErr):
		return valErr.Error()
	case errors.Is(err, ErrConcurrencyReject), errors.Is(err, ErrUnsavedChanges), errors.Is(err, ErrNotFound):
		return err.Error()
	}
	return DefaultMessage
}

// HTTPStatus maps an error to the status code the console API answers with
func HTTPStatus(err error) int {
	var netErr *NetworkError
	var valErr *ValidationError
	switch {
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConcurrencyReject), errors.Is(err, ErrUnsavedChanges):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &netErr):
		if netErr.StatusCode >= 400 && netErr.StatusCode < 600 {
			return netErr.StatusCode
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
