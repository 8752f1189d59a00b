// Package apperror defines the error taxonomy surfaced by every operation:
// field-keyed validation failures, not-found, and forbidden. Handlers map
// these to HTTP statuses; services never return raw storage errors.
package apperror

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound means the requested identifier resolves to no record.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means the actor lacks the required permission. It is
	// returned before any storage access so it never leaks whether the
	// target exists.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries one or more attribute-keyed messages.
// No partial write occurs when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation starts an empty validation error to accumulate into.
func NewValidation() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for a field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
	return e
}

// Empty reports whether no violation was recorded.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// ErrOrNil returns the error if any violation was recorded, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Invalid builds a single-field validation error.
func Invalid(field, message string) *ValidationError {
	return NewValidation().Add(field, message)
}

// AsValidation extracts a ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
