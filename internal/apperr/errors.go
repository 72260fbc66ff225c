// Package apperr defines the sentinel errors and the field-level validation
// error shared across services and handlers. Callers should use errors.Is
// and errors.As to match these values.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Authentication errors. Kept deliberately generic so callers cannot
	// distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// Authorization errors (authenticated, but not the owner).
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries per-field failure messages so handlers can report
// exactly which fields were at fault.
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
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
