package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("validation error")

// FieldError describes why a single form field was rejected.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects user-facing messages keyed by field name.
type ValidationError struct {
	Fields map[string]string
	causes []error
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records the first message reported for field.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = message
}

// AddError records a FieldError and keeps it reachable through errors.Is.
func (e *ValidationError) AddError(err *FieldError) {
	if _, exists := e.Fields[err.Field]; exists {
		return
	}
	e.Fields[err.Field] = err.Message
	e.causes = append(e.causes, err)
}

func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns nil when no field was rejected.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
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
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrValidation}, e.causes...)
}
