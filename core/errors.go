package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound marks the absence of a single record. Lookups by primary key
// return it instead of propagating driver-level failures.
var ErrNotFound = errors.New("record not found")

// FormValidationError carries a per-field error mapping surfaced to the
// client as a structured payload. It is never silently dropped.
type FormValidationError struct {
	Fields map[string]string
}

// NewFormValidationError builds a validation error for a single field.
func NewFormValidationError(field, msg string) *FormValidationError {
	return &FormValidationError{Fields: map[string]string{field: msg}}
}

func (e *FormValidationError) Error() string {
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

// ActionFailedError wraps any failure raised while dispatching a custom
// action so the caller always receives one error shape.
type ActionFailedError struct {
	Msg string
}

func (e *ActionFailedError) Error() string {
	return "action failed: " + e.Msg
}

// NotSupportedColumnError is returned when no converter is registered for a
// model field's type.
type NotSupportedColumnError struct {
	Field string
}

func (e *NotSupportedColumnError) Error() string {
	return fmt.Sprintf(
		"field %s cannot be converted automatically; declare the admin field manually or register a custom converter",
		e.Field,
	)
}
