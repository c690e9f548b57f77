package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalid indicates a configuration value is unusable.
	// Every *Error matches it.
	ErrInvalid = errors.New("invalid configuration")

	// ErrFileNotFound indicates an explicitly named config file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")
)

// Error describes a configuration failure for a single setting.
type Error struct {
	// Field is the setting key, e.g. "x_size".
	Field string
	// Value is the offending value.
	Value any
	// Reason describes the failure.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("config %s: %s (value: %v)", e.Field, e.Reason, e.Value)
}

// Is implements error matching for Error.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// typeError returns an *Error for a value of the wrong type.
func typeError(field string, value any, expected string) *Error {
	return &Error{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf("expected %s, got %s", expected, typeName(value)),
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case map[string]any:
		return "table"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
