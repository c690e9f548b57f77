package app

import (
	"errors"
	"testing"

	"github.com/dshills/loupe/internal/capture"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "reload"},
			expected: "reload",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "capture", Target: "(0,0)-(10,10)"},
			expected: "capture (0,0)-(10,10)",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "capture", Target: "(0,0)-(10,10)", Context: "tick 3", Err: errors.New("screen locked")},
			expected: "capture (0,0)-(10,10) (tick 3): screen locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_WithContext(t *testing.T) {
	err := NewOperationError("capture", "", nil).WithContext("mobile")
	if err.Context != "mobile" {
		t.Errorf("expected context 'mobile', got '%s'", err.Context)
	}

	var nilErr *OperationError
	if nilErr.WithContext("context") != nil {
		t.Error("expected nil result for nil receiver")
	}
}

func TestOperationError_Is(t *testing.T) {
	err := NewOperationError("capture", "r", capture.ErrOutOfBounds)

	if !errors.Is(err, capture.ErrOutOfBounds) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
	if !errors.Is(err, err) {
		t.Error("expected errors.Is to match same instance")
	}
	if errors.Is(err, capture.ErrClosed) {
		t.Error("expected errors.Is to not match different error")
	}

	var nilErr *OperationError
	if nilErr.Is(capture.ErrClosed) || nilErr.Unwrap() != nil {
		t.Error("nil receiver should match nothing and unwrap to nil")
	}
}

func TestInitError(t *testing.T) {
	inner := errors.New("no tty")
	err := &InitError{Component: "backend", Err: inner}

	if err.Error() != "init backend: no tty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("InitError should unwrap to its cause")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{ErrQuit, ErrAlreadyRunning, ErrNotRunning}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
