package apperrors

import (
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("unknown pool backend %q", "threads")
	if got, want := err.Error(), `unknown pool backend "threads"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("expected error to be ConfigError type")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "threadsNum", Message: "must be positive, got 0"}
	want := `validation error for "threadsNum": must be positive, got 0`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWorkerFaultError(t *testing.T) {
	t.Parallel()

	t.Run("non-error panic value", func(t *testing.T) {
		t.Parallel()
		err := &WorkerFaultError{Index: 3, Value: "boom"}
		if got, want := err.Error(), "worker task 3 faulted: boom"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if err.Unwrap() != nil {
			t.Error("Unwrap() should be nil for a non-error value")
		}
	})

	t.Run("error panic value is unwrapped", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("division by zero")
		wrapped := WrapError(&WorkerFaultError{Index: 0, Value: cause}, "parallel tangent")
		if !errors.Is(wrapped, cause) {
			t.Error("errors.Is should reach the recovered error")
		}
		var fault *WorkerFaultError
		if !errors.As(wrapped, &fault) || fault.Index != 0 {
			t.Errorf("errors.As failed or wrong index: %+v", fault)
		}
	})
}

func TestIOError(t *testing.T) {
	t.Parallel()
	err := &IOError{Op: "create", Path: "/nope/numbers.txt", Cause: fs.ErrNotExist}
	if got, want := err.Error(), "create /nope/numbers.txt: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("IOError should unwrap to its cause")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("disk full"),
			format:      "generate input",
			expectedMsg: "generate input: disk full",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "scenario %d",
			args:        []any{100},
			expectedMsg: "scenario 100: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}
			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}
			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"wrapped validation", WrapError(ValidationError{Field: "count"}, "generate"), ExitErrorConfig},
		{"deadline", WrapError(context.DeadlineExceeded, "run"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"io", &IOError{Op: "create", Path: "x", Cause: fs.ErrPermission}, ExitErrorGeneric},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorMismatch": ExitErrorMismatch,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
