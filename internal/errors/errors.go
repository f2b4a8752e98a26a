package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error (e.g., input generation failed).
	ExitErrorTimeout  = 2   // Indicates the run exceeded its deadline.
	ExitErrorMismatch = 3   // Indicates sequential and parallel results disagree.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WorkerFaultError reports a unit of work that failed unexpectedly inside a
// worker pool. Value holds whatever was recovered from the panicking task.
type WorkerFaultError struct {
	// Index is the input position of the faulting unit.
	Index int
	// Value is the recovered panic value.
	Value any
}

// Error returns a formatted message describing the fault.
func (e *WorkerFaultError) Error() string {
	return fmt.Sprintf("worker task %d faulted: %v", e.Index, e.Value)
}

// Unwrap exposes the recovered value when it is itself an error.
func (e *WorkerFaultError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IOError records a failed file operation together with the path involved.
type IOError struct {
	// Op is the operation that failed ("create", "write", "flush", ...).
	Op string
	// Path is the file the operation targeted.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error returns the operation, path and cause.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by a run to the process exit code.
//
// Parameters:
//   - err: The error to classify, possibly nil.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
