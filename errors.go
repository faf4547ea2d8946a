package codemode

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrExecution indicates a failure of the program itself: malformed or
	// empty source, a violated single-function contract, or an uncaught
	// exception raised by program code.
	ErrExecution = errors.New("execution error")

	// ErrLimitExceeded indicates that an execution limit was reached, such
	// as the maximum number of capability calls.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrTimeout indicates the run exceeded its wall-clock budget, or that
	// the program can never settle (it awaits a promise nothing will
	// resolve).
	ErrTimeout = errors.New("execution timed out")

	// ErrCanceled indicates the caller abandoned the run before it
	// finished.
	ErrCanceled = errors.New("execution canceled")
)

// CodeError represents a failure inside the executed program, with optional
// source location for diagnostics. Its message never includes host-side
// stack traces.
type CodeError struct {
	// Message describes the error the way the program saw it.
	Message string

	// Line is the 1-based line number where the error occurred.
	// Zero indicates the line is unknown.
	Line int

	// Column is the 1-based column number where the error occurred.
	// Zero indicates the column is unknown.
	Column int

	// Err is the underlying error, if any.
	Err error
}

// Error returns the error message, including line and column if available.
func (e *CodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, col %d)", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *CodeError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target.
// CodeError matches ErrExecution to allow sentinel-style error checking.
func (e *CodeError) Is(target error) bool {
	return target == ErrExecution
}
