// Package errors provides typed errors for PIQUANT front-end operations.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// Use errors.Is(err, errors.ErrNotReady) to check for specific errors.
var (
	// Session errors
	ErrNoTask   = errors.New("no task selected")
	ErrNotReady = errors.New("required inputs are missing or invalid")
	ErrWorking  = errors.New("an execution is already in progress")

	// Input errors
	ErrUnknownTask  = errors.New("unknown task")
	ErrFileNotFound = errors.New("file not found")

	// Execution errors
	ErrExecutableNotFound = errors.New("PIQUANT executable not found")
	ErrSpawnFailed        = errors.New("failed to launch PIQUANT")
	ErrNonUTF8Output      = errors.New("PIQUANT output is not valid UTF-8 text")
)

// FileError represents an error during file operations.
type FileError struct {
	Op   string // Operation: "stat", "open", "read"
	Path string // File path
	Err  error  // Underlying error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ExecError represents a failure to run the analysis executable.
type ExecError struct {
	Path string // Executable path
	Err  error  // Underlying error
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exec %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("exec %s failed", e.Path)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// NewExecError creates a new ExecError.
func NewExecError(path string, err error) *ExecError {
	return &ExecError{Path: path, Err: err}
}

// Is checks if target matches any of our sentinel errors.
// This is a convenience function for common error checks.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsSpawnFailure checks if the error means the executable could not be launched.
func IsSpawnFailure(err error) bool {
	return errors.Is(err, ErrSpawnFailed) || errors.Is(err, ErrExecutableNotFound)
}

// IsNotReady checks if the error indicates the session was not ready to execute.
func IsNotReady(err error) bool {
	return errors.Is(err, ErrNotReady) || errors.Is(err, ErrNoTask)
}
