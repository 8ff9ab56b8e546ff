package errors

import (
	"errors"
	"fmt"
)

// Exit codes for denbox. Every reported failure exits 1. Interactive
// sessions replace the process, so their status passes through from
// the runtime CLI untouched.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// DenboxError is the base error type for denbox
type DenboxError struct {
	Code    int
	Message string
	Cause   error
}

func (e *DenboxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DenboxError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *DenboxError) ExitCode() int {
	return e.Code
}

// New creates a new DenboxError
func New(message string) *DenboxError {
	return &DenboxError{
		Code:    ExitFailure,
		Message: message,
	}
}

// Wrap wraps an existing error with a DenboxError
func Wrap(message string, cause error) *DenboxError {
	return &DenboxError{
		Code:    ExitFailure,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// NoContainer returns an error for a project without a container.
// The message carries the remedy inline.
func NoContainer(projectPath string) *DenboxError {
	return New(fmt.Sprintf("no container exists for %s (run 'denbox' to create one)", projectPath))
}

// NotRunning returns an error when a container exists but is not running
func NotRunning(name string) *DenboxError {
	return New(fmt.Sprintf("container %s is not running (run 'denbox' to start it)", name))
}

// LocalImage returns an error for update attempts on a local-only image
func LocalImage(image string) *DenboxError {
	return New(fmt.Sprintf("cannot update a local image (%s has no registry component; rebuild it instead)", image))
}

// RuntimeUnavailable returns an error when the container runtime cannot be reached
func RuntimeUnavailable(cause error) *DenboxError {
	return Wrap("cannot reach the container runtime (is the daemon running?)", cause)
}

// ContainerFailed returns an error for container operations
func ContainerFailed(op string, cause error) *DenboxError {
	return Wrap(fmt.Sprintf("container %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *DenboxError {
	return Wrap(message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *DenboxError {
	return New(message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var denboxErr *DenboxError
	if errors.As(err, &denboxErr) {
		return denboxErr.ExitCode()
	}
	return ExitFailure
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
