package logging

import (
	"fmt"
	"os"
)

// User-facing output functions with status prefixes.
// All of these write to stderr: stdout is reserved for primary command
// output (listing tables, status reports, version) so scripts that
// consume it are not polluted by conversational text.

// UserInfo prints an info message to stderr.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stderr.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}
