// Package errors provides typed errors with exit codes for denbox.
//
// # Error Types
//
// DenboxError is the base error type that wraps an error with an exit code:
//
//	type DenboxError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// denbox reports every failure the same way:
//
//	ExitSuccess = 0  // Success
//	ExitFailure = 1  // Any reported failure
//
// Interactive sessions (enter, shell) hand the terminal to the runtime
// CLI via process replacement, so their exit status is the session's own.
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation. Messages
// carry the remedy inline where one exists:
//
//	errors.NoContainer("/home/dev/app")
//	errors.NotRunning("denbox-app-1a2b3c4d")
//	errors.LocalImage("denbox:latest")
//	errors.ContainerFailed("stop", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "error: %v\n", err)
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
