// Package logging provides logging utilities for denbox.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating container", "name", name, "image", image)
//	logging.Warn("teardown failed", "name", name, "error", err)
//
// The destination is stderr by default; the --log-file flag routes it
// through a rotating file writer instead, keeping the terminal clean.
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Creating container %s...", name)
//	logging.UserSuccess("Removed container %s", name)
//	logging.UserWarning("Port mappings only apply on creation; ignoring")
//	logging.UserError("Failed to stop container: %v", err)
//
// All user functions write to stderr. Stdout carries only primary
// command output (tables, reports), so piping denbox output stays safe.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
