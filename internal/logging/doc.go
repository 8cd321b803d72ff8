// Package logging provides logging utilities for portlauncher.
//
// This package provides two categories of output:
//   - Debug logging: structured logs for debugging (via zerolog)
//   - User output: formatted messages for end users (styled via lipgloss)
//
// # Debug Logging
//
// Debug logs are written with key/value pairs and controlled by verbosity:
//
//	logging.Debug("claimed port", "app", name, "port", port)
//	logging.Warn("host probe disabled", "reason", reason)
//
// With --json the logger emits one JSON object per line; otherwise it uses
// zerolog's console writer.
//
// # User Output
//
// User-facing messages are prefixed with a status glyph:
//
//	logging.UserSuccess("%s launched on port %d", name, port)
//	logging.UserError("Failed to launch %s: %v", name, err)
//
// Output destinations:
//   - UserInfo, UserSuccess: Stdout
//   - UserWarning, UserError: Stderr
package logging
