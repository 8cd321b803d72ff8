// Package model defines the domain types for the portlauncher CLI.
//
// Key design decision: assignments are never written to disk. A fresh
// process starts with an empty table, so restarting the host is the only
// way to reclaim ports.
package model

import (
	"fmt"
	"regexp"
	"time"
)

// Assignment records that an application was handed a port.
//
// Entries are created when a launch claims a port and are never removed.
// A later launch of the same application replaces the earlier entry.
type Assignment struct {
	// Name is the application name, used verbatim as the directory name
	// under the apps directory.
	Name string `json:"name"`

	// Port is the assigned port in [8000, 9000) unless the configured
	// range says otherwise.
	Port int `json:"port"`

	// LaunchID identifies the launch that claimed the port. It shows up in
	// log lines so a spawn failure can be matched to its claim.
	LaunchID string `json:"launchId"`

	// AssignedAt is when the port was claimed.
	AssignedAt time.Time `json:"assignedAt"`
}

// String returns a human-readable representation of the assignment.
// Format: "name → port"
func (a *Assignment) String() string {
	return fmt.Sprintf("%s → %d", a.Name, a.Port)
}

// App describes a launchable application discovered under the apps
// directory.
type App struct {
	// Name is the directory name under apps/.
	Name string `json:"name"`

	// DisplayName comes from the optional app.json manifest. Falls back to
	// Name when no manifest is present.
	DisplayName string `json:"displayName"`

	// Description is an optional one-line summary from the manifest.
	Description string `json:"description,omitempty"`

	// ScriptPath is the run script for the host platform, relative to the
	// working directory (e.g., "apps/foo/run.sh").
	ScriptPath string `json:"scriptPath"`
}

// LaunchStatus is the outcome reported to the HTTP and JSON surfaces.
type LaunchStatus string

const (
	// LaunchSucceeded means the child process was started.
	LaunchSucceeded LaunchStatus = "success"

	// LaunchFailed means the launch was rejected or the spawn failed.
	LaunchFailed LaunchStatus = "error"
)

// String returns the string representation of LaunchStatus.
func (s LaunchStatus) String() string {
	return string(s)
}

// appNameRegex restricts application names to a single safe path segment:
// letters, digits, dots, underscores and hyphens, starting with a letter or
// digit, at most 64 characters.
var appNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// ValidateAppName checks that name can be used as a directory name under
// the apps directory without escaping it.
func ValidateAppName(name string) error {
	if name == "" {
		return fmt.Errorf("application name must not be empty")
	}
	if !appNameRegex.MatchString(name) {
		return fmt.Errorf("invalid application name %q: must start with a letter or digit and contain only letters, digits, '.', '_' or '-' (max 64 characters)", name)
	}
	return nil
}

// ExitCode defines standard CLI exit codes.
// These codes allow scripts to programmatically determine the outcome of
// a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitUnsupportedPlatform indicates the host OS has no known
	// interpreter/extension pair.
	ExitUnsupportedPlatform ExitCode = 2

	// ExitInvalidAppName indicates the application name failed validation.
	ExitInvalidAppName ExitCode = 3

	// ExitPortAllocationFailed indicates every port in the range is taken.
	ExitPortAllocationFailed ExitCode = 4

	// ExitSpawnFailed indicates the OS refused to start the child process.
	ExitSpawnFailed ExitCode = 5

	// ExitConfigError indicates the configuration file is invalid.
	ExitConfigError ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
