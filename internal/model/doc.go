// Package model defines the domain types and value objects for the
// portlauncher CLI.
//
// This package contains pure data structures with no external dependencies.
// Assignments live only in memory for the lifetime of the host process;
// there are no persistent state files.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
