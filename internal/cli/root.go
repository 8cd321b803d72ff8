// Package cli implements the cobra-based CLI commands for portlauncher.
//
// Each subcommand (launch, apps, ports, serve, tray) is defined in its own
// file within this package. This file defines the root command that serves
// as the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/portlauncher/internal/config"
	"github.com/shinji-kodama/portlauncher/internal/logging"
	"github.com/shinji-kodama/portlauncher/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// configPath is the --config flag. Empty means discover
	// portlauncher.{yaml,yml,toml} in the working directory.
	configPath string

	// cfg is the loaded configuration, set by the root PersistentPreRunE.
	cfg *config.Config
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. It provides help
// text, global flags, and loads configuration before any subcommand runs.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portlauncher",
		Short: "Launch local apps on automatically assigned ports",
		Long: `portlauncher starts apps/<name>/run.sh (run.bat on Windows) as a detached
process with a free port from 8000-8999 exported as PORT.

Ports handed out by one portlauncher process never collide. Assignments
live only as long as that process: run several launches in one invocation,
or keep "serve" or "tray" running to share one assignment table.`,

		// We handle error output ourselves for cleaner UX.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(verbose, jsonOutput, os.Stderr)

			loaded, err := config.Load(configPath)
			if err != nil {
				return model.WrapCLIError(model.ExitConfigError, "failed to load configuration", err)
			}
			cfg = loaded
			if cfg.Path != "" {
				VerboseLog("Loaded config from %s", cfg.Path)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./portlauncher.{yaml,yml,toml})")

	rootCmd.AddCommand(NewLaunchCommand())
	rootCmd.AddCommand(NewAppsCommand())
	rootCmd.AddCommand(NewPortsCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewTrayCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError values carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(logging.Stderr, string(data))
		return
	}

	if underlying != nil {
		logging.UserError("%s: %v", message, underlying)
	} else {
		logging.UserError("%s", message)
	}
}

// VerboseLog emits a debug log line. It is only visible with --verbose.
func VerboseLog(format string, args ...interface{}) {
	logging.Debug(fmt.Sprintf(format, args...))
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
