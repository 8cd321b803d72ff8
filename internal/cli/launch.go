// Package cli — launch.go implements the "portlauncher launch" command.
//
// The launch command starts one or more apps in the order given. All
// launches in one invocation share one assignment table, so they are
// guaranteed distinct ports. A failed launch does not stop the remaining
// ones; the first failure decides the exit code.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/portlauncher/internal/launcher"
	"github.com/shinji-kodama/portlauncher/internal/logging"
	"github.com/shinji-kodama/portlauncher/internal/model"
)

// NewLaunchCommand creates the "launch" cobra command.
func NewLaunchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch <app> [app...]",
		Short: "Launch apps on free ports",
		Long: `Launch apps/<app>/run.sh (run.bat on Windows) as detached processes.

Each app receives the lowest free port in the configured range through the
PORT environment variable. Output of the launched processes is discarded.

Examples:
  portlauncher launch TerraAgent
  portlauncher launch TerraAgent TerraFlow TerraLevy
  portlauncher launch --json TerraAgent`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLauncher(cfg)
			if err != nil {
				return err
			}
			return runLaunch(cmd, l, args)
		},
	}

	return cmd
}

// launchOutcome is one entry of the launch result, success or failure.
type launchOutcome struct {
	App     string             `json:"app"`
	Status  model.LaunchStatus `json:"status"`
	Message string             `json:"message"`
	Port    int                `json:"port,omitempty"`
}

// runLaunch launches every name in order with l.
func runLaunch(cmd *cobra.Command, l *launcher.Launcher, names []string) error {
	ctx := commandContext(cmd)

	outcomes := make([]launchOutcome, 0, len(names))
	var firstErr error

	for _, name := range names {
		VerboseLog("Launching %s...", name)
		res, err := l.Launch(ctx, name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			outcomes = append(outcomes, launchOutcome{
				App:     name,
				Status:  model.LaunchFailed,
				Message: err.Error(),
			})
			continue
		}
		outcomes = append(outcomes, launchOutcome{
			App:     name,
			Status:  model.LaunchSucceeded,
			Message: res.Message,
			Port:    res.Port,
		})
	}

	printLaunchResult(cmd, outcomes)
	if !IsJSONOutput() && len(names) > 1 {
		logging.UserInfo("Assignments: %s", FormatAssignments(l.Table().Snapshot()))
	}

	if firstErr != nil && len(names) > 1 {
		// Per-app failures were already printed above.
		return model.WrapCLIError(launcher.ExitCodeFor(firstErr), "one or more launches failed", nil)
	}
	return firstErr
}

// printLaunchResult outputs the outcomes in text or JSON format.
func printLaunchResult(cmd *cobra.Command, outcomes []launchOutcome) {
	if IsJSONOutput() {
		result := struct {
			Launches []launchOutcome `json:"launches"`
		}{Launches: outcomes}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return
	}

	for _, o := range outcomes {
		// A single failure is reported once by Execute.
		if o.Status == model.LaunchFailed {
			if len(outcomes) > 1 {
				logging.UserError("%s", o.Message)
			}
			continue
		}
		logging.UserSuccess("%s", o.Message)
	}
}
