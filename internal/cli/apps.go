// Package cli — apps.go implements the "portlauncher apps" command.
//
// The apps command lists every directory under the apps directory that
// holds a run script for the host platform, along with the optional
// app.json manifest details.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/portlauncher/internal/apps"
	"github.com/shinji-kodama/portlauncher/internal/launcher"
	"github.com/shinji-kodama/portlauncher/internal/model"
)

// NewAppsCommand creates the "apps" cobra command.
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List launchable apps",
		Long: `List the apps found under the apps directory.

An app is a directory containing run.sh (run.bat on Windows). An optional
app.json manifest (comments allowed) supplies a display name and description.

Examples:
  portlauncher apps
  portlauncher apps --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := discoverApps(cfg.AppsDir, runtime.GOOS)
			if err != nil {
				return err
			}
			printAppsResult(cmd.OutOrStdout(), found)
			return nil
		},
	}

	return cmd
}

// discoverApps resolves the run script extension for goos and scans
// appsDir. Broken manifests are logged and otherwise ignored.
func discoverApps(appsDir, goos string) ([]model.App, error) {
	platform, err := launcher.ResolvePlatform(goos)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitUnsupportedPlatform, "cannot list apps", err)
	}

	found, skipped, err := apps.Discover(appsDir, platform.Extension)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read apps directory %s", appsDir), err)
	}
	for _, s := range skipped {
		VerboseLog("Warning: %v", s)
	}
	VerboseLog("Found %d apps in %s", len(found), appsDir)
	return found, nil
}

// appJSON is the JSON output structure for one app.
type appJSON struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Script      string `json:"script"`
}

// printAppsResult outputs the app list in text or JSON format.
func printAppsResult(w io.Writer, found []model.App) {
	if IsJSONOutput() {
		result := struct {
			Apps []appJSON `json:"apps"`
		}{
			// Empty slice so the output shows [] instead of null.
			Apps: make([]appJSON, 0, len(found)),
		}
		for _, a := range found {
			result.Apps = append(result.Apps, appJSON{
				Name:        a.Name,
				DisplayName: a.DisplayName,
				Description: a.Description,
				Script:      a.ScriptPath,
			})
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if len(found) == 0 {
		fmt.Fprintln(w, "No apps found.")
		return
	}

	fmt.Fprintf(w, "%-20s %-24s %s\n", "NAME", "DISPLAY NAME", "DESCRIPTION")
	for _, a := range found {
		desc := a.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(w, "%-20s %-24s %s\n", a.Name, a.DisplayName, desc)
	}
}
