// Package cli — tray.go implements the "portlauncher tray" command.
//
// The tray command runs the system tray host: one menu entry per
// discovered app and a Quit entry. With --serve the HTTP API runs
// alongside it, sharing the same assignment table.
package cli

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/portlauncher/internal/logging"
	"github.com/shinji-kodama/portlauncher/internal/tray"
)

// trayFlags holds the flag values for the tray command.
type trayFlags struct {
	// serve also starts the HTTP API on the configured listen address.
	serve bool
}

// NewTrayCommand creates the "tray" cobra command.
func NewTrayCommand() *cobra.Command {
	flags := &trayFlags{}

	cmd := &cobra.Command{
		Use:   "tray",
		Short: "Run the system tray launcher",
		Long: `Show a system tray menu with one entry per app.

Clicking an entry launches the app on a free port. Quit exits immediately
with status 0; launched apps keep running.

Examples:
  portlauncher tray
  portlauncher tray --serve`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLauncher(cfg)
			if err != nil {
				return err
			}

			found, err := discoverApps(cfg.AppsDir, runtime.GOOS)
			if err != nil {
				return err
			}

			if flags.serve {
				// The tray exits the process on Quit, so the server is
				// never shut down gracefully.
				go func() {
					if err := runServe(context.Background(), l, cfg.Listen); err != nil {
						logging.Error("launch API failed", "error", err)
					}
				}()
			}

			tray.NewHost(l, found).Run()
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.serve, "serve", false, "Also serve the HTTP launch API")

	return cmd
}
