// Package cli — serve.go implements the "portlauncher serve" command.
//
// The serve command exposes the launcher over a small local HTTP API so
// other tools (or a browser) can launch apps. Every request shares the
// assignment table owned by this process.
package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/portlauncher/internal/launcher"
	"github.com/shinji-kodama/portlauncher/internal/logging"
	"github.com/shinji-kodama/portlauncher/internal/model"
	"github.com/shinji-kodama/portlauncher/internal/server"
)

// serveFlags holds the flag values for the serve command.
type serveFlags struct {
	// listen overrides the config "listen" address when non-empty.
	listen string
}

// NewServeCommand creates the "serve" cobra command.
func NewServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the launch API over HTTP",
		Long: `Serve the launcher over HTTP until interrupted.

Routes:
  GET|POST /api/launch/{name}   launch an app
  GET      /api/apps            list launchable apps
  GET      /api/ports           list port assignments made by this server

Examples:
  portlauncher serve
  portlauncher serve --listen 127.0.0.1:5050`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLauncher(cfg)
			if err != nil {
				return err
			}

			addr := cfg.Listen
			if flags.listen != "" {
				addr = flags.listen
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, l, addr)
		},
	}

	cmd.Flags().StringVar(&flags.listen, "listen", "", "Address to listen on (default from config, 127.0.0.1:5000)")

	return cmd
}

// runServe listens on addr and serves the API with l until ctx is done.
func runServe(ctx context.Context, l *launcher.Launcher, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to listen on %s", addr), err)
	}

	logging.UserInfo("Serving launch API on http://%s", ln.Addr())
	logging.Info("api listening", "addr", ln.Addr().String())

	if err := server.New(l).Serve(ctx, ln); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "launch API stopped", err)
	}
	logging.Debug("api stopped")
	return nil
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
