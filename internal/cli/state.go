package cli

import (
	"runtime"

	"github.com/shinji-kodama/portlauncher/internal/config"
	"github.com/shinji-kodama/portlauncher/internal/launcher"
	"github.com/shinji-kodama/portlauncher/internal/model"
	"github.com/shinji-kodama/portlauncher/internal/port"
)

// newLauncher builds the process-wide assignment table and the launcher
// that owns it. Commands that run several front ends (tray + HTTP) pass
// the returned launcher to each so they share one table.
func newLauncher(c *config.Config) (*launcher.Launcher, error) {
	interp, err := c.Interpreter(runtime.GOOS)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid interpreter override", err)
	}

	table := port.NewTable(c.PortStart, c.PortEnd)
	if c.ProbeHostPorts {
		table.SetProber(port.NewScanner())
		VerboseLog("Host port probing enabled")
	}

	VerboseLog("Port range %d-%d, apps directory %s", c.PortStart, c.PortEnd-1, c.AppsDir)
	return launcher.New(table, launcher.Options{
		AppsDir:     c.AppsDir,
		Interpreter: interp,
	}), nil
}
