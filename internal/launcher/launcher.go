package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"

	"github.com/shinji-kodama/portlauncher/internal/logging"
	"github.com/shinji-kodama/portlauncher/internal/model"
	"github.com/shinji-kodama/portlauncher/internal/port"
)

// ErrNoFreePorts is re-exported so callers only need this package to
// classify launch failures.
var ErrNoFreePorts = port.ErrNoFreePorts

// Options configures a Launcher. Zero values select the defaults.
type Options struct {
	// AppsDir is the directory holding one subdirectory per application.
	// Default: "apps".
	AppsDir string

	// GOOS selects the platform. Default: runtime.GOOS.
	GOOS string

	// Interpreter overrides the platform interpreter argv.
	Interpreter []string

	// Spawner starts processes. Default: ExecSpawner.
	Spawner Spawner

	// Environ returns the base environment for children. Default: os.Environ.
	Environ func() []string
}

// Launcher orchestrates single launch requests against a shared Table.
// It is safe for concurrent use.
type Launcher struct {
	table   *port.Table
	appsDir string
	goos    string
	interp  []string
	spawner Spawner
	environ func() []string
}

// Result describes a successful launch.
type Result struct {
	App        string `json:"app"`
	Port       int    `json:"port"`
	LaunchID   string `json:"launchId"`
	ScriptPath string `json:"scriptPath"`
	Message    string `json:"message"`
}

// New creates a Launcher that claims ports from table. table is shared with
// every other Launcher, server or tray in the process and must not be nil.
func New(table *port.Table, opts Options) *Launcher {
	l := &Launcher{
		table:   table,
		appsDir: opts.AppsDir,
		goos:    opts.GOOS,
		interp:  opts.Interpreter,
		spawner: opts.Spawner,
		environ: opts.Environ,
	}
	if l.appsDir == "" {
		l.appsDir = "apps"
	}
	if l.goos == "" {
		l.goos = runtime.GOOS
	}
	if l.spawner == nil {
		l.spawner = ExecSpawner{}
	}
	if l.environ == nil {
		l.environ = os.Environ
	}
	return l
}

// Table returns the assignment table this launcher claims from.
func (l *Launcher) Table() *port.Table {
	return l.table
}

// AppsDir returns the directory scripts are resolved under.
func (l *Launcher) AppsDir() string {
	return l.appsDir
}

// Platform returns the resolved platform including any interpreter
// override.
func (l *Launcher) Platform() (Platform, error) {
	p, err := ResolvePlatform(l.goos)
	if err != nil {
		return Platform{}, err
	}
	return p.WithInterpreter(l.interp), nil
}

// Launch starts the application called name.
//
// Name and platform problems are reported before the table is touched.
// A spawn failure leaves the claimed port assigned.
func (l *Launcher) Launch(ctx context.Context, name string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("launch of %s cancelled", name), err)
	}

	platform, err := l.Platform()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitUnsupportedPlatform,
			fmt.Sprintf("cannot launch %s", name), err)
	}

	scriptPath, err := ScriptPath(l.appsDir, name, platform.Extension)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidAppName,
			fmt.Sprintf("cannot launch %q", name), err)
	}

	launchID := uuid.NewString()
	log := logging.With("app", name, "launch_id", launchID)

	assignment, err := l.table.Claim(name, launchID)
	if err != nil {
		log.Warn().Err(err).Msg("port allocation failed")
		return nil, model.WrapCLIError(model.ExitPortAllocationFailed,
			fmt.Sprintf("cannot launch %s", name), err)
	}
	log.Debug().Int("port", assignment.Port).Msg("port claimed")

	argv := platform.Command(scriptPath)
	env := envWithPort(l.environ(), assignment.Port)

	if err := l.spawner.Spawn(argv, env); err != nil {
		// The claim is kept.
		log.Error().Err(err).Int("port", assignment.Port).Strs("argv", argv).Msg("spawn failed")
		return nil, model.WrapCLIError(model.ExitSpawnFailed,
			fmt.Sprintf("failed to launch %s", name), &spawnError{err: err})
	}
	log.Info().Int("port", assignment.Port).Str("script", scriptPath).Msg("launched")

	return &Result{
		App:        name,
		Port:       assignment.Port,
		LaunchID:   launchID,
		ScriptPath: scriptPath,
		Message:    fmt.Sprintf("%s launched on port %d", name, assignment.Port),
	}, nil
}

// LaunchApp is the boundary call used by the tray and HTTP hosts. It
// returns the human-readable success message, or an error whose text is
// the human-readable failure reason.
func (l *Launcher) LaunchApp(name string) (string, error) {
	res, err := l.Launch(context.Background(), name)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// ExitCodeFor maps a launch error to the CLI exit code.
func ExitCodeFor(err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return model.ExitGeneralError
}
