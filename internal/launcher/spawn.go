package launcher

import (
	"errors"
	"os/exec"
	"strconv"
	"strings"
)

// ErrSpawnFailed is returned when the OS refuses to start the interpreter.
var ErrSpawnFailed = errors.New("spawn failed")

// Spawner starts a process and returns without waiting for it.
type Spawner interface {
	Spawn(argv, env []string) error
}

// ExecSpawner starts detached processes with os/exec.
type ExecSpawner struct{}

// Spawn starts argv with env as its complete environment. Stdin, stdout and
// stderr are connected to the null device. The child is detached from the
// host's session (or console on Windows) and reaped in the background; its
// exit status is discarded.
func (ExecSpawner) Spawn(argv, env []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	// #nosec G204 -- argv is interpreter + validated script path
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = env
	// Leaving Stdin/Stdout/Stderr nil makes os/exec use the null device.
	cmd.SysProcAttr = detachedAttrs()

	if err := cmd.Start(); err != nil {
		return err
	}

	// Wait only so the child does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// spawnError marks an OS spawn failure while keeping the OS text as the
// message.
type spawnError struct {
	err error
}

func (e *spawnError) Error() string { return e.err.Error() }

func (e *spawnError) Unwrap() error { return e.err }

func (e *spawnError) Is(target error) bool { return target == ErrSpawnFailed }

// envWithPort returns base with any existing PORT entry replaced.
func envWithPort(base []string, port int) []string {
	env := make([]string, 0, len(base)+1)
	for _, kv := range base {
		if strings.HasPrefix(kv, "PORT=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "PORT="+strconv.Itoa(port))
}
