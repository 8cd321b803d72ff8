package launcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/portlauncher/internal/model"
	"github.com/shinji-kodama/portlauncher/internal/port"
)

// fakeSpawner records every spawn instead of starting a process.
type fakeSpawner struct {
	mu    sync.Mutex
	calls []spawnCall
	err   error
}

type spawnCall struct {
	argv []string
	env  []string
}

func (f *fakeSpawner) Spawn(argv, env []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, spawnCall{argv: argv, env: env})
	return f.err
}

func (f *fakeSpawner) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// newTestLauncher wires a Launcher to a fresh default-range table and a
// fake spawner with a fixed base environment.
func newTestLauncher(goos string) (*Launcher, *port.Table, *fakeSpawner) {
	table := port.NewTable(port.DefaultRangeStart, port.DefaultRangeEnd)
	spawner := &fakeSpawner{}
	l := New(table, Options{
		GOOS:    goos,
		Spawner: spawner,
		Environ: func() []string { return []string{"HOME=/home/test", "PORT=1234"} },
	})
	return l, table, spawner
}

// TestLaunch_Scenario walks the appA/appB scenario: 8000 then 8001, both
// recorded in the table.
func TestLaunch_Scenario(t *testing.T) {
	l, table, spawner := newTestLauncher("linux")

	a, err := l.Launch(context.Background(), "appA")
	require.NoError(t, err)
	assert.Equal(t, 8000, a.Port)
	assert.Equal(t, "appA launched on port 8000", a.Message)
	assert.NotEmpty(t, a.LaunchID)

	b, err := l.Launch(context.Background(), "appB")
	require.NoError(t, err)
	assert.Equal(t, 8001, b.Port)

	snap := table.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "appA", snap[0].Name)
	assert.Equal(t, a.LaunchID, snap[0].LaunchID)
	assert.Equal(t, "appB", snap[1].Name)
	assert.Equal(t, 2, spawner.count())
}

// TestLaunch_SpawnArguments verifies the interpreter, script path and
// environment handed to the spawner on a POSIX host.
func TestLaunch_SpawnArguments(t *testing.T) {
	l, _, spawner := newTestLauncher("linux")

	res, err := l.Launch(context.Background(), "foo")
	require.NoError(t, err)

	require.Len(t, spawner.calls, 1)
	call := spawner.calls[0]
	script := filepath.Join("apps", "foo", "run.sh")
	assert.Equal(t, []string{"sh", script}, call.argv)
	assert.Equal(t, script, res.ScriptPath)

	// PORT from the parent is replaced, everything else is inherited.
	assert.Equal(t, []string{"HOME=/home/test", "PORT=8000"}, call.env)
}

// TestLaunch_Windows verifies cmd /C and the .bat extension.
func TestLaunch_Windows(t *testing.T) {
	l, _, spawner := newTestLauncher("windows")

	_, err := l.Launch(context.Background(), "foo")
	require.NoError(t, err)

	require.Len(t, spawner.calls, 1)
	assert.Equal(t, []string{"cmd", "/C", filepath.Join("apps", "foo", "run.bat")}, spawner.calls[0].argv)
}

// TestLaunch_InterpreterOverride verifies a configured interpreter replaces
// the platform default.
func TestLaunch_InterpreterOverride(t *testing.T) {
	table := port.NewTable(port.DefaultRangeStart, port.DefaultRangeEnd)
	spawner := &fakeSpawner{}
	l := New(table, Options{
		AppsDir:     "tools",
		GOOS:        "darwin",
		Interpreter: []string{"bash", "--noprofile"},
		Spawner:     spawner,
		Environ:     func() []string { return nil },
	})

	_, err := l.Launch(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "--noprofile", filepath.Join("tools", "foo", "run.sh")}, spawner.calls[0].argv)
	assert.Equal(t, "tools", l.AppsDir())
}

// TestLaunch_UnsupportedPlatform verifies that an unknown OS fails without
// spawning and without touching the table.
func TestLaunch_UnsupportedPlatform(t *testing.T) {
	l, table, spawner := newTestLauncher("plan9")

	_, err := l.Launch(context.Background(), "foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedPlatform))
	assert.Contains(t, err.Error(), "unsupported operating system")
	assert.Equal(t, model.ExitUnsupportedPlatform, ExitCodeFor(err))

	assert.Equal(t, 0, spawner.count())
	assert.Equal(t, 0, table.Len())
}

// TestLaunch_InvalidName verifies traversal attempts are rejected before
// the table is touched.
func TestLaunch_InvalidName(t *testing.T) {
	l, table, spawner := newTestLauncher("linux")

	_, err := l.Launch(context.Background(), "../../etc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidName))
	assert.Equal(t, model.ExitInvalidAppName, ExitCodeFor(err))

	assert.Equal(t, 0, spawner.count())
	assert.Equal(t, 0, table.Len())
}

// TestLaunch_SpawnFailure verifies that a spawn error is reported with the
// OS text and that the claimed port is not rolled back.
func TestLaunch_SpawnFailure(t *testing.T) {
	l, table, spawner := newTestLauncher("linux")
	spawner.err = errors.New(`exec: "sh": executable file not found in $PATH`)

	_, err := l.Launch(context.Background(), "foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpawnFailed))
	assert.Equal(t, `failed to launch foo: exec: "sh": executable file not found in $PATH`, err.Error())
	assert.Equal(t, model.ExitSpawnFailed, ExitCodeFor(err))

	a, ok := table.Lookup("foo")
	require.True(t, ok, "port should stay assigned after spawn failure")
	assert.Equal(t, 8000, a.Port)

	// The leaked port is skipped by the next launch.
	spawner.err = nil
	res, err := l.Launch(context.Background(), "bar")
	require.NoError(t, err)
	assert.Equal(t, 8001, res.Port)
}

// TestLaunch_NoFreePorts verifies exhaustion is reported and nothing is
// spawned.
func TestLaunch_NoFreePorts(t *testing.T) {
	table := port.NewTable(8000, 8001)
	spawner := &fakeSpawner{}
	l := New(table, Options{GOOS: "linux", Spawner: spawner})

	_, err := l.Launch(context.Background(), "first")
	require.NoError(t, err)

	_, err = l.Launch(context.Background(), "second")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFreePorts))
	assert.Equal(t, model.ExitPortAllocationFailed, ExitCodeFor(err))
	assert.Equal(t, 1, spawner.count())
}

// TestLaunch_SameNameTwice verifies that relaunching a name yields a new
// port and replaces the table entry.
func TestLaunch_SameNameTwice(t *testing.T) {
	l, table, _ := newTestLauncher("linux")

	first, err := l.Launch(context.Background(), "foo")
	require.NoError(t, err)
	second, err := l.Launch(context.Background(), "foo")
	require.NoError(t, err)

	assert.NotEqual(t, first.Port, second.Port)
	assert.Equal(t, 1, table.Len())

	a, _ := table.Lookup("foo")
	assert.Equal(t, second.Port, a.Port)
}

// TestLaunch_Cancelled verifies a cancelled context stops the launch before
// any port is claimed.
func TestLaunch_Cancelled(t *testing.T) {
	l, table, spawner := newTestLauncher("linux")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Launch(ctx, "foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, 0, spawner.count())
}

// TestLaunch_Concurrent launches many distinct apps in parallel and checks
// all ports are distinct.
func TestLaunch_Concurrent(t *testing.T) {
	l, table, spawner := newTestLauncher("linux")

	const n = 100
	results := make([]*Result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := l.Launch(context.Background(), fmt.Sprintf("app-%d", i))
			if err == nil {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, n)
	for _, r := range results {
		require.NotNil(t, r)
		assert.False(t, seen[r.Port], "port %d reused", r.Port)
		seen[r.Port] = true
	}
	assert.Equal(t, n, table.Len())
	assert.Equal(t, n, spawner.count())
}

// TestLaunchApp verifies the string boundary.
func TestLaunchApp(t *testing.T) {
	l, _, _ := newTestLauncher("linux")

	msg, err := l.LaunchApp("TerraAgent")
	require.NoError(t, err)
	assert.Equal(t, "TerraAgent launched on port 8000", msg)

	bad, _, _ := newTestLauncher("plan9")
	msg, err = bad.LaunchApp("TerraAgent")
	require.Error(t, err)
	assert.Empty(t, msg)
	assert.Contains(t, err.Error(), "unsupported operating system: plan9")
}

// TestEnvWithPort verifies duplicate PORT entries are dropped.
func TestEnvWithPort(t *testing.T) {
	env := envWithPort([]string{"PORT=1", "A=b", "PORTAL=x", "PORT=2"}, 8123)
	assert.Equal(t, []string{"A=b", "PORTAL=x", "PORT=8123"}, env)
}

// TestExitCodeFor_PlainError verifies non-CLI errors map to the general code.
func TestExitCodeFor_PlainError(t *testing.T) {
	assert.Equal(t, model.ExitGeneralError, ExitCodeFor(errors.New("boom")))
}
