package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolvePlatform verifies the interpreter/extension table.
func TestResolvePlatform(t *testing.T) {
	tests := []struct {
		goos        string
		interpreter []string
		ext         string
	}{
		{"windows", []string{"cmd", "/C"}, ".bat"},
		{"darwin", []string{"sh"}, ".sh"},
		{"linux", []string{"sh"}, ".sh"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p, err := ResolvePlatform(tt.goos)
			require.NoError(t, err)
			assert.Equal(t, tt.goos, p.GOOS)
			assert.Equal(t, tt.interpreter, p.Interpreter)
			assert.Equal(t, tt.ext, p.Extension)
		})
	}
}

// TestResolvePlatform_Unsupported verifies that anything else fails with
// ErrUnsupportedPlatform and names the OS.
func TestResolvePlatform_Unsupported(t *testing.T) {
	for _, goos := range []string{"plan9", "freebsd", "js", ""} {
		t.Run(goos, func(t *testing.T) {
			_, err := ResolvePlatform(goos)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedPlatform))
		})
	}
}

// TestPlatform_Command verifies the script path is appended after the
// interpreter, including the /C flag on Windows.
func TestPlatform_Command(t *testing.T) {
	win, err := ResolvePlatform("windows")
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "/C", `apps\foo\run.bat`}, win.Command(`apps\foo\run.bat`))

	posix, err := ResolvePlatform("linux")
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "apps/foo/run.sh"}, posix.Command("apps/foo/run.sh"))
}

// TestPlatform_WithInterpreter verifies overrides replace the prefix and do
// not alias the caller's slice.
func TestPlatform_WithInterpreter(t *testing.T) {
	p, err := ResolvePlatform("linux")
	require.NoError(t, err)

	override := []string{"bash", "--noprofile"}
	q := p.WithInterpreter(override)
	override[0] = "zsh"

	assert.Equal(t, []string{"bash", "--noprofile"}, q.Interpreter)
	assert.Equal(t, []string{"sh"}, p.Interpreter, "original should be untouched")
	assert.Equal(t, p, p.WithInterpreter(nil))
}

// TestScriptPath verifies path construction for a plain name.
func TestScriptPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX separators")
	}

	got, err := ScriptPath("apps", "foo", ".sh")
	require.NoError(t, err)
	assert.Equal(t, "apps/foo/run.sh", got)
}

// TestScriptPath_AbsoluteRoot verifies absolute apps directories work too.
func TestScriptPath_AbsoluteRoot(t *testing.T) {
	root := t.TempDir()

	got, err := ScriptPath(root, "foo", ".bat")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "foo", "run.bat"), got)
}

// TestScriptPath_RejectsTraversal verifies names that would leave the apps
// directory are refused.
func TestScriptPath_RejectsTraversal(t *testing.T) {
	for _, name := range []string{"", "..", "../../etc", "a/b", "/etc", `..\win`} {
		t.Run(name, func(t *testing.T) {
			_, err := ScriptPath("apps", name, ".sh")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidName))
		})
	}
}

// TestScriptPath_SymlinkEscape verifies that an app directory symlinked
// outside the apps root is resolved back inside it.
func TestScriptPath_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "evil")))

	got, err := ScriptPath(root, "evil", ".sh")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, root+string(filepath.Separator)),
		"%s should stay under %s", got, root)
}
