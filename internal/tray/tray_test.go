package tray

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/portlauncher/internal/logging"
	"github.com/shinji-kodama/portlauncher/internal/model"
)

type fakeLauncher struct {
	calls []string
	err   error
}

func (f *fakeLauncher) LaunchApp(name string) (string, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return "", f.err
	}
	return name + " launched on port 8000", nil
}

func quietUser(t *testing.T) {
	t.Helper()
	oldOut, oldErr := logging.Stdout, logging.Stderr
	logging.Stdout, logging.Stderr = io.Discard, io.Discard
	t.Cleanup(func() { logging.Stdout, logging.Stderr = oldOut, oldErr })
}

// TestBuildMenu verifies apps come first, then a separator and Quit.
func TestBuildMenu(t *testing.T) {
	entries := BuildMenu([]model.App{
		{Name: "TerraAgent", DisplayName: "Terra Agent", Description: "Agent UI"},
		{Name: "TerraFlow", DisplayName: "TerraFlow"},
	})

	require.Len(t, entries, 4)
	assert.Equal(t, Entry{ID: "TerraAgent", Title: "Terra Agent", Tooltip: "Agent UI"}, entries[0])
	assert.Equal(t, Entry{ID: "TerraFlow", Title: "TerraFlow", Tooltip: "Launch TerraFlow"}, entries[1])
	assert.True(t, entries[2].IsSeparator())
	assert.Equal(t, QuitID, entries[3].ID)
}

// TestBuildMenu_NoApps verifies only Quit is offered.
func TestBuildMenu_NoApps(t *testing.T) {
	entries := BuildMenu(nil)
	require.Len(t, entries, 1)
	assert.Equal(t, QuitID, entries[0].ID)
	assert.False(t, entries[0].IsSeparator())
}

// TestHandle_Launch verifies a click is forwarded to LaunchApp.
func TestHandle_Launch(t *testing.T) {
	quietUser(t)
	l := &fakeLauncher{}
	h := NewHost(l, nil)

	msg := h.Handle("TerraAgent")
	assert.Equal(t, "TerraAgent launched on port 8000", msg)
	assert.Equal(t, []string{"TerraAgent"}, l.calls)
}

// TestHandle_LaunchError verifies the error text becomes the message.
func TestHandle_LaunchError(t *testing.T) {
	quietUser(t)
	l := &fakeLauncher{err: errors.New("cannot launch foo: no free ports available")}
	h := NewHost(l, nil)

	assert.Equal(t, "cannot launch foo: no free ports available", h.Handle("foo"))
}

// TestHandle_Quit verifies Quit exits with code 0 and launches nothing.
func TestHandle_Quit(t *testing.T) {
	l := &fakeLauncher{}
	h := NewHost(l, nil)

	code := -1
	h.exit = func(c int) { code = c }

	h.Handle(QuitID)
	assert.Equal(t, 0, code)
	assert.Empty(t, l.calls)
}
