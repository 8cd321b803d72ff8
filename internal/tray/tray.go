package tray

import (
	"os"

	"fyne.io/systray"

	"github.com/shinji-kodama/portlauncher/internal/logging"
	"github.com/shinji-kodama/portlauncher/internal/model"
)

// AppLauncher is the single call the tray makes into the core.
type AppLauncher interface {
	LaunchApp(name string) (string, error)
}

// Host owns the tray menu.
type Host struct {
	launcher AppLauncher
	apps     []model.App

	// exit terminates the process. Tests replace it.
	exit func(code int)

	// status is the disabled menu item showing the last outcome. Nil until
	// the tray is ready.
	status *systray.MenuItem
}

// NewHost creates a tray host that offers found in its menu.
func NewHost(l AppLauncher, found []model.App) *Host {
	return &Host{launcher: l, apps: found, exit: os.Exit}
}

// Run blocks running the tray event loop.
func (h *Host) Run() {
	systray.Run(h.onReady, h.onExit)
}

func (h *Host) onReady() {
	systray.SetTitle("portlauncher")
	systray.SetTooltip("Launch local apps on free ports")

	h.status = systray.AddMenuItem("Ready", "Last launch result")
	h.status.Disable()
	systray.AddSeparator()

	for _, e := range BuildMenu(h.apps) {
		if e.IsSeparator() {
			systray.AddSeparator()
			continue
		}
		item := systray.AddMenuItem(e.Title, e.Tooltip)
		go func(id string, item *systray.MenuItem) {
			for range item.ClickedCh {
				h.Handle(id)
			}
		}(e.ID, item)
	}
}

func (h *Host) onExit() {
	logging.Debug("tray exited")
}

// Handle dispatches a menu click and returns the text shown to the user.
func (h *Host) Handle(id string) string {
	if id == QuitID {
		logging.Debug("quit requested")
		h.exit(0)
		return ""
	}

	msg, err := h.launcher.LaunchApp(id)
	if err != nil {
		msg = err.Error()
		logging.UserError("%s", msg)
	} else {
		logging.UserSuccess("%s", msg)
	}

	if h.status != nil {
		h.status.SetTitle(msg)
	}
	return msg
}
