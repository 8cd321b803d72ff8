package tray

import (
	"github.com/shinji-kodama/portlauncher/internal/model"
)

// QuitID identifies the Quit menu entry. It is not a valid app name, so it
// cannot collide with an app directory.
const QuitID = ":quit"

// Entry is one row of the tray menu.
type Entry struct {
	// ID is the app name, QuitID, or empty for a separator.
	ID      string
	Title   string
	Tooltip string
}

// IsSeparator reports whether the entry is a divider line.
func (e Entry) IsSeparator() bool {
	return e.ID == ""
}

// BuildMenu lays out the tray menu: apps in the given order, then a
// separator and Quit. With no apps only Quit is shown.
func BuildMenu(found []model.App) []Entry {
	entries := make([]Entry, 0, len(found)+2)
	for _, app := range found {
		tooltip := app.Description
		if tooltip == "" {
			tooltip = "Launch " + app.Name
		}
		entries = append(entries, Entry{ID: app.Name, Title: app.DisplayName, Tooltip: tooltip})
	}
	if len(entries) > 0 {
		entries = append(entries, Entry{})
	}
	return append(entries, Entry{ID: QuitID, Title: "Quit", Tooltip: "Quit portlauncher"})
}
