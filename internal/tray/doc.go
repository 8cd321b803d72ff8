// Package tray hosts the launcher in the system tray.
//
// The tray is a thin shell: it renders one menu item per discovered app
// plus a Quit item, and forwards clicks to Launcher.LaunchApp. Quit ends
// the host process immediately with exit code 0. Launched children are
// left running and no ports are released.
package tray
