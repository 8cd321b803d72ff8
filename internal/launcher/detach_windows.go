//go:build windows

package launcher

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// detachedAttrs starts the child in its own process group without a console
// window, so closing the host does not take it down with Ctrl+C/Ctrl+Break.
func detachedAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.CREATE_NO_WINDOW,
		HideWindow:    true,
	}
}
