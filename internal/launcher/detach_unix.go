//go:build unix

package launcher

import "syscall"

// detachedAttrs puts the child in its own session so it survives the host
// and does not receive the host terminal's signals.
func detachedAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
