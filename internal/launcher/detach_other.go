//go:build !unix && !windows

package launcher

import "syscall"

// detachedAttrs has nothing to set on platforms without sessions or
// process groups.
func detachedAttrs() *syscall.SysProcAttr {
	return nil
}
