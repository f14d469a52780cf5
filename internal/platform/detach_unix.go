//go:build !windows

package platform

import "syscall"

// A new session detaches the child from the controlling terminal, so closing
// the shell that launched the timer does not kill it.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
