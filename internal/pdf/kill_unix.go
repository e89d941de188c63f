//go:build !windows

package pdf

import "syscall"

// killProcessGroup sends SIGKILL to the browser's process group.
func killProcessGroup(pid int) {
	// launcher.Kill follows as a fallback
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
