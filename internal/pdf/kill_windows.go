//go:build windows

package pdf

import (
	"os/exec"
	"strconv"
)

// killProcessGroup kills the browser and its children with taskkill.
func killProcessGroup(pid int) {
	// launcher.Kill follows as a fallback
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
