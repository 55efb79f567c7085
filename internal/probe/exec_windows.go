//go:build windows

package probe

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps console tools like wmic from flashing a window
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
