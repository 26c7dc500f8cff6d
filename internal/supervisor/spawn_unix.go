//go:build !windows

package supervisor

import (
	"os/exec"
	"syscall"
)

// detach starts the server in a new session (setsid) so it has no
// controlling terminal and survives devctl's exit.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
