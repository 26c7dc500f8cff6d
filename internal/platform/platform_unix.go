//go:build !windows

package platform

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"syscall"
)

type unixAPI struct{}

func newAPI() API { return unixAPI{} }

// Alive uses kill(pid, 0). EPERM still means the process exists, it just
// belongs to someone else. A zombie is not alive: a just-spawned server
// that died before its parent reaped it must not pass the liveness probe.
func (unixAPI) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	if runtime.GOOS == "linux" && isZombieLinux(pid) {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

// isZombieLinux reports whether /proc/<pid>/status shows state Z.
func isZombieLinux(pid int) bool {
	b, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/status")
	if err != nil {
		return false
	}
	return bytes.Contains(b, []byte("State:\tZ"))
}

func (unixAPI) FindByName(name string) []int { return listByName(name) }

func (unixAPI) FindByPort(port int) (int, error) { return listenerOnPort(port) }

func (unixAPI) Terminate(pid int, force bool) error {
	if pid <= 0 {
		return nil
	}
	sig := syscall.SIGTERM
	if force {
		sig = syscall.SIGKILL
	}
	err := syscall.Kill(pid, sig)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		// Already gone counts as terminated.
		return nil
	}
	return fmt.Errorf("signal pid %d: %w", pid, err)
}
