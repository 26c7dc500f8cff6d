package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gopsnet "github.com/shirou/gopsutil/v4/net"
	gopsproc "github.com/shirou/gopsutil/v4/process"
)

// ErrNoProcess means the query ran and found nothing.
var ErrNoProcess = errors.New("no matching process")

// ErrQueryUnavailable means the process table could not be queried at all
// (tool missing, permission denied). Callers must not read it as "not
// running" without saying so.
var ErrQueryUnavailable = errors.New("process query unavailable")

// API is the uniform capability over the host OS process table. One
// implementation is selected per platform at startup; every call site
// depends only on this interface.
type API interface {
	// Alive reports whether a process with the given PID currently exists.
	// It never fails for a nonexistent PID; that is simply false.
	Alive(pid int) bool
	// FindByName returns the PIDs of every live process whose image or
	// command line matches name. A failed table scan yields an empty set.
	FindByName(name string) []int
	// FindByPort returns the PID bound to a listening TCP port.
	// ErrNoProcess when the port is free, ErrQueryUnavailable when the
	// table could not be read.
	FindByPort(port int) (int, error)
	// Terminate sends a cooperative shutdown request, or an unconditional
	// kill when force is set. Terminating an already-dead PID succeeds.
	Terminate(pid int, force bool) error
}

// New selects the host platform's implementation.
func New() API { return newAPI() }

// listByName scans the process table via gopsutil, matching either the
// image name (with or without .exe) or a command line containing name.
// The calling process itself is never a match.
func listByName(name string) []int {
	procs, err := gopsproc.Processes()
	if err != nil {
		return nil
	}
	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if int(p.Pid) == self {
			continue
		}
		n, err := p.Name()
		if err == nil && (n == name || strings.TrimSuffix(n, ".exe") == name) {
			pids = append(pids, int(p.Pid))
			continue
		}
		cl, err := p.Cmdline()
		if err == nil && cl != "" && strings.Contains(cl, name) {
			pids = append(pids, int(p.Pid))
		}
	}
	return pids
}

// listenerOnPort finds the owner of a listening TCP socket on port.
func listenerOnPort(port int) (int, error) {
	conns, err := gopsnet.Connections("tcp")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrQueryUnavailable, err)
	}
	for _, c := range conns {
		if c.Status != "LISTEN" {
			continue
		}
		if int(c.Laddr.Port) == port && c.Pid > 0 {
			return int(c.Pid), nil
		}
	}
	return 0, fmt.Errorf("%w: no listener on port %d", ErrNoProcess, port)
}
