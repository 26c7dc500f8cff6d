package supervisor

import (
	"errors"

	"github.com/spot-analyzer/devctl/internal/logstore"
	"github.com/spot-analyzer/devctl/internal/platform"
)

// State is the tri-state server status, computed fresh on every query.
type State string

const (
	// StateRunning means the recorded PID is alive.
	StateRunning State = "running"
	// StateOrphan means no live recorded PID, but a process matching the
	// server identity is alive.
	StateOrphan State = "orphan"
	// StateStopped means neither.
	StateStopped State = "stopped"
)

// Status is a snapshot of the server plus recent log files as context.
type Status struct {
	State    State
	PID      int
	Orphans  []int
	LogFiles []logstore.FileInfo
}

// Status derives the tri-state from the record and the live process table.
// Nothing is cached; the record alone is never trusted.
func (s *Supervisor) Status() Status {
	st := Status{State: StateStopped}
	if pid, ok := s.trackedPID(); ok {
		st.State = StateRunning
		st.PID = pid
	} else if pids := s.api.FindByName(s.cfg.ServerName); len(pids) > 0 {
		st.State = StateOrphan
		st.Orphans = pids
	}
	st.LogFiles = (&logstore.Store{Dir: s.cfg.LogsDir}).RecentFiles(10)
	return st
}

// PortStatus reports only whether port is occupied and by which PID; the
// tri-state logic does not apply to an explicit port query.
func (s *Supervisor) PortStatus(port int) (int, bool, error) {
	pid, err := s.api.FindByPort(port)
	if err != nil {
		if errors.Is(err, platform.ErrNoProcess) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return pid, true, nil
}
