// Package supervisor orchestrates the lifecycle of the spot-web development
// server: build, detached start, graceful stop with forced escalation, kill
// with orphan sweep, and tri-state status. It owns the PID record; it never
// reads the server's structured logs.
package supervisor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/spot-analyzer/devctl/internal/config"
	"github.com/spot-analyzer/devctl/internal/logger"
	"github.com/spot-analyzer/devctl/internal/platform"
	"github.com/spot-analyzer/devctl/internal/record"
)

type Supervisor struct {
	cfg   config.Config
	api   platform.API
	rec   *record.Store
	log   *slog.Logger
	sleep func(time.Duration) // injectable for tests
}

func New(cfg config.Config, api platform.API, log *slog.Logger) *Supervisor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Supervisor{
		cfg:   cfg,
		api:   api,
		rec:   &record.Store{Path: cfg.PIDFile},
		log:   log,
		sleep: time.Sleep,
	}
}

// SetSleep replaces the wall-clock sleep, making retry and grace intervals
// deterministic in tests.
func (s *Supervisor) SetSleep(fn func(time.Duration)) { s.sleep = fn }

// trackedPID returns the recorded PID only when that process is alive.
// A record pointing at a dead PID is stale and reads as absent.
func (s *Supervisor) trackedPID() (int, bool) {
	pid, err := s.rec.Read()
	if err != nil {
		return 0, false
	}
	if !s.api.Alive(pid) {
		s.log.Debug("stale pid record", "pid", pid)
		return 0, false
	}
	return pid, true
}

// StartOptions controls a start or restart.
type StartOptions struct {
	Port      int
	SkipBuild bool
	NoBrowser bool
}

// StartResult reports the spawned server.
type StartResult struct {
	PID int
	URL string
}

// Start builds (unless skipped), verifies the executable, spawns the server
// detached with its streams redirected into the logs directory, records the
// PID, and confirms the process survived the grace interval.
func (s *Supervisor) Start(opts StartOptions) (StartResult, error) {
	port := opts.Port
	if port <= 0 {
		port = s.cfg.DefaultPort
	}
	if pid, ok := s.trackedPID(); ok {
		return StartResult{}, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}
	if !opts.SkipBuild {
		if err := s.Build(); err != nil {
			return StartResult{}, err
		}
	}
	bin := s.cfg.ServerBinary()
	if _, err := os.Stat(bin); err != nil {
		return StartResult{}, fmt.Errorf("%w: executable not found: %s (run 'devctl build' first)", ErrStartFailed, bin)
	}

	outF, errF, err := logger.ServerFiles(s.cfg.LogsDir, s.cfg.ServerName)
	if err != nil {
		return StartResult{}, fmt.Errorf("prepare server output files: %w", err)
	}
	// The child holds its own descriptors after Start; these are ours.
	defer func() {
		_ = outF.Close()
		_ = errF.Close()
	}()

	cmd := exec.Command(bin, "-port", strconv.Itoa(port))
	cmd.Dir = s.cfg.ProjectRoot
	cmd.Stdout = outF
	cmd.Stderr = errF
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return StartResult{}, fmt.Errorf("%w: %v", ErrStartFailed, err)
	}
	pid := cmd.Process.Pid
	if err := s.rec.Write(pid); err != nil {
		return StartResult{}, err
	}
	// Reap the child if it dies while devctl is still around, so the grace
	// probe below sees a dead process rather than a zombie.
	go func() { _ = cmd.Wait() }()

	s.sleep(s.cfg.GraceInterval)
	if !s.api.Alive(pid) {
		_ = s.rec.Remove()
		return StartResult{}, fmt.Errorf("%w: exited within %s of start; check %s", ErrStartFailed, s.cfg.GraceInterval, s.cfg.LogsDir)
	}

	url := fmt.Sprintf("http://localhost:%d", port)
	if !opts.NoBrowser {
		openBrowser(url)
	}
	s.log.Info("server started", "pid", pid, "port", port)
	return StartResult{PID: pid, URL: url}, nil
}

// StopResult reports what a stop or kill acted on. Found false means there
// was nothing to stop, which is a success, not an error.
type StopResult struct {
	PID    int
	Found  bool
	Forced bool
}

// Stop resolves the target PID (explicit port, else the tracked record),
// sends a graceful terminate, and polls liveness within the retry budget.
// A process that ignores the request is forcefully killed by the same call.
func (s *Supervisor) Stop(port int) (StopResult, error) {
	if port > 0 {
		return s.stopByPort(port)
	}

	pid, ok := s.trackedPID()
	if !ok {
		return StopResult{}, nil
	}
	s.log.Info("stopping server", "pid", pid)
	if err := s.api.Terminate(pid, false); err != nil {
		return StopResult{}, err
	}
	if s.waitDead(pid) {
		_ = s.rec.Remove()
		return StopResult{PID: pid, Found: true}, nil
	}
	// Didn't exit within budget; escalate to a full kill with orphan sweep.
	s.log.Warn("server ignored graceful stop, force killing", "pid", pid)
	if _, err := s.Kill(0); err != nil {
		return StopResult{PID: pid, Found: true, Forced: true}, err
	}
	return StopResult{PID: pid, Found: true, Forced: true}, nil
}

func (s *Supervisor) stopByPort(port int) (StopResult, error) {
	pid, err := s.api.FindByPort(port)
	if err != nil {
		if errors.Is(err, platform.ErrQueryUnavailable) {
			// Degraded query: unknown is not the same as "not running",
			// but with no PID there is nothing actionable. Say so.
			s.log.Warn("could not inspect port owner, assuming nothing to stop", "port", port, "err", err)
		}
		return StopResult{}, nil
	}
	s.log.Info("stopping server", "pid", pid, "port", port)
	if err := s.api.Terminate(pid, false); err != nil {
		return StopResult{}, err
	}
	if s.waitDead(pid) {
		return StopResult{PID: pid, Found: true}, nil
	}
	s.log.Warn("server ignored graceful stop, force killing", "pid", pid, "port", port)
	if err := s.api.Terminate(pid, true); err != nil {
		return StopResult{PID: pid, Found: true, Forced: true}, err
	}
	return StopResult{PID: pid, Found: true, Forced: true}, nil
}

// waitDead polls until pid is gone or the stop budget is exhausted.
func (s *Supervisor) waitDead(pid int) bool {
	r := Retry{Attempts: s.cfg.StopAttempts, Interval: s.cfg.StopInterval, Sleep: s.sleep}
	return r.Do(func() bool { return !s.api.Alive(pid) })
}

// KillResult lists every PID that received a forceful terminate.
type KillResult struct {
	Killed []int
}

// Kill forcefully terminates the resolved PID and, in the record path, every
// other process matching the server identity (orphan sweep). The PID record
// is removed unconditionally, whether or not anything was found.
func (s *Supervisor) Kill(port int) (KillResult, error) {
	if port > 0 {
		pid, err := s.api.FindByPort(port)
		if err != nil {
			if errors.Is(err, platform.ErrQueryUnavailable) {
				s.log.Warn("could not inspect port owner", "port", port, "err", err)
			}
			return KillResult{}, nil
		}
		s.log.Info("force killing server", "pid", pid, "port", port)
		if err := s.api.Terminate(pid, true); err != nil {
			return KillResult{}, err
		}
		return KillResult{Killed: []int{pid}}, nil
	}

	var killed []int
	pid, ok := s.trackedPID()
	if ok {
		s.log.Info("force killing server", "pid", pid)
		if err := s.api.Terminate(pid, true); err == nil {
			killed = append(killed, pid)
		}
	}
	// Orphan sweep runs even when no record existed.
	for _, p := range s.api.FindByName(s.cfg.ServerName) {
		if p == pid {
			continue
		}
		s.log.Info("killing orphan process", "pid", p)
		if err := s.api.Terminate(p, true); err == nil {
			killed = append(killed, p)
		}
	}
	_ = s.rec.Remove()
	return KillResult{Killed: killed}, nil
}

// Restart stops the target, waits a settle delay, then starts again.
// A failed start is not rolled back.
func (s *Supervisor) Restart(opts StartOptions) (StartResult, error) {
	if _, err := s.Stop(opts.Port); err != nil {
		return StartResult{}, err
	}
	s.sleep(s.cfg.SettleDelay)
	return s.Start(opts)
}
