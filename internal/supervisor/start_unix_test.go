//go:build !windows

package supervisor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spot-analyzer/devctl/internal/config"
	"github.com/spot-analyzer/devctl/internal/platform"
	"github.com/spot-analyzer/devctl/internal/record"
)

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

func newSpawnSupervisor(t *testing.T) (*Supervisor, *record.Store, config.Config) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.GraceInterval = 300 * time.Millisecond
	cfg.StopAttempts = 20
	cfg.StopInterval = 50 * time.Millisecond
	cfg.SettleDelay = 0
	return New(cfg, platform.New(), nil), &record.Store{Path: cfg.PIDFile}, cfg
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestStartThenStop(t *testing.T) {
	s, rec, cfg := newSpawnSupervisor(t)
	writeScript(t, cfg.ServerBinary(), "exec sleep 30")

	res, err := s.Start(StartOptions{Port: 8123, SkipBuild: true, NoBrowser: true})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8123", res.URL)

	pid, err := rec.Read()
	require.NoError(t, err)
	assert.Equal(t, res.PID, pid)

	api := platform.New()
	assert.True(t, api.Alive(res.PID))

	stop, err := s.Stop(0)
	require.NoError(t, err)
	assert.True(t, stop.Found)
	assert.Equal(t, res.PID, stop.PID)
	assert.False(t, stop.Forced)

	_, err = rec.Read()
	assert.ErrorIs(t, err, record.ErrNoRecord)
	assert.True(t, waitFor(t, 2*time.Second, func() bool { return !api.Alive(res.PID) }))
}

func TestStartRedirectsServerOutput(t *testing.T) {
	s, _, cfg := newSpawnSupervisor(t)
	writeScript(t, cfg.ServerBinary(), `echo "listening on $2"
echo "boot warning" >&2
exec sleep 30`)

	res, err := s.Start(StartOptions{Port: 8124, SkipBuild: true, NoBrowser: true})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = s.Kill(0) })

	out := filepath.Join(cfg.LogsDir, cfg.ServerName+".stdout.log")
	errLog := filepath.Join(cfg.LogsDir, cfg.ServerName+".stderr.log")
	require.True(t, waitFor(t, 2*time.Second, func() bool {
		b, err := os.ReadFile(out)
		return err == nil && len(b) > 0
	}))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "listening on 8124")
	b, err = os.ReadFile(errLog)
	require.NoError(t, err)
	assert.Contains(t, string(b), "boot warning")
	assert.Positive(t, res.PID)
}

func TestStartRefusesWhenAlreadyRunning(t *testing.T) {
	s, rec, _ := newSpawnSupervisor(t)
	require.NoError(t, rec.Write(os.Getpid()))

	_, err := s.Start(StartOptions{SkipBuild: true, NoBrowser: true})
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestStartFailsWithoutExecutable(t *testing.T) {
	s, _, _ := newSpawnSupervisor(t)

	_, err := s.Start(StartOptions{SkipBuild: true, NoBrowser: true})
	assert.ErrorIs(t, err, ErrStartFailed)
}

func TestStartDetectsEarlyExit(t *testing.T) {
	s, rec, cfg := newSpawnSupervisor(t)
	writeScript(t, cfg.ServerBinary(), "exit 3")

	_, err := s.Start(StartOptions{SkipBuild: true, NoBrowser: true})
	assert.ErrorIs(t, err, ErrStartFailed)

	_, err = rec.Read()
	assert.ErrorIs(t, err, record.ErrNoRecord)
}

func TestBuildRequiresToolchain(t *testing.T) {
	s, _, _ := newSpawnSupervisor(t)
	t.Setenv("PATH", t.TempDir())

	err := s.Build()
	assert.ErrorIs(t, err, ErrToolUnavailable)
}

func TestClean(t *testing.T) {
	s, rec, cfg := newSpawnSupervisor(t)
	require.NoError(t, os.MkdirAll(cfg.LogsDir, 0o750))
	writeScript(t, cfg.ServerBinary(), "exec sleep 30")
	require.NoError(t, rec.Write(12345))

	old := filepath.Join(cfg.LogsDir, "run-old.jsonl")
	fresh := filepath.Join(cfg.LogsDir, "run-fresh.jsonl")
	require.NoError(t, os.WriteFile(old, []byte("{}\n"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("{}\n"), 0o600))
	stale := time.Now().AddDate(0, 0, -8)
	require.NoError(t, os.Chtimes(old, stale, stale))

	res, err := s.Clean(7)
	require.NoError(t, err)
	assert.Contains(t, res.Removed, filepath.Base(cfg.ServerBinary()))
	assert.Contains(t, res.Removed, "run-old.jsonl")
	assert.NotContains(t, res.Removed, "run-fresh.jsonl")

	_, err = os.Stat(cfg.ServerBinary())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
	_, err = rec.Read()
	assert.ErrorIs(t, err, record.ErrNoRecord)
}
