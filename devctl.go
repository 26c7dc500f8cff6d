// Package devctl supervises the Spot Analyzer development server and reads
// its structured activity log. The devctl CLI under cmd/devctl is a thin
// layer over this API, which is also usable for embedding.
package devctl

import (
	"context"
	"log/slog"
	"time"

	"github.com/spot-analyzer/devctl/internal/config"
	"github.com/spot-analyzer/devctl/internal/logstore"
	"github.com/spot-analyzer/devctl/internal/platform"
	"github.com/spot-analyzer/devctl/internal/supervisor"
)

// Re-export core types for external consumers. These are aliases, so
// conversions are zero-cost.

type Config = config.Config

type StartOptions = supervisor.StartOptions

type Status = supervisor.Status

type State = supervisor.State

const (
	StateRunning = supervisor.StateRunning
	StateOrphan  = supervisor.StateOrphan
	StateStopped = supervisor.StateStopped
)

type LogRecord = logstore.Record

type LogEntry = logstore.Entry

var (
	ErrAlreadyRunning  = supervisor.ErrAlreadyRunning
	ErrStartFailed     = supervisor.ErrStartFailed
	ErrBuildFailed     = supervisor.ErrBuildFailed
	ErrNoLogFiles      = logstore.ErrNoLogFiles
	ErrLogFileNotFound = logstore.ErrLogFileNotFound
)

// DefaultConfig returns the standard configuration for a project root.
func DefaultConfig(root string) Config { return config.Default(root) }

// Controller is a thin facade over the internal supervisor and log store.
type Controller struct {
	sup   *supervisor.Supervisor
	store *logstore.Store
}

func New(cfg Config, log *slog.Logger) *Controller {
	return &Controller{
		sup:   supervisor.New(cfg, platform.New(), log),
		store: &logstore.Store{Dir: cfg.LogsDir},
	}
}

func (c *Controller) Start(opts StartOptions) (supervisor.StartResult, error) { return c.sup.Start(opts) }
func (c *Controller) Stop(port int) (supervisor.StopResult, error)            { return c.sup.Stop(port) }
func (c *Controller) Kill(port int) (supervisor.KillResult, error)            { return c.sup.Kill(port) }
func (c *Controller) Restart(opts StartOptions) (supervisor.StartResult, error) {
	return c.sup.Restart(opts)
}
func (c *Controller) Status() Status { return c.sup.Status() }
func (c *Controller) Build() error   { return c.sup.Build() }

// ResolveLog picks the active log file; name may be empty for "current".
func (c *Controller) ResolveLog(name string) (string, error) { return c.store.Resolve(name) }

// ViewLogs returns the last limit records matching the filters.
func (c *Controller) ViewLogs(path string, limit int, level, component string) (logstore.ViewResult, error) {
	return c.store.View(path, limit, level, component)
}

// ViewLogsSince returns records from the trailing time window.
func (c *Controller) ViewLogsSince(path string, hoursBack float64) (logstore.ViewResult, error) {
	return c.store.ViewSince(path, hoursBack, nil)
}

// TailLogs follows the file until ctx is cancelled.
func (c *Controller) TailLogs(ctx context.Context, path string, poll time.Duration, emit func(LogEntry)) error {
	return c.store.Tail(ctx, path, poll, emit)
}
