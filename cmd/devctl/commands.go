package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spot-analyzer/devctl/internal/config"
	"github.com/spot-analyzer/devctl/internal/logger"
	"github.com/spot-analyzer/devctl/internal/logstore"
	"github.com/spot-analyzer/devctl/internal/platform"
	"github.com/spot-analyzer/devctl/internal/supervisor"
	"github.com/spot-analyzer/devctl/internal/ui"
)

// command wires the configured components behind method-style handlers.
type command struct {
	cfg   config.Config
	sup   *supervisor.Supervisor
	store *logstore.Store
	out   *ui.Printer
}

// newCommand builds the component graph once per invocation: config first,
// then the platform API, supervisor, and log store, all fed the same Config.
func newCommand(g *GlobalFlags) (*command, error) {
	root, err := config.WorkingRoot(g.Root)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root, g.ConfigPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{
		Dir:        cfg.LogsDir,
		MaxSizeMB:  cfg.ServerLog.MaxSizeMB,
		MaxBackups: cfg.ServerLog.MaxBackups,
		MaxAgeDays: cfg.ServerLog.MaxAgeDays,
		Compress:   cfg.ServerLog.Compress,
	}, g.Verbose)
	return &command{
		cfg:   cfg,
		sup:   supervisor.New(cfg, platform.New(), log),
		store: &logstore.Store{Dir: cfg.LogsDir},
		out:   ui.New(),
	}, nil
}

func (c *command) Start(f ServerFlags) error {
	res, err := c.sup.Start(supervisor.StartOptions{
		Port:      f.Port,
		SkipBuild: f.NoBuild,
		NoBrowser: f.NoBrowser,
	})
	if err != nil {
		return err
	}
	c.out.Success("Server started (PID: %d)", res.PID)
	c.out.Info("🌐 Open: %s", res.URL)
	c.out.Info("📁 Logs: %s", c.cfg.LogsDir)
	return nil
}

func (c *command) Stop(f TargetFlags) error {
	res, err := c.sup.Stop(f.Port)
	if err != nil {
		return err
	}
	switch {
	case !res.Found && f.Port > 0:
		c.out.Warning("No process found on port %d", f.Port)
	case !res.Found:
		c.out.Warning("Server is not running")
	case res.Forced:
		c.out.Success("Server killed (did not stop gracefully)")
	default:
		c.out.Success("Server stopped")
	}
	return nil
}

func (c *command) Kill(f TargetFlags) error {
	res, err := c.sup.Kill(f.Port)
	if err != nil {
		return err
	}
	if len(res.Killed) == 0 {
		c.out.Warning("No server processes found")
		return nil
	}
	c.out.Success("Server killed (PIDs: %v)", res.Killed)
	return nil
}

func (c *command) Restart(f ServerFlags) error {
	c.out.Info("Restarting server...")
	res, err := c.sup.Restart(supervisor.StartOptions{
		Port:      f.Port,
		SkipBuild: f.NoBuild,
		NoBrowser: f.NoBrowser,
	})
	if err != nil {
		return err
	}
	c.out.Success("Server restarted (PID: %d)", res.PID)
	c.out.Info("🌐 Open: %s", res.URL)
	return nil
}

func (c *command) Status(f TargetFlags) error {
	if f.Port > 0 {
		pid, occupied, err := c.sup.PortStatus(f.Port)
		if err != nil {
			return err
		}
		if occupied {
			c.out.Success("Port %d is in use by process %d", f.Port, pid)
		} else {
			c.out.Warning("Port %d is free", f.Port)
		}
		return nil
	}

	c.out.Banner()
	st := c.sup.Status()
	fmt.Println()
	fmt.Println(c.out.Colorize("═══ Server Status ═══", ui.Cyan))
	fmt.Println()
	switch st.State {
	case supervisor.StateRunning:
		fmt.Printf("  Status:  %s\n", c.out.Colorize("● Running", ui.Green))
		fmt.Printf("  PID:     %d\n", st.PID)
	case supervisor.StateOrphan:
		fmt.Printf("  Status:  %s\n", c.out.Colorize("● Orphan processes", ui.Yellow))
		fmt.Printf("  PIDs:    %v\n", st.Orphans)
	default:
		fmt.Printf("  Status:  %s\n", c.out.Colorize("○ Stopped", ui.Red))
	}

	fmt.Println()
	fmt.Println(c.out.Colorize("═══ Log Files ═══", ui.Cyan))
	fmt.Println()
	if len(st.LogFiles) == 0 {
		fmt.Println("  No log files found")
	}
	for _, lf := range st.LogFiles {
		fmt.Printf("  %s (%.1f KB, %s)\n", lf.Name, lf.SizeKB, lf.ModTime.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	return nil
}

func (c *command) Logs(f LogsFlags) error {
	path, err := c.store.Resolve(f.File)
	if err != nil {
		return err
	}
	c.out.Info("Log file: %s", path)
	fmt.Println()

	print := func(e logstore.Entry) {
		if f.Raw {
			fmt.Println(e.Raw)
			return
		}
		fmt.Println(logstore.Format(e, c.out.Color()))
	}

	if f.Tail {
		c.out.Info("Tailing logs (Ctrl+C to stop)...")
		fmt.Println()
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := c.store.Tail(ctx, path, c.cfg.TailPoll, print); err != nil {
			return err
		}
		fmt.Println()
		c.out.Info("Stopped tailing")
		return nil
	}

	if f.Hours > 0 {
		c.out.Info("Showing logs from the last %g hour(s)", f.Hours)
		fmt.Println()
		res, err := c.store.ViewSince(path, f.Hours, nil)
		if err != nil {
			return err
		}
		for _, e := range res.Entries {
			print(e)
		}
		fmt.Println()
		c.out.Info("Showed %d log entries", res.Shown)
		return nil
	}

	res, err := c.store.View(path, f.Lines, f.Level, f.Component)
	if err != nil {
		return err
	}
	for _, e := range res.Entries {
		print(e)
	}
	fmt.Println()
	c.out.Info("Showed %d of %d matching entries", res.Shown, res.Matched)
	return nil
}

func (c *command) Build() error {
	c.out.Info("Building web server...")
	if err := c.sup.Build(); err != nil {
		return err
	}
	c.out.Success("Build successful!")
	return nil
}

func (c *command) Clean(f CleanFlags) error {
	c.out.Info("Cleaning up...")
	res, err := c.sup.Clean(f.LogsDays)
	if err != nil {
		return err
	}
	for _, name := range res.Removed {
		fmt.Printf("  Removed: %s\n", name)
	}
	c.out.Success("Cleanup complete")
	return nil
}
