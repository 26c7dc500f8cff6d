package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spot-analyzer/devctl/internal/config"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildRoot assembles the root command and all subcommands.
func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	startFlags := &ServerFlags{}
	restartFlags := &ServerFlags{}
	stopFlags := &TargetFlags{}
	killFlags := &TargetFlags{}
	statusFlags := &TargetFlags{}
	logsFlags := &LogsFlags{}
	cleanFlags := &CleanFlags{}

	root := createRootCommand(globalFlags)
	root.AddCommand(
		createStartCommand(globalFlags, startFlags),
		createStopCommand(globalFlags, stopFlags),
		createKillCommand(globalFlags, killFlags),
		createRestartCommand(globalFlags, restartFlags),
		createStatusCommand(globalFlags, statusFlags),
		createLogsCommand(globalFlags, logsFlags),
		createBuildCommand(globalFlags),
		createCleanCommand(globalFlags, cleanFlags),
	)
	return root
}

func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "devctl",
		Short: "Spot Analyzer development controller",
		Long: `Devctl manages the Spot Analyzer development environment: it builds and
supervises the local web server and queries its structured activity log.

Examples:
  devctl start              Start server on default port (8000)
  devctl start --port 3000  Start server on port 3000
  devctl stop               Stop the server gracefully
  devctl kill               Force kill the server and any orphans
  devctl status             Show server status and recent log files
  devctl logs --tail        Tail logs in real-time
  devctl logs --level error View only ERROR logs`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")
	root.PersistentFlags().StringVar(&flags.Root, "root", "", "project root (default: current directory)")
	root.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "mirror diagnostics to stderr")
	return root
}

func createStartCommand(g *GlobalFlags, f *ServerFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Build and start the web server",
		Long: `Build and start the web server as a detached background process.

Examples:
  devctl start
  devctl start --port 3000 --no-build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(g)
			if err != nil {
				return err
			}
			return c.Start(*f)
		},
	}
	addServerFlags(cmd, f)
	return cmd
}

func createStopCommand(g *GlobalFlags, f *TargetFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Gracefully stop the server",
		Long: `Send a graceful shutdown request to the tracked server, escalating to a
force kill if it does not exit within the retry budget.

Examples:
  devctl stop
  devctl stop --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(g)
			if err != nil {
				return err
			}
			return c.Stop(*f)
		},
	}
	cmd.Flags().IntVarP(&f.Port, "port", "p", 0, "stop the server on a specific port")
	return cmd
}

func createKillCommand(g *GlobalFlags, f *TargetFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kill",
		Short: "Force kill the server",
		Long: `Force kill the tracked server and sweep any orphan server processes.
The PID record is always removed, even when nothing was found.

Examples:
  devctl kill
  devctl kill --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(g)
			if err != nil {
				return err
			}
			return c.Kill(*f)
		},
	}
	cmd.Flags().IntVarP(&f.Port, "port", "p", 0, "kill the process on a specific port")
	return cmd
}

func createRestartCommand(g *GlobalFlags, f *ServerFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(g)
			if err != nil {
				return err
			}
			return c.Restart(*f)
		},
	}
	addServerFlags(cmd, f)
	return cmd
}

func createStatusCommand(g *GlobalFlags, f *TargetFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show server status",
		Long: `Show the tri-state server status (running, orphan, stopped) and the most
recently modified log files. With --port, report only whether that port is
occupied and by which PID.

Examples:
  devctl status
  devctl status --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(g)
			if err != nil {
				return err
			}
			return c.Status(*f)
		},
	}
	cmd.Flags().IntVarP(&f.Port, "port", "p", 0, "check whether a specific port is in use")
	return cmd
}

func createLogsCommand(g *GlobalFlags, f *LogsFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View or tail structured logs",
		Long: `Read the server's newline-delimited JSON log: the last N entries with
optional level/component filters, a time window, or a real-time follow.

Examples:
  devctl logs                    View last 50 log entries
  devctl logs --tail             Tail logs in real-time
  devctl logs --hours 2          View logs from the last 2 hours
  devctl logs --level error      View only ERROR logs
  devctl logs --component web    View only web component logs
  devctl logs --file run-3.jsonl --raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(g)
			if err != nil {
				return err
			}
			return c.Logs(*f)
		},
	}
	cmd.Flags().BoolVarP(&f.Tail, "tail", "t", false, "tail logs in real-time")
	cmd.Flags().Float64VarP(&f.Hours, "hours", "H", 0, "view logs from the last N hours")
	cmd.Flags().IntVarP(&f.Lines, "lines", "n", config.DefaultLogLimit, "number of entries to show")
	cmd.Flags().StringVarP(&f.Level, "level", "l", "", "filter by log level (debug, info, warn, error)")
	cmd.Flags().StringVarP(&f.Component, "component", "c", "", "filter by component")
	cmd.Flags().StringVarP(&f.File, "file", "f", "", "specific log file to read")
	cmd.Flags().BoolVar(&f.Raw, "raw", false, "show raw JSON output")
	return cmd
}

func createBuildCommand(g *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(g)
			if err != nil {
				return err
			}
			return c.Build()
		},
	}
}

func createCleanCommand(g *GlobalFlags, f *CleanFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean build artifacts and old logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(g)
			if err != nil {
				return err
			}
			return c.Clean(*f)
		},
	}
	cmd.Flags().IntVar(&f.LogsDays, "logs-days", 0, "remove logs older than N days")
	return cmd
}

func addServerFlags(cmd *cobra.Command, f *ServerFlags) {
	cmd.Flags().IntVarP(&f.Port, "port", "p", config.DefaultPort, "port number")
	cmd.Flags().BoolVar(&f.NoBuild, "no-build", false, "skip building before starting")
	cmd.Flags().BoolVar(&f.NoBrowser, "no-browser", false, "do not open the browser")
}
