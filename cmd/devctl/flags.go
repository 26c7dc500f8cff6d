package main

// GlobalFlags holds persistent flags shared by every subcommand.
type GlobalFlags struct {
	ConfigPath string // optional TOML config file
	Root       string // project root override (default: working directory)
	Verbose    bool   // mirror diagnostics to stderr
}

// ServerFlags holds flags for start and restart.
type ServerFlags struct {
	Port      int
	NoBuild   bool
	NoBrowser bool
}

// TargetFlags holds the optional port target for stop, kill, and status.
type TargetFlags struct {
	Port int
}

// LogsFlags holds flags for the logs command.
type LogsFlags struct {
	Tail      bool
	Hours     float64
	Lines     int
	Level     string
	Component string
	File      string
	Raw       bool
}

// CleanFlags holds flags for the clean command.
type CleanFlags struct {
	LogsDays int
}
