package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Defaults mirror the devctl conventions: the server binary and PID record
// live in the project root, structured logs live under <root>/logs.
const (
	DefaultPort          = 8000
	DefaultLogLimit      = 50
	DefaultServerName    = "spot-web"
	DefaultBuildPackage  = "./cmd/web"
	DefaultGraceInterval = 1 * time.Second
	DefaultStopAttempts  = 10
	DefaultStopInterval  = 500 * time.Millisecond
	DefaultSettleDelay   = 1 * time.Second
	DefaultTailPoll      = 100 * time.Millisecond
)

// ServerLog configures rotation for the operations log that records every
// lifecycle action. Values follow lumberjack semantics.
type ServerLog struct {
	MaxSizeMB  int  `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `toml:"compress" mapstructure:"compress"`
}

// Config is the explicit process-wide configuration value. It is constructed
// once in main and handed to every component; nothing reads it ambiently.
type Config struct {
	ProjectRoot   string        `toml:"project_root" mapstructure:"project_root"`
	LogsDir       string        `toml:"logs_dir" mapstructure:"logs_dir"`
	PIDFile       string        `toml:"pid_file" mapstructure:"pid_file"`
	ServerName    string        `toml:"server_name" mapstructure:"server_name"`
	BuildPackage  string        `toml:"build_package" mapstructure:"build_package"`
	DefaultPort   int           `toml:"default_port" mapstructure:"default_port"`
	GraceInterval time.Duration `toml:"grace_interval" mapstructure:"grace_interval"`
	StopAttempts  int           `toml:"stop_attempts" mapstructure:"stop_attempts"`
	StopInterval  time.Duration `toml:"stop_interval" mapstructure:"stop_interval"`
	SettleDelay   time.Duration `toml:"settle_delay" mapstructure:"settle_delay"`
	TailPoll      time.Duration `toml:"tail_poll" mapstructure:"tail_poll"`
	ServerLog     ServerLog     `toml:"server_log" mapstructure:"server_log"`
}

// Default returns a Config rooted at dir with every knob at its default.
func Default(dir string) Config {
	return Config{
		ProjectRoot:   dir,
		LogsDir:       filepath.Join(dir, "logs"),
		PIDFile:       filepath.Join(dir, ".server.pid"),
		ServerName:    DefaultServerName,
		BuildPackage:  DefaultBuildPackage,
		DefaultPort:   DefaultPort,
		GraceInterval: DefaultGraceInterval,
		StopAttempts:  DefaultStopAttempts,
		StopInterval:  DefaultStopInterval,
		SettleDelay:   DefaultSettleDelay,
		TailPoll:      DefaultTailPoll,
	}
}

// Load builds the configuration for a project rooted at root, overlaying an
// optional TOML file when path is non-empty. Relative paths in the file are
// resolved against the project root.
func Load(root, path string) (Config, error) {
	c := Default(root)
	if path == "" {
		return c, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if !filepath.IsAbs(c.LogsDir) {
		c.LogsDir = filepath.Join(c.ProjectRoot, c.LogsDir)
	}
	if !filepath.IsAbs(c.PIDFile) {
		c.PIDFile = filepath.Join(c.ProjectRoot, c.PIDFile)
	}
	return c, nil
}

// ServerBinary returns the absolute path of the server executable with the
// platform suffix applied.
func (c Config) ServerBinary() string {
	name := c.ServerName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(c.ProjectRoot, name)
}

// WorkingRoot resolves the project root for an invocation: the current
// directory unless overridden.
func WorkingRoot(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return wd, nil
}
