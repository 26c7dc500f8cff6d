package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for devctl's own operations log.
const (
	DefaultMaxSizeMB  = 10 // MB
	DefaultMaxBackups = 3  // number of backup files
	DefaultMaxAgeDays = 7  // days
)

// Config describes rotation for the controller's operations log.
// Values follow lumberjack semantics.
type Config struct {
	Dir        string // base directory for the operations log
	MaxSizeMB  int    // megabytes before rotation (default 10)
	MaxBackups int    // number of backups to keep (default 3)
	MaxAgeDays int    // days to keep (default 7)
	Compress   bool   // gzip rotated files
}

// OperationsWriter returns a rotating writer for Dir/devctl.log, where every
// lifecycle action (start, stop, kill) leaves an audit line.
func (c Config) OperationsWriter() io.WriteCloser {
	if c.Dir == "" {
		return nil
	}
	return &lj.Logger{
		Filename:   filepath.Join(c.Dir, "devctl.log"),
		MaxSize:    valOr(c.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(c.MaxBackups, DefaultMaxBackups),
		MaxAge:     valOr(c.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   c.Compress,
	}
}

// ServerFiles opens append-mode files for the spawned server's stdout and
// stderr under dir. They must be real *os.File handles: the child inherits
// the descriptors directly and keeps writing after devctl exits, which a
// piped writer could not provide.
func ServerFiles(dir, name string) (*os.File, *os.File, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, nil, err
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	outF, err := os.OpenFile(filepath.Join(dir, name+".stdout.log"), flags, 0o640)
	if err != nil {
		return nil, nil, err
	}
	errF, err := os.OpenFile(filepath.Join(dir, name+".stderr.log"), flags, 0o640)
	if err != nil {
		_ = outF.Close()
		return nil, nil, err
	}
	return outF, errF, nil
}

func valOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// New builds devctl's slog logger. Diagnostics always land in the rotating
// operations log when cfg.Dir is set; verbose mirrors them to stderr with
// level coloring.
func New(cfg Config, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Second precision is enough for an operator tool.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.DateTime))
				}
			}
			return a
		},
	}
	ops := cfg.OperationsWriter()
	if ops == nil {
		if !verbose {
			return slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		return slog.New(NewColorTextHandler(os.Stderr, opts))
	}
	var w io.Writer = ops
	if verbose {
		w = io.MultiWriter(ops, os.Stderr)
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
