package supervisor

import "errors"

var (
	// ErrAlreadyRunning means start was refused because the tracked server
	// is alive.
	ErrAlreadyRunning = errors.New("server already running")
	// ErrStartFailed covers a missing executable or a server that died
	// within the grace interval.
	ErrStartFailed = errors.New("server failed to start")
	// ErrBuildFailed wraps a nonzero exit from the build tool; the tool's
	// diagnostic output rides along in the message.
	ErrBuildFailed = errors.New("build failed")
	// ErrToolUnavailable means an external tool (the build toolchain) is
	// not installed or not on PATH.
	ErrToolUnavailable = errors.New("external tool unavailable")
)
