// Package record persists the PID of the supervised server between devctl
// invocations. The record is a single decimal PID; its presence never
// implies the process is alive, so every reader must cross-check the live
// process table before trusting it.
//
// There is deliberately no locking around the file. Two concurrent starts
// can both observe "no record" and both spawn a server; kill's orphan sweep
// is the recovery path for that accepted hazard.
package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoRecord means no usable PID record exists. A file with unparsable
// contents reports the same: a corrupt record is treated as absent.
var ErrNoRecord = errors.New("no process record")

// Store reads and writes the single tracked PID at Path.
type Store struct {
	Path string
}

// Read returns the recorded PID. Missing or corrupt files yield ErrNoRecord.
func (s *Store) Read() (int, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNoRecord
		}
		return 0, fmt.Errorf("read pid record %s: %w", s.Path, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("%w: invalid contents in %s", ErrNoRecord, s.Path)
	}
	return pid, nil
}

// Write records pid, creating the parent directory if needed.
func (s *Store) Write(pid int) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o750); err != nil {
		return fmt.Errorf("create record dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(strconv.Itoa(pid)), 0o600); err != nil {
		return fmt.Errorf("write pid record %s: %w", s.Path, err)
	}
	return nil
}

// Remove deletes the record. Removing an absent record succeeds.
func (s *Store) Remove() error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove pid record %s: %w", s.Path, err)
	}
	return nil
}
