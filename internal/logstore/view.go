package logstore

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// Lines longer than bufio's default 64K are legal JSONL; allow up to 1MB.
const maxLineBytes = 1024 * 1024

// ViewResult carries the records a view emitted plus how many matched in
// total, so callers can report "shown N of M".
type ViewResult struct {
	Entries []Entry
	Shown   int
	Matched int
}

// View reads the whole file, drops lines that are not structured records,
// applies the level and component filters conjunctively, and returns the
// last limit matches in original file order.
func (s *Store) View(path string, limit int, level, component string) (ViewResult, error) {
	level = strings.ToUpper(level)
	var matched []Entry
	err := scanLines(path, func(line string) {
		e := ParseLine(line)
		if e.Record == nil {
			return
		}
		if level != "" && e.Record.Level != level {
			return
		}
		if component != "" && e.Record.Component != component {
			return
		}
		matched = append(matched, e)
	})
	if err != nil {
		return ViewResult{}, err
	}
	out := matched
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return ViewResult{Entries: out, Shown: len(out), Matched: len(matched)}, nil
}

// ViewSince emits every record with timestamp >= now-hoursBack, in original
// order. Records with unparsable timestamps are skipped. now is injectable
// so the cutoff is testable.
func (s *Store) ViewSince(path string, hoursBack float64, now func() time.Time) (ViewResult, error) {
	if now == nil {
		now = time.Now
	}
	cutoff := now().UTC().Add(-time.Duration(hoursBack * float64(time.Hour)))
	var out []Entry
	err := scanLines(path, func(line string) {
		e := ParseLine(line)
		ts, ok := e.Record.Time()
		if !ok {
			return
		}
		if !ts.Before(cutoff) {
			out = append(out, e)
		}
	})
	if err != nil {
		return ViewResult{}, err
	}
	return ViewResult{Entries: out, Shown: len(out), Matched: len(out)}, nil
}

func scanLines(path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrLogFileNotFound, path)
		}
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
	return sc.Err()
}
