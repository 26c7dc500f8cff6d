package logstore

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func line(ts time.Time, level, component, msg string) string {
	return fmt.Sprintf(`{"timestamp":%q,"level":%q,"component":%q,"message":%q}`,
		ts.UTC().Format(time.RFC3339Nano), level, component, msg)
}

func TestViewLastNMatchesInFileOrder(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC()
	content := strings.Join([]string{
		line(now, "INFO", "web", "first"),
		line(now, "ERROR", "web", "err-1"),
		line(now, "INFO", "web", "second"),
		line(now, "WARN", "web", "warned"),
		line(now, "ERROR", "web", "err-2"),
	}, "\n") + "\n"
	path := writeFile(t, dir, "run.jsonl", content)

	s := &Store{Dir: dir}
	res, err := s.View(path, 2, "error", "")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if res.Shown != 2 || res.Matched != 2 {
		t.Fatalf("counts: shown=%d matched=%d", res.Shown, res.Matched)
	}
	if res.Entries[0].Record.Message != "err-1" || res.Entries[1].Record.Message != "err-2" {
		t.Fatalf("unexpected order: %q, %q", res.Entries[0].Record.Message, res.Entries[1].Record.Message)
	}
}

func TestViewShownIsMinOfRequestedAndMatched(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC()
	content := line(now, "ERROR", "web", "only") + "\n"
	path := writeFile(t, dir, "run.jsonl", content)

	s := &Store{Dir: dir}
	res, err := s.View(path, 5, "ERROR", "")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if res.Shown != 1 || res.Matched != 1 {
		t.Fatalf("counts: shown=%d matched=%d", res.Shown, res.Matched)
	}
}

func TestViewFiltersAreConjunctive(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC()
	content := strings.Join([]string{
		line(now, "ERROR", "web", "web error"),
		line(now, "ERROR", "analyzer", "analyzer error"),
		line(now, "INFO", "analyzer", "analyzer info"),
	}, "\n") + "\n"
	path := writeFile(t, dir, "run.jsonl", content)

	s := &Store{Dir: dir}
	res, err := s.View(path, 10, "ERROR", "analyzer")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if res.Matched != 1 || res.Entries[0].Record.Message != "analyzer error" {
		t.Fatalf("conjunctive filter failed: %+v", res)
	}
}

func TestViewDropsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC()
	content := strings.Join([]string{
		line(now, "INFO", "web", "good"),
		"not json at all",
		`{"broken":`,
		line(now, "INFO", "web", "also good"),
	}, "\n") + "\n"
	path := writeFile(t, dir, "run.jsonl", content)

	s := &Store{Dir: dir}
	res, err := s.View(path, 10, "", "")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	// Malformed lines are dropped silently: not shown, not counted.
	if res.Matched != 2 {
		t.Fatalf("expected 2 matched, got %d", res.Matched)
	}
}

func TestViewSinceWindow(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC()
	content := strings.Join([]string{
		line(now.Add(-3*time.Hour), "INFO", "web", "too old"),
		line(now.Add(-1*time.Hour), "INFO", "web", "recent"),
		line(now.Add(-10*time.Minute), "INFO", "web", "newest"),
	}, "\n") + "\n"
	path := writeFile(t, dir, "run.jsonl", content)

	s := &Store{Dir: dir}
	res, err := s.ViewSince(path, 2, func() time.Time { return now })
	if err != nil {
		t.Fatalf("ViewSince: %v", err)
	}
	if res.Shown != 2 {
		t.Fatalf("expected 2 entries, got %d", res.Shown)
	}
	if res.Entries[0].Record.Message != "recent" || res.Entries[1].Record.Message != "newest" {
		t.Fatalf("unexpected order: %+v", res.Entries)
	}
}

func TestViewSinceSkipsUnparsableTimestamps(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC()
	content := strings.Join([]string{
		`{"timestamp":"not-a-time","level":"INFO","message":"skip me"}`,
		line(now.Add(-time.Minute), "INFO", "web", "keep me"),
	}, "\n") + "\n"
	path := writeFile(t, dir, "run.jsonl", content)

	s := &Store{Dir: dir}
	res, err := s.ViewSince(path, 1, func() time.Time { return now })
	if err != nil {
		t.Fatalf("ViewSince: %v", err)
	}
	if res.Shown != 1 || res.Entries[0].Record.Message != "keep me" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestViewMissingFile(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	if _, err := s.View("/nonexistent/run.jsonl", 10, "", ""); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
