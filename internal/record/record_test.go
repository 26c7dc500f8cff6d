package record

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), ".server.pid")}
	if err := s.Write(12345); err != nil {
		t.Fatalf("Write: %v", err)
	}
	pid, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pid != 12345 {
		t.Fatalf("pid = %d, want 12345", pid)
	}
}

func TestReadMissingFile(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), ".server.pid")}
	if _, err := s.Read(); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
}

func TestReadToleratesTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".server.pid")
	if err := os.WriteFile(path, []byte("4242\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := &Store{Path: path}
	pid, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pid != 4242 {
		t.Fatalf("pid = %d, want 4242", pid)
	}
}

func TestCorruptRecordReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".server.pid")
	for _, contents := range []string{"", "garbage", "-7", "0"} {
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		s := &Store{Path: path}
		if _, err := s.Read(); !errors.Is(err, ErrNoRecord) {
			t.Fatalf("contents %q: expected ErrNoRecord, got %v", contents, err)
		}
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), ".server.pid")}
	if err := s.Write(99); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if _, err := s.Read(); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord after remove, got %v", err)
	}
}

func TestWriteCreatesParentDir(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), "state", "nested", ".server.pid")}
	if err := s.Write(7); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if pid, err := s.Read(); err != nil || pid != 7 {
		t.Fatalf("Read after nested write: pid=%d err=%v", pid, err)
	}
}
