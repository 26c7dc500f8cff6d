// Package logstore reads the supervised server's append-only JSONL activity
// log: filtered views, time-windowed views, and real-time follow. Readers
// never mutate the files; the server is the only writer.
package logstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrNoLogFiles means the log directory is empty or absent.
var ErrNoLogFiles = errors.New("no log files found")

// ErrLogFileNotFound means an explicitly named log file does not exist.
var ErrLogFileNotFound = errors.New("log file not found")

// Store locates and reads structured log files under Dir.
type Store struct {
	Dir string
}

// FileInfo describes one log file for status output.
type FileInfo struct {
	Name    string
	SizeKB  float64
	ModTime time.Time
}

// Resolve picks the log file to read. An explicit name wins; otherwise the
// most-recently-modified *.jsonl file in the directory is "current".
func (s *Store) Resolve(name string) (string, error) {
	if name != "" {
		path := filepath.Join(s.Dir, name)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrLogFileNotFound, path)
		}
		return path, nil
	}
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*.jsonl"))
	if err != nil || len(matches) == 0 {
		return "", ErrNoLogFiles
	}
	newest := ""
	var newestMod time.Time
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || fi.ModTime().After(newestMod) {
			newest = m
			newestMod = fi.ModTime()
		}
	}
	if newest == "" {
		return "", ErrNoLogFiles
	}
	return newest, nil
}

// RecentFiles lists *.jsonl and *.log files newest first, capped at limit.
// An absent directory is an empty listing, not an error.
func (s *Store) RecentFiles(limit int) []FileInfo {
	var files []FileInfo
	for _, pat := range []string{"*.jsonl", "*.log"} {
		matches, _ := filepath.Glob(filepath.Join(s.Dir, pat))
		for _, m := range matches {
			fi, err := os.Stat(m)
			if err != nil {
				continue
			}
			files = append(files, FileInfo{
				Name:    filepath.Base(m),
				SizeKB:  float64(fi.Size()) / 1024,
				ModTime: fi.ModTime(),
			})
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ModTime.After(files[j].ModTime) })
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files
}
