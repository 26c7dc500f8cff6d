package supervisor

import (
	"os"
	"path/filepath"
	"time"
)

// CleanResult lists what Clean removed.
type CleanResult struct {
	Removed []string
}

// Clean removes build artifacts and the PID record, plus log files older
// than logsDays when logsDays is positive.
func (s *Supervisor) Clean(logsDays int) (CleanResult, error) {
	var removed []string
	if err := os.Remove(s.cfg.ServerBinary()); err == nil {
		removed = append(removed, filepath.Base(s.cfg.ServerBinary()))
	}

	if logsDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -logsDays)
		entries, _ := os.ReadDir(s.cfg.LogsDir)
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(s.cfg.LogsDir, e.Name())); err == nil {
				removed = append(removed, e.Name())
			}
		}
	}

	if err := s.rec.Remove(); err != nil {
		return CleanResult{Removed: removed}, err
	}
	return CleanResult{Removed: removed}, nil
}
