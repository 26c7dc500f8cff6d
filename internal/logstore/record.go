package logstore

import (
	"encoding/json"
	"time"
)

// Record is one structured server event: a single newline-delimited JSON
// object with fixed core fields and a whitelisted set of extras.
type Record struct {
	Timestamp    string  `json:"timestamp"`
	Level        string  `json:"level"`
	Component    string  `json:"component,omitempty"`
	Message      string  `json:"message"`
	Region       string  `json:"region,omitempty"`
	InstanceType string  `json:"instance_type,omitempty"`
	DurationMs   float64 `json:"duration_ms,omitempty"`
	Count        int64   `json:"count,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// Time parses the record timestamp (UTC ISO-8601). The zero time and false
// are returned when it does not parse.
func (r *Record) Time() (time.Time, bool) {
	if r == nil || r.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Entry is one log line as read from disk. Record is nil when the line is
// not valid JSON; Raw always carries the original text.
type Entry struct {
	Raw    string
	Record *Record
}

// ParseLine decodes one log line into an Entry.
func ParseLine(line string) Entry {
	var r Record
	if err := json.Unmarshal([]byte(line), &r); err != nil {
		return Entry{Raw: line}
	}
	return Entry{Raw: line, Record: &r}
}
