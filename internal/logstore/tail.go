package logstore

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"time"
)

// Tail follows path from its current end, emitting each newly appended
// complete line as soon as it is available and sleeping poll between reads
// when no data arrived. Records written before the call are never shown.
// Unlike the filtered views, malformed lines are emitted raw: tailing
// favors completeness over structure.
//
// Tail blocks until ctx is cancelled; that cancellation is the normal way
// to finish and returns nil. A partially written trailing line is held
// until its newline arrives.
func (s *Store) Tail(ctx context.Context, path string, poll time.Duration, emit func(Entry)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return err
	}

	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	r := bufio.NewReader(f)
	var pending strings.Builder
	for {
		chunk, err := r.ReadString('\n')
		pending.WriteString(chunk)
		if err == nil {
			line := strings.TrimRight(pending.String(), "\r\n")
			pending.Reset()
			if line != "" {
				emit(ParseLine(line))
			}
			continue
		}
		// No complete line yet; wait for more data or for the interrupt.
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(poll):
		}
	}
}
