package supervisor

import "time"

// Retry is a bounded retry policy: at most Attempts probes, Interval apart.
// Sleep is injectable so the stop loop is testable without real delays.
type Retry struct {
	Attempts int
	Interval time.Duration
	Sleep    func(time.Duration)
}

// Do probes fn until it returns true or the attempt budget runs out.
// It reports whether fn ever succeeded.
func (r Retry) Do(fn func() bool) bool {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for i := 0; i < r.Attempts; i++ {
		if fn() {
			return true
		}
		sleep(r.Interval)
	}
	return fn()
}
