// Package timelog measures wall time spent in a scope.
package timelog

import "time"

// Timer records a start time and, once stopped, the elapsed duration.
type Timer struct {
	now     func() time.Time
	start   time.Time
	elapsed time.Duration
	stopped bool
}

// Start begins timing.
func Start() *Timer {
	return startWith(time.Now)
}

func startWith(now func() time.Time) *Timer {
	return &Timer{now: now, start: now()}
}

// Stop records the elapsed time and returns it. Only the first call counts,
// so it is safe to both defer Stop and call it early.
func (t *Timer) Stop() time.Duration {
	if !t.stopped {
		t.elapsed = t.now().Sub(t.start)
		t.stopped = true
	}
	return t.elapsed
}

// Elapsed returns the recorded duration, or the time running so far if the
// timer has not been stopped.
func (t *Timer) Elapsed() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	return t.now().Sub(t.start)
}

// Track runs fn and returns how long it took.
func Track(fn func()) time.Duration {
	t := Start()
	fn()
	return t.Stop()
}
