package game

import "time"

// Timer measures a solve. It is armed by a scramble, starts when the
// first turn commits and stops when the puzzle is solved again.
type Timer struct {
	now     func() time.Time
	armed   bool
	running bool
	started time.Time
	elapsed time.Duration
}

// NewTimer creates a disarmed timer. A nil clock uses time.Now.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Arm clears the previous result and waits for the first turn.
func (t *Timer) Arm() {
	t.armed = true
	t.running = false
	t.elapsed = 0
}

// Disarm stops and clears the timer.
func (t *Timer) Disarm() {
	t.armed = false
	t.running = false
	t.elapsed = 0
}

// Start begins timing if the timer is armed and idle.
func (t *Timer) Start() {
	if !t.armed || t.running {
		return
	}
	t.started = t.now()
	t.running = true
}

// Stop freezes the elapsed time. The timer must be armed again before the
// next solve.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.elapsed = t.now().Sub(t.started)
	t.running = false
	t.armed = false
}

// Elapsed returns the running time, or the final time once stopped.
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.now().Sub(t.started)
	}
	return t.elapsed
}

// Armed reports whether the timer waits for or is timing a solve.
func (t *Timer) Armed() bool { return t.armed }

// Running reports whether a solve is being timed.
func (t *Timer) Running() bool { return t.running }
