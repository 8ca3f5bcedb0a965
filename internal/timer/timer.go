// Package timer implements the countdown state machine.
package timer

import "time"

// State is the observable phase of a Timer.
type State uint8

const (
	// StateIdle means time remains and the countdown is stopped.
	StateIdle State = iota

	// StateRunning means the countdown is consuming wall-clock time.
	StateRunning

	// StateCompleted means no time remains.
	StateCompleted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Paused"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Done"
	default:
		return "Unknown"
	}
}

// Timer counts a duration down using wall-clock deltas between Update calls.
// Polling frequency only affects how often the remaining time is refreshed.
//
// A Timer is not safe for concurrent use; it belongs to a single goroutine.
type Timer struct {
	clock      Clock
	onComplete func()

	duration  time.Duration
	remaining time.Duration
	running   bool

	// lastUpdate is non-zero iff running.
	lastUpdate time.Time
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(t *Timer) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithOnComplete sets the callback invoked once per completion crossing.
func WithOnComplete(f func()) Option {
	return func(t *Timer) {
		t.onComplete = f
	}
}

// New returns a stopped Timer with a zero duration.
func New(opts ...Option) *Timer {
	t := &Timer{clock: SystemClock}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetOnComplete replaces the completion callback. A nil callback disables it.
func (t *Timer) SetOnComplete(f func()) {
	t.onComplete = f
}

// SetDuration discards any countdown in progress and loads d as both the
// configured and the remaining time. Negative durations are treated as zero.
func (t *Timer) SetDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.duration = d
	t.remaining = d
	t.stop()
}

// Start begins or resumes the countdown. It does nothing when no time remains.
func (t *Timer) Start() {
	if t.remaining <= 0 {
		return
	}
	t.running = true
	t.lastUpdate = t.clock.Now()
}

// Pause captures the time elapsed so far and stops the countdown.
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.Update()
	t.stop()
}

// Reset restores the configured duration and stops the countdown.
func (t *Timer) Reset() {
	t.remaining = t.duration
	t.stop()
}

// Update reconciles the remaining time against the clock. It reports whether
// this call crossed into completion, in which case the completion callback has
// already run.
func (t *Timer) Update() bool {
	if !t.running || t.lastUpdate.IsZero() {
		return false
	}
	now := t.clock.Now()
	elapsed := now.Sub(t.lastUpdate)
	if elapsed < 0 {
		elapsed = 0
	}
	t.lastUpdate = now

	t.remaining -= elapsed
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.stop()
	if t.onComplete != nil {
		t.onComplete()
	}
	return true
}

func (t *Timer) stop() {
	t.running = false
	t.lastUpdate = time.Time{}
}

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Remaining returns the time left as of the last reconciliation.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Elapsed returns how much of the configured duration has been counted down.
func (t *Timer) Elapsed() time.Duration {
	return t.duration - t.remaining
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	return t.running
}

// LastUpdate returns the reconciliation reference point; ok is false when stopped.
func (t *Timer) LastUpdate() (at time.Time, ok bool) {
	if !t.running {
		return time.Time{}, false
	}
	return t.lastUpdate, true
}

// State returns the current phase.
func (t *Timer) State() State {
	switch {
	case t.running:
		return StateRunning
	case t.remaining <= 0:
		return StateCompleted
	default:
		return StateIdle
	}
}
