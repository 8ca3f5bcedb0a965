package timer

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func TestNewTimerIsStoppedAtZero(t *testing.T) {
	tm := New()
	if tm.Duration() != 0 || tm.Remaining() != 0 {
		t.Fatalf("expected zero duration and remaining, got %v/%v", tm.Duration(), tm.Remaining())
	}
	if tm.Running() {
		t.Fatalf("expected new timer to be stopped")
	}
	if _, ok := tm.LastUpdate(); ok {
		t.Fatalf("expected no last update on a new timer")
	}
}

func TestSetDurationLoadsRemainingAndStops(t *testing.T) {
	clock := newFakeClock()
	tm := New(WithClock(clock))
	for _, d := range []time.Duration{0, time.Second, 300 * time.Second, 2 * time.Hour} {
		tm.SetDuration(10 * time.Second)
		tm.Start()
		tm.SetDuration(d)
		if tm.Remaining() != d || tm.Duration() != d {
			t.Fatalf("SetDuration(%v): remaining=%v duration=%v", d, tm.Remaining(), tm.Duration())
		}
		if tm.Running() {
			t.Fatalf("SetDuration(%v) left the timer running", d)
		}
		if _, ok := tm.LastUpdate(); ok {
			t.Fatalf("SetDuration(%v) kept a last update timestamp", d)
		}
	}
}

func TestSetDurationClampsNegative(t *testing.T) {
	tm := New()
	tm.SetDuration(-5 * time.Second)
	if tm.Duration() != 0 || tm.Remaining() != 0 {
		t.Fatalf("expected negative duration to clamp to zero, got %v", tm.Duration())
	}
}

func TestStartWithNothingRemainingIsNoop(t *testing.T) {
	tm := New()
	tm.Start()
	if tm.Running() {
		t.Fatalf("expected start with zero remaining to be ignored")
	}
	if tm.State() != StateCompleted {
		t.Fatalf("expected completed state, got %s", tm.State())
	}
}

func TestUpdateSubtractsElapsedWallClock(t *testing.T) {
	clock := newFakeClock()
	tm := New(WithClock(clock))
	tm.SetDuration(60 * time.Second)
	tm.Start()

	clock.Advance(10 * time.Second)
	if tm.Update() {
		t.Fatalf("did not expect completion")
	}
	if tm.Remaining() != 50*time.Second {
		t.Fatalf("expected 50s remaining, got %v", tm.Remaining())
	}
	at, ok := tm.LastUpdate()
	if !ok || !at.Equal(clock.Now()) {
		t.Fatalf("expected last update to advance to %v, got %v (ok=%v)", clock.Now(), at, ok)
	}
}

func TestUpdateKeepsFractionalSeconds(t *testing.T) {
	clock := newFakeClock()
	tm := New(WithClock(clock))
	tm.SetDuration(5 * time.Second)
	tm.Start()

	for i := 0; i < 7; i++ {
		clock.Advance(100 * time.Millisecond)
		tm.Update()
	}
	if tm.Remaining() != 4300*time.Millisecond {
		t.Fatalf("expected 4.3s remaining, got %v", tm.Remaining())
	}
}

func TestUpdateIgnoresBackwardClock(t *testing.T) {
	clock := newFakeClock()
	tm := New(WithClock(clock))
	tm.SetDuration(30 * time.Second)
	tm.Start()

	clock.Advance(-5 * time.Second)
	tm.Update()
	if tm.Remaining() != 30*time.Second {
		t.Fatalf("expected remaining unchanged after clock step back, got %v", tm.Remaining())
	}
}

func TestUpdateCompletesOnce(t *testing.T) {
	clock := newFakeClock()
	calls := 0
	tm := New(WithClock(clock), WithOnComplete(func() { calls++ }))
	tm.SetDuration(3 * time.Second)
	tm.Start()

	clock.Advance(10 * time.Second)
	if !tm.Update() {
		t.Fatalf("expected completion crossing")
	}
	if tm.Remaining() != 0 {
		t.Fatalf("expected remaining clamped to zero, got %v", tm.Remaining())
	}
	if tm.Running() {
		t.Fatalf("expected timer to stop on completion")
	}
	if _, ok := tm.LastUpdate(); ok {
		t.Fatalf("expected last update cleared on completion")
	}

	clock.Advance(time.Second)
	if tm.Update() {
		t.Fatalf("did not expect a second completion")
	}
	if calls != 1 {
		t.Fatalf("expected one completion callback, got %d", calls)
	}
}

func TestUpdateCompletesWhenRemainingForcedToZero(t *testing.T) {
	clock := newFakeClock()
	fired := false
	tm := New(WithClock(clock), WithOnComplete(func() { fired = true }))
	tm.SetDuration(time.Second)
	tm.Start()
	tm.remaining = 0

	tm.Update()
	if !fired {
		t.Fatalf("expected completion callback")
	}
	if tm.Running() {
		t.Fatalf("expected timer stopped after completion")
	}
}

func TestStartFromCompletedIsNoop(t *testing.T) {
	clock := newFakeClock()
	tm := New(WithClock(clock))
	tm.SetDuration(time.Second)
	tm.Start()
	clock.Advance(2 * time.Second)
	tm.Update()

	tm.Start()
	if tm.Running() {
		t.Fatalf("expected start from completed to be ignored")
	}
	tm.Reset()
	if tm.State() != StateIdle || tm.Remaining() != time.Second {
		t.Fatalf("expected reset to return to idle with full duration, got %s %v", tm.State(), tm.Remaining())
	}
}

func TestPauseCapturesElapsedAndFreezes(t *testing.T) {
	clock := newFakeClock()
	tm := New(WithClock(clock))
	tm.SetDuration(60 * time.Second)
	tm.Start()

	clock.Advance(1500 * time.Millisecond)
	tm.Pause()
	if tm.Remaining() != 58500*time.Millisecond {
		t.Fatalf("expected pause to capture elapsed time, got %v", tm.Remaining())
	}
	if tm.Running() {
		t.Fatalf("expected timer paused")
	}

	clock.Advance(time.Minute)
	tm.Update()
	if tm.Remaining() != 58500*time.Millisecond {
		t.Fatalf("expected no decrease while paused, got %v", tm.Remaining())
	}

	tm.Start()
	clock.Advance(500 * time.Millisecond)
	tm.Update()
	if tm.Remaining() != 58*time.Second {
		t.Fatalf("expected resume to continue from paused value, got %v", tm.Remaining())
	}
}

func TestPauseWhenStoppedIsNoop(t *testing.T) {
	tm := New()
	tm.SetDuration(10 * time.Second)
	tm.Pause()
	if tm.Remaining() != 10*time.Second || tm.Running() {
		t.Fatalf("expected pause on stopped timer to do nothing")
	}
}

func TestPauseAtDeadlineCompletes(t *testing.T) {
	clock := newFakeClock()
	calls := 0
	tm := New(WithClock(clock), WithOnComplete(func() { calls++ }))
	tm.SetDuration(2 * time.Second)
	tm.Start()

	clock.Advance(3 * time.Second)
	tm.Pause()
	if calls != 1 || tm.State() != StateCompleted {
		t.Fatalf("expected pause past the deadline to complete once, calls=%d state=%s", calls, tm.State())
	}
}

func TestResetRestoresDuration(t *testing.T) {
	clock := newFakeClock()
	tm := New(WithClock(clock))
	tm.SetDuration(90 * time.Second)
	tm.Start()
	clock.Advance(30 * time.Second)
	tm.Update()

	tm.Reset()
	if tm.Remaining() != 90*time.Second || tm.Running() {
		t.Fatalf("expected reset to full stopped duration, got %v running=%v", tm.Remaining(), tm.Running())
	}
	if tm.Elapsed() != 0 {
		t.Fatalf("expected zero elapsed after reset, got %v", tm.Elapsed())
	}
}

func TestStateTransitions(t *testing.T) {
	clock := newFakeClock()
	tm := New(WithClock(clock))
	tm.SetDuration(5 * time.Second)
	if tm.State() != StateIdle {
		t.Fatalf("expected idle, got %s", tm.State())
	}
	tm.Start()
	if tm.State() != StateRunning {
		t.Fatalf("expected running, got %s", tm.State())
	}
	tm.Pause()
	if tm.State() != StateIdle {
		t.Fatalf("expected idle after pause, got %s", tm.State())
	}
	tm.Start()
	clock.Advance(5 * time.Second)
	tm.Update()
	if tm.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", tm.State())
	}
	tm.SetDuration(7 * time.Second)
	if tm.State() != StateIdle {
		t.Fatalf("expected idle after new duration, got %s", tm.State())
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{65 * time.Second, "01:05"},
		{59900 * time.Millisecond, "00:59"},
		{45 * time.Minute, "45:00"},
		{-3 * time.Second, "00:00"},
		{120 * time.Minute, "120:00"},
	}
	for _, tc := range cases {
		if got := FormatTime(tc.in); got != tc.want {
			t.Fatalf("FormatTime(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
