package timer

import "time"

// Clock provides the current wall-clock time.
// Tests inject a fake to drive reconciliation deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
