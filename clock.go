package debounce

import (
	"time"
)

// Clock supplies the current time to a Debouncer. It does not need to be
// monotonic; a Debouncer treats time moving backwards as a reason to fire.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
