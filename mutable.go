package debounce

import (
	"time"
)

// NewMutable returns a debounced function like New, but it allows callback
// function f to be changed, as a new callback function is passed to each
// invocation of the debounced function.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Only the very last f passed to the debounced function is called when the
// delay expires and the callback function is invoked. Previous f values are
// discarded. A nil f is recorded as a call but does nothing when invoked.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
func NewMutable(
	wait time.Duration,
	opts ...Option,
) (debounced func(f func()), cancel func()) {
	d, err := NewDebouncer(runLast, wait, opts...)
	if err != nil {
		panic(err)
	}

	debounced = func(f func()) {
		d.Call(f)
	}

	return debounced, d.Cancel
}

// NewMutableWithMaxWait is a combination of NewMutable and NewWithMaxWait.
//
// When either of the wait or maxWait timers expire, the last f passed to the
// debounced function is called.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
func NewMutableWithMaxWait(
	wait, maxWait time.Duration,
	opts ...Option,
) (debounced func(f func()), cancel func()) {
	return NewMutable(wait, withMaxWait(opts, maxWait)...)
}

func runLast(fs ...func()) struct{} {
	if n := len(fs); n > 0 && fs[n-1] != nil {
		fs[n-1]()
	}

	return struct{}{}
}
