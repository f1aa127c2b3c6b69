// Package debounce provides functions to debounce function calls, i.e., to
// ensure that a function is only executed after a certain amount of time has
// passed since the last call.
//
// Debouncing can be useful in scenarios where function calls may be triggered
// rapidly, such as in response to user input, but the underlying operation is
// expensive and only needs to be performed once per batch of calls.
//
// The Debouncer type is the general form: it wraps a function taking
// arguments and returning a result, supports leading and trailing edge
// invocation with an optional max wait, and exposes Cancel, Flush and Pending.
// New, NewWithMaxWait and NewMutable are shortcuts for plain func() callbacks.
package debounce

import (
	"time"
)

// New returns a debounced function that delays invoking f until after wait time
// has elapsed since the last time the debounced function was invoked.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
//
// On the trailing edge f runs on the timer's goroutine, and on the leading edge
// it runs on the goroutine calling debounced. New panics if f is nil.
func New(
	wait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	if f == nil {
		panic(invalidArgument("debounce: nil function"))
	}

	d, err := NewDebouncer(func(...struct{}) struct{} {
		f()
		return struct{}{}
	}, wait, opts...)
	if err != nil {
		panic(err)
	}

	debounced = func() {
		d.Call()
	}

	return debounced, d.Cancel
}

// NewWithMaxWait returns a debounced function like New, but with a maximum wait
// time of maxWait, which is the maximum time f is allowed to be delayed before
// it is invoked.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
func NewWithMaxWait(
	wait, maxWait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	return New(wait, f, withMaxWait(opts, maxWait)...)
}
