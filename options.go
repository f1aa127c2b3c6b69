package debounce

import (
	"time"

	"github.com/rs/zerolog"
)

// Option is a function that can be used to configure the debounced function.
type Option func(*config)

type config struct {
	leading   bool
	trailing  bool
	maxing    bool
	maxWait   time.Duration
	scheduler Scheduler
	clock     Clock
	logger    zerolog.Logger
}

func newConfig(opts []Option) *config {
	c := &config{
		trailing: true,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Leading returns an option that will cause the debounced function to
// invoke the given function immediately, and then wait for the given duration
// before invoking the function again.
//
// When only leading is used, a burst of calls immediately invokes the function,
// any subsequent calls will be ignored until the wait duration has passed.
// Combine with WithoutTrailing to get that behavior, as trailing is enabled by
// default.
func Leading() Option {
	return func(c *config) {
		c.leading = true
	}
}

// Trailing returns an option that will cause the debounced function to be
// invoked after the wait duration has passed since the last call. Trailing
// is enabled by default.
//
// If both Leading and Trailing are used, a burst of calls immediately
// invokes the function, followed by another invocation after the wait duration
// has passed since the last call. If only a single call is made, only one
// invocation will occur. If two calls happens within the wait duration, the
// function will be invoked twice.
func Trailing() Option {
	return func(c *config) {
		c.trailing = true
	}
}

// WithoutTrailing disables the trailing edge invocation.
func WithoutTrailing() Option {
	return func(c *config) {
		c.trailing = false
	}
}

// MaxWait returns an option that will cause the debounced function to be
// invoked at least every maxWait duration, even if the function is called
// repeatedly within the wait duration.
//
// Without a max wait, the debounced function might never be invoked if the it
// is called repeatedly within the wait duration.
//
// For example, if the wait duration is 100ms and the max wait duration is
// 500ms, the debounced function will be invoked every 500ms, even if the
// function is called non-stop every 10ms.
//
// A maxWait shorter than the wait duration is raised to the wait duration.
func MaxWait(maxWait time.Duration) Option {
	return func(c *config) {
		c.maxing = true
		c.maxWait = maxWait
	}
}

// withMaxWait returns a copy of opts with MaxWait(maxWait) appended, leaving
// the caller's backing array untouched.
func withMaxWait(opts []Option, maxWait time.Duration) []Option {
	out := make([]Option, 0, len(opts)+1)
	out = append(out, opts...)

	return append(out, MaxWait(maxWait))
}

// WithScheduler sets the Scheduler used to arm the debounce timer.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

// WithClock sets the Clock used to timestamp calls and invocations.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets a logger that receives debug events for every edge the
// debouncer goes through.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
