package debounce

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultTimerScheduler = NewTimerScheduler()
	defaultFrameScheduler = sync.OnceValue(func() *FrameScheduler {
		return NewFrameScheduler(DefaultFrameInterval)
	})
)

// Debouncer delays invoking a function until wait has elapsed since the last
// call, collapsing bursts of calls into a single invocation with the arguments
// of the latest call. The result of the latest invocation is cached and
// returned to calls that do not invoke.
//
// All methods are safe for concurrent use. The wrapped function runs while the
// Debouncer's lock is held, so it must not call back into the same Debouncer.
type Debouncer[A, R any] struct {
	// Configuration
	fn        func(args ...A) R
	wait      time.Duration
	leading   bool
	trailing  bool
	maxing    bool
	maxWait   time.Duration
	useFrame  bool
	scheduler Scheduler
	clock     Clock
	log       zerolog.Logger

	// State
	mux            sync.Mutex
	lastArgs       []A
	hasArgs        bool
	lastCallTime   time.Time
	lastInvokeTime time.Time
	timer          TimerID
	result         R
}

// NewDebouncer returns a Debouncer wrapping fn. A negative wait is treated as
// zero. It returns an error wrapping ErrInvalidArgument if fn is nil.
func NewDebouncer[A, R any](
	fn func(args ...A) R,
	wait time.Duration,
	opts ...Option,
) (*Debouncer[A, R], error) {
	if fn == nil {
		return nil, invalidArgument("debounce: nil function")
	}

	c := newConfig(opts)
	if wait < 0 {
		wait = 0
	}
	if c.maxing && c.maxWait < wait {
		c.maxWait = wait
	}
	if c.scheduler == nil {
		c.scheduler = defaultTimerScheduler
	}
	if c.clock == nil {
		c.clock = SystemClock{}
	}

	return &Debouncer[A, R]{
		fn:        fn,
		wait:      wait,
		leading:   c.leading,
		trailing:  c.trailing,
		maxing:    c.maxing,
		maxWait:   c.maxWait,
		scheduler: c.scheduler,
		clock:     c.clock,
		log:       c.logger,
	}, nil
}

// NewFrameDebouncer returns a Debouncer with no wait that arms its timer with
// Scheduler.Schedule instead of a delay, firing on the next frame of a
// FrameScheduler. Unless WithScheduler is given, a shared FrameScheduler with
// DefaultFrameInterval is used.
func NewFrameDebouncer[A, R any](
	fn func(args ...A) R,
	opts ...Option,
) (*Debouncer[A, R], error) {
	opts = append([]Option{func(c *config) {
		c.scheduler = defaultFrameScheduler()
	}}, opts...)

	d, err := NewDebouncer(fn, 0, opts...)
	if err != nil {
		return nil, err
	}
	d.useFrame = true

	return d, nil
}

// Call records args as the arguments of the next invocation and invokes the
// wrapped function if the debounce state calls for it.
//
// It returns the result of the invocation if one happened during the call, and
// the cached result of the latest invocation otherwise.
func (d *Debouncer[A, R]) Call(args ...A) R {
	d.mux.Lock()
	defer d.mux.Unlock()

	now := d.clock.Now()
	isInvoking := d.shouldInvoke(now)

	d.lastArgs = append([]A(nil), args...)
	d.hasArgs = true
	d.lastCallTime = now

	if isInvoking {
		if d.timer == 0 {
			return d.leadingEdge(now)
		}
		if d.maxing {
			// Calls in a tight loop reached maxWait before the timer fired.
			d.log.Debug().Dur("max_wait", d.maxWait).Msg("debounce: max wait reached")
			d.startTimer(d.wait)

			return d.invoke(now)
		}
	}
	if d.timer == 0 {
		d.startTimer(d.wait)
	}

	return d.result
}

// Func returns Call as a plain function value.
func (d *Debouncer[A, R]) Func() func(args ...A) R {
	return d.Call
}

// Cancel discards any pending invocation and resets call and invocation times.
// The cached result is kept. Calling Cancel with nothing pending is a no-op.
func (d *Debouncer[A, R]) Cancel() {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer != 0 {
		d.log.Debug().Msg("debounce: cancel pending invocation")
		d.scheduler.Cancel(d.timer)
	}

	d.lastInvokeTime = time.Time{}
	d.lastCallTime = time.Time{}
	d.clearArgs()
	d.timer = 0
}

// Flush immediately resolves a pending invocation as if the timer had fired,
// and returns its result. With nothing pending, it returns the cached result.
func (d *Debouncer[A, R]) Flush() R {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer == 0 {
		return d.result
	}

	d.log.Debug().Msg("debounce: flush")
	d.scheduler.Cancel(d.timer)

	return d.trailingEdge(d.clock.Now())
}

// Pending reports whether a timer is armed, meaning a burst of calls is in
// progress and has not been resolved yet.
func (d *Debouncer[A, R]) Pending() bool {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.timer != 0
}

// shouldInvoke reports whether this is the first call, the wait has passed
// since the last call, the clock went backwards, or maxWait has passed since
// the last invocation. It should only be called while the mutex is held.
func (d *Debouncer[A, R]) shouldInvoke(now time.Time) bool {
	if d.lastCallTime.IsZero() {
		return true
	}

	sinceCall := now.Sub(d.lastCallTime)
	sinceInvoke := now.Sub(d.lastInvokeTime)

	return sinceCall >= d.wait ||
		sinceCall < 0 ||
		(d.maxing && sinceInvoke >= d.maxWait)
}

func (d *Debouncer[A, R]) remainingWait(now time.Time) time.Duration {
	remaining := d.wait - now.Sub(d.lastCallTime)
	if d.maxing {
		if untilMax := d.maxWait - now.Sub(d.lastInvokeTime); untilMax < remaining {
			return untilMax
		}
	}

	return remaining
}

// leadingEdge starts a new burst. The maxWait window opens here even if the
// leading invocation is disabled.
func (d *Debouncer[A, R]) leadingEdge(now time.Time) R {
	d.lastInvokeTime = now
	d.startTimer(d.wait)

	if d.leading {
		d.log.Debug().Str("edge", "leading").Msg("debounce: invoke")
		return d.invoke(now)
	}

	return d.result
}

func (d *Debouncer[A, R]) trailingEdge(now time.Time) R {
	d.timer = 0

	if d.trailing && d.hasArgs {
		d.log.Debug().Str("edge", "trailing").Msg("debounce: invoke")
		return d.invoke(now)
	}
	d.clearArgs()

	return d.result
}

// timerExpired is the callback of the armed timer identified by id. A callback
// whose timer was cancelled or replaced while it waited for the mutex does
// nothing.
func (d *Debouncer[A, R]) timerExpired(id TimerID) {
	if id != d.timer {
		return
	}

	now := d.clock.Now()
	if d.shouldInvoke(now) {
		d.trailingEdge(now)
		return
	}

	remaining := d.remainingWait(now)
	d.log.Debug().Dur("remaining", remaining).Msg("debounce: restart timer")
	d.startTimer(remaining)
}

// startTimer arms the timer, replacing any armed one. It should only be called
// while the mutex is held.
func (d *Debouncer[A, R]) startTimer(wait time.Duration) {
	if d.timer != 0 {
		d.scheduler.Cancel(d.timer)
	}

	var id TimerID
	cb := func() {
		d.mux.Lock()
		defer d.mux.Unlock()

		d.timerExpired(id)
	}

	if d.useFrame {
		id = d.scheduler.Schedule(cb)
	} else {
		id = d.scheduler.ScheduleAfter(cb, wait)
	}
	d.timer = id
}

// invoke calls the wrapped function with the pending arguments and caches its
// result. It should only be called while the mutex is held.
func (d *Debouncer[A, R]) invoke(now time.Time) R {
	args := d.lastArgs
	d.clearArgs()
	d.lastInvokeTime = now

	d.result = d.fn(args...)

	return d.result
}

func (d *Debouncer[A, R]) clearArgs() {
	d.lastArgs = nil
	d.hasArgs = false
}
