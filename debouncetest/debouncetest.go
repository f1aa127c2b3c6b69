// Package debouncetest provides a fake Clock and Scheduler for deterministic
// tests of code built on debounce.Debouncer. Time only moves when the test
// moves it, and callbacks only run from Advance and RunFrame.
package debouncetest

import (
	"sort"
	"sync"
	"time"

	"github.com/romdo/go-debounce/v2"
)

// Epoch is the time a Clock created with a zero start reports.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock is a debounce.Clock whose time is set by the test.
type Clock struct {
	mux sync.Mutex
	now time.Time
}

var _ debounce.Clock = (*Clock)(nil)

// NewClock returns a Clock set to start, or to Epoch if start is zero.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = Epoch
	}

	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.now
}

// Set moves the clock to t, which may be in the past.
func (c *Clock) Set(t time.Time) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.now = t
}

// Add moves the clock by d, which may be negative, and returns the new time.
func (c *Clock) Add(d time.Duration) time.Time {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.now = c.now.Add(d)

	return c.now
}

// Since returns the time elapsed on the clock since t.
func (c *Clock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

type entry struct {
	id    debounce.TimerID
	due   time.Time
	frame bool
	f     func()
}

// Scheduler is a debounce.Scheduler driven by a Clock. Delayed callbacks run
// when Advance moves the clock past their due time, and frame callbacks run
// on RunFrame.
type Scheduler struct {
	Clock *Clock

	mux     sync.Mutex
	nextID  debounce.TimerID
	entries map[debounce.TimerID]*entry
}

var _ debounce.Scheduler = (*Scheduler)(nil)

// NewScheduler returns a Scheduler using clock, or a new Clock at Epoch if
// clock is nil.
func NewScheduler(clock *Clock) *Scheduler {
	if clock == nil {
		clock = NewClock(time.Time{})
	}

	return &Scheduler{
		Clock:   clock,
		entries: map[debounce.TimerID]*entry{},
	}
}

func (s *Scheduler) Schedule(f func()) debounce.TimerID {
	return s.add(&entry{frame: true, f: f})
}

func (s *Scheduler) ScheduleAfter(f func(), d time.Duration) debounce.TimerID {
	if d < 0 {
		d = 0
	}

	return s.add(&entry{due: s.Clock.Now().Add(d), f: f})
}

func (s *Scheduler) Cancel(id debounce.TimerID) {
	s.mux.Lock()
	defer s.mux.Unlock()

	delete(s.entries, id)
}

func (s *Scheduler) add(e *entry) debounce.TimerID {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.nextID++
	e.id = s.nextID
	s.entries[e.id] = e

	return e.id
}

// Armed returns the number of callbacks that have not run or been cancelled.
func (s *Scheduler) Armed() int {
	s.mux.Lock()
	defer s.mux.Unlock()

	return len(s.entries)
}

// Next returns how long until the earliest delayed callback is due.
func (s *Scheduler) Next() (time.Duration, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	e := s.earliest(time.Time{})
	if e == nil {
		return 0, false
	}

	return e.due.Sub(s.Clock.Now()), true
}

// Advance moves the clock forward by d, running every delayed callback that
// becomes due on the way in due time order. Before each callback runs, the
// clock is set to its due time. Callbacks armed by other callbacks run too if
// they fall due within d.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.Clock.Now().Add(d)

	for {
		s.mux.Lock()
		e := s.earliest(target)
		if e != nil {
			delete(s.entries, e.id)
		}
		s.mux.Unlock()

		if e == nil {
			break
		}
		if e.due.After(s.Clock.Now()) {
			s.Clock.Set(e.due)
		}
		e.f()
	}

	if target.After(s.Clock.Now()) {
		s.Clock.Set(target)
	}
}

// Fire runs every delayed callback armed at the time of the call, in due time
// order and without moving the clock. Callbacks armed while Fire runs are left
// armed. Combined with Clock.Set it simulates a wall clock that jumped while
// timers kept running on schedule.
func (s *Scheduler) Fire() int {
	s.mux.Lock()
	var due []*entry
	for _, e := range s.entries {
		if !e.frame {
			due = append(due, e)
		}
	}
	s.mux.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})

	n := 0
	for _, e := range due {
		s.mux.Lock()
		_, ok := s.entries[e.id]
		delete(s.entries, e.id)
		s.mux.Unlock()

		if ok {
			e.f()
			n++
		}
	}

	return n
}

// RunFrame runs every queued frame callback in the order they were queued.
// Frame callbacks queued while the frame runs wait for the next frame.
func (s *Scheduler) RunFrame() int {
	s.mux.Lock()
	var frame []*entry
	for id, e := range s.entries {
		if e.frame {
			frame = append(frame, e)
			delete(s.entries, id)
		}
	}
	s.mux.Unlock()

	sort.Slice(frame, func(i, j int) bool { return frame[i].id < frame[j].id })
	for _, e := range frame {
		e.f()
	}

	return len(frame)
}

// earliest returns the delayed entry with the smallest due time, ties broken
// by ID. If limit is non-zero, entries due after it are ignored. It should
// only be called while the mutex is held.
func (s *Scheduler) earliest(limit time.Time) *entry {
	var found *entry
	for _, e := range s.entries {
		if e.frame || (!limit.IsZero() && e.due.After(limit)) {
			continue
		}
		if found == nil || e.due.Before(found.due) ||
			(e.due.Equal(found.due) && e.id < found.id) {
			found = e
		}
	}

	return found
}

// NewDebouncer returns a Debouncer wired to a new Scheduler and Clock, along
// with the Scheduler.
func NewDebouncer[A, R any](
	fn func(args ...A) R,
	wait time.Duration,
	opts ...debounce.Option,
) (*debounce.Debouncer[A, R], *Scheduler, error) {
	s := NewScheduler(nil)
	d, err := debounce.NewDebouncer(fn, wait,
		append([]debounce.Option{
			debounce.WithScheduler(s),
			debounce.WithClock(s.Clock),
		}, opts...)...,
	)

	return d, s, err
}

// NewFrameDebouncer is like NewDebouncer, but for debounce.NewFrameDebouncer.
func NewFrameDebouncer[A, R any](
	fn func(args ...A) R,
	opts ...debounce.Option,
) (*debounce.Debouncer[A, R], *Scheduler, error) {
	s := NewScheduler(nil)
	d, err := debounce.NewFrameDebouncer(fn,
		append([]debounce.Option{
			debounce.WithScheduler(s),
			debounce.WithClock(s.Clock),
		}, opts...)...,
	)

	return d, s, err
}
