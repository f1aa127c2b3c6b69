package debounce

import (
	"sync"
	"time"
)

// TimerID identifies a callback armed on a Scheduler. The zero value never
// refers to an armed callback.
type TimerID uint64

// Scheduler supplies delayed execution to a Debouncer. Implementations must
// never return a zero TimerID.
type Scheduler interface {
	// Schedule runs f at the next scheduling opportunity, such as the next
	// frame of a FrameScheduler.
	Schedule(f func()) TimerID

	// ScheduleAfter runs f once d has elapsed.
	ScheduleAfter(f func(), d time.Duration) TimerID

	// Cancel prevents the callback identified by id from running. It is a
	// no-op if the callback already ran or was already cancelled.
	Cancel(id TimerID)
}

// TimerScheduler is a Scheduler that runs callbacks with time.AfterFunc, each
// on its own goroutine.
type TimerScheduler struct {
	mux    sync.Mutex
	nextID TimerID
	timers map[TimerID]*time.Timer
}

var _ Scheduler = (*TimerScheduler)(nil)

// NewTimerScheduler returns a ready to use TimerScheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: map[TimerID]*time.Timer{}}
}

// Schedule runs f as soon as possible.
func (s *TimerScheduler) Schedule(f func()) TimerID {
	return s.ScheduleAfter(f, 0)
}

func (s *TimerScheduler) ScheduleAfter(f func(), d time.Duration) TimerID {
	if d < 0 {
		d = 0
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.timers == nil {
		s.timers = map[TimerID]*time.Timer{}
	}

	s.nextID++
	id := s.nextID

	s.timers[id] = time.AfterFunc(d, func() {
		s.mux.Lock()
		delete(s.timers, id)
		s.mux.Unlock()

		f()
	})

	return id
}

func (s *TimerScheduler) Cancel(id TimerID) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Len returns the number of armed timers.
func (s *TimerScheduler) Len() int {
	s.mux.Lock()
	defer s.mux.Unlock()

	return len(s.timers)
}
