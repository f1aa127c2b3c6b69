package debounce

import (
	"sort"
	"sync"
	"time"
)

// DefaultFrameInterval is the frame length used by NewFrameScheduler when
// given a non-positive interval. It matches a 60Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler is a Scheduler that batches Schedule callbacks onto frame
// boundaries, like an animation frame source. Delayed callbacks are handed to
// a TimerScheduler.
type FrameScheduler struct {
	*TimerScheduler

	interval time.Duration

	mux    sync.Mutex
	nextID TimerID
	queue  map[TimerID]func()
	frame  *time.Timer
}

var _ Scheduler = (*FrameScheduler)(nil)

// NewFrameScheduler returns a FrameScheduler that fires queued callbacks every
// interval while its queue is non-empty.
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	return &FrameScheduler{
		TimerScheduler: NewTimerScheduler(),
		interval:       interval,
		queue:          map[TimerID]func(){},
	}
}

// Interval returns the frame length.
func (s *FrameScheduler) Interval() time.Duration {
	return s.interval
}

// Schedule queues f to run on the next frame boundary.
func (s *FrameScheduler) Schedule(f func()) TimerID {
	s.mux.Lock()
	defer s.mux.Unlock()

	// Frame IDs use the high half of the ID space so they never collide with
	// IDs handed out by the embedded TimerScheduler.
	s.nextID++
	id := s.nextID | frameIDBit
	s.queue[id] = f

	if s.frame == nil {
		s.frame = time.AfterFunc(s.untilNextFrame(time.Now()), s.runFrame)
	}

	return id
}

// Cancel removes a queued frame callback, or stops a delayed one.
func (s *FrameScheduler) Cancel(id TimerID) {
	if id&frameIDBit == 0 {
		s.TimerScheduler.Cancel(id)
		return
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	delete(s.queue, id)
	if len(s.queue) == 0 && s.frame != nil {
		s.frame.Stop()
		s.frame = nil
	}
}

const frameIDBit TimerID = 1 << 63

func (s *FrameScheduler) untilNextFrame(now time.Time) time.Duration {
	return s.interval - time.Duration(now.UnixNano())%s.interval
}

func (s *FrameScheduler) runFrame() {
	s.mux.Lock()
	queue := s.queue
	s.queue = map[TimerID]func(){}
	s.frame = nil
	s.mux.Unlock()

	ids := make([]TimerID, 0, len(queue))
	for id := range queue {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		queue[id]()
	}
}
