package engine

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback, zero is never issued
type TimerID uint64

// TimerFunc receives the deadline the timer was scheduled for, not the tick time
type TimerFunc func(deadline time.Time)

type timer struct {
	id        TimerID
	deadline  time.Time
	fn        TimerFunc
	cancelled bool
	index     int
}

// timerHeap orders by deadline, then by scheduling order
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].id < h[j].id
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler is a tick-driven timer queue
//
// Architecture:
//   - Single-threaded: At, After, Cancel and Advance are called from the game loop only
//   - Timers never fire on their own; Advance fires every timer whose deadline has passed
//   - Firing order is deadline first, then scheduling order
//   - Timers scheduled by a callback fire in the same Advance if already due
type Scheduler struct {
	clock  TimeProvider
	queue  timerHeap
	live   map[TimerID]*timer
	nextID TimerID
}

// NewScheduler creates a scheduler reading the current time from clock
func NewScheduler(clock TimeProvider) *Scheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &Scheduler{
		clock: clock,
		live:  make(map[TimerID]*timer),
	}
}

// Now returns the scheduler clock time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// At schedules fn to fire once the clock reaches deadline
func (s *Scheduler) At(deadline time.Time, fn TimerFunc) TimerID {
	s.nextID++
	t := &timer{
		id:       s.nextID,
		deadline: deadline,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	s.live[t.id] = t
	return t.id
}

// After schedules fn to fire d after the current clock time
func (s *Scheduler) After(d time.Duration, fn TimerFunc) TimerID {
	return s.At(s.clock.Now().Add(d), fn)
}

// Cancel discards a pending timer, returns false if it already fired or was cancelled
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.live[id]
	if !ok {
		return false
	}
	t.cancelled = true
	delete(s.live, id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

// pending returns the number of timers waiting to fire
func (s *Scheduler) pending() int {
	return len(s.live)
}

// nextDeadline returns the earliest pending deadline
func (s *Scheduler) nextDeadline() (time.Time, bool) {
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].deadline, true
}

// Advance fires all timers due at now and returns how many fired
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.deadline.After(now) {
			break
		}
		heap.Pop(&s.queue)
		delete(s.live, t.id)
		if t.cancelled {
			continue
		}
		t.fn(t.deadline)
		fired++
	}
	return fired
}
