package testing

import (
	"sync"
	"time"
)

// ManualScheduler is a FrameScheduler whose frames fire only when the test
// pumps them, so frame-driven clocks advance deterministically.
type ManualScheduler struct {
	mu      sync.Mutex
	pending map[int]func(time.Time)
	nextID  int
}

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]func(time.Time))}
}

// RequestFrame queues a callback for the next Tick. The returned cancel
// function removes the callback if the frame has not fired yet.
func (s *ManualScheduler) RequestFrame(callback func(now time.Time)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.pending[id] = callback
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.pending, id)
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Tick fires every queued callback with the given frame time. Callbacks
// requesting another frame from inside the tick are queued for the next
// Tick, not run in this one.
func (s *ManualScheduler) Tick(now time.Time) {
	s.mu.Lock()
	callbacks := make([]func(time.Time), 0, len(s.pending))
	for _, cb := range s.pending {
		callbacks = append(callbacks, cb)
	}
	s.pending = make(map[int]func(time.Time))
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(now)
	}
}

// Harness couples a FakeClock with a ManualScheduler so tests advance
// animation time and pump the resulting frame in one call.
type Harness struct {
	Clock     *FakeClock
	Scheduler *ManualScheduler
}

// NewHarness returns a fresh clock/scheduler pair.
func NewHarness() *Harness {
	return &Harness{
		Clock:     NewFakeClock(),
		Scheduler: NewManualScheduler(),
	}
}

// Advance moves the clock forward by d and fires one frame at the new time.
func (h *Harness) Advance(d time.Duration) {
	h.Clock.Advance(d)
	h.Scheduler.Tick(h.Clock.Now())
}

// AdvanceBy pumps n frames of d each, mimicking a steady frame cadence.
func (h *Harness) AdvanceBy(d time.Duration, n int) {
	for i := 0; i < n; i++ {
		h.Advance(d)
	}
}

// Settle pumps frames until no callback is pending or the frame budget is
// exhausted, advancing the clock by step per frame. Returns true if the
// scheduler drained.
func (h *Harness) Settle(step time.Duration, maxFrames int) bool {
	for i := 0; i < maxFrames; i++ {
		if h.Scheduler.Pending() == 0 {
			return true
		}
		h.Advance(step)
	}
	return h.Scheduler.Pending() == 0
}
