// Package timeline provides a composeable, seekable, pausable
// multi-animation clock.
//
// Callers add animations addressed to target elements with a relative
// [Position] token; the timeline computes absolute start/end offsets and
// drives every animation's local clock from a single master clock advanced
// by rendering-frame callbacks. Entries are append-only and resolved in the
// order Add was called.
package timeline

import (
	"sync"
	"time"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/errors"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// entry wraps one target element's primitive animation with its resolved
// absolute offsets. Entries hold no back-pointer to the timeline; the
// timeline pushes local times into them each tick.
type entry struct {
	anim  *animation.Animation
	start time.Duration
	end   time.Duration
}

// Options configures a Timeline.
type Options struct {
	// Surface resolves selector targets. May be nil if every Add uses
	// direct element handles.
	Surface surface.Surface
	// Scheduler drives the master clock. Required for playback.
	Scheduler surface.FrameScheduler
	// Clock is the time source. Defaults to the system clock.
	Clock animation.Clock
	// Stagger is the per-index offset used by the "+=" and "-=" tokens.
	Stagger time.Duration
}

// Timeline composes multiple timed animations under one master clock.
// All mutation happens on the frame thread at well-defined frame
// boundaries; the timeline owns its entries, which never outlive it.
type Timeline struct {
	surf      surface.Surface
	scheduler surface.FrameScheduler
	clock     animation.Clock
	stagger   time.Duration

	mu          sync.Mutex
	entries     []*entry
	duration    time.Duration
	current     time.Duration
	playing     bool
	reversed    bool
	origin      time.Time
	cancelFrame func()
	listeners   map[int]func()
	nextID      int
}

// New creates an empty timeline.
func New(opts Options) *Timeline {
	clock := opts.Clock
	if clock == nil {
		clock = animation.SystemClock()
	}
	return &Timeline{
		surf:      opts.Surface,
		scheduler: opts.Scheduler,
		clock:     clock,
		stagger:   opts.Stagger,
		listeners: make(map[int]func()),
	}
}

// Add appends one paused animation per element the target resolves to,
// positioned relative to the previous entry. Targets that resolve to
// nothing are skipped silently; invalid configs are reported and skipped.
// The timeline's total duration is the running maximum of entry end times
// and never decreases.
func (tl *Timeline) Add(target surface.Target, cfg animation.Config, pos Position) {
	els := target.Resolve(tl.surf)
	if len(els) == 0 {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	prevStart, prevEnd := time.Duration(0), time.Duration(0)
	if n := len(tl.entries); n > 0 {
		prevStart = tl.entries[n-1].start
		prevEnd = tl.entries[n-1].end
	}

	for i, el := range els {
		anim, err := animation.New(el, cfg, animation.WithClock(tl.clock))
		if err != nil {
			errors.Report(&errors.MotionError{
				Op:   "timeline.Add",
				Kind: errors.KindPlayback,
				Err:  err,
				Key:  target.Selector,
			})
			continue
		}
		start := pos.resolve(prevStart, prevEnd, i, tl.stagger)
		e := &entry{anim: anim, start: start, end: start + anim.Total()}
		tl.entries = append(tl.entries, e)
		if e.end > tl.duration {
			tl.duration = e.end
		}
	}
}

// Len returns the number of entries.
func (tl *Timeline) Len() int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return len(tl.entries)
}

// Duration returns the total timeline duration: the maximum entry end time.
func (tl *Timeline) Duration() time.Duration {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.duration
}

// CurrentTime returns the master clock position.
func (tl *Timeline) CurrentTime() time.Duration {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.current
}

// Progress returns currentTime/duration, or 0 if the duration is 0.
func (tl *Timeline) Progress() float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tl.duration <= 0 {
		return 0
	}
	return float64(tl.current) / float64(tl.duration)
}

// IsPlaying reports whether the master clock is running.
func (tl *Timeline) IsPlaying() bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.playing
}

// OnComplete registers a callback fired when the master clock reaches the
// timeline's duration. Returns an unsubscribe function.
func (tl *Timeline) OnComplete(fn func()) func() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	id := tl.nextID
	tl.nextID++
	tl.listeners[id] = fn
	return func() {
		tl.mu.Lock()
		defer tl.mu.Unlock()
		delete(tl.listeners, id)
	}
}

// Play starts the master clock. The clock origin is back-computed so that
// resuming from a paused currentTime is seamless. A timeline already sitting
// at its forward end has nothing left to play; restart it with Restart or
// turn it around with Reverse.
func (tl *Timeline) Play() {
	tl.mu.Lock()
	if tl.playing || tl.scheduler == nil {
		tl.mu.Unlock()
		return
	}
	if !tl.reversed && tl.duration > 0 && tl.current >= tl.duration {
		tl.mu.Unlock()
		return
	}
	tl.playing = true
	tl.rebaseOriginLocked()
	tl.scheduleLocked()
	tl.mu.Unlock()
}

// Pause halts the master clock; the pending frame callback is canceled so
// no further advancement occurs until the next Play.
func (tl *Timeline) Pause() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.pauseLocked()
}

// Reverse reverses every contained animation in place, flips the master
// clock direction, and resumes playback.
func (tl *Timeline) Reverse() {
	tl.mu.Lock()
	tl.reversed = !tl.reversed
	for _, e := range tl.entries {
		e.anim.Reverse()
	}
	if tl.playing {
		tl.rebaseOriginLocked()
		tl.mu.Unlock()
		return
	}
	tl.mu.Unlock()
	tl.Play()
}

// Restart resets the master clock to 0, rewinds every animation, and plays
// from the start.
func (tl *Timeline) Restart() {
	tl.mu.Lock()
	tl.pauseLocked()
	tl.current = 0
	tl.reversed = false
	entries := tl.snapshotLocked()
	current := tl.current
	tl.mu.Unlock()

	pushTimes(entries, current)
	tl.Play()
}

// Seek clamps t to [0, duration] and pushes that time to every contained
// animation. Entries not yet reached hold at time 0; entries already
// finished hold at their end state. Seeking is idempotent.
func (tl *Timeline) Seek(t time.Duration) {
	tl.mu.Lock()
	if t < 0 {
		t = 0
	}
	if t > tl.duration {
		t = tl.duration
	}
	tl.current = t
	if tl.playing {
		tl.rebaseOriginLocked()
	}
	entries := tl.snapshotLocked()
	tl.mu.Unlock()

	pushTimes(entries, t)
}

// Clear pauses the clock, cancels every contained animation, and empties
// the entry list.
func (tl *Timeline) Clear() {
	tl.mu.Lock()
	tl.pauseLocked()
	entries := tl.entries
	tl.entries = nil
	tl.duration = 0
	tl.current = 0
	tl.reversed = false
	tl.mu.Unlock()

	for _, e := range entries {
		e.anim.Cancel()
	}
}

// rebaseOriginLocked back-computes the clock origin so the next tick
// continues from the current position in the current direction.
func (tl *Timeline) rebaseOriginLocked() {
	now := tl.clock.Now()
	if tl.reversed {
		tl.origin = now.Add(-(tl.duration - tl.current))
	} else {
		tl.origin = now.Add(-tl.current)
	}
}

func (tl *Timeline) pauseLocked() {
	if tl.cancelFrame != nil {
		tl.cancelFrame()
		tl.cancelFrame = nil
	}
	tl.playing = false
}

func (tl *Timeline) scheduleLocked() {
	tl.cancelFrame = tl.scheduler.RequestFrame(tl.tick)
}

// tick advances the master clock on a rendering-frame callback and pushes
// the resulting local times into every entry.
func (tl *Timeline) tick(now time.Time) {
	tl.mu.Lock()
	if !tl.playing {
		tl.mu.Unlock()
		return
	}
	elapsed := now.Sub(tl.origin)
	if tl.reversed {
		tl.current = tl.duration - elapsed
	} else {
		tl.current = elapsed
	}

	completed := false
	stopped := false
	if tl.current >= tl.duration {
		tl.current = tl.duration
		completed = !tl.reversed
		stopped = true
	}
	if tl.current <= 0 {
		tl.current = 0
		if tl.reversed {
			stopped = true
		}
	}

	if stopped {
		tl.pauseLocked()
	} else {
		tl.scheduleLocked()
	}
	entries := tl.snapshotLocked()
	current := tl.current
	var listeners []func()
	if completed {
		for _, fn := range tl.listeners {
			listeners = append(listeners, fn)
		}
	}
	tl.mu.Unlock()

	pushTimes(entries, current)
	for _, fn := range listeners {
		fn()
	}
}

func (tl *Timeline) snapshotLocked() []*entry {
	out := make([]*entry, len(tl.entries))
	copy(out, tl.entries)
	return out
}

// pushTimes drives each entry's local clock from the master time. Each
// animation clamps itself to [0, Total()] relative to its own start offset.
func pushTimes(entries []*entry, current time.Duration) {
	for _, e := range entries {
		e.anim.SetTime(current - e.start)
	}
}
