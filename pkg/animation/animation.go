// Package animation provides the primitive per-element animation the rest
// of the motion engine composes.
//
// An [Animation] owns a keyframe track for one [surface.Element] and a local
// clock in [0, Total()]. It can drive itself through a frame scheduler
// (Play/Pause/Reverse/Restart) or be driven externally by pushing local
// times with SetTime, which is how the timeline scheduler uses it.
// Animations are created paused.
//
//	anim, err := animation.New(el, animation.Config{
//	    To:       &surface.Style{Opacity: 1, Transform: surface.Identity()},
//	    Duration: 300 * time.Millisecond,
//	    Curve:    animation.EaseOut,
//	}, animation.WithScheduler(sched))
//	if err != nil { ... }
//	anim.Play()
//	<-anim.Done()
package animation

import (
	"errors"
	"sync"
	"time"

	"github.com/go-kinetic/kinetic/pkg/surface"
)

// ErrCanceled is reported through Err by animations stopped via Cancel.
var ErrCanceled = errors.New("animation: canceled")

// PlayState is the playback state of an animation.
type PlayState int

const (
	// StateIdle means the animation has not started or was canceled.
	StateIdle PlayState = iota
	// StateRunning means the animation is advancing on frame callbacks.
	StateRunning
	// StatePaused means playback is halted at the current local time.
	StatePaused
	// StateFinished means the animation reached a track boundary.
	StateFinished
)

func (s PlayState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Animation animates one element along a keyframe track.
type Animation struct {
	element   surface.Element
	frames    []Keyframe
	duration  time.Duration
	delay     time.Duration
	curve     Curve
	fill      FillMode
	base      surface.Style
	scheduler surface.FrameScheduler
	clock     Clock

	mu          sync.Mutex
	state       PlayState
	reversed    bool
	current     time.Duration
	lastTick    time.Time
	cancelFrame func()
	done        chan struct{}
	doneOnce    sync.Once
	err         error
	listeners   map[int]func()
	nextID      int
}

// Option configures an Animation at creation time.
type Option func(*Animation)

// WithScheduler sets the frame scheduler used for standalone playback.
// Animations driven externally (for example by a timeline) need none.
func WithScheduler(s surface.FrameScheduler) Option {
	return func(a *Animation) { a.scheduler = s }
}

// WithClock sets the time source. Defaults to the system clock.
func WithClock(c Clock) Option {
	return func(a *Animation) { a.clock = c }
}

// New creates a paused animation for element. It validates the config and
// captures the element's current style as the fill baseline.
func New(element surface.Element, cfg Config, opts ...Option) (*Animation, error) {
	if element == nil {
		return nil, errors.New("animation: nil element")
	}
	base := element.ComputedStyle()
	frames, err := cfg.normalize(base)
	if err != nil {
		return nil, err
	}
	curve := cfg.Curve
	if curve == nil {
		curve = Linear
	}
	a := &Animation{
		element:   element,
		frames:    frames,
		duration:  cfg.Duration,
		delay:     cfg.Delay,
		curve:     curve,
		fill:      cfg.Fill,
		base:      base,
		clock:     SystemClock(),
		state:     StatePaused,
		done:      make(chan struct{}),
		listeners: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Element returns the animated element.
func (a *Animation) Element() surface.Element { return a.element }

// Duration returns the active track duration, excluding the start delay.
func (a *Animation) Duration() time.Duration { return a.duration }

// Total returns the full local-clock length: delay plus duration.
func (a *Animation) Total() time.Duration { return a.delay + a.duration }

// State returns the current playback state.
func (a *Animation) State() PlayState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// CurrentTime returns the local clock position.
func (a *Animation) CurrentTime() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Done is closed when the animation finishes, is canceled, or is forced to
// its end state with Finish.
func (a *Animation) Done() <-chan struct{} { return a.done }

// Err reports why the animation completed. It is nil for natural
// completion and ErrCanceled after Cancel.
func (a *Animation) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// OnFinish registers a completion callback and returns an unsubscribe
// function. Callbacks run synchronously on the frame that completes the
// animation (or inside Cancel/Finish).
func (a *Animation) OnFinish(fn func()) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.listeners, id)
	}
}

// Play starts or resumes playback. Playing a finished animation restarts it
// from the corresponding track boundary. Without a scheduler the animation
// jumps straight to its end state: a cosmetic animation that cannot be
// driven still has to settle at the right place.
func (a *Animation) Play() {
	a.mu.Lock()
	if a.state == StateRunning {
		a.mu.Unlock()
		return
	}
	if a.state == StateFinished {
		if a.reversed {
			a.current = a.Total()
		} else {
			a.current = 0
		}
	}
	if a.scheduler == nil {
		a.mu.Unlock()
		a.Finish()
		return
	}
	a.state = StateRunning
	a.lastTick = a.clock.Now()
	a.scheduleLocked()
	a.mu.Unlock()

	// The first frame must be visible before the next scheduler tick: a
	// layout transition paints its inverted position in the same frame the
	// host re-laid the element out.
	a.applyCurrent()
}

// Pause halts playback at the current local time.
func (a *Animation) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateRunning {
		return
	}
	a.stopFrameLocked()
	a.state = StatePaused
}

// Reverse flips the playback direction in place. A running animation keeps
// running toward the opposite boundary; a finished one can be replayed
// backward with Play.
func (a *Animation) Reverse() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reversed = !a.reversed
	if a.state == StateFinished {
		a.state = StatePaused
	}
}

// Restart rewinds to the start and plays.
func (a *Animation) Restart() {
	a.mu.Lock()
	a.current = 0
	a.reversed = false
	if a.state == StateFinished {
		a.state = StatePaused
	}
	a.mu.Unlock()
	a.applyCurrent()
	a.Play()
}

// SetTime seeks the local clock to t, clamped to [0, Total()], and applies
// the corresponding style. Seeking is idempotent and legal in any state;
// it does not start or stop playback.
func (a *Animation) SetTime(t time.Duration) {
	a.mu.Lock()
	a.current = clampDuration(t, 0, a.Total())
	a.mu.Unlock()
	a.applyCurrent()
}

// Cancel stops playback immediately. With FillNone the element is restored
// to its creation-time style; otherwise it is left holding the last computed
// frame. Done is closed with ErrCanceled.
func (a *Animation) Cancel() {
	a.mu.Lock()
	if a.state == StateIdle && a.err != nil {
		a.mu.Unlock()
		return
	}
	a.stopFrameLocked()
	a.state = StateIdle
	a.err = ErrCanceled
	fill := a.fill
	a.mu.Unlock()

	if fill == FillNone {
		a.element.ApplyStyle(a.base)
	}
	a.complete()
}

// Finish jumps to the end state and completes the animation.
func (a *Animation) Finish() {
	a.mu.Lock()
	if a.state == StateFinished {
		a.mu.Unlock()
		return
	}
	a.stopFrameLocked()
	if a.reversed {
		a.current = 0
	} else {
		a.current = a.Total()
	}
	a.state = StateFinished
	a.mu.Unlock()

	a.applyCurrent()
	a.settleFill()
	a.complete()
}

func (a *Animation) scheduleLocked() {
	if a.scheduler == nil {
		return
	}
	a.cancelFrame = a.scheduler.RequestFrame(a.step)
}

func (a *Animation) stopFrameLocked() {
	if a.cancelFrame != nil {
		a.cancelFrame()
		a.cancelFrame = nil
	}
}

// step advances the local clock by the wall time since the previous frame.
func (a *Animation) step(now time.Time) {
	a.mu.Lock()
	if a.state != StateRunning {
		a.mu.Unlock()
		return
	}
	dt := now.Sub(a.lastTick)
	a.lastTick = now
	if a.reversed {
		a.current -= dt
	} else {
		a.current += dt
	}

	finished := false
	if a.reversed && a.current <= 0 {
		a.current = 0
		finished = true
	} else if !a.reversed && a.current >= a.Total() {
		a.current = a.Total()
		finished = true
	}
	if finished {
		a.stopFrameLocked()
		a.state = StateFinished
	} else {
		a.scheduleLocked()
	}
	a.mu.Unlock()

	a.applyCurrent()
	if finished {
		a.settleFill()
		a.complete()
	}
}

// applyCurrent samples the track at the current local time and pushes the
// style to the element.
func (a *Animation) applyCurrent() {
	a.mu.Lock()
	t := a.current
	a.mu.Unlock()
	a.element.ApplyStyle(a.Sample(t))
}

// Sample computes the style at local time t without applying it.
func (a *Animation) Sample(t time.Duration) surface.Style {
	var p float64
	switch {
	case a.duration <= 0:
		if t >= a.delay {
			p = 1
		}
	case t <= a.delay:
		p = 0
	default:
		p = float64(t-a.delay) / float64(a.duration)
	}
	return sampleFrames(a.frames, a.curve(clampUnit(p)))
}

// settleFill restores the baseline style when the fill policy does not hold
// the final frame.
func (a *Animation) settleFill() {
	if a.fill == FillNone {
		a.element.ApplyStyle(a.base)
	}
}

// complete closes Done exactly once and notifies finish listeners. The
// listeners fire on every completion so a restarted animation reports each
// pass, while Done stays a one-shot signal.
func (a *Animation) complete() {
	a.doneOnce.Do(func() { close(a.done) })
	a.mu.Lock()
	listeners := make([]func(), 0, len(a.listeners))
	for _, fn := range a.listeners {
		listeners = append(listeners, fn)
	}
	a.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
