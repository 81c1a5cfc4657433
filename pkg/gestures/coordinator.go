package gestures

import (
	"time"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/errors"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// Classification thresholds. Tap and double-tap timing are fixed per
// coordinator; swipe distance and axis are configurable.
const (
	defaultSwipeThreshold   = 50.0 // px
	defaultSwipeMinVelocity = 0.3  // px/ms
	defaultTapMaxDistance   = 10.0 // px
	defaultTapMaxDuration   = 200 * time.Millisecond
	defaultDoubleTapGap     = 300 * time.Millisecond
)

// Config tunes a Coordinator. The zero value enables tracking with the
// default thresholds on both axes.
type Config struct {
	// Disabled turns Attach into a no-op.
	Disabled bool
	// SwipeThreshold is the minimum travel distance for a swipe, in px.
	SwipeThreshold float64
	// SwipeMinVelocity is the minimum swipe velocity, in px per ms.
	SwipeMinVelocity float64
	// TapMaxDistance is the maximum travel for a tap, in px.
	TapMaxDistance float64
	// TapMaxDuration is the maximum press time for a tap.
	TapMaxDuration time.Duration
	// DoubleTapGap is the maximum delay after a tap's end for the next tap
	// to classify as a double-tap.
	DoubleTapGap time.Duration
	// Axis filters which swipe directions are emitted; a swipe whose
	// detected axis is not permitted is suppressed entirely.
	Axis Axis
	// Clock stamps samples that arrive without a timestamp.
	Clock animation.Clock
}

func (c Config) withDefaults() Config {
	if c.SwipeThreshold == 0 {
		c.SwipeThreshold = defaultSwipeThreshold
	}
	if c.SwipeMinVelocity == 0 {
		c.SwipeMinVelocity = defaultSwipeMinVelocity
	}
	if c.TapMaxDistance == 0 {
		c.TapMaxDistance = defaultTapMaxDistance
	}
	if c.TapMaxDuration == 0 {
		c.TapMaxDuration = defaultTapMaxDuration
	}
	if c.DoubleTapGap == 0 {
		c.DoubleTapGap = defaultDoubleTapGap
	}
	if c.Clock == nil {
		c.Clock = animation.SystemClock()
	}
	return c
}

// Coordinator attaches to surface elements, tracks their raw input samples,
// and emits classified gesture events to subscribers. All state is owned by
// the coordinator instance; independent usage scopes construct independent
// coordinators.
type Coordinator struct {
	cfg      Config
	trackers map[surface.Element]*tracker
	arena    *handlerArena
}

// NewCoordinator creates a coordinator with the given configuration.
func NewCoordinator(cfg Config) *Coordinator {
	return &Coordinator{
		cfg:      cfg.withDefaults(),
		trackers: make(map[surface.Element]*tracker),
		arena:    newHandlerArena(),
	}
}

// Attach begins tracking an element. No-op when the coordinator is disabled
// by configuration or the element is already tracked.
func (c *Coordinator) Attach(el surface.Element) {
	if c.cfg.Disabled || el == nil {
		return
	}
	if _, ok := c.trackers[el]; ok {
		return
	}
	c.trackers[el] = newTracker(el)
}

// Detach stops tracking an element and frees its tracker. Safe to call on
// an unattached element.
func (c *Coordinator) Detach(el surface.Element) {
	delete(c.trackers, el)
}

// On subscribes a handler to a gesture type. Multiple handlers per type are
// supported; each call is an independent registration, and the returned
// subscription is the only handle that removes it.
func (c *Coordinator) On(t Type, fn Handler) Subscription {
	return c.arena.add(t, fn)
}

// Off unsubscribes a handler. Safe on zero or already-removed subscriptions.
func (c *Coordinator) Off(sub Subscription) {
	c.arena.remove(sub)
}

// Destroy detaches every tracked element and clears all subscriptions.
func (c *Coordinator) Destroy() {
	c.trackers = make(map[surface.Element]*tracker)
	c.arena.clear()
}

// Handle feeds one raw input sample for an element. Samples for elements
// that are not attached are ignored, as are malformed sequences such as an
// up without a matching down; classification never raises.
func (c *Coordinator) Handle(el surface.Element, ev PointerEvent) {
	tr, ok := c.trackers[el]
	if !ok {
		return
	}
	now := ev.Time
	if now.IsZero() {
		now = c.cfg.Clock.Now()
	}

	switch ev.Phase {
	case PhaseDown:
		tr.begin(ev, now)

	case PhaseMove:
		if scale, ok := tr.move(ev); ok {
			// Continuous, not rate-limited: one pinch event per sample.
			c.emit(Event{Type: TypePinch, Scale: scale, Target: el})
			return
		}
		if ev.Device == DeviceMouse && ev.Primary && tr.active {
			delta := ev.Position.Sub(tr.origin)
			c.emit(Event{
				Type:      TypeDrag,
				Direction: dominantDirection(delta.X, delta.Y),
				Distance:  tr.origin.Distance(ev.Position),
				Target:    el,
			})
		}

	case PhaseUp:
		if tr.end(ev) {
			c.classify(tr, ev, now)
		}

	case PhaseCancel:
		tr.reset()
	}
}

// classify turns a completed single-point session into at most one terminal
// gesture: tap, double-tap, swipe, or none.
func (c *Coordinator) classify(tr *tracker, ev PointerEvent, now time.Time) {
	delta := ev.Position.Sub(tr.origin)
	distance := tr.origin.Distance(ev.Position)
	elapsed := now.Sub(tr.start)

	if distance < c.cfg.TapMaxDistance && elapsed < c.cfg.TapMaxDuration {
		if !tr.lastTapEnd.IsZero() && now.Sub(tr.lastTapEnd) < c.cfg.DoubleTapGap {
			// The first tap was already emitted when it ended; only the
			// double-tap goes out now.
			tr.lastTapEnd = time.Time{}
			c.emit(Event{Type: TypeDoubleTap, Target: tr.element})
			return
		}
		tr.lastTapEnd = now
		c.emit(Event{Type: TypeTap, Distance: distance, Target: tr.element})
		return
	}

	ms := float64(elapsed) / float64(time.Millisecond)
	if ms <= 0 {
		ms = 1
	}
	velocity := distance / ms
	if distance > c.cfg.SwipeThreshold && velocity > c.cfg.SwipeMinVelocity {
		dir := dominantDirection(delta.X, delta.Y)
		if !c.cfg.Axis.permits(dir) {
			return
		}
		c.emit(Event{
			Type:      TypeSwipe,
			Direction: dir,
			Distance:  distance,
			Velocity:  velocity,
			Target:    tr.element,
		})
	}
}

// emit fans an event out to every subscriber of its type. A panicking
// handler is reported and isolated so it cannot break input dispatch.
func (c *Coordinator) emit(ev Event) {
	c.arena.each(ev.Type, func(fn Handler) {
		defer errors.Recover("gestures.emit")
		fn(ev)
	})
}
