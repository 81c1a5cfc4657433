package testing

import (
	"sync/atomic"
	"time"

	"github.com/go-kinetic/kinetic/pkg/geometry"
	"github.com/go-kinetic/kinetic/pkg/gestures"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// nextPointerID is incremented for each new synthetic pointer to avoid
// collisions between concurrent gesture simulations.
var nextPointerID int64

func allocPointerID() int64 {
	return atomic.AddInt64(&nextPointerID, 1)
}

// GestureDriver synthesizes raw input streams against a coordinator, using
// a fake clock so timing-sensitive classification is deterministic.
type GestureDriver struct {
	Coordinator *gestures.Coordinator
	Clock       *FakeClock
}

// NewGestureDriver returns a driver feeding events stamped by clock.
func NewGestureDriver(c *gestures.Coordinator, clock *FakeClock) *GestureDriver {
	return &GestureDriver{Coordinator: c, Clock: clock}
}

// Tap presses at pos and releases at the same position after hold.
func (d *GestureDriver) Tap(el surface.Element, pos geometry.Offset, hold time.Duration) {
	id := allocPointerID()
	d.send(el, id, pos, gestures.PhaseDown)
	d.Clock.Advance(hold)
	d.send(el, id, pos, gestures.PhaseUp)
}

// Swipe presses at start, moves to end in a few samples, and releases
// after elapsed.
func (d *GestureDriver) Swipe(el surface.Element, start, end geometry.Offset, elapsed time.Duration) {
	id := allocPointerID()
	d.send(el, id, start, gestures.PhaseDown)
	const steps = 4
	for i := 1; i <= steps; i++ {
		frac := float64(i) / steps
		d.Clock.Advance(elapsed / steps)
		d.send(el, id, geometry.Offset{
			X: start.X + (end.X-start.X)*frac,
			Y: start.Y + (end.Y-start.Y)*frac,
		}, gestures.PhaseMove)
	}
	d.send(el, id, end, gestures.PhaseUp)
}

// Pinch starts two contacts a and b, then moves them to a2 and b2.
func (d *GestureDriver) Pinch(el surface.Element, a, b, a2, b2 geometry.Offset) {
	ida, idb := allocPointerID(), allocPointerID()
	d.send(el, ida, a, gestures.PhaseDown)
	d.send(el, idb, b, gestures.PhaseDown)
	d.Clock.Advance(16 * time.Millisecond)
	d.send(el, ida, a2, gestures.PhaseMove)
	d.send(el, idb, b2, gestures.PhaseMove)
	d.send(el, ida, a2, gestures.PhaseUp)
	d.send(el, idb, b2, gestures.PhaseUp)
}

// Drag presses the primary mouse button at start and moves through the
// given positions without releasing.
func (d *GestureDriver) Drag(el surface.Element, start geometry.Offset, path ...geometry.Offset) {
	id := allocPointerID()
	d.Coordinator.Handle(el, gestures.PointerEvent{
		PointerID: id,
		Position:  start,
		Phase:     gestures.PhaseDown,
		Device:    gestures.DeviceMouse,
		Primary:   true,
		Time:      d.Clock.Now(),
	})
	for _, pos := range path {
		d.Clock.Advance(16 * time.Millisecond)
		d.Coordinator.Handle(el, gestures.PointerEvent{
			PointerID: id,
			Position:  pos,
			Phase:     gestures.PhaseMove,
			Device:    gestures.DeviceMouse,
			Primary:   true,
			Time:      d.Clock.Now(),
		})
	}
}

func (d *GestureDriver) send(el surface.Element, id int64, pos geometry.Offset, phase gestures.Phase) {
	d.Coordinator.Handle(el, gestures.PointerEvent{
		PointerID: id,
		Position:  pos,
		Phase:     phase,
		Device:    gestures.DeviceTouch,
		Time:      d.Clock.Now(),
	})
}
