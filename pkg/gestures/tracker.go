package gestures

import (
	"math"
	"time"

	"github.com/go-kinetic/kinetic/pkg/geometry"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// tracker is the per-attached-element gesture state machine. It holds the
// last-known origin, start timestamp, pinch baseline, and last-tap timestamp
// for one element. One tracker per attached element; freed on detach.
type tracker struct {
	element surface.Element

	points     map[int64]geometry.Offset
	origin     geometry.Offset
	start      time.Time
	active     bool
	pinched    bool
	pinchBase  float64
	lastTapEnd time.Time
}

func newTracker(el surface.Element) *tracker {
	return &tracker{
		element: el,
		points:  make(map[int64]geometry.Offset),
	}
}

// begin opens an interaction session for a new contact point.
func (tr *tracker) begin(ev PointerEvent, now time.Time) {
	tr.points[ev.PointerID] = ev.Position
	switch len(tr.points) {
	case 1:
		tr.origin = ev.Position
		tr.start = now
		tr.active = true
		tr.pinched = false
		tr.pinchBase = 0
	case 2:
		// Exactly two contacts: record the baseline inter-point distance
		// and enter pinch mode.
		tr.pinchBase = tr.pointSpread()
		tr.pinched = true
	}
}

// move updates a contact point and reports the pinch scale when two points
// are active. ok is false when no pinch sample should be emitted.
func (tr *tracker) move(ev PointerEvent) (scale float64, ok bool) {
	if _, tracked := tr.points[ev.PointerID]; tracked {
		tr.points[ev.PointerID] = ev.Position
	}
	if len(tr.points) == 2 && tr.pinchBase > 0 {
		return tr.pointSpread() / tr.pinchBase, true
	}
	return 0, false
}

// end removes a contact point. done is true when the session ended with a
// single-point release that should be classified.
func (tr *tracker) end(ev PointerEvent) (done bool) {
	delete(tr.points, ev.PointerID)
	if len(tr.points) > 0 || !tr.active {
		return false
	}
	tr.active = false
	// A session that entered pinch mode emits no terminal gesture.
	if tr.pinched {
		tr.pinched = false
		tr.pinchBase = 0
		return false
	}
	return true
}

// reset abandons the current session without classification.
func (tr *tracker) reset() {
	tr.points = make(map[int64]geometry.Offset)
	tr.active = false
	tr.pinched = false
	tr.pinchBase = 0
}

// pointSpread returns the distance between the two active contact points.
func (tr *tracker) pointSpread() float64 {
	pts := make([]geometry.Offset, 0, 2)
	for _, p := range tr.points {
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return 0
	}
	return pts[0].Distance(pts[1])
}

// dominantDirection picks the direction of the axis with greater magnitude.
func dominantDirection(dx, dy float64) Direction {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return DirectionRight
		}
		return DirectionLeft
	}
	if dy >= 0 {
		return DirectionDown
	}
	return DirectionUp
}
