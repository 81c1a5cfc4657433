// Package gestures classifies raw pointer and touch event streams into
// discrete gesture events: tap, double-tap, swipe, drag, and pinch.
//
// A [Coordinator] tracks raw position samples per attached element and
// emits classified [Event] values to subscribers. Raw samples never escape
// the per-element tracker; consumers only ever see classified events. The
// coordinator is independent of the rest of the engine and feeds
// application logic directly.
package gestures

import (
	"time"

	"github.com/go-kinetic/kinetic/pkg/geometry"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// Type identifies a classified gesture.
type Type int

const (
	// TypeTap is a short press with little movement.
	TypeTap Type = iota
	// TypeDoubleTap is a second tap landing shortly after a first.
	TypeDoubleTap
	// TypeSwipe is a fast directional flick.
	TypeSwipe
	// TypeDrag is continuous movement with the primary pointer held.
	TypeDrag
	// TypePinch is a two-point scale gesture.
	TypePinch
)

func (t Type) String() string {
	switch t {
	case TypeTap:
		return "tap"
	case TypeDoubleTap:
		return "doubletap"
	case TypeSwipe:
		return "swipe"
	case TypeDrag:
		return "drag"
	case TypePinch:
		return "pinch"
	default:
		return "unknown"
	}
}

// Direction is the dominant axis direction of a swipe or drag.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// Axis restricts which swipe directions a coordinator emits.
type Axis int

const (
	// AxisBoth permits horizontal and vertical swipes.
	AxisBoth Axis = iota
	// AxisHorizontal permits only left/right swipes.
	AxisHorizontal
	// AxisVertical permits only up/down swipes.
	AxisVertical
)

// permits reports whether the axis allows the given direction.
func (a Axis) permits(d Direction) bool {
	switch a {
	case AxisHorizontal:
		return d == DirectionLeft || d == DirectionRight
	case AxisVertical:
		return d == DirectionUp || d == DirectionDown
	default:
		return true
	}
}

// Event is a classified, immutable gesture result. It is the only object
// gesture consumers see; raw samples stay inside the coordinator.
type Event struct {
	Type      Type
	Direction Direction
	// Distance is the total Euclidean travel in pixels, where applicable.
	Distance float64
	// Velocity is Distance divided by elapsed time, in pixels per
	// millisecond, where applicable.
	Velocity float64
	// Scale is the pinch ratio of current inter-point distance to the
	// baseline distance recorded when the second touch landed.
	Scale  float64
	Target surface.Element
}

// Phase is the lifecycle stage of a raw input sample.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

// Device distinguishes touch input (pinch-capable) from desktop pointer
// input (drag-capable).
type Device int

const (
	DeviceTouch Device = iota
	DeviceMouse
)

// PointerEvent is one raw input sample delivered by the host.
type PointerEvent struct {
	// PointerID distinguishes concurrent touch points.
	PointerID int64
	Position  geometry.Offset
	Phase     Phase
	Device    Device
	// Primary reports whether the primary button is held (mouse only).
	Primary bool
	// Time is the sample timestamp. The zero value means "now" per the
	// coordinator's clock.
	Time time.Time
}
