// Package surface defines the boundary between the motion engine and the
// host rendering environment.
//
// The engine never performs layout or painting itself. It consumes from the
// host: a way to resolve a selector to elements, the ability to read an
// element's current geometry and computed style, a frame-callback scheduling
// primitive, and a live reduced-motion preference signal. Hosts implement
// the interfaces in this package; everything else in the module builds on
// top of them.
package surface

import (
	"time"

	"github.com/go-kinetic/kinetic/pkg/geometry"
)

// Transform describes the affine transform subset animated by the engine.
// The zero value is not the identity transform; use Identity.
type Transform struct {
	TranslateX float64
	TranslateY float64
	ScaleX     float64
	ScaleY     float64
}

// Identity returns the no-op transform.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// IsIdentity returns true if the transform leaves geometry unchanged.
func (t Transform) IsIdentity() bool {
	return t.TranslateX == 0 && t.TranslateY == 0 && t.ScaleX == 1 && t.ScaleY == 1
}

// Style is the subset of computed style the engine reads and writes.
type Style struct {
	Opacity   float64
	Transform Transform
}

// DefaultStyle returns a fully opaque, untransformed style.
func DefaultStyle() Style {
	return Style{Opacity: 1, Transform: Identity()}
}

// Element is a host-provided handle to one on-surface element.
//
// Bounds and ComputedStyle read the element's current state as the host laid
// it out; ApplyStyle pushes an animated style for the host to composite. The
// engine holds elements only for the lifetime of the animations targeting
// them.
type Element interface {
	ID() string
	Bounds() geometry.Rect
	ComputedStyle() Style
	ApplyStyle(Style)
}

// Surface resolves selectors to elements in document order.
// A selector that matches nothing resolves to an empty slice, never an error.
type Surface interface {
	Resolve(selector string) []Element
}

// Target identifies the element(s) an animation applies to: either a direct
// element handle or a selector resolved against the surface at play time.
type Target struct {
	Element  Element
	Selector string
}

// TargetOf returns a target for a direct element handle.
func TargetOf(el Element) Target {
	return Target{Element: el}
}

// Select returns a target that resolves a selector at play time.
func Select(selector string) Target {
	return Target{Selector: selector}
}

// Resolve returns the elements this target currently refers to. A direct
// handle takes precedence over the selector. A nil surface or unmatched
// selector yields an empty slice.
func (t Target) Resolve(s Surface) []Element {
	if t.Element != nil {
		return []Element{t.Element}
	}
	if s == nil || t.Selector == "" {
		return nil
	}
	return s.Resolve(t.Selector)
}

// FrameScheduler schedules a callback for the next rendering frame.
//
// RequestFrame returns a cancel function that prevents the callback from
// firing if the frame has not run yet. Callbacks receive the frame time and
// may request another frame from within the callback.
type FrameScheduler interface {
	RequestFrame(callback func(now time.Time)) (cancel func())
}
