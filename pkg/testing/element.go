package testing

import (
	"sync"

	"github.com/go-kinetic/kinetic/pkg/geometry"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// FakeElement is a surface.Element that records every applied style.
type FakeElement struct {
	mu      sync.Mutex
	id      string
	bounds  geometry.Rect
	style   surface.Style
	history []surface.Style
}

// NewFakeElement returns an element with the given id and bounds, starting
// at the default (opaque, untransformed) style.
func NewFakeElement(id string, bounds geometry.Rect) *FakeElement {
	return &FakeElement{
		id:     id,
		bounds: bounds,
		style:  surface.DefaultStyle(),
	}
}

// ID returns the element id.
func (e *FakeElement) ID() string { return e.id }

// Bounds returns the element's current rectangle.
func (e *FakeElement) Bounds() geometry.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds
}

// SetBounds simulates the host re-laying-out the element.
func (e *FakeElement) SetBounds(r geometry.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bounds = r
}

// ComputedStyle returns the last applied style.
func (e *FakeElement) ComputedStyle() surface.Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style
}

// ApplyStyle records and applies a style.
func (e *FakeElement) ApplyStyle(s surface.Style) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.style = s
	e.history = append(e.history, s)
}

// StyleHistory returns every style applied so far, oldest first.
func (e *FakeElement) StyleHistory() []surface.Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]surface.Style, len(e.history))
	copy(out, e.history)
	return out
}

// FakeSurface resolves selectors against a registered element set.
type FakeSurface struct {
	mu       sync.Mutex
	elements map[string][]surface.Element
}

// NewFakeSurface returns an empty surface.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{elements: make(map[string][]surface.Element)}
}

// Add registers elements under a selector, preserving document order.
func (s *FakeSurface) Add(selector string, els ...surface.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements[selector] = append(s.elements[selector], els...)
}

// Remove drops a selector, simulating unmounted elements.
func (s *FakeSurface) Remove(selector string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.elements, selector)
}

// Resolve returns the elements registered under selector, or nil.
func (s *FakeSurface) Resolve(selector string) []surface.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	els := s.elements[selector]
	out := make([]surface.Element, len(els))
	copy(out, els)
	return out
}
