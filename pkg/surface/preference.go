package surface

import "sync"

// MotionPreference is the host's live reduced-motion accessibility signal.
//
// Subscribe registers a change callback and returns a cancel function, so
// consumers can keep a cached copy of the preference current for its whole
// lifetime. When the preference is active, animations jump directly to
// their end state.
type MotionPreference interface {
	ReducedMotion() bool
	Subscribe(fn func(reduced bool)) (cancel func())
}

// StaticPreference is a MotionPreference that never changes.
type StaticPreference bool

// ReducedMotion returns the fixed preference value.
func (p StaticPreference) ReducedMotion() bool { return bool(p) }

// Subscribe is a no-op for a static preference.
func (p StaticPreference) Subscribe(func(bool)) func() { return func() {} }

// SettablePreference is a MotionPreference whose value can be changed at
// runtime, notifying subscribers on every change. Hosts typically wire this
// to their platform accessibility channel.
type SettablePreference struct {
	mu        sync.Mutex
	reduced   bool
	listeners map[int]func(bool)
	nextID    int
}

// NewSettablePreference returns a preference starting at the given value.
func NewSettablePreference(reduced bool) *SettablePreference {
	return &SettablePreference{
		reduced:   reduced,
		listeners: make(map[int]func(bool)),
	}
}

// ReducedMotion returns the current preference value.
func (p *SettablePreference) ReducedMotion() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reduced
}

// Set updates the preference and notifies subscribers if it changed.
func (p *SettablePreference) Set(reduced bool) {
	p.mu.Lock()
	if p.reduced == reduced {
		p.mu.Unlock()
		return
	}
	p.reduced = reduced
	listeners := make([]func(bool), 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(reduced)
	}
}

// Subscribe adds a change callback. Returns an unsubscribe function.
func (p *SettablePreference) Subscribe(fn func(bool)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}
