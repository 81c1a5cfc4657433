// Package transition implements the FLIP (First-Last-Invert-Play) layout
// transition technique.
//
// A [Manager] captures geometric snapshots of elements before the host
// re-lays them out, then animates each element from its captured geometry
// to its new geometry using one of five strategies. Snapshots are consumed
// exactly once by the matching Transition call.
package transition

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/errors"
	"github.com/go-kinetic/kinetic/pkg/geometry"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// Config tunes one transition.
type Config struct {
	Strategy Strategy
	// Duration overrides the strategy default when positive.
	Duration time.Duration
	// Curve transforms progress; nil means ease-out.
	Curve animation.Curve
	// Stagger is the per-index start delay applied by TransitionGroup.
	Stagger time.Duration
}

// snapshot is a keyed capture of an element's geometry and the animated
// subset of its computed style.
type snapshot struct {
	element surface.Element
	bounds  geometry.Rect
	style   surface.Style
}

// Manager owns the snapshot map and the set of in-flight transitions for
// one usage scope. Construct one manager per independent scope; its state
// is never process-wide.
type Manager struct {
	surf      surface.Surface
	scheduler surface.FrameScheduler
	clock     animation.Clock
	prefs     surface.MotionPreference

	mu        sync.Mutex
	snapshots map[string]snapshot
	active    map[string]*animation.Animation
	reduced   bool
	unsub     func()
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Surface   surface.Surface
	Scheduler surface.FrameScheduler
	// Clock is the time source. Defaults to the system clock.
	Clock animation.Clock
	// Motion is the host's reduced-motion signal. Nil means motion is
	// never reduced.
	Motion surface.MotionPreference
}

// NewManager creates a manager and subscribes to the reduced-motion signal
// so the preference stays current for the manager's lifetime.
func NewManager(opts ManagerOptions) *Manager {
	clock := opts.Clock
	if clock == nil {
		clock = animation.SystemClock()
	}
	m := &Manager{
		surf:      opts.Surface,
		scheduler: opts.Scheduler,
		clock:     clock,
		prefs:     opts.Motion,
		snapshots: make(map[string]snapshot),
		active:    make(map[string]*animation.Animation),
	}
	if opts.Motion != nil {
		m.reduced = opts.Motion.ReducedMotion()
		m.unsub = opts.Motion.Subscribe(func(reduced bool) {
			m.mu.Lock()
			m.reduced = reduced
			m.mu.Unlock()
		})
	}
	return m
}

// Close unsubscribes from the motion preference and clears all snapshots.
// In-flight transitions are left to finish.
func (m *Manager) Close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	m.Clear()
}

// Capture resolves the selector and stores the first matching element's
// rectangle and animated style subset under key, overwriting any prior
// uncommitted snapshot. If a transition for key is still in flight it is
// canceled first, so capture-during-flight is deterministic: the fresh
// snapshot always wins. A selector that matches nothing is skipped.
func (m *Manager) Capture(key, selector string) {
	if m.surf == nil {
		return
	}
	els := m.surf.Resolve(selector)
	if len(els) == 0 {
		return
	}
	m.captureElement(key, els[0])
}

// CaptureGroup captures every element matching the selector, storing each
// under "groupKey-index" in document order.
func (m *Manager) CaptureGroup(groupKey, selector string) {
	if m.surf == nil {
		return
	}
	for i, el := range m.surf.Resolve(selector) {
		m.captureElement(fmt.Sprintf("%s-%d", groupKey, i), el)
	}
}

func (m *Manager) captureElement(key string, el surface.Element) {
	m.mu.Lock()
	running := m.active[key]
	delete(m.active, key)
	m.mu.Unlock()
	if running != nil {
		running.Cancel()
	}

	m.mu.Lock()
	m.snapshots[key] = snapshot{
		element: el,
		bounds:  el.Bounds(),
		style:   el.ComputedStyle(),
	}
	m.mu.Unlock()
}

// Transition consumes the snapshot for key and animates the element from
// its captured geometry to its current geometry. With no snapshot for key
// it returns nil immediately. When reduced motion is active the snapshot is
// discarded and the element is left at its already-current position.
func (m *Manager) Transition(key string, cfg Config) *animation.Animation {
	return m.transitionDelayed(key, cfg, 0)
}

func (m *Manager) transitionDelayed(key string, cfg Config, delay time.Duration) *animation.Animation {
	m.mu.Lock()
	snap, ok := m.snapshots[key]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	// Consumed exactly once, reduced motion included.
	delete(m.snapshots, key)
	reduced := m.reduced
	m.mu.Unlock()

	if reduced {
		return nil
	}

	current := snap.element.Bounds()
	d := computeDeltas(snap.bounds, current)

	duration := cfg.Duration
	if duration <= 0 {
		duration = cfg.Strategy.defaultDuration()
	}
	curve := cfg.Curve
	if curve == nil {
		curve = animation.EaseOut
	}

	anim, err := animation.New(snap.element, animation.Config{
		Keyframes: cfg.Strategy.keyframes(d, snap.element.ComputedStyle()),
		Duration:  duration,
		Delay:     delay,
		Curve:     curve,
	}, animation.WithScheduler(m.scheduler), animation.WithClock(m.clock))
	if err != nil {
		errors.Report(&errors.MotionError{
			Op:   "transition.Transition",
			Kind: errors.KindPlayback,
			Err:  err,
			Key:  key,
		})
		return nil
	}

	m.mu.Lock()
	m.active[key] = anim
	m.mu.Unlock()
	anim.OnFinish(func() {
		m.mu.Lock()
		if m.active[key] == anim {
			delete(m.active, key)
		}
		m.mu.Unlock()
	})

	anim.Play()
	return anim
}

// Group is the set of animations started by one TransitionGroup call.
type Group struct {
	anims []*animation.Animation
}

// Animations returns the group members in index order.
func (g *Group) Animations() []*animation.Animation {
	return g.anims
}

// Wait blocks until every member transition has finished or ctx is done.
// Members skipped by reduced motion count as finished.
func (g *Group) Wait(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, anim := range g.anims {
		anim := anim
		eg.Go(func() error {
			select {
			case <-anim.Done():
				return anim.Err()
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return eg.Wait()
}

// TransitionGroup runs Transition for every snapshot whose key starts with
// groupKey, staggering start times by index times cfg.Stagger.
func (m *Manager) TransitionGroup(groupKey string, cfg Config) *Group {
	m.mu.Lock()
	keys := make([]string, 0)
	prefix := groupKey + "-"
	for key := range m.snapshots {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	m.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		return groupIndex(keys[i], prefix) < groupIndex(keys[j], prefix)
	})

	g := &Group{}
	for i, key := range keys {
		if anim := m.transitionDelayed(key, cfg, time.Duration(i)*cfg.Stagger); anim != nil {
			g.anims = append(g.anims, anim)
		}
	}
	return g
}

// Clear discards all uncommitted snapshots.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = make(map[string]snapshot)
}

// IsTransitioning reports whether a transition for key is currently active.
func (m *Manager) IsTransitioning(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[key]
	return ok
}

// computeDeltas derives the FLIP inputs: translation as old minus new,
// scale as old over new. Zero-sized current rectangles scale by 1 so a
// degenerate layout never divides by zero.
func computeDeltas(old, current geometry.Rect) deltas {
	d := deltas{
		dx: old.Left - current.Left,
		dy: old.Top - current.Top,
		sx: 1,
		sy: 1,
	}
	if w := current.Width(); w != 0 {
		d.sx = old.Width() / w
	}
	if h := current.Height(); h != 0 {
		d.sy = old.Height() / h
	}
	return d
}

// groupIndex parses the numeric suffix CaptureGroup appended to a key.
func groupIndex(key, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
	if err != nil {
		return 0
	}
	return n
}
