// Package sequence is the highest-level façade of the motion engine:
// callers register named sequences of declarative animation steps, then
// play or stop a sequence by name. The orchestrator expands steps into
// primitive animations, honors the host's reduced-motion policy, and
// exposes a per-sequence transport [Controller].
package sequence

import (
	"time"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// Step is one declarative animation within a sequence: a target plus an
// animation config and optional timing overrides. Steps are pure data;
// they own no runtime animation object.
type Step struct {
	// Target is the element or selector the step animates.
	Target surface.Target
	// Animation declares the style track (from/to deltas or keyframes).
	Animation animation.Config
	// Delay postpones the step relative to sequence start; the stagger
	// offset for the step's index is added on top.
	Delay time.Duration
	// Duration overrides Animation.Duration when positive.
	Duration time.Duration
	// Curve overrides Animation.Curve when non-nil.
	Curve animation.Curve
}

// Options tunes how a sequence plays.
type Options struct {
	// Stagger spreads step start times to create a ripple effect.
	Stagger Stagger
	// Overlap pulls each successive step's start earlier, shrinking the
	// stagger gap by this much per index (never below zero delay).
	Overlap time.Duration
	// Reverse expands steps in reverse order.
	Reverse bool
	// Loop replays the sequence when every step finishes.
	Loop bool
	// AutoPlay marks the sequence as essential motion: it plays even when
	// the host prefers reduced motion.
	AutoPlay bool
}

// Sequence is a named, ordered list of steps. Sequences are immutable once
// registered; re-registering the same id replaces the definition without
// affecting an already-playing controller.
type Sequence struct {
	// ID is the registry key. Register assigns one if empty.
	ID string
	// Name is the human-readable label.
	Name string
	// Steps is the ordered step list.
	Steps []Step
	// Options tune playback for the whole sequence.
	Options Options
}

// stepDelay computes a step's effective start delay from its own delay,
// the stagger distribution, and the overlap option.
func stepDelay(step Step, index, count int, opts Options) time.Duration {
	d := step.Delay + opts.Stagger.Delay(index, count) - time.Duration(index)*opts.Overlap
	if d < 0 {
		return 0
	}
	return d
}
