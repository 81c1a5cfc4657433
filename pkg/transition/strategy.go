package transition

import (
	"time"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// Strategy is the closed set of layout-transition techniques. Dispatch is a
// single exhaustive switch so a new strategy is a compile-time exercise.
type Strategy int

const (
	// StrategyMorph inverts the element to its old geometry via transform
	// and animates back to identity (the FLIP technique).
	StrategyMorph Strategy = iota
	// StrategyFlip is an alias spelling of StrategyMorph with its own
	// default duration.
	StrategyFlip
	// StrategyFade animates opacity 0 to 1, ignoring geometry entirely.
	StrategyFade
	// StrategySlide animates translate(dx, dy) to none.
	StrategySlide
	// StrategyScale animates scale(sx, sy) to scale(1, 1).
	StrategyScale
)

func (s Strategy) String() string {
	switch s {
	case StrategyMorph:
		return "morph"
	case StrategyFlip:
		return "flip"
	case StrategyFade:
		return "fade"
	case StrategySlide:
		return "slide"
	case StrategyScale:
		return "scale"
	default:
		return "unknown"
	}
}

// defaultDuration returns the per-strategy duration used when the caller
// does not override it.
func (s Strategy) defaultDuration() time.Duration {
	switch s {
	case StrategyMorph, StrategyFlip:
		return 350 * time.Millisecond
	case StrategyFade:
		return 200 * time.Millisecond
	case StrategySlide:
		return 300 * time.Millisecond
	case StrategyScale:
		return 250 * time.Millisecond
	default:
		return 300 * time.Millisecond
	}
}

// deltas are the geometric differences between a snapshot and the
// element's current rectangle: translation as old minus new, scale as old
// over new. A scale ratio of exactly 1 means no size change.
type deltas struct {
	dx, dy float64
	sx, sy float64
}

// keyframes builds the two-frame track for a strategy from the computed
// deltas. The first frame inverts the element to its old geometry; because
// the host has already laid the element out at its new geometry, animating
// the inverse transform to identity produces a transition that never
// re-triggers layout.
func (s Strategy) keyframes(d deltas, current surface.Style) []animation.Keyframe {
	identity := surface.Style{Opacity: current.Opacity, Transform: surface.Identity()}

	var from surface.Style
	switch s {
	case StrategyMorph, StrategyFlip:
		from = surface.Style{
			Opacity: current.Opacity,
			Transform: surface.Transform{
				TranslateX: d.dx,
				TranslateY: d.dy,
				ScaleX:     d.sx,
				ScaleY:     d.sy,
			},
		}
	case StrategyFade:
		from = surface.Style{Opacity: 0, Transform: surface.Identity()}
		identity.Opacity = 1
	case StrategySlide:
		from = surface.Style{
			Opacity:   current.Opacity,
			Transform: surface.Transform{TranslateX: d.dx, TranslateY: d.dy, ScaleX: 1, ScaleY: 1},
		}
	case StrategyScale:
		from = surface.Style{
			Opacity:   current.Opacity,
			Transform: surface.Transform{ScaleX: d.sx, ScaleY: d.sy},
		}
	default:
		from = identity
	}

	return []animation.Keyframe{
		{Offset: 0, Style: from},
		{Offset: 1, Style: identity},
	}
}
