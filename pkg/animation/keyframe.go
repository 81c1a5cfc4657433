package animation

import (
	"errors"
	"time"

	"github.com/go-kinetic/kinetic/pkg/surface"
)

// Playback configuration errors.
var (
	// ErrNoKeyframes is returned when a config declares neither keyframes
	// nor a To style.
	ErrNoKeyframes = errors.New("animation: config has no keyframes and no To style")
	// ErrBadOffsets is returned when keyframe offsets are outside [0, 1]
	// or not in non-decreasing order.
	ErrBadOffsets = errors.New("animation: keyframe offsets must be non-decreasing within [0, 1]")
	// ErrNegativeDuration is returned for a negative duration or delay.
	ErrNegativeDuration = errors.New("animation: duration and delay must be non-negative")
)

// FillMode controls what style an element holds after an animation ends.
type FillMode int

const (
	// FillForwards holds the last computed frame after the animation ends.
	FillForwards FillMode = iota
	// FillNone restores the style the element had when the animation was
	// created.
	FillNone
)

// Keyframe is one style sample within an animation track.
type Keyframe struct {
	// Offset is the keyframe's position within the track, in [0, 1].
	// When every offset is zero, keyframes are spaced evenly.
	Offset float64
	Style  surface.Style
}

// Config declares a primitive animation as data: either explicit From/To
// style deltas or a raw keyframe list, plus timing parameters. Configs are
// pure data; they own no runtime animation object.
type Config struct {
	// From is the starting style. When nil, the element's computed style at
	// creation time is used.
	From *surface.Style
	// To is the ending style. Ignored when Keyframes is non-empty.
	To *surface.Style
	// Keyframes is a raw keyframe list; takes precedence over From/To.
	Keyframes []Keyframe

	Duration time.Duration
	Delay    time.Duration
	// Curve transforms linear progress. Nil means linear.
	Curve Curve
	Fill  FillMode
}

// FinalStyle returns the style the animation ends at, if one is declared.
// This is the state applied directly when reduced motion is active.
func (c Config) FinalStyle() (surface.Style, bool) {
	if n := len(c.Keyframes); n > 0 {
		return c.Keyframes[n-1].Style, true
	}
	if c.To != nil {
		return *c.To, true
	}
	return surface.Style{}, false
}

// normalize expands a config into a validated keyframe track starting from
// the element's current style when no explicit From is given.
func (c Config) normalize(base surface.Style) ([]Keyframe, error) {
	if c.Duration < 0 || c.Delay < 0 {
		return nil, ErrNegativeDuration
	}

	if len(c.Keyframes) > 0 {
		frames := make([]Keyframe, len(c.Keyframes))
		copy(frames, c.Keyframes)
		spaceKeyframes(frames)
		for i, f := range frames {
			if f.Offset < 0 || f.Offset > 1 {
				return nil, ErrBadOffsets
			}
			if i > 0 && f.Offset < frames[i-1].Offset {
				return nil, ErrBadOffsets
			}
		}
		return frames, nil
	}

	if c.To == nil {
		return nil, ErrNoKeyframes
	}
	from := base
	if c.From != nil {
		from = *c.From
	}
	return []Keyframe{
		{Offset: 0, Style: from},
		{Offset: 1, Style: *c.To},
	}, nil
}

// spaceKeyframes distributes offsets evenly when none were specified.
func spaceKeyframes(frames []Keyframe) {
	if len(frames) < 2 {
		return
	}
	for _, f := range frames {
		if f.Offset != 0 {
			return
		}
	}
	last := float64(len(frames) - 1)
	for i := range frames {
		frames[i].Offset = float64(i) / last
	}
}

// sampleFrames interpolates the track at eased progress p in [0, 1].
func sampleFrames(frames []Keyframe, p float64) surface.Style {
	if p <= frames[0].Offset {
		return frames[0].Style
	}
	if p >= frames[len(frames)-1].Offset {
		return frames[len(frames)-1].Style
	}
	for i := 0; i < len(frames)-1; i++ {
		lo, hi := frames[i], frames[i+1]
		if p < lo.Offset || p > hi.Offset {
			continue
		}
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Style
		}
		return LerpStyle(lo.Style, hi.Style, (p-lo.Offset)/span)
	}
	return frames[len(frames)-1].Style
}
