package sequence

import (
	"math"
	"time"

	"github.com/go-kinetic/kinetic/pkg/animation"
)

// StaggerOrigin selects where a staggered ripple starts.
type StaggerOrigin int

const (
	// OriginStart delays each step by its index: the first step moves
	// first.
	OriginStart StaggerOrigin = iota
	// OriginEnd negates index order: the last step moves first.
	OriginEnd
	// OriginCenter measures each index's distance from the sequence
	// midpoint so outer elements animate later in a ripple-out pattern.
	OriginCenter
	// OriginEdges measures distance from the nearest end so elements at
	// either edge move first and the ripple meets in the middle.
	OriginEdges
)

// Stagger spreads a batch of step start times. Set Each for a flat
// per-index scalar, or Amount plus From/Ease for a structured distribution.
// Each takes precedence when both are set.
type Stagger struct {
	// Each is the flat per-index delay: delay(i) = i * Each.
	Each time.Duration
	// Amount is the per-position gap for structured staggers.
	Amount time.Duration
	// From selects the ripple origin.
	From StaggerOrigin
	// Ease reshapes the distribution across positions; nil means linear.
	Ease animation.Curve
}

// IsZero reports whether the stagger contributes no delay.
func (s Stagger) IsZero() bool {
	return s.Each == 0 && s.Amount == 0
}

// Delay returns the stagger delay for the step at index out of count.
// For OriginStart the delays are monotonically non-decreasing in index;
// for OriginCenter they are symmetric around the midpoint.
func (s Stagger) Delay(index, count int) time.Duration {
	if count <= 1 || index < 0 || index >= count {
		return 0
	}
	if s.Each != 0 {
		return time.Duration(index) * s.Each
	}
	if s.Amount == 0 {
		return 0
	}

	pos := s.position(index, count)
	maxPos := s.maxPosition(count)
	if maxPos <= 0 {
		return 0
	}
	norm := pos / maxPos
	if s.Ease != nil {
		norm = s.Ease(norm)
	}
	return time.Duration(norm * maxPos * float64(s.Amount))
}

// position maps an index to its distance from the ripple origin.
func (s Stagger) position(index, count int) float64 {
	i := float64(index)
	last := float64(count - 1)
	mid := last / 2
	switch s.From {
	case OriginEnd:
		return last - i
	case OriginCenter:
		return math.Abs(i - mid)
	case OriginEdges:
		return math.Min(i, last-i)
	default:
		return i
	}
}

// maxPosition is the largest position any index can take, used to
// normalize the distribution for easing.
func (s Stagger) maxPosition(count int) float64 {
	last := float64(count - 1)
	switch s.From {
	case OriginCenter, OriginEdges:
		return last / 2
	default:
		return last
	}
}
