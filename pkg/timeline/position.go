package timeline

import (
	"fmt"
	"time"
)

// PositionKind enumerates the relative position tokens an entry can be
// added with. Tokens only ever look backward to the immediately preceding
// entry, never forward.
type PositionKind int

const (
	// PositionAfter starts when the previous entry ends (token ">").
	// This is the default.
	PositionAfter PositionKind = iota
	// PositionWith starts at the same time the previous entry started
	// (token "<").
	PositionWith
	// PositionStaggerAfter starts at previous-end plus index times the
	// timeline's stagger (token "+=").
	PositionStaggerAfter
	// PositionOverlap starts at max(0, previous-end - stagger), overlapping
	// the tail of the previous entry (token "-=").
	PositionOverlap
	// PositionAt starts at an absolute offset in the timeline's clock.
	PositionAt
)

// Position places a new entry relative to the previous one, or at an
// absolute offset. The zero value is PositionAfter.
type Position struct {
	Kind PositionKind
	// Offset is the absolute start time; used only with PositionAt.
	Offset time.Duration
}

// Convenience positions for the four relative tokens.
var (
	After        = Position{Kind: PositionAfter}
	With         = Position{Kind: PositionWith}
	StaggerAfter = Position{Kind: PositionStaggerAfter}
	Overlap      = Position{Kind: PositionOverlap}
)

// At returns an absolute position at offset d.
func At(d time.Duration) Position {
	return Position{Kind: PositionAt, Offset: d}
}

// ParsePosition resolves a data-driven token into a Position. An empty
// token means After.
func ParsePosition(token string) (Position, error) {
	switch token {
	case "", ">":
		return After, nil
	case "<":
		return With, nil
	case "+=":
		return StaggerAfter, nil
	case "-=":
		return Overlap, nil
	}
	if d, err := time.ParseDuration(token); err == nil && d >= 0 {
		return At(d), nil
	}
	return Position{}, fmt.Errorf("timeline: unknown position token %q", token)
}

// resolve computes the absolute start offset for an entry added with this
// position. prevStart/prevEnd describe the previous entry (both zero when
// the timeline is empty), index is the 0-based element index within the
// Add call, and stagger is the timeline's configured stagger.
func (p Position) resolve(prevStart, prevEnd time.Duration, index int, stagger time.Duration) time.Duration {
	switch p.Kind {
	case PositionWith:
		return prevStart
	case PositionStaggerAfter:
		return prevEnd + time.Duration(index)*stagger
	case PositionOverlap:
		start := prevEnd - stagger
		if start < 0 {
			start = 0
		}
		return start
	case PositionAt:
		return p.Offset
	default:
		return prevEnd
	}
}
