package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/geometry"
	"github.com/go-kinetic/kinetic/pkg/surface"
	motiontest "github.com/go-kinetic/kinetic/pkg/testing"
)

func fade(d time.Duration) animation.Config {
	return animation.Config{
		From:     &surface.Style{Opacity: 0, Transform: surface.Identity()},
		To:       &surface.Style{Opacity: 1, Transform: surface.Identity()},
		Duration: d,
	}
}

type fixture struct {
	tl *Timeline
	h  *motiontest.Harness
	sf *motiontest.FakeSurface
}

func newFixture(t *testing.T, stagger time.Duration) *fixture {
	t.Helper()
	h := motiontest.NewHarness()
	sf := motiontest.NewFakeSurface()
	tl := New(Options{
		Surface:   sf,
		Scheduler: h.Scheduler,
		Clock:     h.Clock,
		Stagger:   stagger,
	})
	return &fixture{tl: tl, h: h, sf: sf}
}

func (f *fixture) addElement(id string) *motiontest.FakeElement {
	el := motiontest.NewFakeElement(id, geometry.RectFromLTWH(0, 0, 50, 50))
	f.sf.Add("#"+id, el)
	return el
}

func TestParsePosition(t *testing.T) {
	cases := []struct {
		token string
		want  Position
	}{
		{"", After},
		{">", After},
		{"<", With},
		{"+=", StaggerAfter},
		{"-=", Overlap},
		{"150ms", At(150 * time.Millisecond)},
	}
	for _, tc := range cases {
		got, err := ParsePosition(tc.token)
		require.NoError(t, err, "token %q", tc.token)
		assert.Equal(t, tc.want, got, "token %q", tc.token)
	}

	_, err := ParsePosition("sideways")
	assert.Error(t, err)
	_, err = ParsePosition("-20ms")
	assert.Error(t, err)
}

func TestPositionResolution(t *testing.T) {
	// Previous entry runs 100ms..300ms; stagger is 100ms.
	prevStart := 100 * time.Millisecond
	prevEnd := 300 * time.Millisecond
	stagger := 100 * time.Millisecond

	cases := []struct {
		name  string
		pos   Position
		index int
		want  time.Duration
	}{
		{"after starts at previous end", After, 0, 300 * time.Millisecond},
		{"with starts at previous start", With, 0, 100 * time.Millisecond},
		{"stagger first element", StaggerAfter, 0, 300 * time.Millisecond},
		{"stagger third element", StaggerAfter, 2, 500 * time.Millisecond},
		{"overlap pulls into previous tail", Overlap, 0, 200 * time.Millisecond},
		{"absolute offset", At(40 * time.Millisecond), 0, 40 * time.Millisecond},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.pos.resolve(prevStart, prevEnd, tc.index, stagger)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOverlapClampsToZero(t *testing.T) {
	// Previous entry ends before the stagger window; the overlap cannot
	// start before the timeline origin.
	got := Overlap.resolve(0, 50*time.Millisecond, 0, 200*time.Millisecond)
	assert.Equal(t, time.Duration(0), got)
}

func TestDurationIsMaxEndTime(t *testing.T) {
	f := newFixture(t, 0)
	f.addElement("a")
	f.addElement("b")

	f.tl.Add(surface.Select("#a"), fade(300*time.Millisecond), After)
	// A short entry overlapping the first must not shrink the total.
	f.tl.Add(surface.Select("#b"), fade(50*time.Millisecond), With)

	assert.Equal(t, 2, f.tl.Len())
	assert.Equal(t, 300*time.Millisecond, f.tl.Duration())
}

func TestAddSkipsUnresolvedTargets(t *testing.T) {
	f := newFixture(t, 0)
	f.tl.Add(surface.Select("#missing"), fade(100*time.Millisecond), After)
	assert.Equal(t, 0, f.tl.Len())
	assert.Equal(t, time.Duration(0), f.tl.Duration())
}

func TestAddSkipsInvalidConfig(t *testing.T) {
	f := newFixture(t, 0)
	f.addElement("a")
	f.tl.Add(surface.Select("#a"), animation.Config{Duration: time.Second}, After)
	assert.Equal(t, 0, f.tl.Len())
}

func TestMultiTargetStagger(t *testing.T) {
	f := newFixture(t, 100*time.Millisecond)
	a := motiontest.NewFakeElement("a", geometry.RectFromLTWH(0, 0, 10, 10))
	b := motiontest.NewFakeElement("b", geometry.RectFromLTWH(0, 0, 10, 10))
	c := motiontest.NewFakeElement("c", geometry.RectFromLTWH(0, 0, 10, 10))
	f.sf.Add(".item", a, b, c)

	f.tl.Add(surface.Select(".item"), fade(100*time.Millisecond), StaggerAfter)

	// Entries start at 0, 100ms, 200ms; the last ends at 300ms.
	assert.Equal(t, 3, f.tl.Len())
	assert.Equal(t, 300*time.Millisecond, f.tl.Duration())

	f.tl.Seek(150 * time.Millisecond)
	assert.Equal(t, 1.0, a.ComputedStyle().Opacity, "first entry finished")
	assert.Equal(t, 0.5, b.ComputedStyle().Opacity, "second entry halfway")
	assert.Equal(t, 0.0, c.ComputedStyle().Opacity, "third entry not started")
}

func TestPlayAdvancesAndCompletes(t *testing.T) {
	f := newFixture(t, 0)
	el := f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(200*time.Millisecond), After)

	completed := 0
	f.tl.OnComplete(func() { completed++ })

	f.tl.Play()
	require.True(t, f.tl.IsPlaying())

	f.h.Advance(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, f.tl.CurrentTime())
	assert.Equal(t, 0.5, el.ComputedStyle().Opacity)
	assert.Equal(t, 0.5, f.tl.Progress())

	f.h.Advance(150 * time.Millisecond)
	assert.Equal(t, 200*time.Millisecond, f.tl.CurrentTime())
	assert.Equal(t, 1.0, el.ComputedStyle().Opacity)
	assert.False(t, f.tl.IsPlaying())
	assert.Equal(t, 1, completed)

	// No further frames are scheduled once the clock reaches the end.
	assert.Zero(t, f.h.Scheduler.Pending())
}

func TestPlayAtEndIsNoOp(t *testing.T) {
	f := newFixture(t, 0)
	f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(100*time.Millisecond), After)

	completed := 0
	f.tl.OnComplete(func() { completed++ })

	f.tl.Play()
	f.h.Advance(150 * time.Millisecond)
	require.Equal(t, 1, completed)

	// A finished timeline stays put: Play schedules nothing and the
	// completion listeners do not fire again.
	f.tl.Play()
	assert.False(t, f.tl.IsPlaying())
	assert.Zero(t, f.h.Scheduler.Pending())
	f.h.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, completed)

	// Restart is the way back in.
	f.tl.Restart()
	assert.True(t, f.tl.IsPlaying())
	f.h.Advance(150 * time.Millisecond)
	assert.Equal(t, 2, completed)
}

func TestPauseAndResumeSeamless(t *testing.T) {
	f := newFixture(t, 0)
	f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(200*time.Millisecond), After)

	f.tl.Play()
	f.h.Advance(80 * time.Millisecond)
	f.tl.Pause()
	assert.False(t, f.tl.IsPlaying())
	assert.Zero(t, f.h.Scheduler.Pending())

	// Wall time passing while paused must not move the master clock.
	f.h.Clock.Advance(time.Second)
	f.tl.Play()
	f.h.Advance(20 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, f.tl.CurrentTime())
}

func TestSeekIdempotent(t *testing.T) {
	f := newFixture(t, 0)
	el := f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(200*time.Millisecond), After)

	f.tl.Seek(60 * time.Millisecond)
	first := el.ComputedStyle()
	f.tl.Seek(60 * time.Millisecond)
	assert.Equal(t, first, el.ComputedStyle())
	assert.Equal(t, 60*time.Millisecond, f.tl.CurrentTime())
}

func TestSeekClamps(t *testing.T) {
	f := newFixture(t, 0)
	f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(200*time.Millisecond), After)

	f.tl.Seek(-time.Second)
	assert.Equal(t, time.Duration(0), f.tl.CurrentTime())
	f.tl.Seek(time.Hour)
	assert.Equal(t, 200*time.Millisecond, f.tl.CurrentTime())
}

func TestReversePlaysBackward(t *testing.T) {
	f := newFixture(t, 0)
	el := f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(200*time.Millisecond), After)

	f.tl.Seek(200 * time.Millisecond)
	f.tl.Reverse()
	require.True(t, f.tl.IsPlaying())

	f.h.Advance(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, f.tl.CurrentTime())

	f.h.Advance(150 * time.Millisecond)
	assert.Equal(t, time.Duration(0), f.tl.CurrentTime())
	assert.False(t, f.tl.IsPlaying())
	assert.Equal(t, 0.0, el.ComputedStyle().Opacity)
}

func TestRestartFromAnyPosition(t *testing.T) {
	f := newFixture(t, 0)
	el := f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(200*time.Millisecond), After)

	f.tl.Play()
	f.h.Advance(250 * time.Millisecond)
	require.False(t, f.tl.IsPlaying())

	f.tl.Restart()
	assert.True(t, f.tl.IsPlaying())
	assert.Equal(t, time.Duration(0), f.tl.CurrentTime())
	assert.Equal(t, 0.0, el.ComputedStyle().Opacity)

	f.h.Advance(200 * time.Millisecond)
	assert.Equal(t, 1.0, el.ComputedStyle().Opacity)
}

func TestClearEmptiesTimeline(t *testing.T) {
	f := newFixture(t, 0)
	f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(200*time.Millisecond), After)
	f.tl.Play()

	f.tl.Clear()
	assert.Equal(t, 0, f.tl.Len())
	assert.Equal(t, time.Duration(0), f.tl.Duration())
	assert.False(t, f.tl.IsPlaying())
	assert.Zero(t, f.h.Scheduler.Pending())
}

func TestProgressZeroWhenEmpty(t *testing.T) {
	f := newFixture(t, 0)
	assert.Equal(t, 0.0, f.tl.Progress())
}

func TestOnCompleteDisposer(t *testing.T) {
	f := newFixture(t, 0)
	f.addElement("a")
	f.tl.Add(surface.Select("#a"), fade(50*time.Millisecond), After)

	fired := false
	remove := f.tl.OnComplete(func() { fired = true })
	remove()

	f.tl.Play()
	f.h.Advance(100 * time.Millisecond)
	assert.False(t, fired)
}
