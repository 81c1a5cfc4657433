package sequence

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/geometry"
	"github.com/go-kinetic/kinetic/pkg/surface"
	motiontest "github.com/go-kinetic/kinetic/pkg/testing"
)

type fixture struct {
	o   *Orchestrator
	h   *motiontest.Harness
	sf  *motiontest.FakeSurface
	log *bytes.Buffer
}

func newFixture(t *testing.T, motion surface.MotionPreference) *fixture {
	t.Helper()
	h := motiontest.NewHarness()
	sf := motiontest.NewFakeSurface()
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)
	o := NewOrchestrator(OrchestratorOptions{
		Surface:   sf,
		Scheduler: h.Scheduler,
		Clock:     h.Clock,
		Motion:    motion,
		Logger:    &logger,
	})
	t.Cleanup(o.Close)
	return &fixture{o: o, h: h, sf: sf, log: buf}
}

func (f *fixture) addElement(selector, id string) *motiontest.FakeElement {
	el := motiontest.NewFakeElement(id, geometry.RectFromLTWH(0, 0, 50, 50))
	f.sf.Add(selector, el)
	return el
}

func fadeStep(selector string, d time.Duration) Step {
	return Step{
		Target: surface.Select(selector),
		Animation: animation.Config{
			From:     &surface.Style{Opacity: 0, Transform: surface.Identity()},
			To:       &surface.Style{Opacity: 1, Transform: surface.Identity()},
			Duration: d,
		},
	}
}

func TestRegisterAssignsID(t *testing.T) {
	f := newFixture(t, nil)
	id := f.o.Register(Sequence{Steps: []Step{fadeStep(".a", time.Second)}})
	assert.NotEmpty(t, id)

	other := f.o.Register(Sequence{Steps: []Step{fadeStep(".a", time.Second)}})
	assert.NotEqual(t, id, other)
}

func TestPlayRunsStepsToCompletion(t *testing.T) {
	f := newFixture(t, nil)
	el := f.addElement(".doc-card", "card")
	id := f.o.Register(Sequence{ID: "card-expand", Steps: []Step{fadeStep(".doc-card", 200 * time.Millisecond)}})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)
	assert.Equal(t, animation.StateRunning, ctrl.State())
	assert.Same(t, ctrl, f.o.Controller(id))

	f.h.Advance(100 * time.Millisecond)
	assert.InDelta(t, 0.5, ctrl.Progress(), 1e-9)

	f.h.Advance(150 * time.Millisecond)
	assert.Equal(t, 1.0, el.ComputedStyle().Opacity)
	// Natural completion removes the controller from the registry.
	assert.Nil(t, f.o.Controller(id))
}

func TestPlayUnknownIDLogsWarning(t *testing.T) {
	f := newFixture(t, nil)
	assert.Nil(t, f.o.Play("nope"))
	assert.Contains(t, f.log.String(), "unknown sequence")
	assert.Contains(t, f.log.String(), "nope")
}

func TestStopCancelsAnimations(t *testing.T) {
	f := newFixture(t, nil)
	f.addElement(".a", "a")
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".a", time.Second)}})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)
	f.o.Stop(id)

	assert.Nil(t, f.o.Controller(id))
	assert.Zero(t, f.h.Scheduler.Pending())
}

func TestStopWhenNotPlayingLogsWarning(t *testing.T) {
	f := newFixture(t, nil)
	f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".a", time.Second)}})
	f.o.Stop("s")
	assert.Contains(t, f.log.String(), "not playing")
}

func TestStopAll(t *testing.T) {
	f := newFixture(t, nil)
	f.addElement(".a", "a")
	f.addElement(".b", "b")
	f.o.Register(Sequence{ID: "s1", Steps: []Step{fadeStep(".a", time.Second)}})
	f.o.Register(Sequence{ID: "s2", Steps: []Step{fadeStep(".b", time.Second)}})

	f.o.Play("s1")
	f.o.Play("s2")
	f.o.StopAll()

	assert.Nil(t, f.o.Controller("s1"))
	assert.Nil(t, f.o.Controller("s2"))
	assert.Zero(t, f.h.Scheduler.Pending())
}

func TestReplayCancelsPriorRun(t *testing.T) {
	f := newFixture(t, nil)
	f.addElement(".a", "a")
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".a", time.Second)}})

	first := f.o.Play(id)
	require.NotNil(t, first)
	second := f.o.Play(id)
	require.NotNil(t, second)

	assert.NotEqual(t, first.UID(), second.UID())
	assert.Same(t, second, f.o.Controller(id))
	for _, anim := range first.snapshotLocked() {
		assert.ErrorIs(t, anim.Err(), animation.ErrCanceled)
	}
}

func TestReRegistrationKeepsLiveController(t *testing.T) {
	f := newFixture(t, nil)
	f.addElement(".a", "a")
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".a", time.Second)}})
	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)

	f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".a", time.Millisecond)}})
	assert.Same(t, ctrl, f.o.Controller(id))
	assert.Equal(t, animation.StateRunning, ctrl.State())
}

func TestPlayMissingTargetsSkipped(t *testing.T) {
	f := newFixture(t, nil)
	f.addElement(".present", "p")
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{
		fadeStep(".missing", time.Second),
		fadeStep(".present", time.Second),
	}})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)
	assert.Len(t, ctrl.snapshotLocked(), 1)
}

func TestPlayAllTargetsMissingReturnsNil(t *testing.T) {
	f := newFixture(t, nil)
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".missing", time.Second)}})
	assert.Nil(t, f.o.Play(id))
	assert.Nil(t, f.o.Controller(id))
}

func TestStepOverridesApplied(t *testing.T) {
	f := newFixture(t, nil)
	f.addElement(".a", "a")
	step := fadeStep(".a", time.Second)
	step.Duration = 100 * time.Millisecond
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{step}})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)
	assert.Equal(t, 100*time.Millisecond, ctrl.snapshotLocked()[0].Total())
}

func TestStaggerSpreadsStepStarts(t *testing.T) {
	f := newFixture(t, nil)
	f.addElement(".a", "a")
	f.addElement(".b", "b")
	f.addElement(".c", "c")
	id := f.o.Register(Sequence{
		ID: "list",
		Steps: []Step{
			fadeStep(".a", 100 * time.Millisecond),
			fadeStep(".b", 100 * time.Millisecond),
			fadeStep(".c", 100 * time.Millisecond),
		},
		Options: Options{Stagger: Stagger{Each: 40 * time.Millisecond}},
	})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)
	anims := ctrl.snapshotLocked()
	require.Len(t, anims, 3)
	assert.Equal(t, 100*time.Millisecond, anims[0].Total())
	assert.Equal(t, 140*time.Millisecond, anims[1].Total())
	assert.Equal(t, 180*time.Millisecond, anims[2].Total())
}

func TestReverseOptionFlipsStepOrder(t *testing.T) {
	f := newFixture(t, nil)
	a := f.addElement(".a", "a")
	b := f.addElement(".b", "b")
	id := f.o.Register(Sequence{
		ID: "s",
		Steps: []Step{
			fadeStep(".a", 100 * time.Millisecond),
			fadeStep(".b", 100 * time.Millisecond),
		},
		Options: Options{
			Reverse: true,
			Stagger: Stagger{Each: 100 * time.Millisecond},
		},
	})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)

	// With the order reversed, .b leads and .a trails by the stagger.
	f.h.Advance(100 * time.Millisecond)
	assert.Equal(t, 1.0, b.ComputedStyle().Opacity)
	assert.Equal(t, 0.0, a.ComputedStyle().Opacity)
}

func TestLoopRestartsOnCompletion(t *testing.T) {
	f := newFixture(t, nil)
	f.addElement(".a", "a")
	id := f.o.Register(Sequence{
		ID:      "spin",
		Steps:   []Step{fadeStep(".a", 100 * time.Millisecond)},
		Options: Options{Loop: true},
	})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)
	f.h.Advance(120 * time.Millisecond)

	// The loop restarted instead of completing: the controller is still
	// registered and running.
	assert.Same(t, ctrl, f.o.Controller(id))
	assert.Equal(t, animation.StateRunning, ctrl.State())
	f.o.Stop(id)
}

func TestLoopWithoutSchedulerRunsOnce(t *testing.T) {
	sf := motiontest.NewFakeSurface()
	el := motiontest.NewFakeElement("a", geometry.RectFromLTWH(0, 0, 50, 50))
	sf.Add(".a", el)
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)
	o := NewOrchestrator(OrchestratorOptions{Surface: sf, Logger: &logger})
	t.Cleanup(o.Close)

	id := o.Register(Sequence{
		ID:      "spin",
		Steps:   []Step{fadeStep(".a", 100 * time.Millisecond)},
		Options: Options{Loop: true},
	})

	// Without a scheduler the whole pass completes inside Play. A loop that
	// restarted here would never leave this stack frame.
	ctrl := o.Play(id)
	require.NotNil(t, ctrl)
	assert.Equal(t, 1.0, el.ComputedStyle().Opacity)
	assert.Nil(t, o.Controller(id))
	assert.Contains(t, buf.String(), "loop without scheduler")
}

func TestControllerLoopSynchronousCompletion(t *testing.T) {
	el := motiontest.NewFakeElement("a", geometry.RectFromLTWH(0, 0, 50, 50))
	anim, err := animation.New(el, animation.Config{
		To:       &surface.Style{Opacity: 1, Transform: surface.Identity()},
		Duration: 100 * time.Millisecond,
	})
	require.NoError(t, err)

	// Even a hand-built looping controller must not restart a pass that
	// completed on its own call stack.
	done := 0
	c := newController("spin", "uid", []*animation.Animation{anim}, true, func() { done++ })
	c.Play()
	assert.Equal(t, 1, done)
}

func TestControllerTransport(t *testing.T) {
	f := newFixture(t, nil)
	el := f.addElement(".a", "a")
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".a", 200 * time.Millisecond)}})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)

	f.h.Advance(50 * time.Millisecond)
	ctrl.Pause()
	assert.Equal(t, animation.StatePaused, ctrl.State())

	ctrl.Seek(100 * time.Millisecond)
	assert.Equal(t, 0.5, el.ComputedStyle().Opacity)
	assert.InDelta(t, 0.5, ctrl.Progress(), 1e-9)

	ctrl.Reverse()
	ctrl.Play()
	f.h.Advance(150 * time.Millisecond)
	assert.Equal(t, 0.0, el.ComputedStyle().Opacity)
}

func TestReducedMotionAppliesFinalState(t *testing.T) {
	f := newFixture(t, surface.StaticPreference(true))
	el := f.addElement(".a", "a")
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".a", time.Second)}})

	assert.Nil(t, f.o.Play(id))
	assert.Equal(t, 1.0, el.ComputedStyle().Opacity)
	// No frames were scheduled: the end state was applied directly.
	assert.Zero(t, f.h.Scheduler.Pending())
}

func TestReducedMotionAutoPlayStillAnimates(t *testing.T) {
	f := newFixture(t, surface.StaticPreference(true))
	f.addElement(".a", "a")
	id := f.o.Register(Sequence{
		ID:      "s",
		Steps:   []Step{fadeStep(".a", time.Second)},
		Options: Options{AutoPlay: true},
	})

	ctrl := f.o.Play(id)
	require.NotNil(t, ctrl)
	assert.Equal(t, animation.StateRunning, ctrl.State())
}

func TestReducedMotionPreferenceTracked(t *testing.T) {
	pref := surface.NewSettablePreference(false)
	f := newFixture(t, pref)
	el := f.addElement(".a", "a")
	id := f.o.Register(Sequence{ID: "s", Steps: []Step{fadeStep(".a", time.Second)}})

	pref.Set(true)
	assert.Nil(t, f.o.Play(id))
	assert.Equal(t, 1.0, el.ComputedStyle().Opacity)
}
