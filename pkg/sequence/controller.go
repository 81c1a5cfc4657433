package sequence

import (
	"sync"
	"time"

	"github.com/go-kinetic/kinetic/pkg/animation"
)

// Controller is the runtime transport handle for one playing sequence. It
// owns the sequence's live primitive animations and never outlives its
// sequence's registration: it is created on Play and destroyed on Stop or
// natural completion.
type Controller struct {
	id  string
	uid string

	mu         sync.Mutex
	anims      []*animation.Animation
	loop       bool
	stopped    bool
	restarting bool
	finished   int
	// onDone is the orchestrator's removal hook, fired once on natural
	// completion of a non-looping sequence.
	onDone func()
}

func newController(id, uid string, anims []*animation.Animation, loop bool, onDone func()) *Controller {
	c := &Controller{
		id:     id,
		uid:    uid,
		anims:  anims,
		loop:   loop,
		onDone: onDone,
	}
	for _, anim := range anims {
		anim.OnFinish(c.animFinished)
	}
	return c
}

// SequenceID returns the id of the sequence this controller plays.
func (c *Controller) SequenceID() string { return c.id }

// UID returns the unique instance id assigned at Play time, used to
// correlate log entries across replays of the same sequence.
func (c *Controller) UID() string { return c.uid }

// animFinished counts completed primitives; when the last one lands the
// controller either loops or reports natural completion.
func (c *Controller) animFinished() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.finished++
	if c.finished < len(c.anims) {
		c.mu.Unlock()
		return
	}
	c.finished = 0
	// A pass landing here while the previous restart is still on the stack
	// completed synchronously: no scheduler is driving the animations, so
	// another restart would recurse without bound. The loop ends instead.
	loop := c.loop && !c.restarting
	if loop {
		c.restarting = true
	}
	anims := c.snapshot()
	onDone := c.onDone
	c.mu.Unlock()

	if loop {
		for _, anim := range anims {
			anim.Restart()
		}
		c.mu.Lock()
		c.restarting = false
		c.mu.Unlock()
		return
	}
	if onDone != nil {
		onDone()
	}
}

// Play starts or resumes every primitive animation.
func (c *Controller) Play() {
	for _, anim := range c.snapshotLocked() {
		anim.Play()
	}
}

// Pause halts every primitive animation at its current time.
func (c *Controller) Pause() {
	for _, anim := range c.snapshotLocked() {
		anim.Pause()
	}
}

// Reverse flips the playback direction of every primitive animation.
func (c *Controller) Reverse() {
	for _, anim := range c.snapshotLocked() {
		anim.Reverse()
	}
}

// Restart rewinds every primitive animation and plays from the start.
func (c *Controller) Restart() {
	c.mu.Lock()
	c.finished = 0
	c.mu.Unlock()
	for _, anim := range c.snapshotLocked() {
		anim.Restart()
	}
}

// Seek pushes a local time to every primitive animation; each clamps to
// its own track.
func (c *Controller) Seek(t time.Duration) {
	for _, anim := range c.snapshotLocked() {
		anim.SetTime(t)
	}
}

// State returns the playback state of the sequence, taken from its first
// animation. An empty controller reports StateFinished.
func (c *Controller) State() animation.PlayState {
	anims := c.snapshotLocked()
	if len(anims) == 0 {
		return animation.StateFinished
	}
	return anims[0].State()
}

// Progress reports currentTime/duration of the sequence's first animation,
// or 0 when the controller is empty or the first track has no length.
func (c *Controller) Progress() float64 {
	anims := c.snapshotLocked()
	if len(anims) == 0 {
		return 0
	}
	total := anims[0].Total()
	if total <= 0 {
		return 0
	}
	return float64(anims[0].CurrentTime()) / float64(total)
}

// stop cancels every live primitive animation before returning and marks
// the controller dead. Idempotent.
func (c *Controller) stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	anims := c.snapshot()
	c.mu.Unlock()

	for _, anim := range anims {
		anim.Cancel()
	}
}

func (c *Controller) snapshotLocked() []*animation.Animation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() []*animation.Animation {
	out := make([]*animation.Animation, len(c.anims))
	copy(out, c.anims)
	return out
}
