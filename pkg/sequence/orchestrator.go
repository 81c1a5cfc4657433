package sequence

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/errors"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

// Orchestrator registers named sequences and plays them by id. Each
// orchestrator owns its own registry and controller map; construct one per
// independent usage scope.
type Orchestrator struct {
	surf      surface.Surface
	scheduler surface.FrameScheduler
	clock     animation.Clock
	log       zerolog.Logger

	mu          sync.Mutex
	sequences   map[string]Sequence
	controllers map[string]*Controller
	reduced     bool
	unsub       func()
}

// OrchestratorOptions configures an Orchestrator.
type OrchestratorOptions struct {
	Surface   surface.Surface
	Scheduler surface.FrameScheduler
	// Clock is the time source. Defaults to the system clock.
	Clock animation.Clock
	// Motion is the host's reduced-motion signal. Nil means motion is
	// never reduced.
	Motion surface.MotionPreference
	// Logger receives warnings for misuse such as unknown sequence ids.
	// Nil means a stderr logger.
	Logger *zerolog.Logger
}

// NewOrchestrator creates an orchestrator. The reduced-motion preference is
// read at construction and kept live via a change subscription, exactly as
// the transition manager interprets it.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	clock := opts.Clock
	if clock == nil {
		clock = animation.SystemClock()
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	o := &Orchestrator{
		surf:        opts.Surface,
		scheduler:   opts.Scheduler,
		clock:       clock,
		log:         log,
		sequences:   make(map[string]Sequence),
		controllers: make(map[string]*Controller),
	}
	if opts.Motion != nil {
		o.reduced = opts.Motion.ReducedMotion()
		o.unsub = opts.Motion.Subscribe(func(reduced bool) {
			o.mu.Lock()
			o.reduced = reduced
			o.mu.Unlock()
		})
	}
	return o
}

// Close stops every playing sequence and drops the motion subscription.
func (o *Orchestrator) Close() {
	if o.unsub != nil {
		o.unsub()
		o.unsub = nil
	}
	o.StopAll()
}

// Register stores a sequence by id, assigning a fresh id when the sequence
// has none, and returns the id. Re-registration replaces the prior
// definition without affecting an already-playing controller for the old
// definition.
func (o *Orchestrator) Register(seq Sequence) string {
	if seq.ID == "" {
		seq.ID = uuid.NewString()
	}
	o.mu.Lock()
	o.sequences[seq.ID] = seq
	o.mu.Unlock()
	return seq.ID
}

// Play expands the sequence's steps into primitive animations, starts them
// all, and returns the stored Controller. An unknown id logs a warning and
// returns nil. When the host prefers reduced motion and the sequence is not
// marked AutoPlay, every step's final state is applied directly with no
// animation and Play returns nil.
func (o *Orchestrator) Play(id string) *Controller {
	o.mu.Lock()
	seq, ok := o.sequences[id]
	reduced := o.reduced
	o.mu.Unlock()
	if !ok {
		o.log.Warn().Str("sequence", id).Msg("play: unknown sequence")
		return nil
	}

	if reduced && !seq.Options.AutoPlay {
		o.applyFinalState(seq)
		return nil
	}

	steps := seq.Steps
	if seq.Options.Reverse {
		steps = reverseSteps(steps)
	}

	var anims []*animation.Animation
	for i, step := range steps {
		cfg := step.Animation
		if step.Duration > 0 {
			cfg.Duration = step.Duration
		}
		if step.Curve != nil {
			cfg.Curve = step.Curve
		}
		cfg.Delay = stepDelay(step, i, len(steps), seq.Options)

		// Missing targets are skipped: animation is cosmetic and a target
		// racing with unmount must not fail the caller.
		for _, el := range step.Target.Resolve(o.surf) {
			anim, err := animation.New(el, cfg,
				animation.WithScheduler(o.scheduler),
				animation.WithClock(o.clock))
			if err != nil {
				errors.Report(&errors.MotionError{
					Op:   "sequence.Play",
					Kind: errors.KindPlayback,
					Err:  err,
					Key:  id,
				})
				continue
			}
			anims = append(anims, anim)
		}
	}
	if len(anims) == 0 {
		return nil
	}

	// Without a scheduler every animation jumps to its end state inside
	// Play, so a loop would restart and complete on the same stack forever.
	// Such sequences degrade to a single pass.
	loop := seq.Options.Loop
	if loop && o.scheduler == nil {
		o.log.Warn().Str("sequence", id).Msg("play: loop without scheduler, running once")
		loop = false
	}

	uid := uuid.NewString()
	ctrl := newController(id, uid, anims, loop, func() {
		o.remove(id, uid)
	})

	o.mu.Lock()
	prior := o.controllers[id]
	o.controllers[id] = ctrl
	o.mu.Unlock()
	// Replaying a sequence cancels the previous run's animations first so
	// two controllers never fight over the same elements.
	if prior != nil {
		prior.stop()
	}

	o.log.Debug().Str("sequence", id).Str("controller", uid).Msg("play")
	ctrl.Play()
	return ctrl
}

// Stop cancels every primitive animation belonging to the sequence's
// controller and discards the controller. An id with no live controller
// logs a warning.
func (o *Orchestrator) Stop(id string) {
	o.mu.Lock()
	ctrl, ok := o.controllers[id]
	delete(o.controllers, id)
	o.mu.Unlock()
	if !ok {
		o.log.Warn().Str("sequence", id).Msg("stop: sequence not playing")
		return
	}
	ctrl.stop()
}

// StopAll stops every currently playing sequence.
func (o *Orchestrator) StopAll() {
	o.mu.Lock()
	ctrls := make([]*Controller, 0, len(o.controllers))
	for _, ctrl := range o.controllers {
		ctrls = append(ctrls, ctrl)
	}
	o.controllers = make(map[string]*Controller)
	o.mu.Unlock()

	for _, ctrl := range ctrls {
		ctrl.stop()
	}
}

// Controller returns the live controller for id, or nil if the sequence is
// not playing.
func (o *Orchestrator) Controller(id string) *Controller {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.controllers[id]
}

// remove drops a controller after natural completion, but only if it is
// still the stored instance for its id.
func (o *Orchestrator) remove(id, uid string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ctrl, ok := o.controllers[id]; ok && ctrl.uid == uid {
		delete(o.controllers, id)
	}
}

// applyFinalState is the reduced-motion path: every step's final style is
// applied directly to each target with zero elapsed animation time, giving
// the same end visual state a completed animation would.
func (o *Orchestrator) applyFinalState(seq Sequence) {
	for _, step := range seq.Steps {
		final, ok := step.Animation.FinalStyle()
		if !ok {
			continue
		}
		for _, el := range step.Target.Resolve(o.surf) {
			el.ApplyStyle(final)
		}
	}
}

func reverseSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, step := range steps {
		out[len(steps)-1-i] = step
	}
	return out
}
