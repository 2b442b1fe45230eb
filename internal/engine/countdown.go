package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// AudioCue plays the celebration sound. Play must not block for long and
// must swallow its own failures.
type AudioCue interface {
	Play(ctx context.Context)
}

// Options carries the cosmetic timing parameters of the loop.
type Options struct {
	TickInterval      time.Duration // Clock sampling period
	AnimationInterval time.Duration // Frame period while counting
	RampInterval      time.Duration // Frame period of the celebration ramp
	CelebrationDelay  time.Duration // Confetti to modal/sound delay
	Animator          AnimatorOptions
}

// OptionsFromSettings extracts loop options from the resolved configuration.
func OptionsFromSettings(s config.Settings) Options {
	return Options{
		TickInterval:      s.TickInterval,
		AnimationInterval: s.AnimationInterval,
		RampInterval:      s.RampInterval,
		CelebrationDelay:  s.CelebrationDelay,
		Animator: AnimatorOptions{
			Smoothing:     s.Smoothing,
			SnapThreshold: s.SnapThreshold,
			RampStep:      s.RampStep,
		},
	}
}

type eventKind int

const (
	eventConfettiFinished eventKind = iota
	eventModalDismissed
	eventTargetChanged
)

type loopEvent struct {
	kind   eventKind
	target Target
}

// Countdown runs the update loop around a Tracker.
type Countdown struct {
	Clock Clock
	Audio AudioCue // Optional

	// OnSnapshot receives a copy of the state after every mutation.
	// It is called from the loop goroutine and must not block.
	OnSnapshot func(Snapshot)

	opts    Options
	tracker *Tracker
	events  chan loopEvent
	done    chan struct{}
}

// NewCountdown wires a countdown for target. Run starts it.
func NewCountdown(clock Clock, target Target, opts Options) *Countdown {
	return &Countdown{
		Clock:   clock,
		opts:    opts,
		tracker: NewTracker(target, opts.Animator),
		events:  make(chan loopEvent, config.ChannelBufferSize),
		done:    make(chan struct{}),
	}
}

// ConfettiFinished is the completion callback of the confetti facility.
func (c *Countdown) ConfettiFinished() { c.send(loopEvent{kind: eventConfettiFinished}) }

// DismissModal hides the celebration modal.
func (c *Countdown) DismissModal() { c.send(loopEvent{kind: eventModalDismissed}) }

// SetTarget switches the tracked date and re-derives the state.
func (c *Countdown) SetTarget(t Target) {
	c.send(loopEvent{kind: eventTargetChanged, target: t})
}

func (c *Countdown) send(ev loopEvent) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// Run drives the loop until ctx is cancelled. All tracker mutations happen
// on the calling goroutine.
func (c *Countdown) Run(ctx context.Context) {
	defer close(c.done)
	log := slog.With(config.LogKeyComponent, config.CompLoop)

	clock := time.NewTicker(c.opts.TickInterval)
	defer clock.Stop()

	var (
		frames  *time.Ticker
		framesC <-chan time.Time
		delay   *time.Timer
		delayC  <-chan time.Time
	)

	stopFrames := func() {
		if frames != nil {
			frames.Stop()
			frames, framesC = nil, nil
		}
	}
	stopDelay := func() {
		if delay != nil {
			delay.Stop()
			delay, delayC = nil, nil
		}
	}
	defer stopFrames()
	defer stopDelay()

	apply := func(d Directive) {
		if d.PhaseChanged {
			// Timers of the previous phase must never fire into the new one.
			stopFrames()
			stopDelay()
		}
		if d.ArmDelay {
			delay = time.NewTimer(c.opts.CelebrationDelay)
			delayC = delay.C
			log.Debug(config.MsgCelebrate, config.LogKeyDelay, c.opts.CelebrationDelay)
		}
		if d.Animate && frames == nil {
			interval := c.opts.AnimationInterval
			if c.tracker.Snapshot().Phase.Celebrating() {
				interval = c.opts.RampInterval
			}
			frames = time.NewTicker(interval)
			framesC = frames.C
			log.Debug(config.MsgAnimStart, config.LogKeyInterval, interval)
		}
	}

	apply(c.tracker.Sample(c.Clock.Now()))
	c.publish()

	log.Info(config.MsgLoopStart,
		config.LogKeyInterval, c.opts.TickInterval,
		config.LogKeyNext, c.tracker.Snapshot().Reading.Next)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgLoopStop)
			return

		case <-clock.C:
			apply(c.tracker.Sample(c.Clock.Now()))

		case <-framesC:
			if !c.tracker.Animate() {
				stopFrames()
				log.Debug(config.MsgAnimDone, config.LogKeyPercent, c.tracker.Snapshot().DisplayedPercent)
			}

		case <-delayC:
			delay, delayC = nil, nil
			if !c.tracker.Activate() {
				log.Debug(config.MsgStaleActivation)
				continue
			}
			log.Info(config.MsgActivate)
			if c.Audio != nil {
				go c.Audio.Play(ctx)
			}

		case ev := <-c.events:
			switch ev.kind {
			case eventConfettiFinished:
				c.tracker.ConfettiFinished()
				log.Debug(config.MsgConfettiDone)
			case eventModalDismissed:
				c.tracker.DismissModal()
				log.Debug(config.MsgModalDismissed)
			case eventTargetChanged:
				c.tracker.SetTarget(ev.target)
				log.Info(config.MsgTargetChanged,
					config.LogKeyMonth, int(ev.target.Month),
					config.LogKeyDay, ev.target.Day)
				apply(c.tracker.Sample(c.Clock.Now()))
			}
		}

		c.publish()
	}
}

func (c *Countdown) publish() {
	if c.OnSnapshot != nil {
		c.OnSnapshot(c.tracker.Snapshot())
	}
}
