package engine

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// Snapshot is the immutable view handed to presentation layers.
type Snapshot struct {
	Target  Target
	Reading Reading

	Phase            Phase
	DisplayedPercent float64
	RampComplete     bool
	ModalVisible     bool
	ConfettiVisible  bool
}

// IsToday reports whether the target date is today.
func (s Snapshot) IsToday() bool { return s.Reading.IsToday }

// PercentLabel formats the progress label: the floored displayed value, or
// 100% once the celebration ramp has completed.
func (s Snapshot) PercentLabel() string {
	if s.Phase.Celebrating() && s.RampComplete {
		return fmt.Sprintf(config.FormatPercent, int(config.PercentMax))
	}
	p := math.Max(config.PercentMin, math.Min(config.PercentMax, s.DisplayedPercent))
	return fmt.Sprintf(config.FormatPercent, int(math.Floor(p)))
}

// Directive tells the loop which timers to (re)arm after a sample.
type Directive struct {
	// PhaseChanged means every running timer belongs to a stale phase.
	PhaseChanged bool
	// ArmDelay requests the celebration delay timer.
	ArmDelay bool
	// Animate requests the animation ticker.
	Animate bool
}

// Tracker owns the whole countdown state. It is not safe for concurrent
// use; Countdown confines it to a single goroutine.
type Tracker struct {
	target      Target
	reading     Reading
	celebration Celebration
	animator    *Animator
}

// NewTracker returns a tracker that has not sampled the clock yet.
func NewTracker(target Target, opts AnimatorOptions) *Tracker {
	return &Tracker{
		target:   target,
		animator: NewAnimator(opts),
	}
}

// Target returns the tracked date.
func (t *Tracker) Target() Target { return t.target }

// SetTarget replaces the tracked date. The next Sample re-derives everything.
func (t *Tracker) SetTarget(target Target) { t.target = target }

// Sample recomputes the reading for now and advances the celebration phase.
func (t *Tracker) Sample(now time.Time) Directive {
	t.reading = Calculate(now, t.target)
	before := t.celebration.Phase()

	var d Directive
	switch t.celebration.Observe(t.reading.IsToday) {
	case TransitionEnter:
		d.PhaseChanged = true
		d.ArmDelay = true
		slog.Info(config.MsgCelebrate,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, t.target.Name)
	case TransitionReset:
		d.PhaseChanged = true
		t.animator.Reset()
	}

	if d.PhaseChanged {
		slog.Debug(config.MsgPhaseChange,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyFrom, before.String(),
			config.LogKeyTo, t.celebration.Phase().String())
	}

	d.Animate = t.animator.Retarget(t.reading.TargetPercent, t.celebration.Phase().Celebrating())
	return d
}

// Activate fires the delayed celebration step; see Celebration.Activate.
func (t *Tracker) Activate() bool {
	return t.celebration.Activate()
}

// Animate advances the displayed percentage by one frame.
func (t *Tracker) Animate() bool {
	return t.animator.Step()
}

// DismissModal hides the celebration modal.
func (t *Tracker) DismissModal() { t.celebration.DismissModal() }

// ConfettiFinished hides the confetti layer.
func (t *Tracker) ConfettiFinished() { t.celebration.ConfettiFinished() }

// Snapshot copies the current state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Target:           t.target,
		Reading:          t.reading,
		Phase:            t.celebration.Phase(),
		DisplayedPercent: t.animator.Value(),
		RampComplete:     t.animator.Ramped(),
		ModalVisible:     t.celebration.ModalVisible(),
		ConfettiVisible:  t.celebration.ConfettiVisible(),
	}
}
