package engine

import (
	"math"

	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// AnimatorOptions tunes the displayed-percentage animation.
type AnimatorOptions struct {
	Smoothing     float64 // Fraction of the remaining gap covered per step
	SnapThreshold float64 // Gap below which the value snaps to the target
	RampStep      float64 // Increment per step of the celebration ramp
}

// Animator moves the displayed percentage toward a target.
//
// While counting it decays the gap exponentially. On the first celebrating
// retarget it ramps linearly from 0 to 100 and then latches; later
// celebrating retargets jump straight to 100 until Reset is called.
type Animator struct {
	opts AnimatorOptions

	value       float64
	target      float64
	celebrating bool
	ramped      bool // One-shot: the celebration ramp already completed
	running     bool
}

// NewAnimator returns an idle animator displaying 0.
func NewAnimator(opts AnimatorOptions) *Animator {
	return &Animator{opts: opts}
}

// Value returns the displayed percentage, always within [0, 100].
func (a *Animator) Value() float64 { return a.value }

// Running reports whether Step still has work to do.
func (a *Animator) Running() bool { return a.running }

// Ramped reports whether the celebration ramp completed since the last Reset.
func (a *Animator) Ramped() bool { return a.ramped }

// Retarget points the animation at target and reports whether steps are needed.
// Switching between counting and celebrating restarts the policy.
func (a *Animator) Retarget(target float64, celebrating bool) bool {
	target = clampPercent(target)
	modeChanged := celebrating != a.celebrating
	a.target = target
	a.celebrating = celebrating

	if celebrating {
		switch {
		case a.ramped:
			a.value = config.PercentMax
			a.running = false
		case modeChanged:
			a.value = config.PercentMin
			a.running = true
		}
		return a.running
	}

	a.running = math.Abs(a.target-a.value) >= a.opts.SnapThreshold
	if !a.running {
		a.value = a.target
	}
	return a.running
}

// Step advances one animation frame and reports whether more frames follow.
func (a *Animator) Step() bool {
	if !a.running {
		return false
	}

	if a.celebrating {
		if a.value >= config.PercentMax {
			a.value = config.PercentMax
			a.ramped = true
			a.running = false
			return false
		}
		a.value = math.Min(a.value+a.opts.RampStep, config.PercentMax)
		return true
	}

	gap := a.target - a.value
	if math.Abs(gap) < a.opts.SnapThreshold {
		a.value = a.target
		a.running = false
		return false
	}
	a.value = clampPercent(a.value + gap*a.opts.Smoothing)
	return true
}

// Reset clears the ramp latch so the next celebration ramps again.
func (a *Animator) Reset() {
	a.ramped = false
}

// maxSmoothingSteps bounds the number of Step calls needed to settle from
// any value in [0, 100] while counting.
func maxSmoothingSteps(opts AnimatorOptions) int {
	if opts.Smoothing >= 1 {
		return 1
	}
	n := math.Log(opts.SnapThreshold/config.PercentMax) / math.Log(1-opts.Smoothing)
	// One extra step performs the snap itself.
	return int(math.Ceil(n)) + 1
}
