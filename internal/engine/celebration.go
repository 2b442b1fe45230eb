package engine

// Phase is the celebration state.
type Phase int

const (
	// PhaseCounting shows the countdown.
	PhaseCounting Phase = iota
	// PhasePending shows confetti while the modal and sound wait for their delay.
	PhasePending
	// PhaseActive has fired the modal and the sound.
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "celebrating-pending"
	case PhaseActive:
		return "celebrating-active"
	default:
		return "counting"
	}
}

// Celebrating reports whether the phase suppresses the countdown.
func (p Phase) Celebrating() bool {
	return p != PhaseCounting
}

// Transition is the outcome of Celebration.Observe.
type Transition int

const (
	TransitionNone Transition = iota
	// TransitionEnter moves Counting to Pending.
	TransitionEnter
	// TransitionReset moves any celebrating phase back to Counting.
	TransitionReset
)

// Celebration holds the one-shot celebration flags as explicit phases.
// The zero value is in PhaseCounting.
type Celebration struct {
	phase           Phase
	confettiVisible bool
	modalVisible    bool
}

// Phase returns the current phase.
func (c *Celebration) Phase() Phase { return c.phase }

// ConfettiVisible reports whether confetti should be rendered.
func (c *Celebration) ConfettiVisible() bool { return c.confettiVisible }

// ModalVisible reports whether the celebration modal should be rendered.
func (c *Celebration) ModalVisible() bool { return c.modalVisible }

// Observe feeds the Is-Today flag of the latest sample.
func (c *Celebration) Observe(isToday bool) Transition {
	switch {
	case isToday && c.phase == PhaseCounting:
		c.phase = PhasePending
		c.confettiVisible = true
		c.modalVisible = false
		return TransitionEnter
	case !isToday && c.phase != PhaseCounting:
		c.phase = PhaseCounting
		c.confettiVisible = false
		c.modalVisible = false
		return TransitionReset
	default:
		return TransitionNone
	}
}

// Activate completes the delayed part of the sequence.
// It returns true exactly once per entry; callers play the sound only then.
func (c *Celebration) Activate() bool {
	if c.phase != PhasePending {
		return false
	}
	c.phase = PhaseActive
	c.modalVisible = true
	return true
}

// DismissModal hides the modal. The phase is kept so nothing re-fires.
func (c *Celebration) DismissModal() {
	c.modalVisible = false
}

// ConfettiFinished records that the confetti burst ended on its own.
func (c *Celebration) ConfettiFinished() {
	c.confettiVisible = false
}
