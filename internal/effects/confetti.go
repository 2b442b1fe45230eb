package effects

import (
	"image/color"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// Particle is one piece of confetti in field coordinates (origin top-left).
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Angle  float64
	Spin   float64
	Color  color.NRGBA
	Landed bool
}

// Confetti is a falling particle field. It is not safe for concurrent use;
// the renderer that owns it drives Step from a single goroutine.
type Confetti struct {
	// OnComplete runs once when the last particle leaves the field.
	OnComplete func()

	width, height float64
	recycle       bool
	running       bool
	particles     []Particle
	palette       []color.NRGBA
	rng           *rand.Rand
}

// NewConfetti creates an idle field. The seed makes runs reproducible.
func NewConfetti(seed uint64) *Confetti {
	return &Confetti{
		palette: Palette(config.ConfettiPaletteSize),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Palette spreads n saturated colors evenly around the hue wheel.
func Palette(n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.NRGBA, n)
	step := 360.0 / float64(n)
	for i := range out {
		c := colorful.Hsv(float64(i)*step, config.ConfettiSaturation, config.ConfettiBrightness).Clamped()
		r, g, b := c.RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out
}

// Start spawns count particles above a width x height field.
// With recycle set, particles that fall out re-enter at the top and the
// field never completes until Stop.
func (c *Confetti) Start(width, height float64, count int, recycle bool) {
	c.width, c.height = width, height
	c.recycle = recycle
	c.particles = make([]Particle, count)
	for i := range c.particles {
		c.spawn(&c.particles[i], true)
	}
	c.running = count > 0
	if !c.running {
		c.finish()
	}
}

// Resize keeps particles proportionally placed in the new bounds.
func (c *Confetti) Resize(width, height float64) {
	if c.width > 0 && c.height > 0 {
		sx, sy := width/c.width, height/c.height
		for i := range c.particles {
			c.particles[i].X *= sx
			c.particles[i].Y *= sy
		}
	}
	c.width, c.height = width, height
}

// Step advances the simulation by dt and reports whether it is still running.
func (c *Confetti) Step(dt time.Duration) bool {
	if !c.running {
		return false
	}
	sec := dt.Seconds()
	alive := 0
	for i := range c.particles {
		p := &c.particles[i]
		if p.Landed {
			continue
		}
		p.VY += config.ConfettiGravity * sec
		p.X += p.VX * sec
		p.Y += p.VY * sec
		p.Angle = math.Mod(p.Angle+p.Spin*sec, 2*math.Pi)

		if p.Y-p.Size > c.height {
			if c.recycle {
				c.spawn(p, false)
			} else {
				p.Landed = true
				continue
			}
		}
		alive++
	}

	if alive == 0 {
		c.running = false
		c.finish()
	}
	return c.running
}

// Stop clears the field without calling OnComplete.
func (c *Confetti) Stop() {
	c.running = false
	c.particles = nil
}

// Running reports whether particles are still falling.
func (c *Confetti) Running() bool { return c.running }

// Particles returns the field, landed particles included. The slice is
// reused between steps.
func (c *Confetti) Particles() []Particle {
	return c.particles
}

func (c *Confetti) finish() {
	slog.Debug(config.MsgConfettiDone,
		config.LogKeyComponent, config.CompConfetti,
		config.LogKeyCount, len(c.particles))
	if c.OnComplete != nil {
		c.OnComplete()
	}
}

// spawn places p above the top edge. The initial burst is spread over a
// taller band so particles do not arrive as a single sheet.
func (c *Confetti) spawn(p *Particle, initial bool) {
	band := config.ConfettiMaxSize
	if initial {
		band = c.height * config.ConfettiSpawnHeight
	}
	*p = Particle{
		X:     c.rng.Float64() * c.width,
		Y:     -c.rng.Float64()*band - config.ConfettiMaxSize,
		VX:    (c.rng.Float64()*2 - 1) * config.ConfettiMaxDrift,
		VY:    config.ConfettiMinSpeed + c.rng.Float64()*(config.ConfettiMaxSpeed-config.ConfettiMinSpeed),
		Size:  config.ConfettiMinSize + c.rng.Float64()*(config.ConfettiMaxSize-config.ConfettiMinSize),
		Angle: c.rng.Float64() * 2 * math.Pi,
		Spin:  (c.rng.Float64()*2 - 1) * config.ConfettiMaxSpin,
		Color: c.palette[c.rng.IntN(len(c.palette))],
	}
}
