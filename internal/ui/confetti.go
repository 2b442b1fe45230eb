package ui

import (
	"image/color"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-countdown/internal/effects"
)

// ConfettiLayer renders an effects.Confetti field over the window content.
// All methods must run on the Fyne main goroutine.
type ConfettiLayer struct {
	widget.BaseWidget

	// OnFinished runs when the field empties on its own.
	OnFinished func()

	field *effects.Confetti
	anim  *fyne.Animation
	last  time.Time
	now   func() time.Time
}

// NewConfettiLayer creates a hidden layer seeded for reproducible runs.
func NewConfettiLayer(seed uint64) *ConfettiLayer {
	l := &ConfettiLayer{
		field: effects.NewConfetti(seed),
		now:   time.Now,
	}
	l.field.OnComplete = l.finished
	l.ExtendBaseWidget(l)
	l.Hide()
	return l
}

// Start launches count particles over the current layer size.
func (l *ConfettiLayer) Start(count int, recycle bool) {
	size := l.Size()
	l.Show()
	l.field.Start(float64(size.Width), float64(size.Height), count, recycle)
	if !l.field.Running() {
		return
	}

	l.last = l.now()
	if l.anim == nil {
		l.anim = fyne.NewAnimation(time.Second, func(float32) {
			now := l.now()
			l.Advance(now.Sub(l.last))
			l.last = now
		})
		l.anim.RepeatCount = fyne.AnimationRepeatForever
		l.anim.Curve = fyne.AnimationLinear
	}
	l.anim.Start()
	l.Refresh()
}

// Advance steps the field by dt and redraws it.
func (l *ConfettiLayer) Advance(dt time.Duration) {
	if !l.field.Running() {
		return
	}
	l.field.Step(dt)
	l.Refresh()
}

// Stop hides the layer without reporting completion.
func (l *ConfettiLayer) Stop() {
	l.halt()
	l.field.Stop()
	l.Refresh()
}

// Running reports whether confetti is falling.
func (l *ConfettiLayer) Running() bool { return l.field.Running() }

func (l *ConfettiLayer) halt() {
	if l.anim != nil {
		l.anim.Stop()
	}
	l.Hide()
}

func (l *ConfettiLayer) finished() {
	l.halt()
	if l.OnFinished != nil {
		l.OnFinished()
	}
}

// Resize keeps the particles spread over the new bounds.
func (l *ConfettiLayer) Resize(size fyne.Size) {
	l.field.Resize(float64(size.Width), float64(size.Height))
	l.BaseWidget.Resize(size)
}

// CreateRenderer implements fyne.Widget.
func (l *ConfettiLayer) CreateRenderer() fyne.WidgetRenderer {
	return &confettiRenderer{layer: l}
}

type confettiRenderer struct {
	layer   *ConfettiLayer
	pieces  []*canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *confettiRenderer) Destroy() {}

func (r *confettiRenderer) MinSize() fyne.Size { return fyne.NewSize(0, 0) }

func (r *confettiRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *confettiRenderer) Layout(fyne.Size) {
	particles := r.layer.field.Particles()
	for i, piece := range r.pieces {
		if i >= len(particles) || particles[i].Landed {
			piece.Hide()
			continue
		}
		p := particles[i]
		// A cosine-squashed width imitates a piece tumbling in the air.
		w := float32(p.Size * math.Max(0.2, math.Abs(math.Cos(p.Angle))))
		h := float32(p.Size * 0.6)
		piece.FillColor = p.Color
		piece.Resize(fyne.NewSize(w, h))
		piece.Move(fyne.NewPos(float32(p.X)-w/2, float32(p.Y)-h/2))
		piece.Show()
	}
}

func (r *confettiRenderer) Refresh() {
	n := len(r.layer.field.Particles())
	for len(r.pieces) < n {
		piece := canvas.NewRectangle(color.Transparent)
		r.pieces = append(r.pieces, piece)
		r.objects = append(r.objects, piece)
	}
	r.Layout(r.layer.Size())
	canvas.Refresh(r.layer)
}

// visiblePieces counts the rectangles currently drawn.
func (r *confettiRenderer) visiblePieces() int {
	count := 0
	for _, piece := range r.pieces {
		if piece.Visible() {
			count++
		}
	}
	return count
}
