package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// ProgressRing draws a circular progress indicator with a centered label.
// Fyne has no arc primitive, so the filled part is a polyline of segments.
type ProgressRing struct {
	widget.BaseWidget

	percent float64
	label   string
	dark    bool
}

// NewProgressRing creates an empty ring.
func NewProgressRing() *ProgressRing {
	r := &ProgressRing{}
	r.ExtendBaseWidget(r)
	return r
}

// SetProgress updates the filled fraction (0-100) and the label.
func (r *ProgressRing) SetProgress(percent float64, label string) {
	if percent == r.percent && label == r.label {
		return
	}
	r.percent = math.Max(config.PercentMin, math.Min(config.PercentMax, percent))
	r.label = label
	r.Refresh()
}

// SetDark switches the ring colors.
func (r *ProgressRing) SetDark(dark bool) {
	r.dark = dark
	r.Refresh()
}

// Percent returns the drawn value.
func (r *ProgressRing) Percent() float64 { return r.percent }

// Label returns the centered text.
func (r *ProgressRing) Label() string { return r.label }

// CreateRenderer implements fyne.Widget.
func (r *ProgressRing) CreateRenderer() fyne.WidgetRenderer {
	track := canvas.NewCircle(color.Transparent)
	track.StrokeWidth = config.RingStrokeWidth

	segments := make([]*canvas.Line, config.RingSegments)
	objects := []fyne.CanvasObject{track}
	for i := range segments {
		segments[i] = canvas.NewLine(color.Transparent)
		segments[i].StrokeWidth = config.RingStrokeWidth
		objects = append(objects, segments[i])
	}

	text := canvas.NewText("", color.Black)
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.TextSize = theme.TextHeadingSize()
	text.Alignment = fyne.TextAlignCenter
	objects = append(objects, text)

	rr := &ringRenderer{ring: r, track: track, segments: segments, text: text, objects: objects}
	rr.Refresh()
	return rr
}

type ringRenderer struct {
	ring     *ProgressRing
	track    *canvas.Circle
	segments []*canvas.Line
	text     *canvas.Text
	objects  []fyne.CanvasObject
	size     fyne.Size
}

func (rr *ringRenderer) Destroy() {}

func (rr *ringRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(config.RingSize)
}

func (rr *ringRenderer) Objects() []fyne.CanvasObject { return rr.objects }

func (rr *ringRenderer) Layout(size fyne.Size) {
	rr.size = size
	d := fyne.Min(size.Width, size.Height) - config.RingStrokeWidth
	cx, cy := size.Width/2, size.Height/2
	radius := d / 2

	rr.track.Move(fyne.NewPos(cx-radius, cy-radius))
	rr.track.Resize(fyne.NewSquareSize(d))

	n := len(rr.segments)
	for i, seg := range rr.segments {
		seg.Position1 = ringPoint(cx, cy, radius, i, n)
		seg.Position2 = ringPoint(cx, cy, radius, i+1, n)
	}

	textSize := rr.text.MinSize()
	rr.text.Move(fyne.NewPos(cx-textSize.Width/2, cy-textSize.Height/2))
	rr.text.Resize(textSize)
}

// ringPoint returns vertex i of n around the circle, starting at 12 o'clock
// and running clockwise.
func ringPoint(cx, cy, radius float32, i, n int) fyne.Position {
	angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	return fyne.NewPos(
		cx+radius*float32(math.Cos(angle)),
		cy+radius*float32(math.Sin(angle)),
	)
}

func (rr *ringRenderer) Refresh() {
	dark := rr.ring.dark
	rr.track.StrokeColor = track(dark)

	filled := int(math.Round(rr.ring.percent / config.PercentMax * float64(len(rr.segments))))
	for i, seg := range rr.segments {
		if i < filled {
			seg.StrokeColor = accent(dark)
		} else {
			seg.StrokeColor = color.Transparent
		}
	}

	rr.text.Text = rr.ring.label
	rr.text.Color = accent(dark)

	if rr.size.Width > 0 && rr.size.Height > 0 {
		rr.Layout(rr.size)
	}
	canvas.Refresh(rr.ring)
}

// filledSegments reports how many segments the current percent lights up.
func (rr *ringRenderer) filledSegments() int {
	count := 0
	for _, seg := range rr.segments {
		if seg.StrokeColor != color.Transparent {
			count++
		}
	}
	return count
}
