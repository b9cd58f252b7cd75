package debug

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FadeSeconds is how long the guideline overlay takes to fade in or out.
const FadeSeconds = 0.25

// Segment is a screen-space line in pixels, origin top-left.
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// Guides is the layout overlay: rule-of-thirds lines, a centre cross and the
// box a plane may occupy for the configured width and height ratios.
type Guides struct {
	visible bool
	alpha   float32
	fade    *gween.Tween
}

// NewGuides creates the overlay, shown or hidden without a fade.
func NewGuides(visible bool) *Guides {
	g := &Guides{visible: visible}
	if visible {
		g.alpha = 1
	}
	return g
}

// Visible reports the target visibility.
func (g *Guides) Visible() bool { return g.visible }

// Alpha returns the current overlay opacity in [0, 1].
func (g *Guides) Alpha() float32 { return g.alpha }

// Fading reports whether a fade is in progress.
func (g *Guides) Fading() bool { return g.fade != nil }

// Toggle flips visibility with a fade.
func (g *Guides) Toggle() {
	g.SetVisible(!g.visible)
}

// SetVisible fades the overlay in or out. The fade starts from the current
// opacity, so reversing mid-fade does not jump.
func (g *Guides) SetVisible(v bool) {
	if v == g.visible && g.fade == nil {
		return
	}
	g.visible = v
	var target float32
	if v {
		target = 1
	}
	g.fade = gween.New(g.alpha, target, FadeSeconds, ease.OutQuad)
}

// Update advances the fade by dt seconds.
func (g *Guides) Update(dt float32) {
	if g.fade == nil {
		return
	}
	a, done := g.fade.Update(dt)
	g.alpha = a
	if done {
		g.fade = nil
	}
}

// Segments returns the overlay lines for a w x h viewport and the plane caps.
func (g *Guides) Segments(w, h, widthRatio, heightRatio float32) []Segment {
	segs := make([]Segment, 0, 10)

	// Rule of thirds.
	for i := float32(1); i <= 2; i++ {
		x := w * i / 3
		y := h * i / 3
		segs = append(segs, Segment{x, 0, x, h}, Segment{0, y, w, y})
	}

	// Centre cross.
	const arm = 12
	cx, cy := w/2, h/2
	segs = append(segs, Segment{cx - arm, cy, cx + arm, cy}, Segment{cx, cy - arm, cx, cy + arm})

	// Caps box, centred.
	bw, bh := w*widthRatio, h*heightRatio
	x0, y0 := cx-bw/2, cy-bh/2
	x1, y1 := cx+bw/2, cy+bh/2
	segs = append(segs,
		Segment{x0, y0, x1, y0},
		Segment{x1, y0, x1, y1},
		Segment{x1, y1, x0, y1},
		Segment{x0, y1, x0, y0},
	)
	return segs
}
