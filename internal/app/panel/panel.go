// Package panel draws the debug panel: per-plane position and tunables,
// the wireframe and pointer toggles, the guideline overlay switch, and the
// screenshot and save buttons.
package panel

import (
	"fmt"
	"path/filepath"

	"github.com/Faultbox/imageplane/internal/engine/debug"
	"github.com/Faultbox/imageplane/internal/engine/ui2d"
	"github.com/Faultbox/imageplane/internal/imageplane"
)

const (
	windowID = "debug"
	panelX   = 10
	panelY   = 10
	width    = 260
	rowH     = 20
)

// Actions are the panel requests the host carries out.
type Actions struct {
	Screenshot bool
	SaveConfig bool
}

// Panel is the debug panel window.
type Panel struct {
	ui      *ui2d.Context
	visible bool
}

// New creates the panel.
func New(ui *ui2d.Context, visible bool) *Panel {
	return &Panel{ui: ui, visible: visible}
}

// Visible reports whether the panel is drawn.
func (p *Panel) Visible() bool { return p.visible }

// Toggle shows or hides the panel.
func (p *Panel) Toggle() { p.visible = !p.visible }

// Draw declares the panel widgets for this frame and applies edits directly
// to the planes and the guides. Call between ui.Begin and ui.End.
func (p *Panel) Draw(planes []*imageplane.Plane, vp imageplane.Viewport, guides *debug.Guides) Actions {
	var act Actions
	if !p.visible {
		return act
	}
	if !p.ui.BeginWindow(windowID, panelX, panelY, width, "Image planes") {
		return act
	}

	for i, pl := range planes {
		p.plane(i, pl, vp)
	}

	p.ui.Separator()
	p.ui.Row(rowH)
	if show := p.ui.Checkbox("guides", "Guidelines", guides.Visible()); show != guides.Visible() {
		guides.SetVisible(show)
	}
	p.ui.Row(rowH)
	act.Screenshot = p.ui.Button("shot", 0, "Screenshot")
	p.ui.Row(rowH)
	act.SaveConfig = p.ui.Button("save", 0, "Save config")

	p.ui.EndWindow()
	return act
}

func (p *Panel) plane(i int, pl *imageplane.Plane, vp imageplane.Viewport) {
	id := fmt.Sprintf("p%d_", i)

	p.ui.Row(rowH)
	title := fmt.Sprintf("%s [%s]", filepath.Base(pl.Image()), pl.State())
	if !p.ui.CollapsingHeader(id+"hdr", title) {
		return
	}

	switch pl.State() {
	case imageplane.StateFailed:
		p.ui.Row(rowH)
		p.ui.LabelColored(truncate(pl.Err().Error(), 34), ui2d.ColorTextDim)
		return
	case imageplane.StateDisposed:
		return
	}

	vw, vh := float32(vp.Width), float32(vp.Height)
	pos := pl.Position()
	moved := false
	p.ui.Row(rowH)
	moved = p.ui.SliderFloat(id+"x", "x", &pos[0], -vw, vw) || moved
	p.ui.Row(rowH)
	moved = p.ui.SliderFloat(id+"y", "y", &pos[1], -vh, vh) || moved
	p.ui.Row(rowH)
	moved = p.ui.SliderFloat(id+"z", "z", &pos[2], imageplane.MinZ, imageplane.MaxZ) || moved
	if moved {
		pl.SetPosition(pos)
	}

	params := pl.Params()
	changed := false
	p.ui.Row(rowH)
	changed = p.ui.SliderFloat(id+"strength", "strength", &params.Strength,
		imageplane.MinStrength, imageplane.MaxStrength) || changed
	p.ui.Row(rowH)
	changed = p.ui.SliderFloat(id+"lerp", "lerp", &params.LerpFactor,
		imageplane.MinLerpFactor, imageplane.MaxLerpFactor) || changed

	p.ui.Row(rowH)
	if v := p.ui.Checkbox(id+"move", "Move on pointer", params.MoveOnPointerMove); v != params.MoveOnPointerMove {
		params.MoveOnPointerMove = v
		changed = true
	}
	p.ui.Row(rowH)
	if v := p.ui.Checkbox(id+"click", "Move on click", params.MoveOnClick); v != params.MoveOnClick {
		params.MoveOnClick = v
		changed = true
	}
	if changed {
		pl.SetParams(params)
	}

	p.ui.Row(rowH)
	if v := p.ui.Checkbox(id+"wire", "Wireframe", pl.Wireframe()); v != pl.Wireframe() {
		pl.SetWireframe(v)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
