// Package ui2d is a small immediate-mode UI for the debug panel. Drawing
// goes through a Painter so widget logic runs without a GL context.
package ui2d

import (
	"fmt"

	"github.com/Faultbox/imageplane/pkg/math"
)

// Painter receives the draw calls of one UI frame.
type Painter interface {
	Begin()
	End()
	DrawRect(x, y, w, h float32, c Color)
	DrawRectOutline(x, y, w, h, thickness float32, c Color)
	DrawText(x, y float32, text string, scale float32, c Color)
	MeasureText(text string, scale float32) (float32, float32)
}

const (
	textScale = 1
	titleBarH = 22
	padding   = 8
	rowGap    = 4
	defaultH  = 20
)

// Context is an immediate-mode UI: widgets are declared every frame and
// report their interaction through return values.
type Context struct {
	painter Painter
	input   *InputState

	hotWidget    string
	activeWidget string

	windows       map[string]*WindowState
	currentWindow *WindowState
	sections      map[string]bool

	cursorX float32
	cursorY float32
	rowH    float32

	frame uint64
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Open   bool
	Moving bool

	frame uint64 // last frame the window was declared
}

// NewContext creates a UI context drawing through p.
func NewContext(p Painter) *Context {
	return &Context{
		painter:  p,
		input:    &InputState{},
		windows:  make(map[string]*WindowState),
		sections: make(map[string]bool),
	}
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.frame++
	c.hotWidget = ""
	c.painter.Begin()
}

// End finishes the UI frame.
func (c *Context) End() {
	c.painter.End()
	c.input.EndFrame()
}

// WantsMouse reports whether the pointer is over a window drawn in the last
// frame or a widget is being dragged. The host should not forward such input
// to the scene.
func (c *Context) WantsMouse() bool {
	if c.activeWidget != "" {
		return true
	}
	for _, ws := range c.windows {
		if ws.Open && ws.frame == c.frame && c.input.IsMouseInRect(ws.X, ws.Y, ws.W, ws.H) {
			return true
		}
	}
	return false
}

// BeginWindow starts a window at (x, y) with width w. The height follows
// the content of the previous frame. Returns false if the window is closed.
func (c *Context) BeginWindow(id string, x, y, w float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, X: x, Y: y, W: w, H: titleBarH, Open: true}
		c.windows[id] = ws
	}
	ws.W = w
	ws.frame = c.frame

	if !ws.Open {
		return false
	}
	c.currentWindow = ws

	// Dragging by the title bar.
	titleID := id + "_titlebar"
	if ws.Moving {
		if c.input.MouseLeftDown {
			ws.X += c.input.MouseDeltaX
			ws.Y += c.input.MouseDeltaY
		} else {
			ws.Moving = false
			if c.activeWidget == titleID {
				c.activeWidget = ""
			}
		}
	}
	if c.input.pressed() && (Rect{ws.X, ws.Y, ws.W, titleBarH}).Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		c.activeWidget = titleID
		c.input.MouseLeftClicked = false
	}

	c.painter.DrawRect(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg)
	c.painter.DrawRectOutline(ws.X, ws.Y, ws.W, ws.H, 1, ColorPanelBorder)
	c.painter.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorHeader)

	_, textH := c.painter.MeasureText(title, textScale)
	c.painter.DrawText(ws.X+padding, ws.Y+(titleBarH-textH)/2, title, textScale, ColorText)

	c.cursorX = ws.X + padding
	c.cursorY = ws.Y + titleBarH + padding
	c.rowH = 0
	return true
}

// EndWindow ends the current window and records its content height.
func (c *Context) EndWindow() {
	if ws := c.currentWindow; ws != nil {
		ws.H = c.cursorY + c.rowH + padding - ws.Y
	}
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	if c.rowH > 0 {
		c.cursorY += c.rowH + rowGap
	}
	c.cursorX = c.currentWindow.X + padding
	c.rowH = height
}

func (c *Context) contentWidth() float32 {
	return c.currentWindow.W - padding*2
}

func (c *Context) widgetID(id string) string {
	return c.currentWindow.ID + "_" + id
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.painter.DrawText(c.cursorX, c.cursorY, text, textScale, color)
	w, _ := c.painter.MeasureText(text, textScale)
	c.cursorX += w + rowGap
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x, y, h := c.cursorX, c.cursorY, c.rowOrDefault()
	if width == 0 {
		width = c.contentWidth()
	}

	fullID := c.widgetID(id)
	hovered := (Rect{x, y, width, h}).Contains(c.input.MouseX, c.input.MouseY)
	clicked := false

	if hovered {
		c.hotWidget = fullID
		if c.input.pressed() {
			c.activeWidget = fullID
			clicked = true
			c.input.MouseLeftClicked = false
		}
	}
	if c.activeWidget == fullID && !c.input.MouseLeftDown && !clicked {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}
	c.painter.DrawRect(x, y, width, h, color)
	c.painter.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	textW, textH := c.painter.MeasureText(label, textScale)
	c.painter.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, textScale, ColorText)

	c.cursorX += width + rowGap
	return clicked
}

// Checkbox draws a checkbox and returns the new value.
// The value flips when a press starts and ends on the box.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	x, y := c.cursorX, c.cursorY
	const boxSize = 14

	fullID := c.widgetID(id)
	labelW, textH := c.painter.MeasureText(label, textScale)
	hovered := (Rect{x, y, boxSize + padding + labelW, boxSize}).Contains(c.input.MouseX, c.input.MouseY)

	if hovered && c.input.pressed() {
		c.activeWidget = fullID
		c.input.MouseLeftClicked = false
	}
	if c.activeWidget == fullID && !c.input.MouseLeftDown {
		if hovered {
			checked = !checked
		}
		c.activeWidget = ""
	}

	bg := ColorInputBg
	if hovered {
		bg = ColorButtonHover
	}
	c.painter.DrawRect(x, y, boxSize, boxSize, bg)
	c.painter.DrawRectOutline(x, y, boxSize, boxSize, 1, ColorPanelBorder)
	if checked {
		const inset = 3
		c.painter.DrawRect(x+inset, y+inset, boxSize-inset*2, boxSize-inset*2, ColorHighlight)
	}
	c.painter.DrawText(x+boxSize+padding, y+(boxSize-textH)/2, label, textScale, ColorText)

	c.cursorX += boxSize + padding + labelW + padding
	return checked
}

// SliderFloat draws a horizontal slider bound to *value and reports whether
// the value changed. Dragging anywhere on the track sets the value.
func (c *Context) SliderFloat(id, label string, value *float32, lo, hi float32) bool {
	if c.currentWindow == nil || hi <= lo {
		return false
	}

	x, y, h := c.cursorX, c.cursorY, c.rowOrDefault()
	width := c.currentWindow.X + c.currentWindow.W - padding - x

	fullID := c.widgetID(id)
	hovered := (Rect{x, y, width, h}).Contains(c.input.MouseX, c.input.MouseY)
	if hovered && c.input.pressed() {
		c.activeWidget = fullID
		c.input.MouseLeftClicked = false
	}

	changed := false
	if c.activeWidget == fullID {
		if c.input.MouseLeftDown || c.input.MouseLeftPressed {
			t := math.Clamp((c.input.MouseX-x)/width, 0, 1)
			v := math.Lerp(lo, hi, t)
			if v != *value {
				*value = v
				changed = true
			}
		} else {
			c.activeWidget = ""
		}
	}

	frac := math.Clamp((*value-lo)/(hi-lo), 0, 1)
	c.painter.DrawRect(x, y, width, h, ColorInputBg)
	fill := ColorButtonActive
	if hovered || c.activeWidget == fullID {
		fill = ColorHighlight
	}
	c.painter.DrawRect(x+1, y+1, (width-2)*frac, h-2, fill)
	c.painter.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	text := fmt.Sprintf("%s %.3f", label, *value)
	_, textH := c.painter.MeasureText(text, textScale)
	c.painter.DrawText(x+4, y+(h-textH)/2, text, textScale, ColorText)

	c.cursorX += width + rowGap
	return changed
}

// CollapsingHeader draws a section header and reports whether its content
// should be drawn. Sections start open.
func (c *Context) CollapsingHeader(id, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	fullID := c.widgetID(id)
	collapsed := c.sections[fullID]

	x, y, h := c.cursorX, c.cursorY, c.rowOrDefault()
	width := c.contentWidth()
	hovered := (Rect{x, y, width, h}).Contains(c.input.MouseX, c.input.MouseY)
	if hovered && c.input.pressed() {
		collapsed = !collapsed
		c.sections[fullID] = collapsed
		c.input.MouseLeftClicked = false
	}

	bg := ColorHeader
	if hovered {
		bg = ColorButtonHover
	}
	c.painter.DrawRect(x, y, width, h, bg)

	marker := "v "
	if collapsed {
		marker = "> "
	}
	_, textH := c.painter.MeasureText(label, textScale)
	c.painter.DrawText(x+4, y+(h-textH)/2, marker+label, textScale, ColorText)

	c.cursorX += width + rowGap
	return !collapsed
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + rowGap
	c.rowH = 0
	x := c.currentWindow.X + padding
	c.painter.DrawRect(x, c.cursorY, c.contentWidth(), 1, ColorPanelBorder)
	c.cursorY += rowGap
	c.cursorX = x
}

// Window returns the state of window id, or nil before its first frame.
func (c *Context) Window(id string) *WindowState {
	return c.windows[id]
}

// Spacer adds vertical space.
func (c *Context) Spacer(height float32) {
	c.cursorY += height
}

func (c *Context) rowOrDefault() float32 {
	if c.rowH == 0 {
		return defaultH
	}
	return c.rowH
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
