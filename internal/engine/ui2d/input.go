package ui2d

// InputState holds the mouse state the UI reacts to.
// The host writes the raw fields before Context.Begin.
type InputState struct {
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	MouseLeftDown bool

	// Edges computed by Update.
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// MouseLeftClicked is set from a button-down event, so a press and
	// release within one frame is not lost. A widget that handles it clears it.
	MouseLeftClicked bool

	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after updating raw input values.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
func (i *InputState) EndFrame() {
	i.MouseLeftClicked = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return Rect{x, y, w, h}.Contains(i.MouseX, i.MouseY)
}

// pressed reports a left press this frame from either edge detection or an event.
func (i *InputState) pressed() bool {
	return i.MouseLeftPressed || i.MouseLeftClicked
}
