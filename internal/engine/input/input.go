// Package input drains the SDL event queue into the few events the frame
// loop reacts to.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Kind identifies an event.
type Kind uint8

const (
	Resize Kind = iota + 1
	KeyDown
	PointerMove
	PointerDown
	PointerUp
)

// Event is one frame-loop event. X and Y are window pixels for pointer
// events; Width and Height are set for Resize.
type Event struct {
	Kind   Kind
	Sym    sdl.Keycode
	Repeat bool
	X, Y   int
	Button uint8
	Width  int
	Height int
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates an empty event queue.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update replaces the queued events with everything SDL has pending.
// It returns true when a quit was requested; later events stay in SDL.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if _, quit := ev.(*sdl.QuitEvent); quit {
			return true
		}
		if e, ok := translate(ev); ok {
			i.events = append(i.events, e)
		}
	}
	return false
}

// Events returns the events collected by the last Update.
func (i *Input) Events() []Event {
	return i.events
}

func translate(ev sdl.Event) (Event, bool) {
	switch e := ev.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Kind: Resize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return Event{Kind: KeyDown, Sym: e.Keysym.Sym, Repeat: e.Repeat != 0}, true
		}
	case *sdl.MouseMotionEvent:
		return Event{Kind: PointerMove, X: int(e.X), Y: int(e.Y)}, true
	case *sdl.MouseButtonEvent:
		kind := PointerDown
		if e.Type == sdl.MOUSEBUTTONUP {
			kind = PointerUp
		}
		return Event{Kind: kind, X: int(e.X), Y: int(e.Y), Button: e.Button}, true
	}
	return Event{}, false
}
