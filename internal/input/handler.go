package input

import (
	"image"

	"github.com/dshills/loupe/internal/input/key"
	"github.com/dshills/loupe/internal/input/keymap"
)

// Handler receives the effects of dispatched actions.
// Implementations run on the event loop goroutine.
type Handler interface {
	// Quit ends the owning loop.
	Quit()

	// SetZoom selects zoom level 0..4.
	SetZoom(level int)

	// ShowHelp lists the key bindings.
	ShowHelp()

	// ResizeWindow grows or shrinks the capture half-extent by (dx, dy).
	ResizeWindow(dx, dy int)

	// MoveWindow moves the window by (dx, dy) screen pixels.
	MoveWindow(dx, dy int)
}

// State is the input sub-state shared with the render loop.
type State struct {
	// Modifiers holds the flags of the most recent key event.
	Modifiers Modifiers

	// Pointer is the last polled absolute pointer position.
	Pointer image.Point

	table *keymap.Table
}

// NewState creates input state around an immutable dispatch table.
// A nil table gets the default bindings.
func NewState(table *keymap.Table) *State {
	if table == nil {
		table = keymap.Default()
	}
	return &State{table: table}
}

// Table returns the dispatch table.
func (s *State) Table() *keymap.Table {
	return s.table
}

// SetPointer records the polled pointer position.
func (s *State) SetPointer(p image.Point) {
	s.Pointer = p
}

// OnKeyPress updates the modifier flags from ev, looks up the bound action
// and invokes it on h. The dispatched action is returned; unbound keys
// return NoOp and leave h untouched.
func (s *State) OnKeyPress(ev key.Event, h Handler) keymap.Action {
	s.Modifiers = ModifiersFrom(ev.Modifiers)
	action := s.table.Lookup(keymap.Normalize(ev), s.Modifiers.Combo())

	switch action.Kind {
	case keymap.KindQuit:
		h.Quit()
	case keymap.KindSetZoom:
		h.SetZoom(action.Level)
	case keymap.KindShowHelp:
		h.ShowHelp()
	case keymap.KindResize, keymap.KindMove:
		s.changeSizeOrPosition(action, h)
	}
	return action
}

// changeSizeOrPosition is shared by resize and move bindings.
// Ctrl held moves the window, otherwise the window is resized.
func (s *State) changeSizeOrPosition(action keymap.Action, h Handler) {
	f := s.Modifiers.Factor()
	dx, dy := action.DX*f, action.DY*f
	if s.Modifiers.Ctrl {
		h.MoveWindow(dx, dy)
		return
	}
	h.ResizeWindow(dx, dy)
}
