// Package input holds the keyboard and pointer state of the magnifier and
// dispatches key presses through the keymap table.
//
// The state is small: the modifier flags derived from the last key event,
// the pointer position polled once per render tick, and the immutable
// [256][4] dispatch table built at startup.
//
// Dispatch never touches capture or transform state. It calls a Handler,
// which mutates the viewport or window geometry that the render loop reads
// on its next tick.
//
// # Usage
//
//	state := input.NewState(keymap.Default())
//	action := state.OnKeyPress(ev, handler)
package input
