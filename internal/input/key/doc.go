// Package key provides the key event types delivered by the display backend.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers and timestamp
//
// Backends translate their native events into Event values; the keymap
// package then folds an Event into the 8-bit code space of the dispatch
// table.
package key
