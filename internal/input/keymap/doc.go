// Package keymap provides the fixed key dispatch table of the magnifier.
//
// The table maps an 8-bit key code and one of four modifier combinations
// to an Action:
//
//	combination = ctrl*1 + meta*2   // none, C-, M-, C-M-
//
// Key codes are ASCII characters. Special keys are folded into that space
// by Normalize before lookup: the arrow keys alias the h/j/k/l navigation
// keys and every other key outside ASCII resolves to the unhandled code.
// Cells that were never bound hold the NoOp action.
//
// # Usage
//
//	table := keymap.Default()
//	code := keymap.Normalize(ev)
//	action := table.Lookup(code, keymap.ComboOf(ctrl, meta))
//
// The table is built once and never mutated afterwards.
package keymap
