package keymap

import (
	"github.com/dshills/loupe/internal/input/key"
)

// Combo is one of the four modifier combinations of the table.
type Combo uint8

const (
	ComboNone Combo = iota
	ComboCtrl
	ComboMeta
	ComboCtrlMeta

	numCombos = 4
)

// Unhandled is the code every non-ASCII, non-aliased key resolves to.
const Unhandled byte = '$'

// ComboOf computes ctrl*1 + meta*2.
func ComboOf(ctrl, meta bool) Combo {
	var c Combo
	if ctrl {
		c |= ComboCtrl
	}
	if meta {
		c |= ComboMeta
	}
	return c
}

// Prefix returns the help notation for the combination: "", "C-", "M-" or "C-M-".
func (c Combo) Prefix() string {
	var p string
	if c&ComboCtrl != 0 {
		p += "C-"
	}
	if c&ComboMeta != 0 {
		p += "M-"
	}
	return p
}

// aliases folds special keys into the ASCII navigation keys.
var aliases = map[key.Key]byte{
	key.KeyLeft:  'h',
	key.KeyDown:  'j',
	key.KeyUp:    'k',
	key.KeyRight: 'l',
}

// Normalize maps a key event to a table code.
// ASCII runes map to themselves, arrow keys to h/j/k/l, everything else
// to Unhandled.
func Normalize(ev key.Event) byte {
	if ev.Key == key.KeyRune {
		if ev.Rune > 0 && ev.Rune <= 127 {
			return byte(ev.Rune)
		}
		return Unhandled
	}
	if code, ok := aliases[ev.Key]; ok {
		return code
	}
	return Unhandled
}

// Table is the [256][4] dispatch table.
// The zero value has every cell bound to NoOp.
type Table struct {
	cells [256][numCombos]Action
}

// Lookup returns the action bound to (code, combo).
func (t *Table) Lookup(code byte, combo Combo) Action {
	if combo >= numCombos {
		return NoOp()
	}
	return t.cells[code][combo]
}

// bind sets a cell. Only used while building a table.
func (t *Table) bind(code byte, combo Combo, action Action) {
	t.cells[code][combo] = action
}

// Default builds the standard bindings:
//
//	0-4        zoom level (5-9 stay unbound)
//	q          quit
//	?          help
//	h j k l    resize window; with C- move it; with M- resize
func Default() *Table {
	t := &Table{}

	// Only 0-4 select a zoom level; 5-9 are deliberately left unbound.
	for c := byte('0'); c <= '4'; c++ {
		t.bind(c, ComboNone, SetZoom(int(c-'0')))
	}

	t.bind('q', ComboNone, Quit())
	t.bind('?', ComboNone, ShowHelp())

	arrows := []struct {
		code   byte
		dx, dy int
	}{
		{'h', -1, 0},
		{'j', 0, 1},
		{'k', 0, -1},
		{'l', 1, 0},
	}
	for _, a := range arrows {
		t.bind(a.code, ComboNone, Resize(a.dx, a.dy))
		t.bind(a.code, ComboCtrl, Move(a.dx, a.dy))
		t.bind(a.code, ComboMeta, Resize(a.dx, a.dy))
	}

	return t
}
