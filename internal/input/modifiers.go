package input

import (
	"github.com/dshills/loupe/internal/input/key"
	"github.com/dshills/loupe/internal/input/keymap"
)

// Modifiers is the modifier sub-state derived from a key event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Meta  bool
}

// ModifiersFrom derives the modifier flags from a raw modifier mask.
// Alt and Meta both count as meta.
func ModifiersFrom(mask key.Modifier) Modifiers {
	return Modifiers{
		Shift: mask.HasShift(),
		Ctrl:  mask.HasCtrl(),
		Meta:  mask.HasAlt() || mask.HasMeta(),
	}
}

// Combo returns the dispatch table column: ctrl*1 + meta*2.
func (m Modifiers) Combo() keymap.Combo {
	return keymap.ComboOf(m.Ctrl, m.Meta)
}

// Factor is the step multiplier for resize and move: 8 with shift, else 1.
func (m Modifiers) Factor() int {
	if m.Shift {
		return 8
	}
	return 1
}

// String returns the help-style prefix of the flags, e.g. "C-M-S-".
func (m Modifiers) String() string {
	s := m.Combo().Prefix()
	if m.Shift {
		s += "S-"
	}
	return s
}
