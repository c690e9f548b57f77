package keymap

import "fmt"

// Kind identifies the variant of an Action.
type Kind uint8

const (
	// KindNoOp does nothing. Every unbound table cell holds it.
	KindNoOp Kind = iota
	// KindQuit ends the application loop.
	KindQuit
	// KindSetZoom selects a discrete zoom level.
	KindSetZoom
	// KindShowHelp lists the bindings.
	KindShowHelp
	// KindResize grows or shrinks the window.
	KindResize
	// KindMove moves the window.
	KindMove
)

// String returns the name of the action kind.
func (k Kind) String() string {
	switch k {
	case KindNoOp:
		return "noop"
	case KindQuit:
		return "quit"
	case KindSetZoom:
		return "zoom"
	case KindShowHelp:
		return "help"
	case KindResize:
		return "resize"
	case KindMove:
		return "move"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Action is a tagged variant bound to a dispatch table cell.
// Only the fields relevant to Kind are meaningful.
type Action struct {
	Kind Kind

	// Level is the zoom level for KindSetZoom.
	Level int

	// DX and DY are the unit deltas for KindResize and KindMove.
	DX, DY int

	// Description is the one-line help text.
	Description string
}

// NoOp returns the action held by unbound cells.
func NoOp() Action {
	return Action{Kind: KindNoOp}
}

// Quit returns the quit action.
func Quit() Action {
	return Action{Kind: KindQuit, Description: "Quit"}
}

// ShowHelp returns the help action.
func ShowHelp() Action {
	return Action{Kind: KindShowHelp, Description: "Display this key binding list"}
}

// SetZoom returns a zoom selection action for level.
func SetZoom(level int) Action {
	return Action{
		Kind:        KindSetZoom,
		Level:       level,
		Description: "Assign new zoom factor (1+3*k/9)",
	}
}

// Resize returns a window resize action by the unit delta (dx, dy).
func Resize(dx, dy int) Action {
	return Action{Kind: KindResize, DX: dx, DY: dy, Description: describeDelta(dx, dy)}
}

// Move returns a window move action by the unit delta (dx, dy).
func Move(dx, dy int) Action {
	return Action{Kind: KindMove, DX: dx, DY: dy, Description: describeDelta(dx, dy)}
}

// IsNoOp reports whether the action does nothing.
func (a Action) IsNoOp() bool {
	return a.Kind == KindNoOp
}

// String returns a short debug representation.
func (a Action) String() string {
	switch a.Kind {
	case KindSetZoom:
		return fmt.Sprintf("zoom(%d)", a.Level)
	case KindResize, KindMove:
		return fmt.Sprintf("%s(%d,%d)", a.Kind, a.DX, a.DY)
	default:
		return a.Kind.String()
	}
}

func describeDelta(dx, dy int) string {
	if dy == 0 {
		return "Change the window horizontally"
	}
	if dx == 0 {
		return "Change the window vertically"
	}
	return "Change the window"
}
