package renderer

import (
	"image"

	"github.com/dshills/loupe/internal/renderer/backend"
)

// PointerTracker remembers the last terminal mouse position and reports it
// in desktop coordinates. Terminals only deliver mouse events, so the
// render loop polls the tracker once per tick.
type PointerTracker struct {
	desk     *Desk
	col, row int
	seen     bool
}

// NewPointerTracker creates a tracker mapping through desk.
func NewPointerTracker(desk *Desk) *PointerTracker {
	return &PointerTracker{desk: desk}
}

// Observe records mouse events. It reports whether ev was one.
func (p *PointerTracker) Observe(ev backend.Event) bool {
	if ev.Type != backend.EventMouse {
		return false
	}
	p.col, p.row = ev.MouseX, ev.MouseY
	p.seen = true
	return true
}

// Position returns the pointer in desktop coordinates. Before the first
// mouse event the pointer is at the desktop center.
func (p *PointerTracker) Position() image.Point {
	if !p.seen {
		s := p.desk.Screen()
		return image.Pt(s.X/2, s.Y/2)
	}
	return p.desk.ToScreen(p.col, p.row)
}
