package renderer

import (
	"image"

	"github.com/dshills/loupe/internal/renderer/backend"
)

// Window is the magnifier window on the desktop.
// Position is in desktop coordinates, size in pixels of content.
type Window struct {
	backend backend.Backend

	pos       image.Point
	size      image.Point
	title     string
	decorated bool
	closing   bool
}

// NewWindow creates a decorated window of the given content size at (0,0).
func NewWindow(b backend.Backend, size image.Point) *Window {
	return &Window{backend: b, size: size, decorated: true}
}

// Resize sets the content size. Negative sizes are treated as zero.
func (w *Window) Resize(width, height int) {
	w.size = image.Pt(max(width, 0), max(height, 0))
}

// Move places the window's top-left corner at (x, y).
func (w *Window) Move(x, y int) {
	w.pos = image.Pt(x, y)
}

// Position returns the top-left corner.
func (w *Window) Position() image.Point {
	return w.pos
}

// Size returns the content size.
func (w *Window) Size() image.Point {
	return w.size
}

// Bounds returns the window rectangle in desktop coordinates.
func (w *Window) Bounds() image.Rectangle {
	return image.Rectangle{Min: w.pos, Max: w.pos.Add(w.size)}
}

// SetTitle sets the title shown in the frame.
func (w *Window) SetTitle(title string) {
	w.title = title
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.title
}

// SetDecorated toggles the frame and title.
func (w *Window) SetDecorated(decorated bool) {
	w.decorated = decorated
}

// Decorated reports whether the frame is drawn.
func (w *Window) Decorated() bool {
	return w.decorated
}

// RequestClose asks the event loop to close the window. The request
// arrives as a backend close event.
func (w *Window) RequestClose() {
	if w.closing {
		return
	}
	w.closing = true
	w.backend.PostEvent(backend.Event{Type: backend.EventClose})
}
