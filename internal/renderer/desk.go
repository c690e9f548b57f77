package renderer

import (
	"image"
)

// Desk maps the desktop onto the terminal cells above the status line.
// One cell covers screen.X/cols by screen.Y/rows desktop pixels.
type Desk struct {
	screen     image.Point
	cols, rows int
}

// NewDesk creates a mapping of a screen-sized desktop onto cols×rows cells.
func NewDesk(screen image.Point, cols, rows int) *Desk {
	d := &Desk{screen: screen}
	d.Resize(cols, rows)
	return d
}

// Resize updates the terminal area. Sizes below one cell are raised to one.
func (d *Desk) Resize(cols, rows int) {
	d.cols, d.rows = max(cols, 1), max(rows, 1)
}

// SetScreen updates the desktop size.
func (d *Desk) SetScreen(screen image.Point) {
	d.screen = screen
}

// Screen returns the desktop size.
func (d *Desk) Screen() image.Point {
	return d.screen
}

// Cells returns the terminal area in cells.
func (d *Desk) Cells() (cols, rows int) {
	return d.cols, d.rows
}

// OverviewSize is the pixel size of the backdrop: one pixel per column,
// two per row.
func (d *Desk) OverviewSize() image.Point {
	return image.Pt(d.cols, d.rows*2)
}

// ToScreen maps the center of cell (col, row) to desktop coordinates.
// Cells outside the desk are clamped to its edge.
func (d *Desk) ToScreen(col, row int) image.Point {
	col = max(0, min(col, d.cols-1))
	row = max(0, min(row, d.rows-1))
	return image.Point{
		X: (2*col + 1) * d.screen.X / (2 * d.cols),
		Y: (2*row + 1) * d.screen.Y / (2 * d.rows),
	}
}

// ToCell maps a desktop point to the cell containing it. The result may
// lie outside the desk for points outside the desktop.
func (d *Desk) ToCell(p image.Point) (col, row int) {
	if d.screen.X <= 0 || d.screen.Y <= 0 {
		return 0, 0
	}
	return floorDiv(p.X*d.cols, d.screen.X), floorDiv(p.Y*d.rows, d.screen.Y)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
