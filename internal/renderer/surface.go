package renderer

import (
	"image"
	"image/color"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/dshills/loupe/internal/pixel"
	"github.com/dshills/loupe/internal/renderer/backend"
	"github.com/dshills/loupe/internal/renderer/core"
)

// HalfBlock is the glyph used to draw two pixels per cell.
const HalfBlock = '▀'

var (
	black      = color.RGBA{A: 0xff}
	frameStyle = core.DefaultStyle().WithForeground(core.ColorFromRGB(200, 200, 200)).WithBackground(core.ColorBlack)
	titleStyle = frameStyle.WithForeground(core.ColorWhite).Bold()
	helpStyle  = core.DefaultStyle().WithForeground(core.ColorWhite).WithBackground(core.ColorFromRGB(30, 30, 60))
)

// Surface is the drawing surface of the window.
//
// Clear and Paint work on an off-screen canvas the size of the window;
// Show composes backdrop, canvas, frame, help overlay and status line
// into the terminal and flushes it.
//
// The backdrop is a scaled overview of the desktop, but the window content
// is drawn at one pixel per column and two per row, so the window covers
// more cells than its footprint on the overview. Its position is mapped
// through the Desk and then pulled back from the right and bottom edges so
// the content stays on the terminal whenever it fits.
type Surface struct {
	backend backend.Backend
	desk    *Desk
	window  *Window
	status  *StatusLine

	canvas   *image.RGBA
	backdrop *image.RGBA
	overlay  []string
}

// NewSurface creates the surface of window on desk.
func NewSurface(b backend.Backend, desk *Desk, window *Window, status *StatusLine) *Surface {
	if status == nil {
		status = NewStatusLine("")
	}
	return &Surface{
		backend: b,
		desk:    desk,
		window:  window,
		status:  status,
	}
}

// Desk returns the desktop mapping.
func (s *Surface) Desk() *Desk { return s.desk }

// Window returns the window the surface belongs to.
func (s *Surface) Window() *Window { return s.window }

// Canvas returns the window canvas, nil before the first Clear.
func (s *Surface) Canvas() *image.RGBA { return s.canvas }

// Resize adapts the desk to a terminal of cols×rows cells. The backdrop
// is dropped and must be rendered again.
func (s *Surface) Resize(cols, rows int) {
	s.desk.Resize(cols, rows-StatusHeight)
	s.backdrop = nil
}

// RenderBackdrop scales the full screen image down to the desk overview.
func (s *Surface) RenderBackdrop(screen *image.RGBA) {
	size := s.desk.OverviewSize()
	s.backdrop = pixel.Resize(s.backdrop, size.X, size.Y)
	pixel.ScaleNearest(s.backdrop, screen)
}

// HasBackdrop reports whether a backdrop is rendered.
func (s *Surface) HasBackdrop() bool {
	return s.backdrop != nil
}

// Clear sizes the canvas to the window and fills it with black.
func (s *Surface) Clear() {
	size := s.window.Size()
	s.canvas = pixel.Resize(s.canvas, size.X, size.Y)
	for i := 0; i < len(s.canvas.Pix); i += 4 {
		s.canvas.Pix[i+0] = black.R
		s.canvas.Pix[i+1] = black.G
		s.canvas.Pix[i+2] = black.B
		s.canvas.Pix[i+3] = black.A
	}
}

// Paint copies img into the canvas with its top-left corner at origin.
// Pixels outside the canvas are dropped.
func (s *Surface) Paint(img image.Image, origin image.Point) {
	if s.canvas == nil {
		s.Clear()
	}
	xdraw.Copy(s.canvas, origin, img, img.Bounds(), xdraw.Src, nil)
}

// SetOverlay shows lines in a box over the desk until cleared.
func (s *Surface) SetOverlay(lines []string) {
	s.overlay = lines
}

// ClearOverlay hides the overlay. It reports whether one was shown.
func (s *Surface) ClearOverlay() bool {
	shown := s.overlay != nil
	s.overlay = nil
	return shown
}

// Overlay returns the overlay lines.
func (s *Surface) Overlay() []string {
	return s.overlay
}

// Show composes the terminal and flushes it.
func (s *Surface) Show() {
	cols, rows := s.desk.Cells()
	area := core.RectFromSize(0, 0, rows, cols)

	if s.backdrop != nil {
		s.drawPixels(s.backdrop, 0, 0, area)
	} else {
		s.backend.Fill(area, core.EmptyCell())
	}

	col, row := s.windowCell(area)
	if s.canvas != nil {
		s.drawPixels(s.canvas, col, row, area)
	}
	if s.window.Decorated() {
		s.drawFrame(col, row, area)
	}
	if s.overlay != nil {
		s.drawOverlay(area)
	}

	s.status.Render(s.backend, rows, cols)
	s.backend.Show()
}

// windowCell returns the cell of the window's top-left content pixel,
// keeping content and frame inside area when they fit.
func (s *Surface) windowCell(area core.ScreenRect) (col, row int) {
	col, row = s.desk.ToCell(s.window.Position())
	size := s.window.Size()
	border := 0
	if s.window.Decorated() {
		border = 1
	}
	col = max(min(col, area.Right-border-size.X), area.Left+border)
	row = max(min(row, area.Bottom-border-cellRows(size.Y)), area.Top+border)
	return col, row
}

// drawPixels draws img from cell (col0, row0): pixel (x, 2r) becomes the
// foreground and (x, 2r+1) the background of cell (col0+x, row0+r).
// Cells outside clip are skipped.
func (s *Surface) drawPixels(img *image.RGBA, col0, row0 int, clip core.ScreenRect) {
	b := img.Bounds()
	for r := 0; 2*r < b.Dy(); r++ {
		row := row0 + r
		if row < clip.Top || row >= clip.Bottom {
			continue
		}
		for x := 0; x < b.Dx(); x++ {
			col := col0 + x
			if col < clip.Left || col >= clip.Right {
				continue
			}
			upper := img.RGBAAt(b.Min.X+x, b.Min.Y+2*r)
			lower := black
			if 2*r+1 < b.Dy() {
				lower = img.RGBAAt(b.Min.X+x, b.Min.Y+2*r+1)
			}
			style := core.DefaultStyle().
				WithForeground(core.ColorFromImage(upper)).
				WithBackground(core.ColorFromImage(lower))
			s.backend.SetCell(col, row, core.Cell{Rune: HalfBlock, Width: 1, Style: style})
		}
	}
}

// cellRows is the number of cell rows a canvas of height h occupies.
func cellRows(h int) int {
	return (h + 1) / 2
}

// drawFrame draws a box around the window content at (col, row) with the
// title on its top edge.
func (s *Surface) drawFrame(col, row int, clip core.ScreenRect) {
	size := s.window.Size()
	left, right := col-1, col+size.X
	top, bottom := row-1, row+cellRows(size.Y)

	set := func(c, r int, ch rune, style core.Style) {
		if clip.Contains(c, r) {
			s.backend.SetCell(c, r, core.Cell{Rune: ch, Width: 1, Style: style})
		}
	}

	for c := left + 1; c < right; c++ {
		set(c, top, '─', frameStyle)
		set(c, bottom, '─', frameStyle)
	}
	for r := top + 1; r < bottom; r++ {
		set(left, r, '│', frameStyle)
		set(right, r, '│', frameStyle)
	}
	set(left, top, '┌', frameStyle)
	set(right, top, '┐', frameStyle)
	set(left, bottom, '└', frameStyle)
	set(right, bottom, '┘', frameStyle)

	title := s.window.Title()
	if title == "" || size.X < 4 {
		return
	}
	title = core.Truncate(" "+title+" ", size.X-2, "… ")
	c := col + 1
	for _, r := range title {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if clip.Contains(c, top) {
			s.backend.SetCell(c, top, core.Cell{Rune: r, Width: w, Style: titleStyle})
		}
		c += w
	}
}

// drawOverlay draws the overlay lines in a box centered on the desk.
func (s *Surface) drawOverlay(area core.ScreenRect) {
	lines := make([]string, len(s.overlay))
	width := 0
	for i, l := range s.overlay {
		lines[i] = expandTabs(l, 8)
		width = max(width, core.StringWidth(lines[i]))
	}

	boxW := min(width+4, area.Width())
	boxH := min(len(lines)+2, area.Height())
	if boxW <= 4 || boxH <= 2 {
		return
	}
	box := core.RectFromSize(area.Top+(area.Height()-boxH)/2, area.Left+(area.Width()-boxW)/2, boxH, boxW)
	s.backend.Fill(box, core.Cell{Rune: ' ', Width: 1, Style: helpStyle})

	for i := 0; i < boxH-2; i++ {
		line := core.Truncate(lines[i], boxW-4, "…")
		putString(s.backend, box.Left+2, box.Top+1+i, line, helpStyle)
	}
}

// expandTabs replaces tabs with spaces up to the next multiple of width.
func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += core.RuneWidth(r)
	}
	return sb.String()
}
