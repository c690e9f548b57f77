package renderer

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/dshills/loupe/internal/renderer/backend"
	"github.com/dshills/loupe/internal/renderer/core"
)

func newTestSurface(t *testing.T, cols, rows int, screen image.Point) (*Surface, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(cols, rows)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	desk := NewDesk(screen, cols, rows-StatusHeight)
	w := NewWindow(b, image.Pt(4, 4))
	return NewSurface(b, desk, w, NewStatusLine("loupe")), b
}

func TestDeskMapping(t *testing.T) {
	d := NewDesk(image.Pt(1280, 800), 160, 50)

	tests := []struct {
		col, row int
		want     image.Point
	}{
		{0, 0, image.Pt(4, 8)},
		{80, 25, image.Pt(644, 408)},
		{159, 49, image.Pt(1276, 792)},
		{500, -3, image.Pt(1276, 8)},
	}
	for _, tt := range tests {
		if got := d.ToScreen(tt.col, tt.row); got != tt.want {
			t.Errorf("ToScreen(%d,%d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}

	col, row := d.ToCell(image.Pt(644, 408))
	if col != 80 || row != 25 {
		t.Errorf("ToCell = %d,%d, want 80,25", col, row)
	}
	col, row = d.ToCell(image.Pt(-1, -17))
	if col != -1 || row != -2 {
		t.Errorf("ToCell of negative point = %d,%d, want -1,-2", col, row)
	}

	if got := d.OverviewSize(); got != image.Pt(160, 100) {
		t.Errorf("OverviewSize = %v", got)
	}
}

func TestDeskResizeFloor(t *testing.T) {
	d := NewDesk(image.Pt(100, 100), 0, -4)
	if c, r := d.Cells(); c != 1 || r != 1 {
		t.Errorf("Cells() = %d,%d, want 1,1", c, r)
	}
}

func TestPointerTracker(t *testing.T) {
	d := NewDesk(image.Pt(1280, 800), 160, 50)
	p := NewPointerTracker(d)

	if got := p.Position(); got != image.Pt(640, 400) {
		t.Errorf("initial Position = %v, want screen center", got)
	}

	if p.Observe(backend.Event{Type: backend.EventKey}) {
		t.Error("key event should not be observed")
	}
	if !p.Observe(backend.Event{Type: backend.EventMouse, MouseX: 0, MouseY: 0}) {
		t.Error("mouse event should be observed")
	}
	if got := p.Position(); got != image.Pt(4, 8) {
		t.Errorf("Position = %v, want (4,8)", got)
	}
}

func TestWindow(t *testing.T) {
	b := backend.NewNullBackend(10, 10)
	b.Init()
	w := NewWindow(b, image.Pt(200, 100))

	w.Move(30, 40)
	w.Resize(128, -5)
	w.SetTitle("loupe: 1.000000")

	if w.Position() != image.Pt(30, 40) {
		t.Errorf("Position = %v", w.Position())
	}
	if w.Size() != image.Pt(128, 0) {
		t.Errorf("Size = %v", w.Size())
	}
	if w.Bounds() != image.Rect(30, 40, 158, 40) {
		t.Errorf("Bounds = %v", w.Bounds())
	}
	if w.Title() != "loupe: 1.000000" {
		t.Errorf("Title = %q", w.Title())
	}
	if !w.Decorated() {
		t.Error("new windows are decorated")
	}
}

func TestWindowRequestClose(t *testing.T) {
	b := backend.NewNullBackend(10, 10)
	b.Init()
	w := NewWindow(b, image.Pt(10, 10))

	w.RequestClose()
	w.RequestClose()

	if ev := b.PollEvent(); ev.Type != backend.EventClose {
		t.Fatalf("event = %v, want close", ev.Type)
	}
	b.PostEvent(backend.Event{Type: backend.EventKey})
	if ev := b.PollEvent(); ev.Type != backend.EventKey {
		t.Errorf("second RequestClose should not post again, got %v", ev.Type)
	}
}

func TestSurfacePaintHalfBlocks(t *testing.T) {
	s, b := newTestSurface(t, 20, 10, image.Pt(20, 9))
	s.Window().SetDecorated(false)
	s.Window().Move(2, 1)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(10 * x), G: uint8(10 * y), B: 7, A: 0xff})
		}
	}

	s.Clear()
	s.Paint(img, image.Point{})
	s.Show()

	// Window (2,1) on a 20×9 desk of 20×9 cells is cell (2,1).
	for r := 0; r < 2; r++ {
		for x := 0; x < 4; x++ {
			cell := b.GetCell(2+x, 1+r)
			if cell.Rune != HalfBlock {
				t.Fatalf("cell (%d,%d) rune = %q", 2+x, 1+r, cell.Rune)
			}
			wantFg := core.ColorFromRGB(uint8(10*x), uint8(10*2*r), 7)
			wantBg := core.ColorFromRGB(uint8(10*x), uint8(10*(2*r+1)), 7)
			if cell.Style.Foreground != wantFg {
				t.Errorf("cell (%d,%d) fg = %v, want %v", x, r, cell.Style.Foreground, wantFg)
			}
			if cell.Style.Background != wantBg {
				t.Errorf("cell (%d,%d) bg = %v, want %v", x, r, cell.Style.Background, wantBg)
			}
		}
	}
	if b.Shows() != 1 {
		t.Errorf("Shows() = %d, want 1", b.Shows())
	}
}

func TestSurfaceClearIsBlack(t *testing.T) {
	s, _ := newTestSurface(t, 20, 10, image.Pt(20, 9))
	s.Window().Resize(6, 3)
	s.Clear()

	c := s.Canvas()
	if c.Bounds() != image.Rect(0, 0, 6, 3) {
		t.Fatalf("canvas bounds = %v", c.Bounds())
	}
	for i := 0; i < len(c.Pix); i += 4 {
		if c.Pix[i] != 0 || c.Pix[i+1] != 0 || c.Pix[i+2] != 0 || c.Pix[i+3] != 0xff {
			t.Fatalf("canvas not black at byte %d", i)
		}
	}
}

func TestSurfacePaintClips(t *testing.T) {
	s, _ := newTestSurface(t, 20, 10, image.Pt(20, 9))
	s.Clear()

	big := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range big.Pix {
		big.Pix[i] = 0xff
	}
	s.Paint(big, image.Pt(2, 2))

	c := s.Canvas()
	if got := c.RGBAAt(1, 1); got != black {
		t.Errorf("pixel (1,1) = %v, want black", got)
	}
	if got := c.RGBAAt(3, 3); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("pixel (3,3) = %v, want white", got)
	}
}

func TestSurfaceFrameAndTitle(t *testing.T) {
	s, b := newTestSurface(t, 30, 12, image.Pt(30, 11))
	w := s.Window()
	w.Resize(12, 4)
	w.Move(5, 3)
	w.SetTitle("zoom")

	s.Clear()
	s.Show()

	if got := b.GetCell(4, 2).Rune; got != '┌' {
		t.Errorf("top-left = %q", got)
	}
	if got := b.GetCell(17, 5).Rune; got != '┘' {
		t.Errorf("bottom-right = %q", got)
	}
	var title strings.Builder
	for c := 6; c < 12; c++ {
		title.WriteRune(b.GetCell(c, 2).Rune)
	}
	if title.String() != " zoom " {
		t.Errorf("title = %q", title.String())
	}

	w.SetDecorated(false)
	b.Clear()
	s.Show()
	if got := b.GetCell(4, 2).Rune; got == '┌' {
		t.Error("undecorated window should have no frame")
	}
}

func TestSurfaceKeepsWindowOnDesk(t *testing.T) {
	// 20×9 cells over a 200×90 desktop: ten desktop pixels per cell.
	s, b := newTestSurface(t, 20, 10, image.Pt(200, 90))
	w := s.Window()
	w.Resize(8, 4)
	w.Move(190, 80)

	s.Clear()
	s.Show()

	if got := b.GetCell(10, 5).Rune; got != '┌' {
		t.Errorf("top-left = %q, want frame corner at (10,5)", got)
	}
	if got := b.GetCell(19, 8).Rune; got != '┘' {
		t.Errorf("bottom-right = %q, want frame corner at (19,8)", got)
	}
	if got := b.GetCell(11, 6).Rune; got != HalfBlock {
		t.Errorf("content cell = %q, want %q", got, HalfBlock)
	}

	// A window wider than the desk starts at the left edge and is clipped;
	// its two cell rows end on the last desk row.
	w.Resize(40, 4)
	w.SetDecorated(false)
	b.Clear()
	s.Clear()
	s.Show()
	if got := b.GetCell(0, 7).Rune; got != HalfBlock {
		t.Errorf("wide window first cell = %q, want %q", got, HalfBlock)
	}
}

func TestSurfaceBackdrop(t *testing.T) {
	s, b := newTestSurface(t, 8, 5, image.Pt(80, 80))
	s.Window().SetDecorated(false)
	s.Window().Resize(0, 0)

	screen := image.NewRGBA(image.Rect(0, 0, 80, 80))
	for i := 0; i < len(screen.Pix); i += 4 {
		screen.Pix[i], screen.Pix[i+1], screen.Pix[i+2], screen.Pix[i+3] = 1, 2, 3, 0xff
	}
	if s.HasBackdrop() {
		t.Fatal("backdrop before render")
	}
	s.RenderBackdrop(screen)
	s.Clear()
	s.Show()

	cell := b.GetCell(7, 3)
	if cell.Rune != HalfBlock || cell.Style.Foreground != core.ColorFromRGB(1, 2, 3) {
		t.Errorf("backdrop cell = %+v", cell)
	}

	s.Resize(10, 6)
	if s.HasBackdrop() {
		t.Error("Resize should drop the backdrop")
	}
	if c, r := s.Desk().Cells(); c != 10 || r != 5 {
		t.Errorf("desk cells = %d,%d, want 10,5", c, r)
	}
}

func TestSurfaceOverlay(t *testing.T) {
	s, b := newTestSurface(t, 40, 12, image.Pt(40, 11))
	s.SetOverlay([]string{"q\tQuit", "?\tDisplay this key binding list"})
	s.Clear()
	s.Show()

	found := false
	for row := 0; row < 11 && !found; row++ {
		var line strings.Builder
		for col := 0; col < 40; col++ {
			line.WriteRune(b.GetCell(col, row).Rune)
		}
		found = strings.Contains(line.String(), "q       Quit")
	}
	if !found {
		t.Error("overlay line not drawn")
	}

	if !s.ClearOverlay() {
		t.Error("ClearOverlay should report a shown overlay")
	}
	if s.ClearOverlay() {
		t.Error("second ClearOverlay should report nothing shown")
	}
}

func TestStatusLine(t *testing.T) {
	b := backend.NewNullBackend(80, 2)
	b.Init()

	st := NewStatusLine("loupe")
	st.SetZoom(1.6666)
	st.SetTransform("invert")
	st.SetMobile(true)
	st.SetPointer(image.Pt(640, 400))

	want := " loupe │ zoom 1.67 │ invert │ mobile │ 640,400 "
	if got := st.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	st.SetMessage("capture failed", MessageWarning)
	st.Render(b, 1, 80)

	var line strings.Builder
	for col := 0; col < 80; col++ {
		line.WriteRune(b.GetCell(col, 1).Rune)
	}
	if !strings.HasSuffix(line.String(), "capture failed ") {
		t.Errorf("status line = %q", line.String())
	}
	if !strings.HasPrefix(line.String(), " loupe") {
		t.Errorf("status line = %q", line.String())
	}

	st.ClearMessage()
	if st.Message() != "" {
		t.Error("message not cleared")
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"q\tQuit", "q       Quit"},
		{"C-M-h\tx", "C-M-h   x"},
	}
	for _, tt := range tests {
		if got := expandTabs(tt.in, 8); got != tt.want {
			t.Errorf("expandTabs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
