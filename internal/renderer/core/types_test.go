package core

import (
	"image/color"
	"testing"
)

func TestColorDefault(t *testing.T) {
	if !ColorDefault.IsDefault() {
		t.Error("ColorDefault should be default")
	}
	if ColorFromRGB(1, 2, 3).IsDefault() {
		t.Error("RGB color should not be default")
	}
}

func TestColorFromImage(t *testing.T) {
	c := ColorFromImage(color.RGBA{R: 255, G: 128, B: 7, A: 255})
	if c != ColorFromRGB(255, 128, 7) {
		t.Errorf("ColorFromImage = %v", c)
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, "default"},
		{ColorFromRGB(255, 128, 64), "#FF8040"},
		{ColorBlack, "#000000"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorWhite).WithBackground(ColorGray).Bold()
	if s.Foreground != ColorWhite || s.Background != ColorGray {
		t.Errorf("colors = %v/%v", s.Foreground, s.Background)
	}
	if !s.Attributes.Has(AttrBold) {
		t.Error("expected bold")
	}
	if s.Attributes.Has(AttrReverse) {
		t.Error("unexpected reverse")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'é', 1},
		{'世', 2},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
	if got := StringWidth("ab世"); got != 4 {
		t.Errorf("StringWidth = %d, want 4", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"loupe: 1.000000", 40, "loupe: 1.000000"},
		{"loupe: 1.000000", 8, "loupe..."},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.width, "..."); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 4, 5)
	if r.Width() != 5 || r.Height() != 4 {
		t.Errorf("size = %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(3, 2) || r.Contains(8, 2) || r.Contains(3, 6) {
		t.Error("Contains mismatch")
	}

}
