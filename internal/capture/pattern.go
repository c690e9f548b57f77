package capture

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// GridSpacing is the distance between grid lines of the synthetic desktop.
const GridSpacing = 32

// PatternSource is a deterministic synthetic desktop: a hue sweep along x,
// a brightness ramp along y and a grid every GridSpacing pixels.
type PatternSource struct {
	screen *image.RGBA
	closed atomic.Bool
}

// NewPatternSource renders a width×height synthetic desktop.
func NewPatternSource(width, height int) *PatternSource {
	return &PatternSource{screen: renderPattern(width, height)}
}

func renderPattern(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	grid := color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

	for y := 0; y < height; y++ {
		v := 1.0 - 0.65*float64(y)/float64(max(height-1, 1))
		for x := 0; x < width; x++ {
			if x%GridSpacing == 0 || y%GridSpacing == 0 {
				img.SetRGBA(x, y, grid)
				continue
			}
			h := 360.0 * float64(x) / float64(width)
			r, g, b := colorful.Hsv(h, 0.75, v).Clamped().RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	return img
}

// Bounds returns the desktop rectangle.
func (p *PatternSource) Bounds() image.Rectangle {
	return p.screen.Bounds()
}

// CaptureInto copies r of the desktop into dst.
func (p *PatternSource) CaptureInto(ctx context.Context, dst *image.RGBA, r image.Rectangle) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkRect(p.Bounds(), dst, r); err != nil {
		return err
	}
	copyRect(dst, p.screen, r)
	return nil
}

// Close marks the source closed.
func (p *PatternSource) Close() error {
	p.closed.Store(true)
	return nil
}

var _ Source = (*PatternSource)(nil)
