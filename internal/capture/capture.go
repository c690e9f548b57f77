package capture

import (
	"context"
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

var (
	// ErrOutOfBounds is returned when a capture rectangle leaves the screen.
	ErrOutOfBounds = errors.New("capture rectangle outside screen bounds")

	// ErrClosed is returned by a source after Close.
	ErrClosed = errors.New("capture source closed")

	// ErrBufferSize is returned when dst does not match the rectangle size.
	ErrBufferSize = errors.New("capture buffer size mismatch")
)

// Source is the screen pixel provider.
type Source interface {
	// Bounds returns the screen rectangle. Min is always (0,0).
	Bounds() image.Rectangle

	// CaptureInto copies screen rectangle r into dst, which must be
	// exactly r.Size() with origin (0,0).
	CaptureInto(ctx context.Context, dst *image.RGBA, r image.Rectangle) error

	// Close releases the source.
	Close() error
}

// checkRect validates a capture request against the screen bounds.
func checkRect(screen image.Rectangle, dst *image.RGBA, r image.Rectangle) error {
	if r.Empty() || !r.In(screen) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, screen)
	}
	if dst == nil || dst.Bounds() != (image.Rectangle{Max: r.Size()}) {
		var got image.Rectangle
		if dst != nil {
			got = dst.Bounds()
		}
		return fmt.Errorf("%w: have %v, want %v", ErrBufferSize, got, r.Size())
	}
	return nil
}

// copyRect copies r of src into dst at (0,0).
func copyRect(dst *image.RGBA, src *image.RGBA, r image.Rectangle) {
	xdraw.Copy(dst, image.Point{}, src, r, xdraw.Src, nil)
}

// toRGBA converts img to an RGBA image with origin (0,0).
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rectangle{Max: b.Size()})
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst
}
