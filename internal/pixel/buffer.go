package pixel

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Resize returns an RGBA image of size width×height at the origin, reusing
// the pixel storage of img when it is large enough. img may be nil.
func Resize(img *image.RGBA, width, height int) *image.RGBA {
	n := width * height * 4
	if img == nil || cap(img.Pix) < n {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}
	img.Pix = img.Pix[:n]
	img.Stride = width * 4
	img.Rect = image.Rect(0, 0, width, height)
	return img
}

// ScaleNearest scales src to fill dst using nearest-neighbour sampling.
func ScaleNearest(dst, src *image.RGBA) {
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// Frame holds the reusable buffers of one render pass: the captured
// rectangle, its scaled copy, the plane image and the display output.
type Frame struct {
	Grab   *image.RGBA
	Scaled *image.RGBA
	Planes *Image
	Out    *image.RGBA
}

// NewFrame preallocates buffers for captures up to maxSize, scaled up to maxScaled.
func NewFrame(maxSize, maxScaled image.Point) *Frame {
	return &Frame{
		Grab:   image.NewRGBA(image.Rectangle{Max: maxSize}),
		Scaled: image.NewRGBA(image.Rectangle{Max: maxScaled}),
		Planes: NewImage(maxScaled.X, maxScaled.Y),
		Out:    image.NewRGBA(image.Rectangle{Max: maxScaled}),
	}
}

// Prepare sizes the grab buffer to capture and the scaled and output
// buffers to scaled.
func (f *Frame) Prepare(capture, scaled image.Point) {
	f.Grab = Resize(f.Grab, capture.X, capture.Y)
	f.Scaled = Resize(f.Scaled, scaled.X, scaled.Y)
	f.Out = Resize(f.Out, scaled.X, scaled.Y)
}
