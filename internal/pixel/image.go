package pixel

import (
	"image"
)

// Channels is the number of color planes.
const Channels = 3

// Scale is the normalization divisor for 8-bit samples.
const Scale = 256.0

// Plane is a row-major H×W array of normalized samples.
type Plane []float64

// Image is a normalized 3-plane image with separate source and target planes.
type Image struct {
	width, height int

	source [Channels]Plane
	target [Channels]Plane
}

// NewImage creates an image able to hold width×height pixels without reallocating.
func NewImage(width, height int) *Image {
	img := &Image{}
	img.reset(width, height)
	return img
}

// Width returns the width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the height in pixels.
func (m *Image) Height() int { return m.height }

// Source returns source plane c. Writes to it change the input of the
// next transform.
func (m *Image) Source(c int) Plane { return m.source[c] }

// Target returns target plane c.
func (m *Image) Target(c int) Plane { return m.target[c] }

// reset resizes the planes to width×height, reusing capacity, and zeroes the targets.
func (m *Image) reset(width, height int) {
	m.width, m.height = width, height
	n := width * height
	for c := 0; c < Channels; c++ {
		m.source[c] = grow(m.source[c], n)
		m.target[c] = grow(m.target[c], n)
		clear(m.target[c])
	}
}

func grow(p Plane, n int) Plane {
	if cap(p) >= n {
		return p[:n]
	}
	return make(Plane, n)
}

// Normalize loads src into the source planes, dividing each 8-bit sample
// by 256, and zeroes the target planes. Alpha is ignored.
func (m *Image) Normalize(src *image.RGBA) {
	b := src.Bounds()
	m.reset(b.Dx(), b.Dy())

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):]
		for x := 0; x < m.width; x++ {
			p := row[x*4 : x*4+3]
			m.source[0][i] = float64(p[0]) / Scale
			m.source[1][i] = float64(p[1]) / Scale
			m.source[2][i] = float64(p[2]) / Scale
			i++
		}
	}
}

// Denormalize writes the target planes into dst as opaque RGBA, multiplying
// by 256 and truncating. dst must be at least Width×Height.
// Samples that reach 256 saturate at 255.
func (m *Image) Denormalize(dst *image.RGBA) {
	b := dst.Bounds()
	i := 0
	for y := 0; y < m.height; y++ {
		row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < m.width; x++ {
			p := row[x*4 : x*4+4]
			p[0] = toByte(m.target[0][i])
			p[1] = toByte(m.target[1][i])
			p[2] = toByte(m.target[2][i])
			p[3] = 0xff
			i++
		}
	}
}

func toByte(v float64) uint8 {
	s := v * Scale
	switch {
	case s <= 0:
		return 0
	case s >= 255:
		return 255
	default:
		return uint8(s)
	}
}
