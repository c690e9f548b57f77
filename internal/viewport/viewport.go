// Package viewport provides the capture-rectangle geometry of the magnifier.
//
// A Viewport describes which screen region is fetched each frame: the
// rectangle's top-left corner (kept centered on the pointer and clamped to
// the screen), its half extent, and the zoom factor applied when the
// captured pixels are scaled for display. It also accumulates the window
// offset requested by move actions; the window itself is owned elsewhere.
//
// Viewport is not safe for concurrent use. It is owned by the application
// loop, which serializes input handling and rendering.
package viewport

import (
	"fmt"
	"image"
	"math"
)

// Limits on the half extent of the capture rectangle.
const (
	// MinHalfExtent is the usability floor of either half extent.
	MinHalfExtent = 64

	// MaxZoomLevel is the highest selectable zoom level.
	MaxZoomLevel = 4
)

// Point is a floating-point screen coordinate.
type Point struct {
	X, Y float64
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Viewport is the geometry of the capture rectangle.
type Viewport struct {
	// Origin is the clamped top-left corner of the capture rectangle.
	// Recenter derives it so the rectangle is centered on the pointer.
	Origin Point

	// HalfExtent is the half size of the magnified output in screen pixels.
	HalfExtent image.Point

	// Zoom is the scale factor applied to the captured pixels, >= 1.
	Zoom float64

	// Offset accumulates window moves. It is sent to the window, never
	// applied to Origin.
	Offset image.Point
}

// New creates a viewport with zoom 1 and the given half extent clamped for screen.
func New(halfExtent, screen image.Point) *Viewport {
	v := &Viewport{HalfExtent: halfExtent, Zoom: 1}
	v.Resize(image.Point{}, 1, screen)
	return v
}

// ZoomFactor returns the zoom factor of a discrete level: 1 + 3*level/9.
func ZoomFactor(level int) float64 {
	return 1.0 + 3.0*float64(level)/9.0
}

// SetZoom selects a discrete zoom level in [0, MaxZoomLevel].
// Levels outside the range are clamped.
func (v *Viewport) SetZoom(level int) {
	level = max(0, min(level, MaxZoomLevel))
	v.Zoom = ZoomFactor(level)
}

// captureExtent returns the capture rectangle size before scaling.
func (v *Viewport) captureExtent() (w, h float64) {
	return 2 * float64(v.HalfExtent.X) / v.Zoom, 2 * float64(v.HalfExtent.Y) / v.Zoom
}

// Recenter centers the capture rectangle on pointer and clamps it to screen.
// Each axis is clamped independently to [0, screen - extent - 1].
func (v *Viewport) Recenter(pointer, screen image.Point) {
	w, h := v.captureExtent()
	v.Origin = Point{
		X: clampAxis(float64(pointer.X)-w/2, float64(screen.X)-w-1),
		Y: clampAxis(float64(pointer.Y)-h/2, float64(screen.Y)-h-1),
	}
}

// clampAxis computes min(max(value, 0), upper). An upper bound below zero,
// which only occurs when the rectangle spans the whole screen, is raised to
// zero so the origin never goes negative.
func clampAxis(value, upper float64) float64 {
	upper = math.Max(upper, 0)
	return math.Min(math.Max(value, 0), upper)
}

// CaptureRect returns the screen rectangle to capture in fixed mode:
// origin Origin, size 2*HalfExtent/Zoom.
func (v *Viewport) CaptureRect() image.Rectangle {
	w, h := v.captureExtent()
	x, y := int(v.Origin.X), int(v.Origin.Y)
	return image.Rect(x, y, x+int(w), y+int(h))
}

// FollowRect returns the capture rectangle used when the window follows the
// pointer. It is clamped with the full extent 2*HalfExtent instead of the
// zoom-adjusted one.
func (v *Viewport) FollowRect(pointer, screen image.Point) image.Rectangle {
	w, h := 2*v.HalfExtent.X, 2*v.HalfExtent.Y
	x := int(clampAxis(float64(pointer.X-v.HalfExtent.X), float64(screen.X-w-1)))
	y := int(clampAxis(float64(pointer.Y-v.HalfExtent.Y), float64(screen.Y-h-1)))
	return image.Rect(x, y, x+w, y+h)
}

// ScaledSize returns the size of r after scaling by Zoom.
func (v *Viewport) ScaledSize(r image.Rectangle) image.Point {
	return image.Point{
		X: int(float64(r.Dx()) * v.Zoom),
		Y: int(float64(r.Dy()) * v.Zoom),
	}
}

// WindowSize returns the window size matching the half extent.
func (v *Viewport) WindowSize() image.Point {
	return v.HalfExtent.Mul(2)
}

// Resize adjusts the half extent by delta*factor on both axes, clamped to
// [MinHalfExtent, screen/2].
func (v *Viewport) Resize(delta image.Point, factor int, screen image.Point) {
	v.HalfExtent = image.Point{
		X: clampExtent(v.HalfExtent.X+delta.X*factor, screen.X/2),
		Y: clampExtent(v.HalfExtent.Y+delta.Y*factor, screen.Y/2),
	}
}

func clampExtent(value, upper int) int {
	return min(max(MinHalfExtent, value), upper)
}

// Move adds delta*factor to the window offset and returns the new offset.
func (v *Viewport) Move(delta image.Point, factor int) image.Point {
	v.Offset = v.Offset.Add(delta.Mul(factor))
	return v.Offset
}

// Contains reports whether the fixed-mode capture rectangle lies inside screen.
func (v *Viewport) Contains(screen image.Point) bool {
	return v.CaptureRect().In(image.Rectangle{Max: screen})
}
