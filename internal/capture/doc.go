// Package capture provides the screen pixels the magnifier reads.
//
// A Source describes one flat screen rectangle and copies sub-rectangles of
// it into caller-owned buffers. Two sources exist: a synthetic desktop
// pattern, and an image file that can be reloaded when it changes on disk.
package capture
