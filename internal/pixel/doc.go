// Package pixel provides the normalized pixel-plane image the transforms
// operate on, together with the conversions from and to 8-bit RGBA buffers.
//
// An Image holds three channel-major planes (R, G, B) of source samples in
// [0, 1], produced by dividing 8-bit samples by 256, and three target planes
// of the same shape that a transform writes. Source planes are never
// written after Normalize.
//
// Buffers are reused across frames: Normalize only allocates when the frame
// grows beyond the largest size seen so far, which keeps the steady-state
// render path allocation free.
package pixel
