// Package renderer paints the magnifier into a terminal.
//
// The terminal stands in for the desktop. Desk maps desktop (screen)
// coordinates onto terminal cells, and the whole terminal shows a reduced
// overview of the desktop as a backdrop. Window is the magnifier window
// placed on that desktop; Surface is its drawing surface.
//
// Pixels are drawn two per cell with the upper half block: the foreground
// carries the upper pixel and the background the lower one.
//
//	┌─────────────────────────────────────────┐
//	│ backdrop (overview of the desktop)      │
//	│        ┌─ loupe: 1.333333 ─┐            │
//	│        │ magnified pixels  │            │
//	│        └───────────────────┘            │
//	├─────────────────────────────────────────┤
//	│ status line                             │
//	└─────────────────────────────────────────┘
package renderer
