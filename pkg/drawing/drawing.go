// Package drawing implements the per-page drawing surface of the reader.
//
// A Surface renders the already-persisted drawing annotations of exactly one
// page plus the stroke currently being drawn, without flicker and without
// ever being redrawn because of changes to other pages.
//
// Two logical layers are maintained: a committed layer holding the rendered,
// persisted annotations of the page, recomputed only when that set changes,
// and a transient overlay for the active stroke. The visible surface is the
// committed layer composited with the overlay.
//
// Pen strokes are drawn incrementally: each pointer move adds only the new
// segment to the overlay, and a full repaint from the committed layer
// happens on pointer-up to eliminate any drift. Shape previews (rectangle,
// circle, arrow, line) are fully repainted on every move because the prior
// preview must disappear.
//
// Input handling is a small statechart: Idle (no tool, pointer ignored),
// Armed (tool selected), Drawing (pointer down, accumulating a path).
// Pointer-leave while drawing completes the stroke with the last known
// point so the surface can never get stuck mid-stroke.
package drawing
