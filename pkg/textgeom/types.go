package textgeom

import "sort"

// TextRun is one positioned string from a page's decoded text content.
// It mirrors the shape handed over by the PDF rendering collaborator:
// a string, a 2x3 transform, and an optional total rendered width.
type TextRun struct {
	Str       string     // Text content of the run
	Transform [6]float64 // 2x3 matrix [a b c d e f]; e,f position the baseline
	Width     float64    // Total rendered width, 0 when unknown
}

// CharacterBox is the bounding box of a single character on a rendered page.
// Coordinates use a top-left origin after normalization from the bottom-up
// text-rendering coordinate space of the source.
type CharacterBox struct {
	X      float64 // Left edge
	Y      float64 // Top edge
	Width  float64 // Box width
	Height float64 // Box height
	Text   string  // The single character this box covers
}

// Right returns the x coordinate of the box's right edge.
func (b CharacterBox) Right() float64 {
	return b.X + b.Width
}

// PageCharacterMap maps a text-run index to the ordered character boxes of
// that run. One map exists per rendered page instance; it is invalidated and
// rebuilt on every re-render.
type PageCharacterMap map[int][]CharacterBox

// Flatten returns every character box in run order, preserving character
// order within each run.
func (m PageCharacterMap) Flatten() []CharacterBox {
	indices := make([]int, 0, len(m))
	for idx := range m {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var flat []CharacterBox
	for _, idx := range indices {
		flat = append(flat, m[idx]...)
	}
	return flat
}
