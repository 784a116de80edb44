package textgeom

import "math"

// CharacterBoxes expands a page's text runs into per-character bounding
// boxes keyed by run index.
//
// The font size of a run is derived from the scale component of its
// transform (sqrt(a²+b²)). When the run carries a total rendered width it is
// distributed evenly across the characters; otherwise each character falls
// back to half the font size. Both are approximations and are allowed to be
// imprecise for proportional fonts.
//
// The vertical origin of each box is the run's baseline minus the font size,
// which converts the bottom-up baseline coordinate into a top-left box.
// Runs with empty strings are skipped and emit no boxes.
func CharacterBoxes(runs []TextRun) PageCharacterMap {
	characterMap := make(PageCharacterMap)

	for runIdx, run := range runs {
		if run.Str == "" {
			continue
		}

		tx := run.Transform
		fontSize := math.Sqrt(tx[0]*tx[0] + tx[1]*tx[1])

		chars := []rune(run.Str)
		charWidth := fontSize * 0.5
		if run.Width > 0 {
			charWidth = run.Width / float64(len(chars))
		}

		boxes := make([]CharacterBox, 0, len(chars))
		currentX := tx[4]
		baselineY := tx[5]

		for _, c := range chars {
			boxes = append(boxes, CharacterBox{
				X:      currentX,
				Y:      baselineY - fontSize,
				Width:  charWidth,
				Height: fontSize * 1.2,
				Text:   string(c),
			})
			currentX += charWidth
		}

		characterMap[runIdx] = boxes
	}

	return characterMap
}
