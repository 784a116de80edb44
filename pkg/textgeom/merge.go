package textgeom

import "math"

// MergeConfig holds the tolerances used when coalescing character boxes.
// The defaults are empirical values tuned for typical PDF text layout;
// expose them to users who need precision tuning rather than hardcoding.
type MergeConfig struct {
	LineTolerance float64 // Max vertical delta for boxes on the same line
	GapTolerance  float64 // Max horizontal gap between adjacent boxes
}

// DefaultMergeConfig returns the tolerances used by the viewer.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		LineTolerance: 2,
		GapTolerance:  5,
	}
}

// MergeBoxes coalesces an ordered sequence of matched character boxes into a
// minimal sequence of rectangles, one per contiguous run of characters on a
// visual line.
//
// A box is absorbed into the current accumulator when its vertical position
// is within LineTolerance of the accumulator AND its left edge is within
// GapTolerance of the accumulator's right edge; absorbing extends the
// accumulator to the box's right edge and concatenates the text. Anything
// else flushes the accumulator and starts a new one.
//
// Merged boxes come out in the original left-to-right, top-to-bottom order,
// and no merged box ever spans two visual lines.
func MergeBoxes(boxes []CharacterBox, cfg MergeConfig) []CharacterBox {
	if len(boxes) == 0 {
		return nil
	}

	var merged []CharacterBox
	current := boxes[0]

	for _, box := range boxes[1:] {
		sameLine := math.Abs(box.Y-current.Y) < cfg.LineTolerance
		adjacent := math.Abs(current.Right()-box.X) < cfg.GapTolerance

		if sameLine && adjacent {
			current.Width = box.Right() - current.X
			current.Text += box.Text
		} else {
			merged = append(merged, current)
			current = box
		}
	}

	return append(merged, current)
}
