package hocrtext

import "github.com/quillpdf/quill/pkg/textgeom"

// TextRuns synthesizes text runs from the page's word boxes so scanned
// pages feed the same extractor, matcher and merger pipeline as
// born-digital text.
//
// Each word becomes one horizontal run: the font size is approximated by
// the line height and the baseline sits at the line's bottom edge, so the
// derived character boxes cover the line's vertical extent. After every
// word a single-space run is emitted spanning the gap to the next word
// (zero width at line ends), which keeps word boundaries visible to
// whitespace-normalized matching.
func (p PageWords) TextRuns() []textgeom.TextRun {
	var runs []textgeom.TextRun
	for _, line := range p.Lines {
		fontSize := line.BBox.Height()
		baseline := line.BBox.Y2

		for i, word := range line.Words {
			if fontSize <= 0 {
				fontSize = word.BBox.Height()
				baseline = word.BBox.Y2
			}

			runs = append(runs, textgeom.TextRun{
				Str:       word.Text,
				Transform: [6]float64{fontSize, 0, 0, fontSize, word.BBox.X1, baseline},
				Width:     word.BBox.Width(),
			})

			gap := 0.0
			if i+1 < len(line.Words) {
				gap = line.Words[i+1].BBox.X1 - word.BBox.X2
				if gap < 0 {
					gap = 0
				}
			}
			runs = append(runs, textgeom.TextRun{
				Str:       " ",
				Transform: [6]float64{fontSize, 0, 0, fontSize, word.BBox.X2, baseline},
				Width:     gap,
			})
		}
	}
	return runs
}
