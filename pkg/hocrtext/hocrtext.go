// Package hocrtext extracts word geometry from hOCR documents so that
// scanned pages can feed the same selection pipeline as born-digital PDFs.
//
// Only the structure the reader needs survives the parse: pages, lines and
// words with their bounding boxes. Logical grouping (areas, paragraphs),
// document metadata and recognition details are skipped.
//
// Key Types:
// - PageWords: one ocr_page with its lines and words
// - Line: an ocr_line and the words on it
// - Word: an ocrx_word with text and bounding box
// - BoundingBox: x1/y1/x2/y2 pixel rectangle from a bbox title property
//
// Main Functions:
// - ParseWords: hOCR bytes to pages of positioned words
// - (PageWords).TextRuns: synthesize text runs for pkg/textgeom
package hocrtext

// BoundingBox is a rectangle from an hOCR bbox property. x1,y1 is the
// top-left corner, x2,y2 the bottom-right, in image pixels.
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// Word is a recognized word with its position.
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	Text       string      // The actual text content
	BBox       BoundingBox // Word coordinates
	Confidence float64     // Recognition confidence (0-100)
}

// Line is a line of recognized words.
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	BBox  BoundingBox // Line coordinates
	Words []Word      // Words on this line, left to right
}

// PageWords is one page of recognized words.
// Corresponds to hOCR element with class: 'ocr_page'
type PageWords struct {
	PageNumber int         // 1-based page number in the document
	BBox       BoundingBox // Page coordinates
	Lines      []Line      // Lines in reading order
}

// Words flattens the page's lines into a single word list in reading order.
func (p PageWords) Words() []Word {
	var words []Word
	for _, line := range p.Lines {
		words = append(words, line.Words...)
	}
	return words
}
