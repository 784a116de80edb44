// Package pdfoverlay burns annotation collections into a PDF.
//
// Each page gets its own optional content layer named "Annotations (Page
// N)", so the flattened marks can still be toggled in a viewer. Highlight
// boxes become alpha-blended fill rectangles or line decorations depending
// on their style, drawings are stroked with the same shape semantics as the
// on-screen surface, and stamp, text and note annotations are rendered as
// text.
//
// Key Types:
// - PageSize: width and height of one page in points
// - FlattenConfig: layer naming, stroke and font options
//
// Main Functions:
// - Flatten: pages plus annotations to finished PDF bytes
package pdfoverlay

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/quillpdf/quill/pkg/annotation"
)

// PageSize is the media box of one page, in PDF points.
type PageSize struct {
	Width  float64
	Height float64
}

// Flatten builds a PDF with the given page sizes and draws every annotation
// onto an optional content layer of its page. Annotations whose page number
// falls outside the document are skipped.
//
// Annotation coordinates are interpreted in page points with a top-left
// origin, matching the viewer's coordinate space and fpdf's.
func Flatten(pageSizes []PageSize, annotations []annotation.Annotation, cfg FlattenConfig) ([]byte, error) {
	if len(pageSizes) == 0 {
		return nil, fmt.Errorf("at least one page size is required")
	}
	for i, size := range pageSizes {
		if size.Width <= 0 || size.Height <= 0 {
			return nil, fmt.Errorf("page %d has invalid size %gx%g", i+1, size.Width, size.Height)
		}
	}
	if cfg.LayerName == "" {
		cfg.LayerName = DefaultConfig().LayerName
	}
	if cfg.Font.Name == "" {
		cfg.Font = DefaultFont
	}
	if cfg.LineStyle.Width <= 0 {
		cfg.LineStyle = DefaultLineStyle
	}

	byPage := make(map[int][]annotation.Annotation)
	for _, a := range annotations {
		pageNum := a.Base().PageNumber
		if pageNum < 1 || pageNum > len(pageSizes) {
			continue
		}
		byPage[pageNum] = append(byPage[pageNum], a)
	}

	pdf := fpdf.New("P", "pt", "A4", "")

	for i, size := range pageSizes {
		pageNum := i + 1
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})

		pageAnnotations := byPage[pageNum]
		if len(pageAnnotations) == 0 {
			continue
		}

		layer := pdf.AddLayer(fmt.Sprintf("%s (Page %d)", cfg.LayerName, pageNum), true)
		pdf.BeginLayer(layer)
		for _, a := range pageAnnotations {
			drawAnnotation(pdf, a, cfg)
		}
		pdf.EndLayer()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// drawAnnotation dispatches one annotation to its renderer.
func drawAnnotation(pdf *fpdf.Fpdf, a annotation.Annotation, cfg FlattenConfig) {
	switch v := a.(type) {
	case *annotation.Highlight:
		drawHighlight(pdf, v, cfg.LineStyle)
	case *annotation.Drawing:
		drawDrawing(pdf, v)
	case *annotation.Stamp:
		drawStamp(pdf, v, cfg.Font)
	case *annotation.Text:
		drawText(pdf, v, cfg.Font)
	case *annotation.NoteAnnotation:
		drawNote(pdf, v, cfg.Font)
	}
}
