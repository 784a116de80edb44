package pdfoverlay

import (
	"math"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/quillpdf/quill/pkg/annotation"
)

const (
	arrowBarbLength = 15.0
	arrowBarbAngle  = math.Pi / 6
)

// hexToRGB parses #rgb and #rrggbb color strings. Anything unparseable
// falls back to black.
func hexToRGB(s string) (int, int, int) {
	hexDigit := func(b byte) (int, bool) {
		switch {
		case b >= '0' && b <= '9':
			return int(b - '0'), true
		case b >= 'a' && b <= 'f':
			return int(b-'a') + 10, true
		case b >= 'A' && b <= 'F':
			return int(b-'A') + 10, true
		}
		return 0, false
	}
	byteAt := func(i, j int) (int, bool) {
		hi, ok1 := hexDigit(s[i])
		lo, ok2 := hexDigit(s[j])
		return hi<<4 | lo, ok1 && ok2
	}

	switch {
	case len(s) == 7 && s[0] == '#':
		r, ok1 := byteAt(1, 2)
		g, ok2 := byteAt(3, 4)
		b, ok3 := byteAt(5, 6)
		if ok1 && ok2 && ok3 {
			return r, g, b
		}
	case len(s) == 4 && s[0] == '#':
		r, ok1 := byteAt(1, 1)
		g, ok2 := byteAt(2, 2)
		b, ok3 := byteAt(3, 3)
		if ok1 && ok2 && ok3 {
			return r, g, b
		}
	}
	return 0, 0, 0
}

// drawHighlight renders a highlight's merged boxes. The background style is
// an alpha-blended fill; underline, strikethrough and squiggly are opaque
// strokes positioned within each box.
func drawHighlight(pdf *fpdf.Fpdf, h *annotation.Highlight, style LineStyleConfig) {
	r, g, b := hexToRGB(h.Metadata.Color)

	opacity := h.Metadata.Opacity
	if opacity <= 0 {
		opacity = style.HighlightOpacity
	}

	for _, box := range h.Data.Boxes {
		switch h.Data.Style {
		case annotation.StyleUnderline:
			pdf.SetDrawColor(r, g, b)
			pdf.SetLineWidth(style.Width)
			y := box.Y + box.Height
			pdf.Line(box.X, y, box.X+box.Width, y)
		case annotation.StyleStrikethrough:
			pdf.SetDrawColor(r, g, b)
			pdf.SetLineWidth(style.Width)
			y := box.Y + box.Height/2
			pdf.Line(box.X, y, box.X+box.Width, y)
		case annotation.StyleSquiggly:
			pdf.SetDrawColor(r, g, b)
			pdf.SetLineWidth(style.Width / 2)
			drawSquiggle(pdf, box, style)
		default:
			pdf.SetFillColor(r, g, b)
			pdf.SetAlpha(opacity, "Normal")
			pdf.Rect(box.X, box.Y, box.Width, box.Height, "F")
			pdf.SetAlpha(1, "Normal")
		}
	}
}

// drawSquiggle strokes a zigzag along the bottom edge of a box.
func drawSquiggle(pdf *fpdf.Fpdf, box annotation.Box, style LineStyleConfig) {
	baseline := box.Y + box.Height
	half := style.SquigglePeriod / 2

	x := box.X
	up := true
	for x < box.X+box.Width {
		next := math.Min(x+half, box.X+box.Width)
		y1, y2 := baseline, baseline-style.SquiggleAmpl
		if !up {
			y1, y2 = y2, y1
		}
		pdf.Line(x, y1, next, y2)
		x = next
		up = !up
	}
}

// drawDrawing strokes every path of a drawing with the same shape
// interpretation as the on-screen surface.
func drawDrawing(pdf *fpdf.Fpdf, d *annotation.Drawing) {
	for _, path := range d.Data.Paths {
		if len(path.Points) == 0 {
			continue
		}

		r, g, b := hexToRGB(path.Color)
		pdf.SetDrawColor(r, g, b)
		width := path.LineWidth
		if width <= 0 {
			width = 1
		}
		pdf.SetLineWidth(width)
		pdf.SetLineCapStyle("round")
		pdf.SetLineJoinStyle("round")

		start := path.Points[0]
		end := path.Points[len(path.Points)-1]

		switch d.Data.Tool {
		case annotation.ToolRectangle:
			pdf.Rect(math.Min(start.X, end.X), math.Min(start.Y, end.Y),
				math.Abs(end.X-start.X), math.Abs(end.Y-start.Y), "D")
		case annotation.ToolCircle:
			// Center stays at the press point, radius follows the drag.
			radius := math.Hypot(end.X-start.X, end.Y-start.Y)
			pdf.Circle(start.X, start.Y, radius, "D")
		case annotation.ToolLine:
			pdf.Line(start.X, start.Y, end.X, end.Y)
		case annotation.ToolArrow:
			drawArrow(pdf, start, end)
		default: // pen
			for i := 1; i < len(path.Points); i++ {
				p, q := path.Points[i-1], path.Points[i]
				pdf.Line(p.X, p.Y, q.X, q.Y)
			}
		}
	}
}

// drawArrow strokes a shaft plus two barbs at the tip.
func drawArrow(pdf *fpdf.Fpdf, start, end annotation.Point) {
	pdf.Line(start.X, start.Y, end.X, end.Y)

	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	for _, offset := range []float64{arrowBarbAngle, -arrowBarbAngle} {
		bx := end.X - arrowBarbLength*math.Cos(angle+offset)
		by := end.Y - arrowBarbLength*math.Sin(angle+offset)
		pdf.Line(end.X, end.Y, bx, by)
	}
}

// latin1 converts text for fpdf's core fonts, keeping the raw string when
// conversion fails.
func latin1(s string) string {
	converted, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	return converted
}

// drawStamp renders a stamp as a bordered box with its content centered.
// Image stamps render their bounding box only; embedding the image payload
// is left to the viewer.
func drawStamp(pdf *fpdf.Fpdf, s *annotation.Stamp, font FontConfig) {
	r, g, b := hexToRGB(s.Metadata.Color)
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(1)
	pdf.Rect(s.Data.Position.X, s.Data.Position.Y, s.Data.Size.Width, s.Data.Size.Height, "D")

	if s.Data.StampType == annotation.StampImage || s.Data.Content == "" {
		return
	}

	pdf.SetFont(font.Name, font.Style, font.Size)
	pdf.SetTextColor(r, g, b)
	text := latin1(s.Data.Content)
	x := s.Data.Position.X + (s.Data.Size.Width-pdf.GetStringWidth(text))/2
	y := s.Data.Position.Y + s.Data.Size.Height/2 + font.Size*font.AscentRatio/2
	pdf.Text(x, y, text)
}

// drawText renders a free-standing text annotation at its anchor point.
func drawText(pdf *fpdf.Fpdf, t *annotation.Text, font FontConfig) {
	size := t.Data.FontSize
	if size <= 0 {
		size = font.Size
	}
	r, g, b := hexToRGB(t.Metadata.Color)
	pdf.SetFont(font.Name, font.Style, size)
	pdf.SetTextColor(r, g, b)
	pdf.Text(t.Data.Position.X, t.Data.Position.Y+size*font.AscentRatio, latin1(t.Data.Content))
}

// drawNote renders a note annotation as its content next to a small marker.
func drawNote(pdf *fpdf.Fpdf, n *annotation.NoteAnnotation, font FontConfig) {
	const marker = 8.0

	r, g, b := hexToRGB(n.Metadata.Color)
	pdf.SetFillColor(r, g, b)
	pdf.Rect(n.Data.Position.X, n.Data.Position.Y, marker, marker, "F")

	if n.Data.NoteContent == "" {
		return
	}
	pdf.SetFont(font.Name, font.Style, font.Size)
	pdf.SetTextColor(r, g, b)
	pdf.Text(n.Data.Position.X+marker+2, n.Data.Position.Y+font.Size*font.AscentRatio, latin1(n.Data.NoteContent))
}
