package drawing

import (
	"image/color"
	"math"
	"strconv"

	"github.com/tdewolff/canvas"

	"github.com/quillpdf/quill/pkg/annotation"
)

// Arrow barb geometry: two 15px segments at 30 degrees off the shaft,
// independent of scale.
const (
	arrowBarbLength = 15.0
	arrowBarbAngle  = math.Pi / 6
)

// parseHexColor parses a #rrggbb (or #rgb) color string. Unparseable input
// falls back to black, matching the reader's default stroke color.
func parseHexColor(s string) color.RGBA {
	black := color.RGBA{A: 255}
	if len(s) == 0 || s[0] != '#' {
		return black
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return black
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return black
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

// toolPath builds the canvas path for one stroke of the given tool in
// page-local coordinates (top-left origin). pageHeight flips into the
// bottom-up canvas coordinate space.
func toolPath(tool annotation.DrawingTool, points []annotation.Point, pageHeight float64) *canvas.Path {
	p := &canvas.Path{}
	if len(points) == 0 {
		return p
	}

	flipY := func(y float64) float64 { return pageHeight - y }

	switch tool {
	case annotation.ToolPen:
		p.MoveTo(points[0].X, flipY(points[0].Y))
		for _, pt := range points[1:] {
			p.LineTo(pt.X, flipY(pt.Y))
		}

	case annotation.ToolRectangle:
		if len(points) < 2 {
			return p
		}
		// Top-left plus signed width/height, drawn as-is.
		start, end := points[0], points[1]
		p.MoveTo(start.X, flipY(start.Y))
		p.LineTo(end.X, flipY(start.Y))
		p.LineTo(end.X, flipY(end.Y))
		p.LineTo(start.X, flipY(end.Y))
		p.Close()

	case annotation.ToolCircle:
		if len(points) < 2 {
			return p
		}
		// Center is the start point, radius the drag distance. The visual
		// bounding box is therefore not centered on the drag; this mirrors
		// the established reader behavior.
		start, end := points[0], points[1]
		radius := math.Hypot(end.X-start.X, end.Y-start.Y)
		p = canvas.Circle(radius).Translate(start.X, flipY(start.Y))

	case annotation.ToolLine:
		if len(points) < 2 {
			return p
		}
		p.MoveTo(points[0].X, flipY(points[0].Y))
		p.LineTo(points[1].X, flipY(points[1].Y))

	case annotation.ToolArrow:
		if len(points) < 2 {
			return p
		}
		start, end := points[0], points[1]
		p.MoveTo(start.X, flipY(start.Y))
		p.LineTo(end.X, flipY(end.Y))

		angle := math.Atan2(end.Y-start.Y, end.X-start.X)
		for _, barb := range []float64{angle - arrowBarbAngle, angle + arrowBarbAngle} {
			bx := end.X - arrowBarbLength*math.Cos(barb)
			by := end.Y - arrowBarbLength*math.Sin(barb)
			p.MoveTo(end.X, flipY(end.Y))
			p.LineTo(bx, flipY(by))
		}
	}

	return p
}

// strokePath draws one stroke path of a drawing annotation onto the canvas
// context.
func strokePath(ctx *canvas.Context, tool annotation.DrawingTool, path annotation.StrokePath, pageHeight float64) {
	lineWidth := path.LineWidth
	if lineWidth <= 0 {
		lineWidth = 1
	}

	ctx.Push()
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(parseHexColor(path.Color))
	ctx.SetStrokeWidth(lineWidth)
	ctx.SetStrokeCapper(canvas.RoundCap)
	ctx.SetStrokeJoiner(canvas.RoundJoin)
	ctx.DrawPath(0, 0, toolPath(tool, path.Points, pageHeight))
	ctx.Pop()
}

// drawAnnotation renders every stroke path of a drawing annotation.
func drawAnnotation(ctx *canvas.Context, d *annotation.Drawing, pageHeight float64) {
	for _, path := range d.Data.Paths {
		strokePath(ctx, d.Data.Tool, path, pageHeight)
	}
}
