package drawing_test

import (
	"bytes"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quillpdf/quill/pkg/annotation"
	"github.com/quillpdf/quill/pkg/drawing"
)

type capturedStroke struct {
	pageNum int
	data    annotation.DrawingData
}

func newCapturingSurface(t *testing.T, pageNum int, got *[]capturedStroke) *drawing.Surface {
	t.Helper()
	return newTestSurface(t, pageNum, drawing.Config{
		Color:     "#ff0000",
		LineWidth: 3,
		OnComplete: func(pageNum int, data annotation.DrawingData) {
			*got = append(*got, capturedStroke{pageNum: pageNum, data: data})
		},
	})
}

func TestNewSurfaceRejectsInvalidArgs(t *testing.T) {
	if _, err := drawing.NewSurface(0, 100, 100, drawing.Config{}); err == nil {
		t.Error("expected error for page number 0")
	}
	if _, err := drawing.NewSurface(1, 0, 100, drawing.Config{}); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := drawing.NewSurface(1, 100, -5, drawing.Config{}); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestRectangleStrokeEmitsStartAndEnd(t *testing.T) {
	var strokes []capturedStroke
	s := newCapturingSurface(t, 2, &strokes)

	s.SelectTool(annotation.ToolRectangle)
	s.PointerDown(annotation.Point{X: 10, Y: 10})
	s.PointerMove(annotation.Point{X: 60, Y: 30})
	s.PointerMove(annotation.Point{X: 110, Y: 60})
	s.PointerUp()

	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	if strokes[0].pageNum != 2 {
		t.Errorf("pageNum = %d, want 2", strokes[0].pageNum)
	}

	want := annotation.DrawingData{
		Tool: annotation.ToolRectangle,
		Paths: []annotation.StrokePath{{
			Points:    []annotation.Point{{X: 10, Y: 10}, {X: 110, Y: 60}},
			LineWidth: 3,
			Color:     "#ff0000",
		}},
		Bounds: annotation.Box{X: 10, Y: 10, Width: 100, Height: 50},
	}
	if diff := cmp.Diff(want, strokes[0].data); diff != "" {
		t.Errorf("stroke data mismatch (-want +got):\n%s", diff)
	}
}

func TestPenStrokeKeepsEveryPoint(t *testing.T) {
	var strokes []capturedStroke
	s := newCapturingSurface(t, 1, &strokes)

	s.SelectTool(annotation.ToolPen)
	s.PointerDown(annotation.Point{X: 5, Y: 5})
	s.PointerMove(annotation.Point{X: 10, Y: 8})
	s.PointerMove(annotation.Point{X: 15, Y: 12})
	s.PointerUp()

	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	wantPoints := []annotation.Point{{X: 5, Y: 5}, {X: 10, Y: 8}, {X: 15, Y: 12}}
	if diff := cmp.Diff(wantPoints, strokes[0].data.Paths[0].Points); diff != "" {
		t.Errorf("pen points mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerLeaveCompletesWithLastPoint(t *testing.T) {
	var strokes []capturedStroke
	s := newCapturingSurface(t, 1, &strokes)

	s.SelectTool(annotation.ToolLine)
	s.PointerDown(annotation.Point{X: 20, Y: 20})
	s.PointerMove(annotation.Point{X: 40, Y: 50})
	s.PointerLeave()

	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	wantPoints := []annotation.Point{{X: 20, Y: 20}, {X: 40, Y: 50}}
	if diff := cmp.Diff(wantPoints, strokes[0].data.Paths[0].Points); diff != "" {
		t.Errorf("line points mismatch (-want +got):\n%s", diff)
	}
}

func TestSecondStrokeAfterCompletion(t *testing.T) {
	var strokes []capturedStroke
	s := newCapturingSurface(t, 1, &strokes)

	s.SelectTool(annotation.ToolCircle)
	s.PointerDown(annotation.Point{X: 50, Y: 50})
	s.PointerMove(annotation.Point{X: 60, Y: 50})
	s.PointerUp()

	s.PointerDown(annotation.Point{X: 30, Y: 30})
	s.PointerMove(annotation.Point{X: 35, Y: 35})
	s.PointerUp()

	if len(strokes) != 2 {
		t.Fatalf("got %d strokes, want 2", len(strokes))
	}
	if strokes[1].data.Tool != annotation.ToolCircle {
		t.Errorf("second stroke tool = %q, want %q", strokes[1].data.Tool, annotation.ToolCircle)
	}
}

func imagePix(t *testing.T, img image.Image) []byte {
	t.Helper()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("Image() returned %T, want *image.RGBA", img)
	}
	return rgba.Pix
}

func pageDrawing(pageNum int, from, to annotation.Point) *annotation.Drawing {
	d := annotation.NewDrawing("doc", pageNum, annotation.ToolPen, []annotation.StrokePath{{
		Points:    []annotation.Point{from, to},
		LineWidth: 10,
		Color:     "#000000",
	}}, "#000000")
	return d
}

func TestSetCommittedFiltersOtherPages(t *testing.T) {
	s := newTestSurface(t, 2, drawing.Config{})
	empty := imagePix(t, s.Image())

	// Only annotations from other pages: the rendered output must stay
	// identical to an empty surface.
	s.SetCommitted([]*annotation.Drawing{
		pageDrawing(1, annotation.Point{X: 10, Y: 50}, annotation.Point{X: 90, Y: 50}),
		pageDrawing(3, annotation.Point{X: 10, Y: 20}, annotation.Point{X: 90, Y: 20}),
	})
	if got := imagePix(t, s.Image()); !bytes.Equal(got, empty) {
		t.Error("annotations from other pages were rendered")
	}

	// A matching annotation must change the output.
	s.SetCommitted([]*annotation.Drawing{
		pageDrawing(1, annotation.Point{X: 10, Y: 50}, annotation.Point{X: 90, Y: 50}),
		pageDrawing(2, annotation.Point{X: 10, Y: 50}, annotation.Point{X: 90, Y: 50}),
	})
	if got := imagePix(t, s.Image()); bytes.Equal(got, empty) {
		t.Error("annotation for the surface page was not rendered")
	}
}

func TestOverlayClearedAfterCompletion(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{LineWidth: 10})
	empty := imagePix(t, s.Image())

	s.SelectTool(annotation.ToolPen)
	s.PointerDown(annotation.Point{X: 10, Y: 50})
	s.PointerMove(annotation.Point{X: 90, Y: 50})

	if got := imagePix(t, s.Image()); bytes.Equal(got, empty) {
		t.Fatal("overlay stroke not visible while drawing")
	}

	// With no completion callback the stroke is discarded on pointer up and
	// the output falls back to the committed layer alone.
	s.PointerUp()
	if got := imagePix(t, s.Image()); !bytes.Equal(got, empty) {
		t.Error("overlay not cleared after stroke completion")
	}
}
