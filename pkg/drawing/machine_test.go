package drawing_test

import (
	"testing"

	"github.com/quillpdf/quill/pkg/annotation"
	"github.com/quillpdf/quill/pkg/drawing"
)

func newTestSurface(t *testing.T, pageNum int, cfg drawing.Config) *drawing.Surface {
	t.Helper()
	s, err := drawing.NewSurface(pageNum, 100, 100, cfg)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return s
}

func TestSurfaceStartsIdle(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{})
	if got := s.State(); got != drawing.StateIdle {
		t.Fatalf("initial state = %q, want %q", got, drawing.StateIdle)
	}
	if got := s.Tool(); got != "" {
		t.Fatalf("initial tool = %q, want empty", got)
	}
}

func TestSelectToolArms(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{})
	s.SelectTool(annotation.ToolPen)

	if got := s.State(); got != drawing.StateArmed {
		t.Fatalf("state after select = %q, want %q", got, drawing.StateArmed)
	}
	if got := s.Tool(); got != annotation.ToolPen {
		t.Fatalf("tool = %q, want %q", got, annotation.ToolPen)
	}
}

func TestSelectToolWhileArmedReplaces(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{})
	s.SelectTool(annotation.ToolPen)
	s.SelectTool(annotation.ToolCircle)

	if got := s.State(); got != drawing.StateArmed {
		t.Fatalf("state = %q, want %q", got, drawing.StateArmed)
	}
	if got := s.Tool(); got != annotation.ToolCircle {
		t.Fatalf("tool = %q, want %q", got, annotation.ToolCircle)
	}
}

func TestClearToolDisarms(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{})
	s.SelectTool(annotation.ToolPen)
	s.ClearTool()

	if got := s.State(); got != drawing.StateIdle {
		t.Fatalf("state after clear = %q, want %q", got, drawing.StateIdle)
	}
	if got := s.Tool(); got != "" {
		t.Fatalf("tool after clear = %q, want empty", got)
	}
}

func TestPointerDownStartsDrawing(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{})
	s.SelectTool(annotation.ToolRectangle)
	s.PointerDown(annotation.Point{X: 5, Y: 5})

	if got := s.State(); got != drawing.StateDrawing {
		t.Fatalf("state after pointer down = %q, want %q", got, drawing.StateDrawing)
	}
}

func TestPointerUpReturnsToArmed(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{})
	s.SelectTool(annotation.ToolRectangle)
	s.PointerDown(annotation.Point{X: 5, Y: 5})
	s.PointerUp()

	if got := s.State(); got != drawing.StateArmed {
		t.Fatalf("state after pointer up = %q, want %q", got, drawing.StateArmed)
	}
	if got := s.Tool(); got != annotation.ToolRectangle {
		t.Fatalf("tool must survive the stroke, got %q", got)
	}
}

func TestPointerLeaveReturnsToArmed(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{})
	s.SelectTool(annotation.ToolPen)
	s.PointerDown(annotation.Point{X: 5, Y: 5})
	s.PointerLeave()

	if got := s.State(); got != drawing.StateArmed {
		t.Fatalf("state after pointer leave = %q, want %q", got, drawing.StateArmed)
	}
}

func TestPointerInputIgnoredWhileIdle(t *testing.T) {
	var calls int
	s := newTestSurface(t, 1, drawing.Config{
		OnComplete: func(int, annotation.DrawingData) { calls++ },
	})

	s.PointerDown(annotation.Point{X: 5, Y: 5})
	if got := s.State(); got != drawing.StateIdle {
		t.Fatalf("pointer down without a tool must be ignored, state = %q", got)
	}

	s.PointerMove(annotation.Point{X: 6, Y: 6})
	s.PointerUp()
	if calls != 0 {
		t.Fatalf("completion fired %d times without a stroke", calls)
	}
}

func TestClearToolIgnoredWhileDrawing(t *testing.T) {
	s := newTestSurface(t, 1, drawing.Config{})
	s.SelectTool(annotation.ToolPen)
	s.PointerDown(annotation.Point{X: 5, Y: 5})
	s.ClearTool()

	if got := s.State(); got != drawing.StateDrawing {
		t.Fatalf("clear mid-stroke must be ignored, state = %q", got)
	}
}
