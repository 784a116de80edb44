package drawing

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/felixgeelhaar/statekit"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/quillpdf/quill/pkg/annotation"
	"github.com/quillpdf/quill/pkg/logging"
)

// CompletionFunc is invoked once per finished stroke with the page number
// and the drawing data ready to be wrapped by the annotation factory.
type CompletionFunc func(pageNum int, data annotation.DrawingData)

// Config holds the stroke and rendering options of a surface.
type Config struct {
	Color      string         // Stroke color for new drawings
	LineWidth  float64        // Stroke width for new drawings
	DPMM       float64        // Raster resolution in dots per canvas unit
	OnComplete CompletionFunc // Called once per completed stroke
	Logger     *bolt.Logger   // nil falls back to the default logger
}

// DefaultSurfaceConfig returns the stroke defaults of the reader.
func DefaultSurfaceConfig() Config {
	return Config{
		Color:     annotation.DefaultDrawingColor,
		LineWidth: 2,
		DPMM:      1,
	}
}

// Surface renders committed drawing annotations for one page plus the
// stroke in progress. It is bound to a single page number for its whole
// lifetime; annotations for other pages are never rendered.
type Surface struct {
	pageNum int
	width   float64
	height  float64
	cfg     Config
	logger  *bolt.Logger

	interp *statekit.Interpreter[*machineContext]
	tool   annotation.DrawingTool

	committed    *canvas.Canvas
	committedIDs []string

	overlay    *canvas.Canvas
	overlayCtx *canvas.Context

	currentPath []annotation.Point
	startPoint  annotation.Point
}

// NewSurface creates an idle surface for one page at the given pixel size.
func NewSurface(pageNum int, width, height float64, cfg Config) (*Surface, error) {
	if pageNum < 1 {
		return nil, fmt.Errorf("page number must be at least 1, got %d", pageNum)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface size must be positive, got %gx%g", width, height)
	}
	if cfg.LineWidth <= 0 {
		cfg.LineWidth = DefaultSurfaceConfig().LineWidth
	}
	if cfg.Color == "" {
		cfg.Color = DefaultSurfaceConfig().Color
	}
	if cfg.DPMM <= 0 {
		cfg.DPMM = DefaultSurfaceConfig().DPMM
	}

	machine, err := newInputMachine()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Get()
	}

	s := &Surface{
		pageNum:   pageNum,
		width:     width,
		height:    height,
		cfg:       cfg,
		logger:    logger,
		interp:    statekit.NewInterpreter(machine),
		committed: canvas.New(width, height),
	}
	s.interp.Start()
	s.resetOverlay()
	return s, nil
}

// PageNumber returns the page this surface is bound to.
func (s *Surface) PageNumber() int { return s.pageNum }

// State returns the current input state.
func (s *Surface) State() State {
	return State(s.interp.State().Value)
}

// Tool returns the currently selected tool, empty when idle.
func (s *Surface) Tool() annotation.DrawingTool { return s.tool }

func (s *Surface) matches(st State) bool {
	return s.interp.Matches(statekit.StateID(st))
}

func (s *Surface) send(event statekit.EventType) {
	s.interp.Send(statekit.Event{Type: event})
}

// SelectTool arms the surface with the given tool. Selecting a new tool
// while armed replaces the current one.
func (s *Surface) SelectTool(tool annotation.DrawingTool) {
	if tool == "" {
		s.ClearTool()
		return
	}
	if !s.matches(StateIdle) && !s.matches(StateArmed) {
		return
	}
	s.tool = tool
	s.send(eventSelectTool)
}

// ClearTool disarms the surface; pointer input is ignored afterwards.
func (s *Surface) ClearTool() {
	if !s.matches(StateArmed) {
		return
	}
	s.tool = ""
	s.send(eventClearTool)
}

// resetOverlay discards the transient stroke layer.
func (s *Surface) resetOverlay() {
	s.overlay = canvas.New(s.width, s.height)
	s.overlayCtx = canvas.NewContext(s.overlay)
}

// PointerDown starts a stroke when the surface is armed.
func (s *Surface) PointerDown(p annotation.Point) {
	if !s.matches(StateArmed) {
		return
	}
	s.startPoint = p
	s.currentPath = []annotation.Point{p}
	s.resetOverlay()
	s.send(eventPointerDown)
}

// PointerMove extends the stroke in progress. Pen strokes add only the new
// segment to the overlay; shape previews are repainted in full so the prior
// preview disappears.
func (s *Surface) PointerMove(p annotation.Point) {
	if !s.matches(StateDrawing) {
		return
	}

	if s.tool == annotation.ToolPen {
		last := s.currentPath[len(s.currentPath)-1]
		s.currentPath = append(s.currentPath, p)
		strokePath(s.overlayCtx, annotation.ToolPen, annotation.StrokePath{
			Points:    []annotation.Point{last, p},
			LineWidth: s.cfg.LineWidth,
			Color:     s.cfg.Color,
		}, s.height)
		return
	}

	s.currentPath = []annotation.Point{s.startPoint, p}
	s.resetOverlay()
	strokePath(s.overlayCtx, s.tool, annotation.StrokePath{
		Points:    s.currentPath,
		LineWidth: s.cfg.LineWidth,
		Color:     s.cfg.Color,
	}, s.height)
}

// PointerUp completes the stroke and emits it to the completion callback.
func (s *Surface) PointerUp() {
	if !s.matches(StateDrawing) {
		return
	}
	s.finishStroke()
	s.send(eventPointerUp)
}

// PointerLeave completes the stroke with the last known point. Leaving the
// surface mid-stroke must not leave the machine stuck in Drawing.
func (s *Surface) PointerLeave() {
	if !s.matches(StateDrawing) {
		return
	}
	s.finishStroke()
	s.send(eventPointerLeave)
}

// finishStroke finalizes the accumulated path, emits the drawing data, and
// repaints from the committed layer.
func (s *Surface) finishStroke() {
	if len(s.currentPath) > 0 {
		points := s.currentPath
		if s.tool != annotation.ToolPen {
			points = []annotation.Point{s.startPoint, s.currentPath[len(s.currentPath)-1]}
		}

		paths := []annotation.StrokePath{{
			Points:    points,
			LineWidth: s.cfg.LineWidth,
			Color:     s.cfg.Color,
		}}
		data := annotation.DrawingData{
			Tool:   s.tool,
			Paths:  paths,
			Bounds: annotation.PathBounds(paths),
		}

		if s.cfg.OnComplete != nil {
			s.cfg.OnComplete(s.pageNum, data)
		}
	}

	// Full repaint from the committed layer: the incremental segments (or
	// the last shape preview) are dropped, eliminating any drift.
	s.currentPath = nil
	s.resetOverlay()
}

// SetCommitted replaces the set of persisted annotations rendered on the
// committed layer. The layer is rebuilt only when the set actually changed.
// Annotations whose page number does not match the surface are skipped with
// a warning and never rendered.
func (s *Surface) SetCommitted(drawings []*annotation.Drawing) {
	ids := make([]string, len(drawings))
	for i, d := range drawings {
		ids[i] = d.ID
	}
	if sameIDs(ids, s.committedIDs) {
		return
	}
	s.committedIDs = ids

	s.committed = canvas.New(s.width, s.height)
	ctx := canvas.NewContext(s.committed)

	for _, d := range drawings {
		if d.PageNumber != s.pageNum {
			s.logger.Warn().
				Str("id", d.ID).
				Int("annotation_page", d.PageNumber).
				Int("surface_page", s.pageNum).
				Msg("skipping drawing for mismatched page")
			continue
		}
		drawAnnotation(ctx, d, s.height)
	}
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Image rasterizes the committed layer composited with the transient
// overlay.
func (s *Surface) Image() image.Image {
	base := rasterizer.Draw(s.committed, canvas.DPMM(s.cfg.DPMM), canvas.DefaultColorSpace)
	over := rasterizer.Draw(s.overlay, canvas.DPMM(s.cfg.DPMM), canvas.DefaultColorSpace)

	out := image.NewRGBA(base.Bounds())
	draw.Draw(out, out.Bounds(), base, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), over, image.Point{}, draw.Over)
	return out
}
