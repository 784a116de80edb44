// Package viewer orchestrates the selection-to-highlight pipeline of the
// reader.
//
// A Session is bound to one open document. It keeps the per-page character
// geometry produced by pkg/textgeom, turns text selections into highlight
// annotations plus their legacy note records, wraps finished drawing
// strokes, and reads back per-page annotation sets from the store.
//
// Key Types:
// - Session: per-document orchestration state
// - Config: merge tolerances and logging for a session
//
// Main Functions:
// - NewSession: validates inputs and creates a session
// - (*Session).LoadPage: builds the character map for a rendered page
// - (*Session).LoadScannedPage: the same, from hOCR recognition output
// - (*Session).HighlightSelection: selection text to persisted highlight
// - (*Session).CompleteDrawing: finished stroke to persisted drawing
//
// Page character maps are rebuilt on every render and invalidated on scale
// changes. Persistence failures are logged and the in-memory result is still
// returned to the caller; the UI keeps working and the save is retried the
// next time the collection is written.
package viewer

import (
	"context"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"

	"github.com/quillpdf/quill/pkg/annotation"
	"github.com/quillpdf/quill/pkg/annotstore"
	"github.com/quillpdf/quill/pkg/hocrtext"
	"github.com/quillpdf/quill/pkg/logging"
	"github.com/quillpdf/quill/pkg/textgeom"
)

// Config carries the tunables of a session.
type Config struct {
	Merge  textgeom.MergeConfig // Box merge tolerances for highlights
	Logger *bolt.Logger         // nil falls back to the default logger
}

// DefaultConfig returns the session defaults.
func DefaultConfig() Config {
	return Config{
		Merge: textgeom.DefaultMergeConfig(),
	}
}

// Session holds the annotation state of one open document.
type Session struct {
	id          string
	documentKey string
	store       annotstore.Store
	cfg         Config
	logger      *bolt.Logger

	mu         sync.Mutex
	activePage int
	pages      map[int]textgeom.PageCharacterMap
}

// NewSession creates a session for the document identified by documentKey.
func NewSession(documentKey string, store annotstore.Store, cfg Config) (*Session, error) {
	if documentKey == "" {
		return nil, fmt.Errorf("document key is required")
	}
	if store == nil {
		return nil, fmt.Errorf("annotation store is required")
	}
	if cfg.Merge.LineTolerance <= 0 || cfg.Merge.GapTolerance <= 0 {
		cfg.Merge = textgeom.DefaultMergeConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Get()
	}
	return &Session{
		id:          uuid.New().String(),
		documentKey: documentKey,
		store:       store,
		cfg:         cfg,
		logger:      logger,
		pages:       make(map[int]textgeom.PageCharacterMap),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// DocumentKey returns the key of the open document.
func (s *Session) DocumentKey() string { return s.documentKey }

// SetActivePage marks the page the viewer currently shows. Page loads that
// finish after the viewer moved on are discarded.
func (s *Session) SetActivePage(pageNum int) {
	s.mu.Lock()
	s.activePage = pageNum
	s.mu.Unlock()
}

// LoadPage builds the character map for a rendered page from its text runs.
// The map is rebuilt from scratch on every call; a page rendered at a new
// scale simply loads again. When the context is cancelled or the page is no
// longer active by the time extraction finishes, the result is dropped.
func (s *Session) LoadPage(ctx context.Context, pageNum int, runs []textgeom.TextRun) error {
	if pageNum < 1 {
		return fmt.Errorf("page number must be at least 1, got %d", pageNum)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := textgeom.CharacterBoxes(runs)

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activePage != 0 && s.activePage != pageNum {
		s.logger.Debug().
			Int("page", pageNum).
			Int("active_page", s.activePage).
			Msg("dropping stale page geometry")
		return nil
	}
	s.pages[pageNum] = m
	return nil
}

// LoadScannedPage builds the character map of a scanned page from hOCR
// recognition output. The page's word boxes become synthetic text runs, so
// selections on scanned pages go through the same matching pipeline as
// born-digital text.
func (s *Session) LoadScannedPage(ctx context.Context, pageNum int, hocr []byte) error {
	pages, err := hocrtext.ParseWords(hocr)
	if err != nil {
		return fmt.Errorf("parsing hOCR: %w", err)
	}
	for _, p := range pages {
		if p.PageNumber == pageNum {
			return s.LoadPage(ctx, pageNum, p.TextRuns())
		}
	}
	return fmt.Errorf("page %d not present in hOCR data", pageNum)
}

// InvalidatePage drops the cached character map of a page. Called when the
// render scale changes and the old geometry no longer matches the screen.
func (s *Session) InvalidatePage(pageNum int) {
	s.mu.Lock()
	delete(s.pages, pageNum)
	s.mu.Unlock()
}

func (s *Session) pageMap(pageNum int) (textgeom.PageCharacterMap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.pages[pageNum]
	return m, ok
}

// HighlightSelection turns a text selection into a highlight annotation and
// its legacy note record, persisting both.
//
// The selection text is matched against the page's character map and the
// matched boxes are merged into line regions. When no match is found (or the
// page geometry is not loaded), the caller-provided fallback rectangles are
// used instead, so a highlight is still produced from the approximate
// selection bounds. An empty selection is a no-op.
//
// A store failure is logged and the in-memory annotations are still
// returned; the collection is written again on the next change.
func (s *Session) HighlightSelection(ctx context.Context, pageNum int, text string, style annotation.HighlightStyle, color string, fallback []annotation.Box) (*annotation.Highlight, *annotation.Note, error) {
	normalized := textgeom.NormalizeWhitespace(text)
	if normalized == "" {
		return nil, nil, nil
	}

	boxes := s.selectionBoxes(pageNum, normalized, fallback)
	if len(boxes) == 0 {
		return nil, nil, fmt.Errorf("no text match for selection on page %d and no fallback boxes", pageNum)
	}

	h := annotation.NewHighlight(s.documentKey, pageNum, text, boxes, style, color)
	note := annotation.NewNote(s.documentKey, pageNum, text, boxes[0], text, "", "", h.Metadata.Color, nil)

	if err := s.store.Add(ctx, s.documentKey, h); err != nil {
		s.logger.Error().
			Str("document", s.documentKey).
			Str("id", h.ID).
			Err(err).
			Msg("failed to persist highlight")
	}
	if err := s.store.SaveNote(ctx, note); err != nil {
		s.logger.Error().
			Str("document", s.documentKey).
			Str("note", note.Key).
			Err(err).
			Msg("failed to persist note")
	}
	return h, &note, nil
}

// selectionBoxes resolves the highlight geometry for a normalized selection,
// falling back to the approximate rectangles when matching fails.
func (s *Session) selectionBoxes(pageNum int, normalized string, fallback []annotation.Box) []annotation.Box {
	if m, ok := s.pageMap(pageNum); ok {
		if matched := textgeom.FindTextBoxes(m, normalized); len(matched) > 0 {
			merged := textgeom.MergeBoxes(matched, s.cfg.Merge)
			boxes := make([]annotation.Box, len(merged))
			for i, b := range merged {
				boxes[i] = annotation.Box{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
			}
			return boxes
		}
		s.logger.Warn().
			Int("page", pageNum).
			Msg("selection text not found in page geometry, using fallback boxes")
	}
	return fallback
}

// CompleteDrawing wraps a finished stroke in a drawing annotation and
// persists it. Intended as the completion callback of a drawing surface.
func (s *Session) CompleteDrawing(ctx context.Context, pageNum int, data annotation.DrawingData, color string) (*annotation.Drawing, error) {
	if len(data.Paths) == 0 {
		return nil, fmt.Errorf("drawing has no paths")
	}
	d := annotation.NewDrawing(s.documentKey, pageNum, data.Tool, data.Paths, color)

	if err := s.store.Add(ctx, s.documentKey, d); err != nil {
		s.logger.Error().
			Str("document", s.documentKey).
			Str("id", d.ID).
			Err(err).
			Msg("failed to persist drawing")
	}
	return d, nil
}

// AnnotationsForPage returns the annotations of one page.
func (s *Session) AnnotationsForPage(ctx context.Context, pageNum int) ([]annotation.Annotation, error) {
	all, err := s.store.Get(ctx, s.documentKey)
	if err != nil {
		return nil, fmt.Errorf("loading annotations: %w", err)
	}
	var page []annotation.Annotation
	for _, a := range all {
		if a.Base().PageNumber == pageNum {
			page = append(page, a)
		}
	}
	return page, nil
}

// DrawingsForPage returns the drawing annotations of one page, in insertion
// order, ready for a surface's committed layer.
func (s *Session) DrawingsForPage(ctx context.Context, pageNum int) ([]*annotation.Drawing, error) {
	all, err := s.AnnotationsForPage(ctx, pageNum)
	if err != nil {
		return nil, err
	}
	var drawings []*annotation.Drawing
	for _, a := range all {
		if d, ok := a.(*annotation.Drawing); ok {
			drawings = append(drawings, d)
		}
	}
	return drawings, nil
}

// UpdateNoteText edits the free-text comment attached to a legacy note. The
// highlighted-text snapshot is immutable; the comment is the only supported
// note mutation.
func (s *Session) UpdateNoteText(ctx context.Context, noteKey, text string) error {
	return s.store.UpdateNote(ctx, s.documentKey, noteKey, func(n *annotation.Note) {
		n.Notes = text
	})
}

// DeleteAnnotation removes an annotation from the document.
func (s *Session) DeleteAnnotation(ctx context.Context, id string) error {
	return s.store.Delete(ctx, s.documentKey, id)
}
