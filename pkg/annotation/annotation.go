// Package annotation defines the annotation data model shared by the viewer,
// the drawing surface, and the persistence layer.
//
// This package provides:
//
// - A closed tagged union of annotation variants (highlight, drawing, stamp,
//   text, note) with exhaustive matching enforced at the codec boundary
// - Factory functions that compute derived fields and always return fully
//   constructed values
// - A JSON envelope codec for whole-collection persistence
// - The legacy Note record kept for backward compatibility with the sidebar
//   notes list
// - Stable document identity keys for file- and URL-backed documents
//
// Key Types:
//
// - Annotation: the union interface; only the five variants implement it
// - Highlight, Drawing, Stamp, Text, NoteAnnotation: the variants
// - Common: fields shared by every variant (id, page, document key, metadata)
// - Note: the legacy highlight record
//
// Main Functions:
//
// - NewHighlight, NewDrawing, NewStamp, NewText, NewNoteAnnotation
// - MarshalAnnotations / UnmarshalAnnotations
// - FileKey / URLKey
//
// Coordinates on boxes, bounds and points are page-local: the origin is the
// top-left corner of the rendered page at the scale active when the
// annotation was created. They are not device-pixel-ratio scaled and not
// viewport absolute.
package annotation

// Type discriminates the annotation variants.
type Type string

// Annotation variant tags. These are the values stored in the "type" field
// of the persisted JSON envelope.
const (
	TypeHighlight Type = "highlight"
	TypeDrawing   Type = "drawing"
	TypeStamp     Type = "stamp"
	TypeText      Type = "text"
	TypeNote      Type = "note"
)

// HighlightStyle selects how a highlight is rendered over its text.
type HighlightStyle string

// Highlight styles.
const (
	StyleBackground    HighlightStyle = "background"
	StyleUnderline     HighlightStyle = "underline"
	StyleStrikethrough HighlightStyle = "strikethrough"
	StyleSquiggly      HighlightStyle = "squiggly"
)

// DrawingTool selects the stroke interpretation of a drawing annotation.
type DrawingTool string

// Drawing tools.
const (
	ToolPen       DrawingTool = "pen"
	ToolRectangle DrawingTool = "rectangle"
	ToolCircle    DrawingTool = "circle"
	ToolArrow     DrawingTool = "arrow"
	ToolLine      DrawingTool = "line"
)

// StampType selects the content interpretation of a stamp annotation.
type StampType string

// Stamp content types.
const (
	StampIcon  StampType = "icon"
	StampImage StampType = "image"
	StampText  StampType = "text"
)

// Box is an axis-aligned rectangle in page-local coordinates.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a position in page-local coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Metadata carries the creation attributes shared by every variant.
type Metadata struct {
	Author    string  `json:"author,omitempty"`
	Timestamp int64   `json:"timestamp"` // Unix milliseconds at creation
	Color     string  `json:"color"`
	Opacity   float64 `json:"opacity"`
}

// Common holds the fields present on every annotation variant.
type Common struct {
	ID          string   `json:"id"`
	PageNumber  int      `json:"pageNumber"` // 1-based
	DocumentKey string   `json:"documentKey"`
	Metadata    Metadata `json:"metadata"`
}

// Base returns the common fields of the annotation.
func (c *Common) Base() *Common { return c }

// Annotation is the closed union over the five variants. The unexported
// method keeps the set closed: consumers must type-switch over the concrete
// variants and the codec rejects anything else.
type Annotation interface {
	Type() Type
	Base() *Common
	isAnnotation()
}

// Highlight marks a run of selected text with merged boxes.
type Highlight struct {
	Common
	Data HighlightData `json:"data"`
}

// HighlightData is the variant payload of a Highlight.
type HighlightData struct {
	Text  string         `json:"text"`
	Style HighlightStyle `json:"style"`
	Boxes []Box          `json:"boxes"`
}

// Type returns TypeHighlight.
func (*Highlight) Type() Type     { return TypeHighlight }
func (*Highlight) isAnnotation() {}

// Drawing is a freehand stroke or shape drawn on a page.
type Drawing struct {
	Common
	Data DrawingData `json:"data"`
}

// DrawingData is the variant payload of a Drawing.
type DrawingData struct {
	Tool   DrawingTool  `json:"tool"`
	Paths  []StrokePath `json:"paths"`
	Bounds Box          `json:"bounds"`
}

// StrokePath is one stroke of a drawing.
type StrokePath struct {
	Points    []Point `json:"points"`
	LineWidth float64 `json:"lineWidth"`
	Color     string  `json:"color"`
}

// Type returns TypeDrawing.
func (*Drawing) Type() Type     { return TypeDrawing }
func (*Drawing) isAnnotation() {}

// Stamp places an icon, image or short text at a fixed position.
type Stamp struct {
	Common
	Data StampData `json:"data"`
}

// StampData is the variant payload of a Stamp.
type StampData struct {
	StampType StampType `json:"stampType"`
	Content   string    `json:"content"` // icon name, image data URL, or text
	Position  Point     `json:"position"`
	Size      Size      `json:"size"`
	Rotation  float64   `json:"rotation"`
}

// Type returns TypeStamp.
func (*Stamp) Type() Type     { return TypeStamp }
func (*Stamp) isAnnotation() {}

// Text is free-standing text placed on a page.
type Text struct {
	Common
	Data TextData `json:"data"`
}

// TextData is the variant payload of a Text annotation.
type TextData struct {
	Content    string  `json:"content"`
	Position   Point   `json:"position"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
}

// Type returns TypeText.
func (*Text) Type() Type     { return TypeText }
func (*Text) isAnnotation() {}

// NoteAnnotation attaches a note, optionally linked to a highlight.
type NoteAnnotation struct {
	Common
	Data NoteData `json:"data"`
}

// NoteData is the variant payload of a NoteAnnotation.
type NoteData struct {
	LinkedText  string `json:"linkedText,omitempty"`
	NoteContent string `json:"noteContent"`
	Position    Point  `json:"position"`
	HighlightID string `json:"highlightId,omitempty"`
}

// Type returns TypeNote.
func (*NoteAnnotation) Type() Type     { return TypeNote }
func (*NoteAnnotation) isAnnotation() {}
