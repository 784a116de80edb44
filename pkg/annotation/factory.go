package annotation

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Default colors applied when the caller passes an empty string.
const (
	DefaultHighlightColor = "#ffeb3b"
	DefaultDrawingColor   = "#000000"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID builds an annotation id from the creation timestamp plus a random
// base-36 suffix. The suffix makes same-millisecond collisions negligible
// even under high-frequency creation.
func newID(prefix string) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// NewHighlight wraps already-merged boxes into a highlight annotation.
// The boxes are stored verbatim; merging is the caller's responsibility.
// An empty style defaults to background, an empty color to the standard
// highlight yellow. Highlights render at 0.3 opacity.
func NewHighlight(documentKey string, pageNumber int, text string, boxes []Box, style HighlightStyle, color string) *Highlight {
	if style == "" {
		style = StyleBackground
	}
	if color == "" {
		color = DefaultHighlightColor
	}
	return &Highlight{
		Common: Common{
			ID:          newID("highlight"),
			PageNumber:  pageNumber,
			DocumentKey: documentKey,
			Metadata: Metadata{
				Timestamp: time.Now().UnixMilli(),
				Color:     color,
				Opacity:   0.3,
			},
		},
		Data: HighlightData{
			Text:  text,
			Style: style,
			Boxes: boxes,
		},
	}
}

// NewDrawing wraps one or more stroke paths into a drawing annotation,
// computing the bounds as the axis-aligned bounding box over every point of
// every path. Empty paths produce a degenerate zero box at the origin; this
// is an explicit edge case, not an error.
func NewDrawing(documentKey string, pageNumber int, tool DrawingTool, paths []StrokePath, color string) *Drawing {
	if color == "" {
		color = DefaultDrawingColor
	}
	return &Drawing{
		Common: Common{
			ID:          newID("drawing"),
			PageNumber:  pageNumber,
			DocumentKey: documentKey,
			Metadata: Metadata{
				Timestamp: time.Now().UnixMilli(),
				Color:     color,
				Opacity:   1,
			},
		},
		Data: DrawingData{
			Tool:   tool,
			Paths:  paths,
			Bounds: PathBounds(paths),
		},
	}
}

// PathBounds returns the axis-aligned bounding box over all points in all
// paths, or a zero box when there are no points.
func PathBounds(paths []StrokePath) Box {
	first := true
	var minX, minY, maxX, maxY float64

	for _, path := range paths {
		for _, p := range path.Points {
			if first {
				minX, maxX = p.X, p.X
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}

	if first {
		return Box{}
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// NewStamp places a stamp at the given position. A zero size defaults to
// 50x50; rotation starts at 0.
func NewStamp(documentKey string, pageNumber int, stampType StampType, content string, position Point, size Size) *Stamp {
	if size == (Size{}) {
		size = Size{Width: 50, Height: 50}
	}
	return &Stamp{
		Common: Common{
			ID:          newID("stamp"),
			PageNumber:  pageNumber,
			DocumentKey: documentKey,
			Metadata: Metadata{
				Timestamp: time.Now().UnixMilli(),
				Color:     DefaultDrawingColor,
				Opacity:   1,
			},
		},
		Data: StampData{
			StampType: stampType,
			Content:   content,
			Position:  position,
			Size:      size,
			Rotation:  0,
		},
	}
}

// NewText places free-standing text at the given position.
func NewText(documentKey string, pageNumber int, content string, position Point, fontSize float64, fontFamily string) *Text {
	if fontSize <= 0 {
		fontSize = 14
	}
	if fontFamily == "" {
		fontFamily = "Helvetica"
	}
	return &Text{
		Common: Common{
			ID:          newID("text"),
			PageNumber:  pageNumber,
			DocumentKey: documentKey,
			Metadata: Metadata{
				Timestamp: time.Now().UnixMilli(),
				Color:     DefaultDrawingColor,
				Opacity:   1,
			},
		},
		Data: TextData{
			Content:    content,
			Position:   position,
			FontSize:   fontSize,
			FontFamily: fontFamily,
		},
	}
}

// NewNoteAnnotation attaches a note at the given position. linkedText and
// highlightID are optional and link the note to the highlight it annotates.
func NewNoteAnnotation(documentKey string, pageNumber int, noteContent string, position Point, linkedText, highlightID string) *NoteAnnotation {
	return &NoteAnnotation{
		Common: Common{
			ID:          newID("note"),
			PageNumber:  pageNumber,
			DocumentKey: documentKey,
			Metadata: Metadata{
				Timestamp: time.Now().UnixMilli(),
				Color:     DefaultHighlightColor,
				Opacity:   1,
			},
		},
		Data: NoteData{
			LinkedText:  linkedText,
			NoteContent: noteContent,
			Position:    position,
			HighlightID: highlightID,
		},
	}
}
