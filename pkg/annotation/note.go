package annotation

import (
	"strconv"
	"time"
)

// NoteDate is the calendar date a legacy note was created.
type NoteDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Note is the legacy highlight record kept for backward compatibility. One
// is created alongside every highlight annotation and read independently by
// the sidebar notes list.
type Note struct {
	Key        string   `json:"key"`     // Millisecond timestamp at creation
	BookKey    string   `json:"bookKey"` // Document key of the owning document
	Date       NoteDate `json:"date"`
	Page       int      `json:"page"`
	Text       string   `json:"text"`     // The highlighted text
	Position   Box      `json:"position"` // Bounding box of the highlight
	Range      string   `json:"range"`    // Serialized list of selection rects
	Notes      string   `json:"notes"`    // Free text attached by the user
	Percentage string   `json:"percentage"`
	Color      string   `json:"color"`
	Tags       []string `json:"tags"`
}

// NewNote builds a legacy note for a highlight on the given page.
func NewNote(bookKey string, page int, text string, position Box, noteRange, notes, percentage, color string, tags []string) Note {
	now := time.Now()
	return Note{
		Key:     strconv.FormatInt(now.UnixMilli(), 10),
		BookKey: bookKey,
		Date: NoteDate{
			Year:  now.Year(),
			Month: int(now.Month()),
			Day:   now.Day(),
		},
		Page:       page,
		Text:       text,
		Position:   position,
		Range:      noteRange,
		Notes:      notes,
		Percentage: percentage,
		Color:      color,
		Tags:       tags,
	}
}
