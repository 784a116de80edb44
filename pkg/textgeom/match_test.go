package textgeom_test

import (
	"testing"

	"github.com/quillpdf/quill/pkg/textgeom"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "Hello World"},
		{"  Hello   World  ", "Hello World"},
		{"Hello\n\tWorld", "Hello World"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := textgeom.NormalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindTextBoxes_ExactMatch(t *testing.T) {
	m := textgeom.CharacterBoxes([]textgeom.TextRun{
		run("Hello World", 12, 100, 700, 132),
	})

	boxes := textgeom.FindTextBoxes(m, "Hello World")
	if len(boxes) != 11 {
		t.Fatalf("expected 11 boxes (including the space), got %d", len(boxes))
	}

	var text string
	for _, b := range boxes {
		text += b.Text
	}
	if textgeom.NormalizeWhitespace(text) != "Hello World" {
		t.Errorf("window text %q does not normalize to target", text)
	}
}

func TestFindTextBoxes_SubstringMatch(t *testing.T) {
	m := textgeom.CharacterBoxes([]textgeom.TextRun{
		run("The quick brown fox", 12, 0, 100, 228),
	})

	// The window legitimately opens at the space before "quick": the
	// leading whitespace normalizes away, so the match is 12 boxes.
	boxes := textgeom.FindTextBoxes(m, "quick brown")
	if len(boxes) != 12 {
		t.Fatalf("expected 12 boxes, got %d", len(boxes))
	}

	var text string
	for _, b := range boxes {
		text += b.Text
	}
	if textgeom.NormalizeWhitespace(text) != "quick brown" {
		t.Errorf("window text %q does not normalize to target", text)
	}
}

func TestFindTextBoxes_AcrossRuns(t *testing.T) {
	m := textgeom.CharacterBoxes([]textgeom.TextRun{
		run("Hel", 12, 0, 100, 36),
		run("lo", 12, 36, 100, 24),
	})

	boxes := textgeom.FindTextBoxes(m, "Hello")
	if len(boxes) != 5 {
		t.Fatalf("expected 5 boxes spanning both runs, got %d", len(boxes))
	}
}

func TestFindTextBoxes_NoMatch(t *testing.T) {
	m := textgeom.CharacterBoxes([]textgeom.TextRun{
		run("Hello World", 12, 0, 100, 132),
	})

	if boxes := textgeom.FindTextBoxes(m, "Goodbye"); boxes != nil {
		t.Errorf("expected nil for absent text, got %d boxes", len(boxes))
	}
}

func TestFindTextBoxes_EmptyTarget(t *testing.T) {
	m := textgeom.CharacterBoxes([]textgeom.TextRun{
		run("Hello", 12, 0, 100, 60),
	})

	if boxes := textgeom.FindTextBoxes(m, ""); boxes != nil {
		t.Errorf("expected nil for empty target, got %d boxes", len(boxes))
	}
}

func TestFindTextBoxes_LeftmostMatch(t *testing.T) {
	m := textgeom.CharacterBoxes([]textgeom.TextRun{
		run("abc abc", 10, 0, 100, 70),
	})

	boxes := textgeom.FindTextBoxes(m, "abc")
	if len(boxes) != 3 {
		t.Fatalf("expected 3 boxes, got %d", len(boxes))
	}
	if boxes[0].X != 0 {
		t.Errorf("expected the leftmost occurrence at x=0, got x=%v", boxes[0].X)
	}
}
