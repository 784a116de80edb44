package textgeom_test

import (
	"testing"

	"github.com/quillpdf/quill/pkg/textgeom"
)

func box(x, y, w, h float64, text string) textgeom.CharacterBox {
	return textgeom.CharacterBox{X: x, Y: y, Width: w, Height: h, Text: text}
}

func TestMergeBoxes_AdjacentSameLine(t *testing.T) {
	cfg := textgeom.DefaultMergeConfig()

	merged := textgeom.MergeBoxes([]textgeom.CharacterBox{
		box(0, 10, 6, 12, "a"),
		box(8, 10, 6, 12, "b"), // 2px gap, below tolerance
	}, cfg)

	if len(merged) != 1 {
		t.Fatalf("expected 1 merged box, got %d", len(merged))
	}
	if merged[0].Text != "ab" {
		t.Errorf("expected merged text %q, got %q", "ab", merged[0].Text)
	}
	if merged[0].Width != 14 {
		t.Errorf("expected merged width 14, got %v", merged[0].Width)
	}
}

func TestMergeBoxes_WideGapSplits(t *testing.T) {
	cfg := textgeom.DefaultMergeConfig()

	merged := textgeom.MergeBoxes([]textgeom.CharacterBox{
		box(0, 10, 6, 12, "a"),
		box(20, 10, 6, 12, "b"), // 14px gap, above tolerance
	}, cfg)

	if len(merged) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(merged))
	}
}

func TestMergeBoxes_DifferentLinesSplit(t *testing.T) {
	cfg := textgeom.DefaultMergeConfig()

	merged := textgeom.MergeBoxes([]textgeom.CharacterBox{
		box(0, 10, 6, 12, "a"),
		box(6, 30, 6, 12, "b"),
	}, cfg)

	if len(merged) != 2 {
		t.Fatalf("expected 2 boxes across lines, got %d", len(merged))
	}
	if merged[0].Y == merged[1].Y {
		t.Error("merged boxes must not share characters from different lines")
	}
}

func TestMergeBoxes_Empty(t *testing.T) {
	if merged := textgeom.MergeBoxes(nil, textgeom.DefaultMergeConfig()); merged != nil {
		t.Errorf("expected nil for empty input, got %v", merged)
	}
}

func TestMergeBoxes_PreservesOrder(t *testing.T) {
	cfg := textgeom.DefaultMergeConfig()

	merged := textgeom.MergeBoxes([]textgeom.CharacterBox{
		box(0, 10, 6, 12, "a"),
		box(6, 10, 6, 12, "b"),
		box(0, 30, 6, 12, "c"),
		box(6, 30, 6, 12, "d"),
	}, cfg)

	if len(merged) != 2 {
		t.Fatalf("expected 2 merged boxes, got %d", len(merged))
	}
	if merged[0].Y != 10 || merged[1].Y != 30 {
		t.Errorf("expected top-to-bottom order, got y=%v then y=%v", merged[0].Y, merged[1].Y)
	}
	if merged[0].Text != "ab" || merged[1].Text != "cd" {
		t.Errorf("expected texts ab/cd, got %q/%q", merged[0].Text, merged[1].Text)
	}
}

func TestMergeBoxes_CustomTolerances(t *testing.T) {
	cfg := textgeom.MergeConfig{LineTolerance: 2, GapTolerance: 30}

	merged := textgeom.MergeBoxes([]textgeom.CharacterBox{
		box(0, 10, 6, 12, "a"),
		box(20, 10, 6, 12, "b"),
	}, cfg)

	if len(merged) != 1 {
		t.Fatalf("expected the wider gap tolerance to merge, got %d boxes", len(merged))
	}
}

func TestMergeSelection_HelloWorld(t *testing.T) {
	// End to end: select "Hello World", match it, merge the 11 boxes.
	// The space still sits within the gap tolerance, so a single region
	// is acceptable; what matters is that it never exceeds two.
	m := textgeom.CharacterBoxes([]textgeom.TextRun{
		run("Hello World", 12, 100, 700, 132),
	})

	matched := textgeom.FindTextBoxes(m, "Hello World")
	if len(matched) != 11 {
		t.Fatalf("expected 11 matched boxes, got %d", len(matched))
	}

	merged := textgeom.MergeBoxes(matched, textgeom.DefaultMergeConfig())
	if len(merged) == 0 || len(merged) > 2 {
		t.Fatalf("expected at most 2 merged regions, got %d", len(merged))
	}
}
