package hocrtext_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quillpdf/quill/pkg/hocrtext"
	"github.com/quillpdf/quill/pkg/textgeom"
)

const sampleHOCR = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"/></head>
<body>
<div class="ocr_page" id="page_1" title="image &quot;scan.png&quot;; bbox 0 0 1000 1400; ppageno 0">
 <div class="ocr_carea" title="bbox 100 100 900 200">
  <p class="ocr_par" title="bbox 100 100 900 160">
   <span class="ocr_line" title="bbox 100 100 420 148; baseline 0 -4">
    <span class="ocrx_word" title="bbox 100 100 240 148; x_wconf 96">Hello</span>
    <span class="ocrx_word" title="bbox 260 100 420 148; x_wconf 93">World</span>
   </span>
  </p>
 </div>
 <span class="ocrx_word" title="bbox 100 1300 180 1340; x_wconf 80">footer</span>
</div>
<div class="ocr_page" id="page_2" title="bbox 0 0 1000 1400; ppageno 1">
 <span class="ocr_line" title="bbox 100 100 300 140">
  <span class="ocrx_word" title="bbox 100 100 300 140; x_wconf 90">Second</span>
 </span>
</div>
</body>
</html>`

func TestParseWords(t *testing.T) {
	pages, err := hocrtext.ParseWords([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	page := pages[0]
	if page.PageNumber != 1 {
		t.Errorf("page number = %d, want 1 (ppageno 0)", page.PageNumber)
	}
	if want := (hocrtext.BoundingBox{X1: 0, Y1: 0, X2: 1000, Y2: 1400}); page.BBox != want {
		t.Errorf("page bbox = %+v, want %+v", page.BBox, want)
	}

	// One real line plus the stray footer word wrapped as its own line.
	if len(page.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(page.Lines))
	}

	line := page.Lines[0]
	if want := (hocrtext.BoundingBox{X1: 100, Y1: 100, X2: 420, Y2: 148}); line.BBox != want {
		t.Errorf("line bbox = %+v, want %+v", line.BBox, want)
	}
	wantWords := []hocrtext.Word{
		{Text: "Hello", BBox: hocrtext.BoundingBox{X1: 100, Y1: 100, X2: 240, Y2: 148}, Confidence: 96},
		{Text: "World", BBox: hocrtext.BoundingBox{X1: 260, Y1: 100, X2: 420, Y2: 148}, Confidence: 93},
	}
	if diff := cmp.Diff(wantWords, line.Words); diff != "" {
		t.Errorf("line words mismatch (-want +got):\n%s", diff)
	}

	footer := page.Lines[1]
	if len(footer.Words) != 1 || footer.Words[0].Text != "footer" {
		t.Errorf("stray word line = %+v, want single word %q", footer, "footer")
	}

	if got := pages[1].PageNumber; got != 2 {
		t.Errorf("second page number = %d, want 2", got)
	}
}

func TestParseWordsNoPages(t *testing.T) {
	if _, err := hocrtext.ParseWords([]byte("<html><body><p>plain</p></body></html>")); err == nil {
		t.Fatal("expected error for document without ocr_page elements")
	}
}

func TestParseWordsTruncatedCharset(t *testing.T) {
	// Inputs ending shortly after the charset declaration must not slice
	// past the end of the document.
	inputs := []string{
		`<meta charset="utf-8">xxxxx`,
		`<meta charset=`,
		`<meta charset="`,
		`<meta charset=">`,
	}
	for _, in := range inputs {
		if _, err := hocrtext.ParseWords([]byte(in)); err == nil {
			t.Errorf("ParseWords(%q): expected error, got nil", in)
		}
	}
}

func TestParseWordsLatin1Fallback(t *testing.T) {
	doc := []byte(`<html><head><meta charset="iso-8859-1"/></head><body>` +
		`<div class="ocr_page" title="bbox 0 0 100 100">` +
		`<span class="ocrx_word" title="bbox 10 10 40 30">caf` + "\xe9" + `</span>` +
		`</div></body></html>`)

	pages, err := hocrtext.ParseWords(doc)
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}
	words := pages[0].Words()
	if len(words) != 1 || words[0].Text != "café" {
		t.Fatalf("words = %+v, want single word %q", words, "café")
	}
}

func TestWordsFlattensReadingOrder(t *testing.T) {
	pages, err := hocrtext.ParseWords([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}
	var texts []string
	for _, w := range pages[0].Words() {
		texts = append(texts, w.Text)
	}
	want := []string{"Hello", "World", "footer"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("reading order mismatch (-want +got):\n%s", diff)
	}
}

func TestTextRunsFeedMatcher(t *testing.T) {
	pages, err := hocrtext.ParseWords([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}

	runs := pages[0].TextRuns()
	m := textgeom.CharacterBoxes(runs)

	boxes := textgeom.FindTextBoxes(m, "Hello World")
	if len(boxes) == 0 {
		t.Fatal("selection not found in synthesized runs")
	}

	merged := textgeom.MergeBoxes(boxes, textgeom.MergeConfig{LineTolerance: 2, GapTolerance: 30})
	if len(merged) != 1 {
		t.Fatalf("got %d merged regions, want 1", len(merged))
	}
	if merged[0].X != 100 {
		t.Errorf("region starts at x=%v, want 100", merged[0].X)
	}
	if merged[0].Right() < 420 {
		t.Errorf("region ends at x=%v, want at least 420", merged[0].Right())
	}
}
