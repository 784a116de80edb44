package annotation_test

import (
	"testing"
	"time"

	"github.com/quillpdf/quill/pkg/annotation"
)

func TestFileKey_Stable(t *testing.T) {
	mod := time.UnixMilli(1700000000000)

	a := annotation.FileKey("paper.pdf", 1234, mod)
	b := annotation.FileKey("paper.pdf", 1234, mod)
	if a != b {
		t.Errorf("same file attributes must yield the same key: %q vs %q", a, b)
	}

	c := annotation.FileKey("paper.pdf", 1235, mod)
	if a == c {
		t.Error("different sizes must yield different keys")
	}
}

func TestURLKey_FullHash(t *testing.T) {
	a := annotation.URLKey("https://example.org/papers/one.pdf")
	b := annotation.URLKey("https://example.org/papers/two.pdf")

	if a == b {
		t.Error("distinct URLs must not collide")
	}
	if len(a) != 64 {
		t.Errorf("expected full-length sha256 hex key, got %d chars", len(a))
	}
	if a != annotation.URLKey("https://example.org/papers/one.pdf") {
		t.Error("URL keys must be stable across calls")
	}
}

// Shared-prefix URLs were the collision risk with the old truncated
// encoding; the full hash must keep them distinct.
func TestURLKey_SharedPrefix(t *testing.T) {
	a := annotation.URLKey("https://example.org/a/very/long/common/prefix/x")
	b := annotation.URLKey("https://example.org/a/very/long/common/prefix/y")
	if a == b {
		t.Error("shared-prefix URLs must yield different keys")
	}
}
