package annotation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// FileKey derives the stable document key for a file-backed document from
// its content-identifying attributes. The same logical file yields the same
// key across sessions.
func FileKey(name string, size int64, modTime time.Time) string {
	return fmt.Sprintf("%s-%d-%d", name, size, modTime.UnixMilli())
}

// URLKey derives the stable document key for a URL-backed document as the
// hex SHA-256 of the full URL. Hashing the whole URL keeps distinct
// documents from colliding, which a truncated encoding cannot guarantee.
func URLKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}
