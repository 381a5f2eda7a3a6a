package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"path"
	"strings"
)

// KeyFor derives the content-addressed key for object bytes: the SHA-1 hex
// digest of the payload followed by the original file extension, lowercased.
func KeyFor(data []byte, filename string) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:]) + extensionOf(filename)
}

func extensionOf(filename string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	if ext == "." {
		return ""
	}
	return ext
}
