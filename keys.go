package lingosnip

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text. Catalog diffing
// uses it to detect changed values without comparing full strings.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CatalogCacheKey derives the cache key for one language's catalog.
// The key is deterministic so repeated loads hit the same entry.
func CatalogCacheKey(language string) string {
	return "catalog:" + NormalizeTag(language)
}
