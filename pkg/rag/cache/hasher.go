package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashQuery canonicalizes a query (lowercase, trimmed) and returns its
// sha256 hex digest. Queries differing only in case or surrounding
// whitespace share a cache key.
func HashQuery(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
