package extract

import (
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// Cache memoizes extraction results by project path and content digest.
// A nil Cache disables caching. Errors are reported but never fatal:
// a failed lookup re-extracts and a failed save is dropped.
type Cache interface {
	Lookup(path, digest string) ([]string, bool, error)
	Save(path, digest string, names []string) error
}

// Digest returns the cache key for source: its 128-bit xxh3 hash in hex.
func Digest(source []byte) string {
	sum := xxh3.Hash128(source).Bytes()
	return hex.EncodeToString(sum[:])
}
