package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface shared by the memory, disk, and layered caches.
// The pipeline uses it to avoid re-fetching pages and re-analyzing
// identical inputs; the engine itself never touches it.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// URLKey generates a cache key for a fetched page.
func URLKey(url string) string {
	return key("page", []byte(url))
}

// TextKey generates a cache key for an analysis of raw text. Only the
// digest is stored: the submitted text itself is never persisted.
func TextKey(text string) string {
	return key("text", []byte(text))
}

func key(kind string, data []byte) string {
	hash := sha256.Sum256(data)
	return "prosewatch:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
