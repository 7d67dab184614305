// Package cache memoizes rendered segments. Keys bind the segment text
// to the lexicon and table versions that produced the rendering, so a
// dictionary or rule change never serves stale output.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SegmentKey derives the cache key for a segment rendered under the
// given lexicon and table versions
func SegmentKey(lexiconVersion, tableVersion, segment string) string {
	h := sha256.New()
	h.Write([]byte(lexiconVersion))
	h.Write([]byte{0})
	h.Write([]byte(tableVersion))
	h.Write([]byte{0})
	h.Write([]byte(segment))
	return "nagolos:v1:" + hex.EncodeToString(h.Sum(nil))
}
