// Package lexicon holds the stress dictionary: normalized base forms
// mapped to their stressed variants. A Store is built once by the loader
// and is read-only afterwards, so concurrent lookups need no locking.
package lexicon

import (
	"strings"

	"github.com/okovalenko/nagolos/internal/model"
)

// Store is an immutable, hash-indexed stress dictionary. Variant slices
// are ordered by descending prior weight with ties in file order; the
// order is fixed at load time so lookups can share the slices safely.
type Store struct {
	entries  map[string][]model.Variant
	variants int
	version  string
}

// Lookup returns the variants stored for a normalized key, or nil when
// the key is unknown. Unknown words are not an error: the caller passes
// them through unchanged. The returned slice is shared and must not be
// modified.
func (s *Store) Lookup(key string) []model.Variant {
	return s.entries[key]
}

// Len returns the number of base forms in the store
func (s *Store) Len() int {
	return len(s.entries)
}

// Variants returns the total variant count across all base forms
func (s *Store) Variants() int {
	return s.variants
}

// Ambiguous returns how many base forms carry more than one variant
func (s *Store) Ambiguous() int {
	n := 0
	for _, vs := range s.entries {
		if len(vs) > 1 {
			n++
		}
	}
	return n
}

// Version identifies the loaded content, derived from a hash of the
// source bytes. Used in cache keys so stale renderings never survive a
// lexicon change.
func (s *Store) Version() string {
	return s.version
}

// Stressed returns base with a combining acute inserted after the rune
// at index idx. idx == -1 returns base unchanged.
func Stressed(base string, idx int) string {
	if idx < 0 {
		return base
	}
	var b strings.Builder
	b.Grow(len(base) + 2)
	for i, r := range []rune(base) {
		b.WriteRune(r)
		if i == idx {
			b.WriteRune('́')
		}
	}
	return b.String()
}
