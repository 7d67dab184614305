// Package render reassembles resolved tokens into marked text.
//
// A resolved word gains exactly one combining acute, inserted into the
// original token text after its stressed vowel. Everything else,
// separators, unknown words, and text that already carries a stress
// mark, emerges byte-identical. The original casing and apostrophe
// forms are kept because the original bytes are kept.
package render

import (
	"strings"

	"github.com/okovalenko/nagolos/internal/model"
)

// Render concatenates the rendered form of every token
func Render(tokens []model.ResolvedToken) string {
	size := 0
	for _, rt := range tokens {
		size += len(rt.Text)
	}

	var b strings.Builder
	b.Grow(size + size/8)
	for _, rt := range tokens {
		b.WriteString(Text(rt))
	}
	return b.String()
}

// Text renders a single token
func Text(rt model.ResolvedToken) string {
	if rt.Chosen == nil || rt.Chosen.StressIndex < 0 {
		return rt.Text
	}
	// Words marked by the author stay as they are
	if strings.ContainsRune(rt.Text, '́') || strings.ContainsRune(rt.Text, '̀') {
		return rt.Text
	}
	return insertMark(rt.Text, rt.Chosen.StressIndex)
}

// insertMark writes a combining acute after the rune at index idx.
// The lookup key and the token text fold rune for rune, so the stress
// index of the base form addresses the same position here.
func insertMark(text string, idx int) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	i := 0
	for _, r := range text {
		b.WriteRune(r)
		if i == idx {
			b.WriteRune('́')
		}
		i++
	}
	return b.String()
}
