package tokenize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// keyReplacer folds the variation that must not distinguish lookup keys:
// combining stress marks are dropped, apostrophe forms collapse to ASCII.
var keyReplacer = strings.NewReplacer(
	"́", "", // combining acute accent
	"̀", "", // combining grave accent
	"’", "'", // right single quotation mark
	"ʼ", "'", // modifier letter apostrophe
)

// Key normalizes a word to its lexicon lookup form: stress marks removed,
// apostrophes folded, lowercased, NFC-composed. Key is idempotent, so
// already-marked text maps to the same keys as its unmarked original.
func Key(word string) string {
	return norm.NFC.String(strings.ToLower(keyReplacer.Replace(word)))
}

// vowels is the Ukrainian vowel set in lowercase
const vowels = "аеєиіїоуюя"

// CountVowels returns the number of Ukrainian vowel letters in s.
// The caller is expected to pass a normalized form.
func CountVowels(s string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(vowels, r) {
			n++
		}
	}
	return n
}

// IsVowel reports whether r is a Ukrainian vowel letter in either case
func IsVowel(r rune) bool {
	return strings.ContainsRune(vowels, r) ||
		strings.ContainsRune("АЕЄИІЇОУЮЯ", r)
}

// StripMarks removes combining stress marks without any other folding.
// Used when comparing already-marked output against plain text.
func StripMarks(s string) string {
	if !strings.ContainsRune(s, '́') && !strings.ContainsRune(s, '̀') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isStressMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
