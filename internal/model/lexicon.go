package model

import "strings"

// Variant is one stressed reading of a base form
type Variant struct {
	Stressed    string  `json:"stressed"`         // Form with U+0301 after the stressed vowel
	StressIndex int     `json:"stress_index"`     // Rune index of the stressed vowel in the base form, -1 when unmarked
	Tag         Tag     `json:"tag,omitempty"`    // Grammatical tag, e.g. "noun:place"
	Weight      float64 `json:"weight"`           // Prior weight, higher wins when context is silent
}

// Tag is a colon-separated grammatical label: "noun:place", "verb", "prep:loc".
// The part before the first colon is the part of speech, the rest narrows it.
type Tag string

// POS returns the part-of-speech component of the tag
func (t Tag) POS() string {
	s := string(t)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i]
	}
	return s
}

// Sense returns the component after the part of speech, empty if absent
func (t Tag) Sense() string {
	s := string(t)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// Matches reports whether the tag satisfies a pattern. A pattern is either
// an exact tag or a part of speech followed by ":*", which matches any
// sense of that part of speech.
func (t Tag) Matches(pattern Tag) bool {
	if t == pattern {
		return true
	}
	p := string(pattern)
	if strings.HasSuffix(p, ":*") {
		return t.POS() == p[:len(p)-2]
	}
	return false
}
