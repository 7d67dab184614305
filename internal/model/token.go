package model

// TokenKind classifies a span of input text
type TokenKind int

const (
	KindOther      TokenKind = iota // Unclassified runs, including invalid UTF-8
	KindWord                        // Maximal run of letters, word-internal apostrophes, stress marks
	KindWhitespace                  // Unicode whitespace
	KindDigit                       // Decimal digit runs
	KindPunct                       // Punctuation and symbols
)

func (k TokenKind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindWhitespace:
		return "whitespace"
	case KindDigit:
		return "digit"
	case KindPunct:
		return "punct"
	default:
		return "other"
	}
}

// Token is one contiguous span of the input text. Concatenating the Text
// of all tokens in order reproduces the input byte for byte.
type Token struct {
	Text   string    `json:"text"`             // Exact input slice, never rewritten
	Kind   TokenKind `json:"kind"`             // Word or separator
	Key    string    `json:"key,omitempty"`    // Normalized lookup key (words only)
	Offset int       `json:"offset"`           // Byte offset in the original input
	Index  int       `json:"index"`            // Position among word tokens, -1 for separators
}

// IsWord reports whether the token participates in lexicon lookup
func (t Token) IsWord() bool {
	return t.Kind == KindWord
}

// Resolution states how the stress decision for a word was reached
type Resolution int

const (
	ResolutionNone          Resolution = iota // Separator or otherwise non-lexical token
	ResolutionUnknown                         // Word absent from the lexicon, passed through
	ResolutionSingle                          // Exactly one variant, applied directly
	ResolutionDisambiguated                   // Multiple variants, context picked the winner
	ResolutionDefaulted                       // Multiple variants, context silent, prior order decided
)

func (r Resolution) String() string {
	switch r {
	case ResolutionUnknown:
		return "unknown"
	case ResolutionSingle:
		return "single"
	case ResolutionDisambiguated:
		return "disambiguated"
	case ResolutionDefaulted:
		return "defaulted"
	default:
		return "none"
	}
}

// ResolvedToken pairs a token with the stress decision made for it
type ResolvedToken struct {
	Token
	Resolution Resolution `json:"resolution"`
	Chosen     *Variant   `json:"chosen,omitempty"`     // Winning variant, nil for unknown/separator
	Candidates []Variant  `json:"candidates,omitempty"` // All variants considered, lexicon order
	Score      float64    `json:"score,omitempty"`      // Context score of the winner, 0 unless disambiguated
}

// Tag returns the grammatical tag of the chosen variant, empty when unresolved
func (rt ResolvedToken) Tag() Tag {
	if rt.Chosen == nil {
		return ""
	}
	return rt.Chosen.Tag
}
