// Package tokenize splits Ukrainian text into word and separator spans.
//
// Adjacent tokens cover the entire input without gaps or overlaps:
// concatenating all Token.Text values reconstructs the input exactly.
// Word tokens additionally carry a normalized lookup key.
package tokenize

import (
	"unicode"
	"unicode/utf8"

	"github.com/okovalenko/nagolos/internal/model"
)

// Split tokenizes text into typed spans. It is total: any byte sequence,
// including invalid UTF-8, produces a token list whose concatenation is
// the input. Word tokens are numbered left to right starting at 0; all
// other tokens carry Index -1.
func Split(text string) []model.Token {
	tokens := make([]model.Token, 0, len(text)/6+1)
	words := 0

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		switch {
		case isWordStart(r):
			j := scanWord(text, i)
			tokens = append(tokens, model.Token{
				Text:   text[i:j],
				Kind:   model.KindWord,
				Key:    Key(text[i:j]),
				Offset: i,
				Index:  words,
			})
			words++
			i = j

		case unicode.IsSpace(r):
			j := i + size
			for j < len(text) {
				nr, ns := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsSpace(nr) {
					break
				}
				j += ns
			}
			tokens = append(tokens, sep(text, i, j, model.KindWhitespace))
			i = j

		case unicode.IsDigit(r):
			j := i + size
			for j < len(text) {
				nr, ns := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsDigit(nr) {
					break
				}
				j += ns
			}
			tokens = append(tokens, sep(text, i, j, model.KindDigit))
			i = j

		case isPunct(r):
			j := i + size
			for j < len(text) {
				nr, ns := utf8.DecodeRuneInString(text[j:])
				if !isPunct(nr) {
					break
				}
				j += ns
			}
			tokens = append(tokens, sep(text, i, j, model.KindPunct))
			i = j

		default:
			// Unclassified runes and invalid UTF-8 bytes pass through untouched
			j := i + size
			for j < len(text) {
				nr, ns := utf8.DecodeRuneInString(text[j:])
				if isWordStart(nr) || unicode.IsSpace(nr) || unicode.IsDigit(nr) || isPunct(nr) {
					break
				}
				j += ns
			}
			tokens = append(tokens, sep(text, i, j, model.KindOther))
			i = j
		}
	}

	return tokens
}

func sep(text string, start, end int, kind model.TokenKind) model.Token {
	return model.Token{
		Text:   text[start:end],
		Kind:   kind,
		Offset: start,
		Index:  -1,
	}
}

// scanWord consumes a word starting at byte offset start and returns the
// byte offset just past its end. A word is a maximal run of letters;
// apostrophes join it only when flanked by letters on both sides, and
// combining stress marks always continue it.
func scanWord(text string, start int) int {
	i := start
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		if isWordLetter(r) || isStressMark(r) {
			i += size
			continue
		}

		if isApostrophe(r) && i > start {
			// Keep the apostrophe only if a letter follows immediately
			nr, _ := utf8.DecodeRuneInString(text[i+size:])
			if isWordLetter(nr) {
				i += size
				continue
			}
		}

		break
	}
	return i
}

// isWordLetter reports whether r is a letter that can begin or extend a
// word. Apostrophe-like modifier letters are handled separately so that
// they never begin a word.
func isWordLetter(r rune) bool {
	return unicode.IsLetter(r) && !isApostrophe(r)
}

func isWordStart(r rune) bool {
	return isWordLetter(r)
}

// isApostrophe matches the apostrophe forms found in Ukrainian text:
// ASCII ', right single quotation mark, and the modifier letter apostrophe.
func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}

// isStressMark matches the combining accents used for Ukrainian stress:
// the acute U+0301 and, in some sources, the grave U+0300.
func isStressMark(r rune) bool {
	return r == '́' || r == '̀'
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
