// Package resolve turns tokens into stress candidates via the lexicon.
//
// Words absent from the lexicon are passed through untouched: the engine
// never invents a stress position. Words with several variants leave
// here carrying their prior-order default and are finalized by the
// context disambiguator.
package resolve

import (
	"github.com/okovalenko/nagolos/internal/lexicon"
	"github.com/okovalenko/nagolos/internal/model"
)

// Candidates produces a resolved token for every input token. Variant
// slices are copied per token, so later score adjustments never touch
// the shared store.
func Candidates(tokens []model.Token, store *lexicon.Store) []model.ResolvedToken {
	resolved := make([]model.ResolvedToken, len(tokens))
	for i, tok := range tokens {
		resolved[i] = resolveToken(tok, store)
	}
	return resolved
}

func resolveToken(tok model.Token, store *lexicon.Store) model.ResolvedToken {
	rt := model.ResolvedToken{Token: tok}
	if !tok.IsWord() {
		rt.Resolution = model.ResolutionNone
		return rt
	}

	variants := store.Lookup(tok.Key)
	switch len(variants) {
	case 0:
		rt.Resolution = model.ResolutionUnknown

	case 1:
		rt.Candidates = []model.Variant{variants[0]}
		rt.Chosen = &rt.Candidates[0]
		rt.Resolution = model.ResolutionSingle

	default:
		// The store keeps variants in prior order, so the first one is
		// the default until context says otherwise.
		rt.Candidates = make([]model.Variant, len(variants))
		copy(rt.Candidates, variants)
		rt.Chosen = &rt.Candidates[0]
		rt.Resolution = model.ResolutionDefaulted
	}
	return rt
}
