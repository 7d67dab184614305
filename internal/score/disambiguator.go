package score

import (
	"github.com/okovalenko/nagolos/internal/model"
)

// DefaultWindow is how many non-whitespace tokens each side of a
// homograph is inspected during disambiguation
const DefaultWindow = 2

// Disambiguator finalizes multi-variant words using the compatibility
// table. It never fails: when context offers no signal the word keeps
// its prior-order default and is reported as defaulted.
type Disambiguator struct {
	table  *Table
	window int
}

// NewDisambiguator creates a disambiguator over a loaded table.
// window <= 0 selects the default window.
func NewDisambiguator(table *Table, window int) *Disambiguator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Disambiguator{table: table, window: window}
}

// neighbor is one context word inside the window
type neighbor struct {
	tag      model.Tag
	side     Direction
	distance int // 1 = adjacent non-whitespace token, 2 = next one
}

// Apply resolves every pending homograph in tokens, in place, in one
// left-to-right pass. Earlier decisions feed later windows; nothing is
// revisited, so the pass is linear and deterministic.
func (d *Disambiguator) Apply(tokens []model.ResolvedToken) {
	for i := range tokens {
		if !tokens[i].IsWord() || len(tokens[i].Candidates) < 2 {
			continue
		}
		d.resolveOne(tokens, i)
	}
}

// resolveOne scores the candidates of the word at position i and picks
// the winner.
func (d *Disambiguator) resolveOne(tokens []model.ResolvedToken, i int) {
	rt := &tokens[i]

	// 1. Seed every candidate with its prior weight
	scores := make([]float64, len(rt.Candidates))
	for c := range rt.Candidates {
		scores[c] = rt.Candidates[c].Weight
	}

	// 2. Apply table adjustments from each tagged neighbor in the window
	adjusted := false
	for _, nb := range d.collect(tokens, i) {
		for c := range rt.Candidates {
			adj := d.table.Adjust(nb.tag, rt.Candidates[c].Tag, nb.side, nb.distance)
			if adj != 0 {
				scores[c] += adj
				adjusted = true
			}
		}
	}

	// 3. Highest score wins; ties keep the earliest candidate, which is
	// the prior-order default
	best := 0
	for c := 1; c < len(scores); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}

	rt.Chosen = &rt.Candidates[best]
	rt.Score = scores[best]
	if adjusted {
		rt.Resolution = model.ResolutionDisambiguated
	} else {
		rt.Resolution = model.ResolutionDefaulted
	}
}

// collect gathers tagged neighbors on both sides of position i.
// Whitespace is skipped outright; any other token occupies a window
// slot, but only words contribute tags. Left neighbors are already
// final. Right neighbors count only when unambiguous, so the outcome
// never depends on decisions not yet made.
func (d *Disambiguator) collect(tokens []model.ResolvedToken, i int) []neighbor {
	nbs := make([]neighbor, 0, 2*d.window)

	dist := 0
	for j := i - 1; j >= 0 && dist < d.window; j-- {
		if tokens[j].Kind == model.KindWhitespace {
			continue
		}
		dist++
		if tag := tokens[j].Tag(); tag != "" {
			nbs = append(nbs, neighbor{tag: tag, side: DirLeft, distance: dist})
		}
	}

	dist = 0
	for j := i + 1; j < len(tokens) && dist < d.window; j++ {
		if tokens[j].Kind == model.KindWhitespace {
			continue
		}
		dist++
		if len(tokens[j].Candidates) != 1 {
			continue
		}
		if tag := tokens[j].Tag(); tag != "" {
			nbs = append(nbs, neighbor{tag: tag, side: DirRight, distance: dist})
		}
	}

	return nbs
}
