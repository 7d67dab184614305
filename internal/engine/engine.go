// Package engine runs the stress-marking pipeline over text segments.
//
// A segment goes through four stages: tokenize, candidate lookup,
// context disambiguation, render. The engine owns no mutable state
// beyond an optional cache, so one instance serves any number of
// goroutines marking segments concurrently.
package engine

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/okovalenko/nagolos/internal/cache"
	"github.com/okovalenko/nagolos/internal/lexicon"
	"github.com/okovalenko/nagolos/internal/logging"
	"github.com/okovalenko/nagolos/internal/model"
	"github.com/okovalenko/nagolos/internal/render"
	"github.com/okovalenko/nagolos/internal/resolve"
	"github.com/okovalenko/nagolos/internal/score"
	"github.com/okovalenko/nagolos/internal/tokenize"
)

// Engine binds a loaded lexicon and compatibility table into a reusable
// segment marker
type Engine struct {
	store    *lexicon.Store
	table    *score.Table
	disamb   *score.Disambiguator
	cache    cache.Cache
	cacheTTL time.Duration
}

// Options tunes an engine beyond its required inputs
type Options struct {
	Window   int           // Context window per side, 0 = default
	Cache    cache.Cache   // nil disables memoization
	CacheTTL time.Duration // TTL for cached segments
}

// New creates an engine over a loaded store and table
func New(store *lexicon.Store, table *score.Table, opts Options) *Engine {
	return &Engine{
		store:    store,
		table:    table,
		disamb:   score.NewDisambiguator(table, opts.Window),
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
	}
}

// Result is one marked segment with the decisions that produced it
type Result struct {
	Text     string                // Marked segment
	Tokens   []model.ResolvedToken // Per-token decisions, nil when served from cache
	Stats    model.SegmentStats    // Outcome counters
	Defaults []model.DefaultedWord // Homographs that fell back to prior order
	Cached   bool                  // Whether the segment came from the cache
}

// cachedResult is the subset of Result worth persisting
type cachedResult struct {
	Text     string                `json:"text"`
	Stats    model.SegmentStats    `json:"stats"`
	Defaults []model.DefaultedWord `json:"defaults,omitempty"`
}

// Store exposes the engine's lexicon for lookups and reports
func (e *Engine) Store() *lexicon.Store {
	return e.store
}

// Table exposes the engine's compatibility table
func (e *Engine) Table() *score.Table {
	return e.table
}

// Mark runs the full pipeline over one segment. It never fails: any
// text in produces text out, with unknown words passed through and
// unresolvable homographs defaulted.
func (e *Engine) Mark(segment string) Result {
	if segment == "" {
		return Result{}
	}

	key := ""
	if e.cache != nil {
		key = cache.SegmentKey(e.store.Version(), e.table.Checksum(), segment)
		if data, found := e.cache.Get(key); found {
			var cr cachedResult
			if err := json.Unmarshal(data, &cr); err == nil {
				return Result{Text: cr.Text, Stats: cr.Stats, Defaults: cr.Defaults, Cached: true}
			}
		}
	}

	// 1. Split into word and separator spans
	tokens := tokenize.Split(segment)

	// 2. Look up stress candidates for every word
	resolved := resolve.Candidates(tokens, e.store)

	// 3. Let context finalize the homographs
	e.disamb.Apply(resolved)

	// 4. Reassemble the marked text
	text := render.Render(resolved)

	// 5. Collect counters and notable defaults
	stats, defaults := summarize(resolved)

	result := Result{
		Text:     text,
		Tokens:   resolved,
		Stats:    stats,
		Defaults: defaults,
	}

	if e.cache != nil {
		if data, err := json.Marshal(cachedResult{Text: text, Stats: stats, Defaults: defaults}); err == nil {
			_ = e.cache.Set(key, data, e.cacheTTL)
		}
	}

	return result
}

// summarize tallies resolution outcomes and records each homograph that
// kept its prior default
func summarize(resolved []model.ResolvedToken) (model.SegmentStats, []model.DefaultedWord) {
	var stats model.SegmentStats
	var defaults []model.DefaultedWord

	for i, rt := range resolved {
		stats.Count(rt)

		if rt.Resolution == model.ResolutionDefaulted && len(rt.Candidates) > 1 {
			dw := model.DefaultedWord{
				Word:    rt.Text,
				Key:     rt.Key,
				Index:   rt.Index,
				Chosen:  rt.Chosen.Stressed,
				Options: len(rt.Candidates),
				Context: contextAround(resolved, i),
			}
			defaults = append(defaults, dw)
			logging.AmbiguousDefault(dw.Word, dw.Chosen, dw.Options, dw.Index)
		}
	}
	return stats, defaults
}

// contextAround renders a short window of surrounding tokens for review
// output
func contextAround(resolved []model.ResolvedToken, i int) string {
	var parts []string

	picked := 0
	for j := i - 1; j >= 0 && picked < 2; j-- {
		if resolved[j].Kind == model.KindWhitespace {
			continue
		}
		parts = append([]string{resolved[j].Text}, parts...)
		picked++
	}

	parts = append(parts, "«"+resolved[i].Text+"»")

	picked = 0
	for j := i + 1; j < len(resolved) && picked < 2; j++ {
		if resolved[j].Kind == model.KindWhitespace {
			continue
		}
		parts = append(parts, resolved[j].Text)
		picked++
	}

	return strings.Join(parts, " ")
}
