package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okovalenko/nagolos/internal/cache"
	"github.com/okovalenko/nagolos/internal/document"
	"github.com/okovalenko/nagolos/internal/engine"
	"github.com/okovalenko/nagolos/internal/lexicon"
	"github.com/okovalenko/nagolos/internal/logging"
	"github.com/okovalenko/nagolos/internal/model"
	"github.com/okovalenko/nagolos/internal/score"
	"github.com/okovalenko/nagolos/internal/worker"
)

// Pipeline orchestrates the complete marking process
type Pipeline struct {
	registry *document.Registry
	engine   *engine.Engine
	workers  int
	config   *model.Config
}

// OpenStore loads the lexicon the configuration names, or the embedded
// seed when no path is set.
func OpenStore(cfg *model.Config) (*lexicon.Store, error) {
	var store *lexicon.Store
	var err error
	switch {
	case cfg.Lexicon.Path != "" && cfg.Lexicon.Strict:
		store, err = lexicon.LoadFileStrict(cfg.Lexicon.Path)
	case cfg.Lexicon.Path != "":
		store, err = lexicon.LoadFile(cfg.Lexicon.Path)
	default:
		store, err = lexicon.Embedded()
	}
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return store, nil
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	// 1. Load the lexicon
	loadStart := time.Now()
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	source := cfg.Lexicon.Path
	if source == "" {
		source = "embedded"
	}
	logging.LexiconLoaded(source, store.Len(), store.Variants(), time.Since(loadStart))

	// 2. Load the compatibility table
	var table *score.Table
	if cfg.Disambig.TablePath != "" {
		table, err = score.LoadTableFile(cfg.Disambig.TablePath)
	} else {
		table, err = score.EmbeddedTable()
	}
	if err != nil {
		return nil, fmt.Errorf("load compatibility table: %w", err)
	}

	// 3. Build the segment cache
	var segCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			segCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			segCache = cache.NewMemoryCache(cfg.Cache.TTL)
		}
	}

	workers := cfg.Workers.Count
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Pipeline{
		registry: document.NewRegistry(),
		engine: engine.New(store, table, engine.Options{
			Window:   cfg.Disambig.Window,
			Cache:    segCache,
			CacheTTL: cfg.Cache.TTL,
		}),
		workers: workers,
		config:  cfg,
	}, nil
}

// ProcessFile marks one document and writes the result next to it under
// the conventional _nagolos name.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*model.DocumentReport, error) {
	return p.ProcessFileTo(ctx, path, "")
}

// ProcessFileTo marks one document and writes the result to outPath. An
// empty outPath falls back to the handler's conventional name.
func (p *Pipeline) ProcessFileTo(ctx context.Context, path, outPath string) (*model.DocumentReport, error) {
	started := time.Now()

	// 1. Pick the format handler
	handler, err := p.registry.FindHandler(path)
	if err != nil {
		return nil, err
	}
	if outPath == "" {
		outPath = handler.DefaultOutput(path)
	}

	// 2. Split the document into segments
	doc, err := handler.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	segments := doc.Segments()

	// 3. Mark segments concurrently
	results, err := worker.MarkSegments(ctx, p.engine, segments, p.workers)
	if err != nil {
		return nil, fmt.Errorf("mark: %w", err)
	}

	// 4. Collect marked text and counters
	marked := make([]string, len(results))
	var stats model.SegmentStats
	var defaults []model.DefaultedWord
	for i, res := range results {
		marked[i] = res.Text
		stats.Add(res.Stats)
		defaults = append(defaults, res.Defaults...)
	}

	// 5. Write the marked document
	if err := doc.Write(marked, outPath); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	elapsed := time.Since(started)
	logging.DocumentMarked(path, outPath, stats.Words, stats.Marked, elapsed)

	return &model.DocumentReport{
		Source:         path,
		Output:         outPath,
		Format:         handler.Name(),
		Segments:       len(segments),
		StartedAt:      started.UTC(),
		Elapsed:        elapsed.Seconds(),
		Stats:          stats,
		Defaults:       defaults,
		LexiconEntries: p.engine.Store().Len(),
	}, nil
}

// AnalyzeFile marks one document without writing anything, for review
// and dry runs. The report's Output stays empty.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.DocumentReport, error) {
	started := time.Now()

	handler, err := p.registry.FindHandler(path)
	if err != nil {
		return nil, err
	}
	doc, err := handler.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	segments := doc.Segments()

	results, err := worker.MarkSegments(ctx, p.engine, segments, p.workers)
	if err != nil {
		return nil, fmt.Errorf("mark: %w", err)
	}

	var stats model.SegmentStats
	var defaults []model.DefaultedWord
	for _, res := range results {
		stats.Add(res.Stats)
		defaults = append(defaults, res.Defaults...)
	}

	return &model.DocumentReport{
		Source:         path,
		Format:         handler.Name(),
		Segments:       len(segments),
		StartedAt:      started.UTC(),
		Elapsed:        time.Since(started).Seconds(),
		Stats:          stats,
		Defaults:       defaults,
		LexiconEntries: p.engine.Store().Len(),
	}, nil
}

// ProcessText marks plain text, line by line, and returns the marked
// text with its report. Source in the report is "-".
func (p *Pipeline) ProcessText(ctx context.Context, text string) (string, *model.DocumentReport, error) {
	started := time.Now()

	segments := document.SplitLines(text)
	results, err := worker.MarkSegments(ctx, p.engine, segments, p.workers)
	if err != nil {
		return "", nil, fmt.Errorf("mark: %w", err)
	}

	var out strings.Builder
	out.Grow(len(text))
	var stats model.SegmentStats
	var defaults []model.DefaultedWord
	for _, res := range results {
		out.WriteString(res.Text)
		stats.Add(res.Stats)
		defaults = append(defaults, res.Defaults...)
	}

	elapsed := time.Since(started)

	return out.String(), &model.DocumentReport{
		Source:         "-",
		Format:         "text",
		Segments:       len(segments),
		StartedAt:      started.UTC(),
		Elapsed:        elapsed.Seconds(),
		Stats:          stats,
		Defaults:       defaults,
		LexiconEntries: p.engine.Store().Len(),
	}, nil
}

// Engine returns the marking engine, for callers that work on raw text.
func (p *Pipeline) Engine() *engine.Engine {
	return p.engine
}

// Registry returns the document format registry.
func (p *Pipeline) Registry() *document.Registry {
	return p.registry
}

// Workers returns the configured marking concurrency.
func (p *Pipeline) Workers() int {
	return p.workers
}
