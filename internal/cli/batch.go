package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okovalenko/nagolos/internal/model"
	"github.com/okovalenko/nagolos/internal/pipeline"
	"github.com/okovalenko/nagolos/internal/worker"
)

var (
	concurrency  int
	listFile     string
	outputDir    string
	batchTimeout time.Duration
	summaryJSON  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Mark multiple documents in parallel",
	Long: `Batch marks many documents concurrently:
- Take document paths as arguments, from --list, or both
- Mark documents in parallel with configurable worker count
- Write each marked copy next to its original, or into --output-dir
- Aggregate the per-document reports into one summary

The list file holds one path per line; blank lines and # comments are
skipped.

Example:
  nagolos batch вірш.txt лист.docx стаття.html
  nagolos batch --list документи.txt
  nagolos batch --list документи.txt --concurrency 8 --output-dir ./наголошені
  nagolos batch --list документи.txt --summary підсумок.json`,
	Args: cobra.ArbitraryArgs,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Batch flags
	batchCmd.Flags().StringVar(&listFile, "list", "", "file with document paths, one per line")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "write marked copies here instead of next to the originals")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&summaryJSON, "summary", "", "write the aggregated report as JSON")

	// Marking flags shared with the mark command
	batchCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "external lexicon TSV, plain or .xz (default: embedded seed)")
	batchCmd.Flags().BoolVar(&strictLex, "strict-lexicon", false, "fail on duplicate lexicon entries instead of merging")
	batchCmd.Flags().StringVar(&tablePath, "table", "", "external compatibility table YAML (default: embedded)")
	batchCmd.Flags().IntVar(&window, "window", 2, "context window size in tokens")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable segment cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (default: memory only)")
}

// dirProcessor redirects marked copies into one directory while keeping
// the conventional output names
type dirProcessor struct {
	pipeline *pipeline.Pipeline
	dir      string
}

func (d *dirProcessor) ProcessFile(ctx context.Context, path string) (*model.DocumentReport, error) {
	handler, err := d.pipeline.Registry().FindHandler(path)
	if err != nil {
		return nil, err
	}
	out := filepath.Join(d.dir, filepath.Base(handler.DefaultOutput(path)))
	return d.pipeline.ProcessFileTo(ctx, path, out)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	// Collect document paths from arguments and the list file
	paths := args
	if listFile != "" {
		fromFile, err := worker.ReadPathsFromFile(listFile)
		if err != nil {
			return fmt.Errorf("read list file: %w", err)
		}
		paths = append(paths, fromFile...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents given (pass paths or --list)")
	}

	// Build configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyMarkFlags(cmd, cfg)
	if cmd.Flags().Changed("concurrency") {
		cfg.Workers.Count = concurrency
	}

	workers := cfg.Workers.Count
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Nagolos Batch Marking\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents:    %d\n", len(paths))
	if listFile != "" {
		fmt.Fprintf(os.Stderr, "  List file:    %s\n", listFile)
	}
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	if outputDir != "" {
		fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	}
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create pipeline
	fmt.Fprintf(os.Stderr, "⚙️  Loading lexicon...\n")
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✓ Lexicon ready: %d entries\n", p.Engine().Store().Len())

	// Create batch processor
	var proc worker.Processor = p
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		proc = &dirProcessor{pipeline: p, dir: outputDir}
	}
	processor := worker.NewBatchProcessor(proc, workers)

	// Process documents
	fmt.Fprintf(os.Stderr, "⚙️  Marking %d documents with %d workers...\n", len(paths), workers)
	fmt.Fprintf(os.Stderr, "\n")

	results := processor.ProcessPaths(ctx, paths)

	// Aggregate results
	summary := model.BatchSummary{Total: len(results)}

	for _, result := range results {
		if result.Error != nil {
			summary.Failed++
			summary.Reports = append(summary.Reports, model.DocumentReport{
				Source: result.Path,
				Error:  result.Error.Error(),
			})
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		summary.Succeeded++
		summary.Stats.Add(result.Report.Stats)
		summary.Reports = append(summary.Reports, *result.Report)

		fmt.Fprintf(os.Stderr, "✓ %s → %s (%d/%d words marked)\n",
			result.Path, result.Report.Output, result.Report.Stats.Marked, result.Report.Stats.Words)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", summary.Total)
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", summary.Succeeded)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", summary.Failed)
	fmt.Fprintf(os.Stderr, "  Words:     %d marked of %d\n", summary.Stats.Marked, summary.Stats.Words)
	if outputDir != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if summaryJSON != "" {
		renderer := pipeline.NewRenderer(verbose)
		if err := renderer.RenderBatchJSON(&summary, summaryJSON); err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Summary written to %s\n", summaryJSON)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Total)
	}

	return nil
}
