package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okovalenko/nagolos/internal/model"
	"github.com/okovalenko/nagolos/internal/pipeline"
)

var (
	outPath     string
	outJSON     string
	lexiconPath string
	strictLex   bool
	tablePath   string
	window      int
	markWorkers int
	noCache     bool
	cacheDir    string
	timeout     time.Duration
)

// markCmd represents the mark command
var markCmd = &cobra.Command{
	Use:   "mark <file|->",
	Short: "Mark stress in a single document",
	Long: `Mark reads one document, places a stress mark on every word the
lexicon covers, and writes the marked copy next to the original
(вірш.txt → вірш_nagolos.txt) unless -o names an output path.

Reading from "-" marks stdin and prints the result to stdout.

Example:
  nagolos mark вірш.txt
  nagolos mark лист.docx -o лист_наголошений.docx
  nagolos mark стаття.html --json звіт.json
  echo "Дорога додому." | nagolos mark -`,
	Args: cobra.ExactArgs(1),
	RunE: runMark,
}

func init() {
	rootCmd.AddCommand(markCmd)

	// Output flags
	markCmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default: <name>_nagolos)")
	markCmd.Flags().StringVar(&outJSON, "json", "", "write the marking report as JSON")

	// Lexicon flags
	markCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "external lexicon TSV, plain or .xz (default: embedded seed)")
	markCmd.Flags().BoolVar(&strictLex, "strict-lexicon", false, "fail on duplicate lexicon entries instead of merging")
	markCmd.Flags().StringVar(&tablePath, "table", "", "external compatibility table YAML (default: embedded)")

	// Disambiguation flags
	markCmd.Flags().IntVar(&window, "window", 2, "context window size in tokens")

	// Processing flags
	markCmd.Flags().IntVar(&markWorkers, "workers", 0, "workers for multi-segment documents (0 = CPU count)")
	markCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable segment cache")
	markCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (default: memory only)")
	markCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall timeout")
}

// applyMarkFlags overlays explicitly set flags on the loaded config.
// Unset flags leave the config file and environment values alone.
func applyMarkFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("lexicon") {
		cfg.Lexicon.Path = lexiconPath
	}
	if flags.Changed("strict-lexicon") {
		cfg.Lexicon.Strict = strictLex
	}
	if flags.Changed("table") {
		cfg.Disambig.TablePath = tablePath
	}
	if flags.Changed("window") {
		cfg.Disambig.Window = window
	}
	if flags.Changed("workers") {
		cfg.Workers.Count = markWorkers
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
}

func runMark(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Build configuration from defaults, config file, env and flags
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyMarkFlags(cmd, cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Marking: %s\n", input)
		lexSource := cfg.Lexicon.Path
		if lexSource == "" {
			lexSource = "embedded seed"
		}
		fmt.Fprintf(os.Stderr, "Lexicon: %s\n", lexSource)
		fmt.Fprintf(os.Stderr, "Window: %d\n", cfg.Disambig.Window)
		fmt.Fprintln(os.Stderr)
	}

	// Create pipeline
	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Loading lexicon...\n")
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Lexicon ready: %d entries\n", p.Engine().Store().Len())
	}

	if input == "-" {
		return markStdin(ctx, p)
	}

	// Mark document
	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Marking document...\n")
	}

	var report *model.DocumentReport
	if outPath != "" {
		report, err = p.ProcessFileTo(ctx, input, outPath)
	} else {
		report, err = p.ProcessFile(ctx, input)
	}
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Marked %d of %d words\n", report.Stats.Marked, report.Stats.Words)
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", report.Output)
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	renderer := pipeline.NewRenderer(verbose)
	renderer.RenderSummary(report)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	return nil
}

// markStdin marks text from stdin. The marked text owns stdout, so the
// summary goes to stderr and only with --verbose.
func markStdin(ctx context.Context, p *pipeline.Pipeline) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	marked, report, err := p.ProcessText(ctx, string(data))
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}

	fmt.Print(marked)

	renderer := pipeline.NewRenderer(verbose)
	if verbose {
		renderer.RenderSummaryTo(os.Stderr, report)
	}

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	return nil
}
