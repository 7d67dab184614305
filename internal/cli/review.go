package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okovalenko/nagolos/internal/llm"
	"github.com/okovalenko/nagolos/internal/pipeline"
	"github.com/okovalenko/nagolos/internal/worker"
)

var (
	llmEnabled    bool
	llmProvider   string
	llmModel      string
	reviewLimit   int
	reviewRPS     float64
	reviewTimeout time.Duration
)

// reviewBatchSize is how many homographs go into one API request
const reviewBatchSize = 10

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "List defaulted homographs, optionally second-guessed by an LLM",
	Long: `Review marks a document in memory and lists every homograph that fell
back to its prior default, with the context it stood in. Nothing is
written back.

With --llm the list goes to a language model that judges whether the
context supports a different reading. The model can only pick from the
lexicon's own options for each word; an answer outside those options
fails the review. Suggestions are advisory either way.

Hosted providers need OPENAI_API_KEY or ANTHROPIC_API_KEY; ollama runs
locally without a key.

Example:
  nagolos review стаття.txt
  nagolos review стаття.txt --llm
  nagolos review стаття.txt --llm --llm-provider anthropic
  nagolos review стаття.txt --llm --llm-provider ollama --llm-model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	// LLM flags
	reviewCmd.Flags().BoolVar(&llmEnabled, "llm", false, "ask an LLM to second-guess the defaults")
	reviewCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	reviewCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (default: provider default)")
	reviewCmd.Flags().IntVar(&reviewLimit, "limit", 50, "max homographs to send for review")
	reviewCmd.Flags().Float64Var(&reviewRPS, "rps", 1, "API requests per second")
	reviewCmd.Flags().DurationVar(&reviewTimeout, "timeout", 5*time.Minute, "overall review timeout")

	// Marking flags shared with the mark command
	reviewCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "external lexicon TSV, plain or .xz (default: embedded seed)")
	reviewCmd.Flags().StringVar(&tablePath, "table", "", "external compatibility table YAML (default: embedded)")
	reviewCmd.Flags().IntVar(&window, "window", 2, "context window size in tokens")
}

func runReview(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
	defer cancel()

	// Build configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyMarkFlags(cmd, cfg)

	// Mark the document in memory
	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Marking document...\n")
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.AnalyzeFile(ctx, input)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if len(report.Defaults) == 0 {
		fmt.Println("✓ No homographs fell back to prior order; nothing to review.")
		return nil
	}

	fmt.Printf("\n  Fell back to prior order (%d):\n\n", len(report.Defaults))
	for _, dw := range report.Defaults {
		fmt.Printf("    %s → %s (%d options)  %s\n", dw.Word, dw.Chosen, dw.Options, dw.Context)
	}
	fmt.Printf("\n")

	if !llmEnabled {
		return nil
	}

	// Configure the provider. The flag default kicks in when the config
	// file has review disabled.
	if cmd.Flags().Changed("llm-provider") || cfg.Review.Provider == "" || strings.EqualFold(cfg.Review.Provider, "none") {
		cfg.Review.Provider = llmProvider
		if !cmd.Flags().Changed("llm-model") {
			cfg.Review.Model = ""
		}
	}
	if cmd.Flags().Changed("llm-model") {
		cfg.Review.Model = llmModel
	}

	llmConfig := llm.ConfigFromReview(cfg.Review)
	provider, err := llm.NewProvider(llmConfig)
	if err != nil {
		return err
	}
	if provider == nil {
		return fmt.Errorf("no LLM provider configured (use --llm-provider or set review.provider)")
	}

	// Collect review items, one per distinct homograph. The options list
	// is the word's own lexicon variants, which bounds what the model may
	// answer.
	store := p.Engine().Store()
	seen := make(map[string]bool)
	var items []llm.ReviewItem
	for _, dw := range report.Defaults {
		if seen[dw.Key] {
			continue
		}
		seen[dw.Key] = true

		variants := store.Lookup(dw.Key)
		options := make([]string, 0, len(variants))
		for _, v := range variants {
			options = append(options, v.Stressed)
		}

		items = append(items, llm.ReviewItem{
			Word:    dw.Word,
			Context: dw.Context,
			Options: options,
			Chosen:  dw.Chosen,
		})
		if len(items) >= reviewLimit {
			break
		}
	}

	fmt.Fprintf(os.Stderr, "⚙️  Reviewing %d homographs with %s...\n", len(items), provider.Name())
	fmt.Fprintf(os.Stderr, "\n")

	// Review in batches behind a rate limit
	limiter := worker.NewLimiter(reviewRPS, 1)

	agreed := 0
	disputed := 0
	tokens := 0

	for start := 0; start < len(items); start += reviewBatchSize {
		end := start + reviewBatchSize
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]

		if err := limiter.Wait(ctx, provider.Name()); err != nil {
			return err
		}

		resp, err := provider.Review(ctx, llm.ReviewRequest{Items: chunk})
		if err != nil {
			return fmt.Errorf("review failed: %w", err)
		}
		tokens += resp.TokensUsed

		if verbose {
			fmt.Fprintf(os.Stderr, "--- model output ---\n%s\n--------------------\n", resp.Raw)
		}

		for _, s := range resp.Suggestions {
			if s.Agrees {
				agreed++
				fmt.Printf("  ✓ %s: %s confirmed\n", s.Word, s.Stressed)
			} else {
				disputed++
				fmt.Printf("  ± %s: model prefers %s\n", s.Word, s.Stressed)
			}
		}
	}

	// Summary
	reviewed := agreed + disputed
	fmt.Printf("\n")
	fmt.Printf("  Reviewed:    %d\n", reviewed)
	fmt.Printf("  Confirmed:   %d\n", agreed)
	fmt.Printf("  Disputed:    %d\n", disputed)
	if reviewed < len(items) {
		fmt.Printf("  Unanswered:  %d\n", len(items)-reviewed)
	}
	if tokens > 0 {
		fmt.Printf("  Tokens:      %d\n", tokens)
	}
	fmt.Printf("\n")
	fmt.Printf("Suggestions are advisory; marked output is unchanged.\n")

	return nil
}
