package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okovalenko/nagolos/internal/pipeline"
	"github.com/okovalenko/nagolos/internal/tokenize"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Show lexicon variants for one word",
	Long: `Lookup normalizes a word the way marking does (lowercased, existing
stress marks stripped) and prints every variant the lexicon holds for
it, in prior order. The first variant is the one marking applies when
context gives no signal.

Example:
  nagolos lookup замок
  nagolos lookup Брати --lexicon словник.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "external lexicon TSV, plain or .xz (default: embedded seed)")
	lookupCmd.Flags().BoolVar(&strictLex, "strict-lexicon", false, "fail on duplicate lexicon entries instead of merging")
}

func runLookup(cmd *cobra.Command, args []string) error {
	word := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyMarkFlags(cmd, cfg)

	store, err := pipeline.OpenStore(cfg)
	if err != nil {
		return err
	}

	key := tokenize.Key(word)
	variants := store.Lookup(key)
	if variants == nil {
		return fmt.Errorf("word %q not in lexicon (%d entries)", word, store.Len())
	}

	fmt.Printf("\n  %s (key: %s)\n\n", word, key)
	for i, v := range variants {
		tag := string(v.Tag)
		if tag == "" {
			tag = "-"
		}
		fmt.Printf("  %d. %s  [%s]  weight %.2f\n", i+1, v.Stressed, tag, v.Weight)
	}
	fmt.Println()

	return nil
}
