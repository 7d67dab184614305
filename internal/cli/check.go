package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okovalenko/nagolos/internal/lexicon"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <lexicon.tsv>",
	Short: "Validate a lexicon file",
	Long: `Check lints a lexicon file and reports every finding instead of
stopping at the first. Errors are lines the loader would reject:
missing fields, stress indexes out of range, malformed weights.
Warnings load fine but deserve a look: duplicate variants and base
forms the loader silently normalizes.

Files ending in .xz are decompressed transparently.

Example:
  nagolos check словник.tsv
  nagolos check словник.tsv.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	findings, err := lexicon.LintFile(path)
	if err != nil {
		return err
	}

	errs, warns := 0, 0
	for _, f := range findings {
		switch f.Level {
		case lexicon.LintError:
			errs++
			fmt.Printf("  ✗ line %d: %s\n", f.Line, f.Msg)
		default:
			warns++
			fmt.Printf("  ! line %d: %s\n", f.Line, f.Msg)
		}
	}
	if len(findings) > 0 {
		fmt.Printf("\n")
	}

	if errs > 0 {
		return fmt.Errorf("%s: %d errors, %d warnings", path, errs, warns)
	}

	store, err := lexicon.LoadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s\n", path)
	fmt.Printf("\n")
	fmt.Printf("  Entries:     %d\n", store.Len())
	fmt.Printf("  Variants:    %d\n", store.Variants())
	fmt.Printf("  Ambiguous:   %d\n", store.Ambiguous())
	fmt.Printf("  Version:     %s\n", store.Version())
	if warns > 0 {
		fmt.Printf("  Warnings:    %d\n", warns)
	}
	fmt.Printf("\n")

	return nil
}
