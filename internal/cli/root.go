package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/okovalenko/nagolos/internal/logging"
	"github.com/okovalenko/nagolos/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nagolos",
	Short: "Nagolos - Ukrainian stress marking for plain and office documents",
	Long: `Nagolos places combining acute accents on Ukrainian text, turning
«замок» into «за́мок» or «замо́к» depending on the surrounding words.

Marking is driven by a stress lexicon and a part-of-speech compatibility
table. Homographs are resolved from context where the table allows it;
otherwise the most frequent reading wins and the word is reported for
review.

Supported inputs: .txt, .docx, .html and .pdf (PDF output is written
as .docx since PDFs cannot be edited in place).`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Nagolos.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nagolos v0.2.4")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.nagolos/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	// Debug logging surfaces per-word fallback events
	if verbose {
		logging.InitLogger(logging.LevelDebug, logging.FormatText)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.nagolos")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match NAGOLOS_*
	// (nested keys use underscores: NAGOLOS_LEXICON_PATH, NAGOLOS_SERVE_ADDR)
	viper.SetEnvPrefix("NAGOLOS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the viper state (config file + environment) over the
// built-in defaults. Flag overrides are applied by each command on top.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
