package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okovalenko/nagolos/internal/pipeline"
	"github.com/okovalenko/nagolos/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the marking engine as an HTTP API",
	Long: `Serve loads the lexicon once and answers marking requests over HTTP:

  POST /api/mark      {"text": "..."}  → marked text and statistics
  GET  /api/lookup?word=<word>         → lexicon variants
  GET  /api/health                     → lexicon and table status

Example:
  nagolos serve
  nagolos serve --addr :9000
  NAGOLOS_SERVE_ADDR=:9000 nagolos serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8340", "listen address")
	serveCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "external lexicon TSV, plain or .xz (default: embedded seed)")
	serveCmd.Flags().StringVar(&tablePath, "table", "", "external compatibility table YAML (default: embedded)")
	serveCmd.Flags().IntVar(&window, "window", 2, "context window size in tokens")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Build configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyMarkFlags(cmd, cfg)
	if cmd.Flags().Changed("addr") {
		cfg.Serve.Addr = serveAddr
	}

	// Create pipeline
	fmt.Fprintf(os.Stderr, "⚙️  Loading lexicon...\n")
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✓ Lexicon ready: %d entries\n", p.Engine().Store().Len())

	// Serve until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(p, cfg.Serve)
	fmt.Fprintf(os.Stderr, "✓ Listening on %s\n", cfg.Serve.Addr)

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Server stopped\n")
	return nil
}
