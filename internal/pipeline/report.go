package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okovalenko/nagolos/internal/model"
)

// Renderer writes marking reports to the console and to JSON files
type Renderer struct {
	verbose bool
}

// NewRenderer creates a new report renderer
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.DocumentReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderBatchJSON writes the aggregated batch summary as indented JSON
func (r *Renderer) RenderBatchJSON(summary *model.BatchSummary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// RenderSummary prints the per-document statistics block to stdout
func (r *Renderer) RenderSummary(report *model.DocumentReport) {
	r.RenderSummaryTo(os.Stdout, report)
}

// RenderSummaryTo prints the statistics block to the given writer
func (r *Renderer) RenderSummaryTo(w io.Writer, report *model.DocumentReport) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Source:      %s\n", report.Source)
	if report.Output != "" {
		fmt.Fprintf(w, "  Output:      %s\n", report.Output)
	}
	fmt.Fprintf(w, "  Segments:    %d\n", report.Segments)
	fmt.Fprintf(w, "  Words:       %d\n", report.Stats.Words)
	fmt.Fprintf(w, "  Marked:      %d (%.1f%% lexicon coverage)\n", report.Stats.Marked, report.Coverage()*100)
	fmt.Fprintf(w, "  Single:      %d\n", report.Stats.Single)
	fmt.Fprintf(w, "  By context:  %d\n", report.Stats.Disambiguated)
	fmt.Fprintf(w, "  By prior:    %d\n", report.Stats.Defaulted)
	fmt.Fprintf(w, "  Unknown:     %d\n", report.Stats.Unknown)
	fmt.Fprintf(w, "  Time:        %.2fs\n", report.Elapsed)

	if r.verbose && len(report.Defaults) > 0 {
		fmt.Fprintf(w, "\n  Fell back to prior order:\n")
		for _, dw := range report.Defaults {
			fmt.Fprintf(w, "    %s → %s (%d options)  %s\n", dw.Word, dw.Chosen, dw.Options, dw.Context)
		}
	}
	fmt.Fprintf(w, "\n")
}
