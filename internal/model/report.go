package model

import (
	"strings"
	"time"
)

// SegmentStats counts marking outcomes for one stretch of text
type SegmentStats struct {
	Words         int `json:"words"`          // Word tokens seen
	Marked        int `json:"marked"`         // Words that received a stress mark
	Single        int `json:"single"`         // Resolved from a sole variant
	Disambiguated int `json:"disambiguated"`  // Resolved by context
	Defaulted     int `json:"defaulted"`      // Fell back to prior order
	Unknown       int `json:"unknown"`        // Not in the lexicon, passed through
}

// Add merges another segment's counters into s
func (s *SegmentStats) Add(other SegmentStats) {
	s.Words += other.Words
	s.Marked += other.Marked
	s.Single += other.Single
	s.Disambiguated += other.Disambiguated
	s.Defaulted += other.Defaulted
	s.Unknown += other.Unknown
}

// Count records one resolved token in the counters
func (s *SegmentStats) Count(rt ResolvedToken) {
	if !rt.IsWord() {
		return
	}
	s.Words++
	switch rt.Resolution {
	case ResolutionUnknown:
		s.Unknown++
	case ResolutionSingle:
		s.Single++
	case ResolutionDisambiguated:
		s.Disambiguated++
	case ResolutionDefaulted:
		s.Defaulted++
	}
	// Words the author already marked render unchanged and are not
	// counted as marked again.
	if rt.Chosen != nil && rt.Chosen.StressIndex >= 0 &&
		!strings.ContainsRune(rt.Text, '́') && !strings.ContainsRune(rt.Text, '̀') {
		s.Marked++
	}
}

// DefaultedWord records a homograph that fell back to its prior default.
// These are notable but never errors: the output is still well-formed.
type DefaultedWord struct {
	Word    string `json:"word"`              // Surface form as it appeared
	Key     string `json:"key"`               // Normalized lookup key
	Index   int    `json:"index"`             // Word index within the segment
	Chosen  string `json:"chosen"`            // Stressed form that was applied
	Options int    `json:"options"`           // How many variants competed
	Context string `json:"context,omitempty"` // Nearby words, for review
}

// DocumentReport summarizes one marked document or text segment
type DocumentReport struct {
	Source    string    `json:"source"`              // Input path, or "-" for stdin
	Output    string    `json:"output,omitempty"`    // Output path, empty for stdout
	Format    string    `json:"format"`              // docx, pdf, html, txt
	Segments  int       `json:"segments"`            // Text segments the document split into
	StartedAt time.Time `json:"started_at"`          // When marking began
	Elapsed   float64   `json:"elapsed_seconds"`     // Wall time spent

	Stats    SegmentStats    `json:"stats"`
	Defaults []DefaultedWord `json:"defaults,omitempty"` // Prior-order fallbacks worth reviewing

	LexiconEntries int    `json:"lexicon_entries"`       // Size of the lexicon used
	Error          string `json:"error,omitempty"`       // Set when the document failed entirely
}

// Coverage returns the fraction of words found in the lexicon, 0..1
func (r DocumentReport) Coverage() float64 {
	if r.Stats.Words == 0 {
		return 0
	}
	return float64(r.Stats.Words-r.Stats.Unknown) / float64(r.Stats.Words)
}

// BatchSummary aggregates reports from a multi-file run
type BatchSummary struct {
	Total     int              `json:"total"`     // Files attempted
	Succeeded int              `json:"succeeded"` // Files written
	Failed    int              `json:"failed"`    // Files that errored
	Stats     SegmentStats     `json:"stats"`     // Combined counters
	Reports   []DocumentReport `json:"reports"`
}
