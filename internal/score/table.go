// Package score resolves stress homographs by scoring their variants
// against surrounding context. Adjustments come from a static, versioned
// compatibility table; the pass itself is a single left-to-right sweep.
package score

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okovalenko/nagolos/internal/model"
)

// tableVersion is the schema version this build understands
const tableVersion = 1

// Direction says on which side of the candidate word a neighbor sits
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Rule is one compatibility adjustment: when a neighbor matching
// Neighbor appears on the Direction side of a candidate matching
// Candidate, the candidate's score moves by Adjust.
type Rule struct {
	Neighbor  model.Tag `yaml:"neighbor"`  // Tag pattern for the context word, "pos:*" allowed
	Candidate model.Tag `yaml:"candidate"` // Tag pattern for the variant being scored
	Direction Direction `yaml:"direction"` // left or right
	Adjust    float64   `yaml:"adjust"`    // Additive adjustment in [-1, 1]
}

// Table is a compatibility table: the full set of context rules plus the
// decay applied to neighbors at distance two.
type Table struct {
	Version int     `yaml:"version"`
	Decay   float64 `yaml:"decay"`
	Rules   []Rule  `yaml:"rules"`

	checksum string
}

// LoadTable parses and validates a compatibility table from r
func LoadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}

	if t.Version != tableVersion {
		return nil, fmt.Errorf("unsupported table version %d, want %d", t.Version, tableVersion)
	}
	if t.Decay < 0 || t.Decay > 1 {
		return nil, fmt.Errorf("table decay %v out of range [0, 1]", t.Decay)
	}
	for i, r := range t.Rules {
		if r.Neighbor == "" || r.Candidate == "" {
			return nil, fmt.Errorf("table rule %d: neighbor and candidate are required", i+1)
		}
		if r.Direction != DirLeft && r.Direction != DirRight {
			return nil, fmt.Errorf("table rule %d: direction %q is not left or right", i+1, r.Direction)
		}
		if r.Adjust < -1 || r.Adjust > 1 {
			return nil, fmt.Errorf("table rule %d: adjust %v out of range [-1, 1]", i+1, r.Adjust)
		}
	}

	t.checksum = fmt.Sprintf("%x", sha256.Sum256(data))[:12]
	return &t, nil
}

// LoadTableFile loads a compatibility table from a YAML file
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}

// Checksum identifies the loaded table content, for cache keys
func (t *Table) Checksum() string {
	return t.checksum
}

// Adjust sums the adjustments of every rule matching a neighbor tag seen
// on the given side at the given distance. Distance two is damped by the
// table's decay factor.
func (t *Table) Adjust(neighbor, candidate model.Tag, side Direction, distance int) float64 {
	if neighbor == "" || candidate == "" {
		return 0
	}
	total := 0.0
	for _, r := range t.Rules {
		if r.Direction != side {
			continue
		}
		if !neighbor.Matches(r.Neighbor) || !candidate.Matches(r.Candidate) {
			continue
		}
		adj := r.Adjust
		if distance > 1 {
			adj *= t.Decay
		}
		total += adj
	}
	return total
}
