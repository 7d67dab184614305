package model

import "time"

// Config is the full runtime configuration, loadable from
// ~/.nagolos/config.yaml and overridable via NAGOLOS_* environment
// variables and CLI flags.
type Config struct {
	Lexicon  LexiconConfig  `yaml:"lexicon" json:"lexicon" mapstructure:"lexicon"`
	Disambig DisambigConfig `yaml:"disambiguation" json:"disambiguation" mapstructure:"disambiguation"`
	Cache    CacheConfig    `yaml:"cache" json:"cache" mapstructure:"cache"`
	Workers  WorkerConfig   `yaml:"workers" json:"workers" mapstructure:"workers"`
	Review   ReviewConfig   `yaml:"review" json:"review" mapstructure:"review"`
	Serve    ServeConfig    `yaml:"serve" json:"serve" mapstructure:"serve"`
}

// LexiconConfig controls which stress dictionary is loaded
type LexiconConfig struct {
	Path   string `yaml:"path" json:"path" mapstructure:"path"`       // External TSV (plain or .xz), empty = embedded seed
	Strict bool   `yaml:"strict" json:"strict" mapstructure:"strict"` // Treat duplicate stressed forms as errors instead of merging
}

// DisambigConfig controls the context scorer
type DisambigConfig struct {
	Window    int    `yaml:"window" json:"window" mapstructure:"window"`             // Tokens inspected on each side, default 2
	TablePath string `yaml:"table_path" json:"table_path" mapstructure:"table_path"` // External compatibility table, empty = embedded
}

// CacheConfig controls segment memoization
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Dir        string        `yaml:"dir" json:"dir" mapstructure:"dir"`                         // Disk cache directory, empty = memory only
	TTL        time.Duration `yaml:"ttl" json:"ttl" mapstructure:"ttl"`                         // Entry lifetime
	MaxEntries int           `yaml:"max_entries" json:"max_entries" mapstructure:"max_entries"` // Memory cache bound
}

// WorkerConfig controls batch parallelism
type WorkerConfig struct {
	Count int `yaml:"count" json:"count" mapstructure:"count"` // 0 = number of CPUs
}

// ReviewConfig controls the optional LLM review of defaulted homographs.
// Review output is advisory only and never feeds back into marking.
type ReviewConfig struct {
	Provider    string  `yaml:"provider" json:"provider" mapstructure:"provider"`          // openai, ollama, anthropic, none
	Model       string  `yaml:"model" json:"model" mapstructure:"model"`
	BaseURL     string  `yaml:"base_url" json:"base_url,omitempty" mapstructure:"base_url"`
	Temperature float32 `yaml:"temperature" json:"temperature" mapstructure:"temperature"`
}

// ServeConfig controls the HTTP API
type ServeConfig struct {
	Addr        string   `yaml:"addr" json:"addr" mapstructure:"addr"`
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins" mapstructure:"cors_origins"`
}

// DefaultConfig returns the built-in defaults, the lowest layer of the
// configuration hierarchy
func DefaultConfig() Config {
	return Config{
		Lexicon: LexiconConfig{
			Path:   "",
			Strict: false,
		},
		Disambig: DisambigConfig{
			Window:    2,
			TablePath: "",
		},
		Cache: CacheConfig{
			Enabled:    true,
			Dir:        "",
			TTL:        24 * time.Hour,
			MaxEntries: 10000,
		},
		Workers: WorkerConfig{
			Count: 0,
		},
		Review: ReviewConfig{
			Provider:    "none",
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
		},
		Serve: ServeConfig{
			Addr:        ":8340",
			CORSOrigins: []string{"*"},
		},
	}
}
