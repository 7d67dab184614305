package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Provider defines the interface for LLM review providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Review asks the model to second-guess defaulted homographs
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ReviewItem is one defaulted homograph sent for review
type ReviewItem struct {
	// Word is the surface form as it appeared in the text
	Word string

	// Context is the segment the word stood in
	Context string

	// Options is the STRICT allowlist of stressed spellings, in prior
	// order. The model cannot suggest any form not in this list.
	Options []string

	// Chosen is the prior-order default the marker applied
	Chosen string
}

// ReviewRequest contains the input for an LLM review pass
type ReviewRequest struct {
	// Items are the defaulted homographs under review
	Items []ReviewItem

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Suggestion is the model's pick for one reviewed word
type Suggestion struct {
	// Word is the surface form under review
	Word string

	// Stressed is the suggested spelling, always one of the allowed options
	Stressed string

	// Agrees reports whether the model confirmed the applied default
	Agrees bool
}

// ReviewResponse contains the LLM's review output. Suggestions are
// advisory only and never feed back into marking.
type ReviewResponse struct {
	// Suggestions holds one entry per item the model answered
	Suggestions []Suggestion

	// Raw is the full model output, kept for the verbose console
	Raw string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "none", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictOptions enforces the options allowlist (should always be true)
	StrictOptions bool

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for sampling, 0 selects the default
	Temperature float32

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:      "", // Disabled by default
		Model:         "",
		Timeout:       30,
		StrictOptions: true, // CRITICAL: Always enforce
		MaxTokens:     1000,
		Temperature:   0.3,
	}
}

func (c Config) temperature() float32 {
	if c.Temperature > 0 {
		return c.Temperature
	}
	return 0.3
}

const reviewSystem = "You are a Ukrainian language expert reviewing stress placement. Answer only with stressed forms from the allowed options."

// BuildReviewPrompt constructs the default prompt for a review pass
func BuildReviewPrompt(items []ReviewItem) string {
	var b strings.Builder
	b.WriteString(`The words below are Ukrainian stress homographs. For each one the marker applied the most common reading because the context gave no usable signal.

RULES:
1. Answer with one line per number, in the form "N. <stressed form>".
2. Choose ONLY from the listed options. Never invent a stress position.
3. When the context is not enough to decide, repeat the applied form.

Words under review:
`)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s in: %s\n   options: %s; applied: %s\n",
			i+1, item.Word, item.Context, strings.Join(item.Options, ", "), item.Chosen)
	}
	b.WriteString("\nAnswer with one line per number, nothing else.")
	return b.String()
}

// answerLine matches "N. <rest>" and "N) <rest>" response lines
var answerLine = regexp.MustCompile(`^\s*(\d+)[.)]\s*(.*)$`)

// parseSuggestions maps numbered answer lines back to review items.
// Lines without a recognizable stressed form are skipped. In strict
// mode a form outside the item's allowlist fails the whole review, the
// same rule the marker itself lives by: never invent stress.
func parseSuggestions(text string, items []ReviewItem, strict bool) ([]Suggestion, error) {
	var suggestions []Suggestion

	for _, line := range strings.Split(text, "\n") {
		m := answerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(items) {
			continue
		}
		item := items[n-1]

		for _, form := range extractStressedForms(m[2]) {
			if !contains(item.Options, form) {
				if strict {
					return nil, fmt.Errorf("model suggested %q for %q, not among allowed options", form, item.Word)
				}
				continue
			}
			suggestions = append(suggestions, Suggestion{
				Word:     item.Word,
				Stressed: form,
				Agrees:   form == item.Chosen,
			})
			break
		}
	}

	return suggestions, nil
}
