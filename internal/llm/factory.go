package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/okovalenko/nagolos/internal/model"
)

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "", "none":
		// No provider configured - return nil (review disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromReview converts model.ReviewConfig to llm.Config. API keys
// never live in config files; they come from the environment.
func ConfigFromReview(rc model.ReviewConfig) Config {
	config := DefaultConfig()
	config.Provider = rc.Provider
	config.Model = rc.Model
	config.BaseURL = rc.BaseURL
	if rc.Temperature > 0 {
		config.Temperature = rc.Temperature
	}
	config.APIKey = APIKeyFromEnv(rc.Provider)
	if config.BaseURL == "" && strings.EqualFold(rc.Provider, "ollama") {
		config.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	return config
}

// APIKeyFromEnv returns the conventional API key for a provider
func APIKeyFromEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
