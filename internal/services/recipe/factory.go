package recipe

import (
	"github.com/fitchef/ember/internal/config"
)

// NewProvider creates a new recipe provider based on the configuration.
// When fallback is enabled the primary provider is wrapped so retryable
// upstream failures are routed to the fallback provider. Fallback is off
// by default: a plain provider issues exactly one outbound request per
// generation.
func NewProvider(cfg config.GenerationConfig, geminiKey, groqKey string) Provider {
	build := func(name, model string) Provider {
		switch ProviderType(name) {
		case ProviderGroq:
			return NewGroqProvider(groqKey, model)
		default:
			return NewGeminiProvider(geminiKey, model)
		}
	}

	primary := build(cfg.Provider, cfg.Model)

	if cfg.FallbackEnabled {
		// The fallback provider runs a different vendor, so the configured
		// model name does not carry over.
		return NewFallbackProvider(primary, build(cfg.FallbackProvider, ""))
	}

	return primary
}
