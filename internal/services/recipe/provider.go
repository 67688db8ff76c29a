package recipe

import (
	"context"
	"strings"

	"github.com/fitchef/ember/internal/errors"
)

// ProviderType represents the type of AI provider
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderGroq   ProviderType = "groq"
)

// Provider defines the interface for AI recipe generation providers. A call
// issues exactly one outbound request, performs no internal retries and no
// caching, and honors context cancellation.
type Provider interface {
	Generate(ctx context.Context, userInput, dietFilter string) (*GenerationResult, error)
}

// validateInput guards the local precondition shared by all providers:
// the user input must be non-empty after trimming. This check never
// reaches the network.
func validateInput(userInput string) error {
	if strings.TrimSpace(userInput) == "" {
		return errors.NewEmptyInputError("please provide ingredients or recipe preferences")
	}
	return nil
}
