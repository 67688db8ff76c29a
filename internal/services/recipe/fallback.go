package recipe

import (
	"context"
	"log/slog"

	"github.com/fitchef/ember/internal/errors"
	"github.com/fitchef/ember/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FallbackProvider implements Provider with fallback logic
type FallbackProvider struct {
	primary   Provider
	secondary Provider
}

// NewFallbackProvider creates a new fallback provider
func NewFallbackProvider(primary, secondary Provider) *FallbackProvider {
	return &FallbackProvider{
		primary:   primary,
		secondary: secondary,
	}
}

// Generate tries the primary provider first, falls back to secondary on
// retryable upstream errors. Validation and shape failures are surfaced
// unchanged: a different provider cannot fix an empty input, and a
// malformed reply is terminal for the submit that produced it.
func (f *FallbackProvider) Generate(ctx context.Context, userInput, dietFilter string) (*GenerationResult, error) {
	result, err := f.primary.Generate(ctx, userInput, dietFilter)
	if err == nil {
		return result, nil
	}

	providerErr := ClassifyError(err, "primary")

	if IsRetryableError(err) {
		slog.Info("Primary provider failed with retryable error, attempting fallback",
			"error_type", providerErr.Type,
			"error", err.Error())

		metrics.ProviderFallbackTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from_provider", providerErr.Provider),
			attribute.String("to_provider", "secondary"),
			attribute.String("reason", providerErr.Type),
		))

		result, fallbackErr := f.secondary.Generate(ctx, userInput, dietFilter)
		if fallbackErr == nil {
			slog.Info("Fallback provider succeeded",
				"primary_error_type", providerErr.Type)
			return result, nil
		}

		fallbackProviderErr := ClassifyError(fallbackErr, "secondary")
		slog.Error("Both primary and secondary providers failed",
			"primary_error_type", providerErr.Type,
			"primary_error", err.Error(),
			"fallback_error_type", fallbackProviderErr.Type,
			"fallback_error", fallbackErr.Error())

		return nil, errors.NewUpstreamError(
			"both primary and secondary providers failed",
			"PROVIDER_FALLBACK_FAILED",
			err,
		)
	}

	slog.Info("Primary provider failed with non-retryable error, not attempting fallback",
		"error_type", providerErr.Type,
		"error", err.Error())

	return nil, err
}
