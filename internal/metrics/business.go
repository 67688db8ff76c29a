package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("fitchef/business")

	// Generation metrics
	GenerationsTotal   metric.Int64Counter
	GenerationDuration metric.Float64Histogram

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram

	// Provider fallback metrics
	ProviderFallbackTotal metric.Int64Counter

	// Session metrics
	SessionSubmitsTotal    metric.Int64Counter
	SessionRejectionsTotal metric.Int64Counter
)

func Init() error {
	var err error

	// Generation metrics
	GenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe generations by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	GenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of recipe generation including validation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	// External API metrics
	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	// Provider fallback metrics
	ProviderFallbackTotal, err = meter.Int64Counter(
		"provider.fallback.total",
		metric.WithDescription("Total number of provider fallback attempts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	// Session metrics
	SessionSubmitsTotal, err = meter.Int64Counter(
		"session.submits.total",
		metric.WithDescription("Total number of session submits"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	SessionRejectionsTotal, err = meter.Int64Counter(
		"session.rejections.total",
		metric.WithDescription("Submits rejected while a generation was in flight"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}
