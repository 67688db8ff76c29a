// Package telemetry provides OpenTelemetry initialization and helpers
// for distributed tracing across the recipe generation service.
//
// The package configures OTLP HTTP export for traces, with support for
// Grafana Cloud and local Tempo backends.
package telemetry
