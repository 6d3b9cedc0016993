// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing, logs and metrics across the sous recipe service.
//
// The package configures OTLP HTTP export and derives the per-signal
// URL paths from a single OTEL_EXPORTER_OTLP_ENDPOINT value.
package telemetry
