package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Instruments start as no-ops so packages can record before Init runs (tests, tools).
var (
	meter = otel.Meter("sous/business")

	// Recipe flow metrics
	RecipeGenerationsTotal   metric.Int64Counter     = noop.Int64Counter{}
	RecipeGenerationDuration metric.Float64Histogram = noop.Float64Histogram{}
	TranslationFallbackTotal metric.Int64Counter     = noop.Int64Counter{}

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter     = noop.Int64Counter{}
	ExternalAPIDuration   metric.Float64Histogram = noop.Float64Histogram{}

	// AI metrics
	AIGenerationDuration metric.Float64Histogram = noop.Float64Histogram{}
)

func Init() error {
	var err error

	RecipeGenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe flows by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeGenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of the full recipe flow including translation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	TranslationFallbackTotal, err = meter.Int64Counter(
		"recipe.translation.fallback.total",
		metric.WithDescription("Translations that failed and fell back to the English recipe"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

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
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	AIGenerationDuration, err = meter.Float64Histogram(
		"ai.generation.duration",
		metric.WithDescription("Duration of a single AI completion"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	return nil
}
