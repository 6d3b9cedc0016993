package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// endpoint is a parsed OTEL_EXPORTER_OTLP_ENDPOINT.
type endpoint struct {
	host       string
	insecure   bool
	tracePath  string
	logPath    string
	metricPath string
}

func parseEndpoint(raw string) endpoint {
	ep := endpoint{
		host:       raw,
		tracePath:  "/v1/traces",
		logPath:    "/v1/logs",
		metricPath: "/v1/metrics",
	}

	if strings.HasPrefix(ep.host, "https://") {
		ep.host = strings.TrimPrefix(ep.host, "https://")
	} else if strings.HasPrefix(ep.host, "http://") {
		ep.host = strings.TrimPrefix(ep.host, "http://")
		ep.insecure = true
	}

	basePath := ""
	if idx := strings.Index(ep.host, "/"); idx > 0 {
		basePath = ep.host[idx:]
		ep.host = ep.host[:idx]
	}

	basePath = strings.TrimSuffix(basePath, "/v1/traces")
	basePath = strings.TrimSuffix(basePath, "/v1/logs")
	basePath = strings.TrimSuffix(basePath, "/v1/metrics")
	basePath = strings.TrimSuffix(basePath, "/")
	if basePath != "" {
		ep.tracePath = basePath + ep.tracePath
		ep.logPath = basePath + ep.logPath
		ep.metricPath = basePath + ep.metricPath
	}
	return ep
}

// InitTelemetry initializes OpenTelemetry traces, logs and metrics over OTLP/HTTP.
// With an empty endpoint nothing is exported and the returned shutdown is a no-op.
func InitTelemetry(ctx context.Context, serviceName, serviceVersion, env, otlpEndpoint string, headers map[string]string) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if otlpEndpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
			semconv.DeploymentEnvironmentKey.String(env),
		),
	)
	if err != nil {
		return nil, err
	}

	ep := parseEndpoint(otlpEndpoint)

	traceOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(ep.host),
		otlptracehttp.WithURLPath(ep.tracePath),
	}
	logOpts := []otlploghttp.Option{
		otlploghttp.WithEndpoint(ep.host),
		otlploghttp.WithURLPath(ep.logPath),
	}
	metricOpts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(ep.host),
		otlpmetrichttp.WithURLPath(ep.metricPath),
	}
	if len(headers) > 0 {
		traceOpts = append(traceOpts, otlptracehttp.WithHeaders(headers))
		logOpts = append(logOpts, otlploghttp.WithHeaders(headers))
		metricOpts = append(metricOpts, otlpmetrichttp.WithHeaders(headers))
	}
	if ep.insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
		logOpts = append(logOpts, otlploghttp.WithInsecure())
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
	}

	traceExporter, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return nil, err
	}
	logExporter, err := otlploghttp.New(ctx, logOpts...)
	if err != nil {
		return nil, err
	}
	metricExporter, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	// Go runtime metrics (GC, goroutines, memory)
	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		slog.Warn("Failed to start runtime metrics", "error", err)
	}

	slog.Info("Telemetry initialized",
		"endpoint", ep.host,
		"trace_path", ep.tracePath,
		"log_path", ep.logPath,
		"metric_path", ep.metricPath,
		"insecure", ep.insecure,
	)

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), lp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// Tracer returns a tracer with the given name
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
