package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const backendKey contextKey = "httpclient.backend"

// WithBackend tags outbound requests made with ctx with the name of the AI backend.
func WithBackend(ctx context.Context, backend string) context.Context {
	return context.WithValue(ctx, backendKey, backend)
}

// BackendFromContext returns the backend name set by WithBackend.
func BackendFromContext(ctx context.Context) string {
	backend, _ := ctx.Value(backendKey).(string)
	return backend
}

// backendTransport marks the client span with the backend name and HTTP failures.
type backendTransport struct {
	base http.RoundTripper
}

func (t *backendTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	span := trace.SpanFromContext(req.Context())
	if backend := BackendFromContext(req.Context()); backend != "" {
		span.SetAttributes(attribute.String("ai.backend", backend))
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP status %d", resp.StatusCode))
	}
	return resp, nil
}

func newOtelTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(&backendTransport{base: base},
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			if backend := BackendFromContext(r.Context()); backend != "" {
				return fmt.Sprintf("%s: %s %s", backend, r.Method, r.URL.Path)
			}
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
	)
}

// New returns an instrumented http.Client. A zero timeout leaves the transport default in place.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: newOtelTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}
