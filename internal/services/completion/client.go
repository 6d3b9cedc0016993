// Package completion talks to hosted generative-AI backends through a single
// prompt-in, text-out contract.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/socialchef/sous/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// ErrNotConfigured means the backend could not be set up (usually a missing API key).
	ErrNotConfigured = errors.New("completion backend not configured")
	// ErrBlocked means the backend refused the prompt.
	ErrBlocked = errors.New("prompt blocked by backend")
	// ErrMalformedResponse means the backend reply could not be understood.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// Client completes a single prompt.
// A nil error with empty text means the backend answered but said nothing;
// every failure is reported as a non-nil error.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Setup is the outcome of configuring a backend at startup.
// Exactly one of Client and Err is set.
type Setup struct {
	Client   Client
	Provider string
	Model    string
	Err      error
}

// Available reports whether Client may be called.
func (s Setup) Available() bool {
	return s.Err == nil && s.Client != nil
}

// APIError is a non-2xx reply from a backend.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

func parseBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base URL %q: %v", ErrNotConfigured, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: base URL %q needs a scheme and host", ErrNotConfigured, raw)
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}

// observe records call count and latency for one backend call.
func observe(ctx context.Context, provider string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	outcome := "ok"
	if err != nil {
		outcome = ClassifyError(err, provider).Type
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)
	metrics.AIGenerationDuration.Record(ctx, duration, attrs)
	metrics.ExternalAPIDuration.Record(ctx, duration, attrs)
	metrics.ExternalAPICallsTotal.Add(ctx, 1, attrs)
}
