package completion

import (
	"context"
	"errors"
	"net"
	"strings"
)

// ProviderError represents a classified error from an AI provider
type ProviderError struct {
	Type     string // "rate_limit", "credit_exhausted", "server_error", "client_error", "blocked", "malformed", "timeout", "unknown"
	Message  string
	Provider string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// ClassifyError tags err for logs and metrics. It never drives a retry.
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	pe := &ProviderError{Type: "unknown", Message: err.Error(), Provider: provider}

	var apiErr *APIError
	var netErr net.Error
	switch {
	case errors.As(err, &apiErr):
		pe.Type = classifyStatus(apiErr.StatusCode, apiErr.Body)
	case errors.Is(err, ErrBlocked):
		pe.Type = "blocked"
	case errors.Is(err, ErrMalformedResponse):
		pe.Type = "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		pe.Type = "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		pe.Type = "timeout"
	default:
		pe.Type = classifyMessage(pe.Message)
	}
	return pe
}

func classifyStatus(status int, body string) string {
	switch {
	case status == 429:
		return "rate_limit"
	case status == 402:
		return "credit_exhausted"
	case status >= 500:
		return "server_error"
	case status >= 400:
		if t := classifyMessage(body); t == "credit_exhausted" {
			return t
		}
		return "client_error"
	default:
		return "unknown"
	}
}

func classifyMessage(msg string) string {
	switch {
	case containsAny(msg, "rate limit", "too many requests", "resource_exhausted"):
		return "rate_limit"
	case containsAny(msg, "insufficient credit", "credit exhausted", "billing", "quota"):
		return "credit_exhausted"
	case containsAny(msg, "server error", "internal error", "unavailable"):
		return "server_error"
	case containsAny(msg, "bad request", "unauthorized", "forbidden", "api key not valid"):
		return "client_error"
	default:
		return "unknown"
	}
}

// containsAny reports whether s contains any of subs, case-insensitively.
func containsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
