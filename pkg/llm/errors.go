package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrNotConfigured = errors.New("llm provider not configured")

// ProviderError carries the upstream HTTP status so callers can tell an
// auth problem from a quota problem without parsing vendor payloads.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotConfigured
	KindRateLimited
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotConfigured:
		return "not_configured"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "unavailable"
	}
}

// ClassifyError buckets a provider failure for user-facing messaging.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrNotConfigured) {
		return KindNotConfigured
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		switch pe.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return KindNotConfigured
		case http.StatusTooManyRequests:
			return KindRateLimited
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"quota", "rate limit", "resource_exhausted", "resource exhausted"} {
		if strings.Contains(msg, marker) {
			return KindRateLimited
		}
	}
	return KindUnavailable
}

// Retryable reports whether one more attempt may help: network failures and 5xx.
func Retryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.StatusCode > 0 {
		return pe.StatusCode >= 500
	}
	if err == nil || errors.Is(err, ErrNotConfigured) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
