package gemini

import (
	"context"
	"errors"

	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/resilience"
)

// classifyError drives retry and breaker accounting for Gemini calls.
// Throttling and server faults retry; malformed requests and unknown models
// do not, and unknown models also stay out of the breaker counts so a bad
// candidate cannot open the circuit for the working one.
func classifyError(err error) resilience.Class {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Class{}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 408, 429, 500, 502, 503, 504:
			return resilience.Class{Retryable: true, RecordFailure: true}
		case 400, 404:
			return resilience.Class{}
		default:
			return resilience.Class{RecordFailure: true}
		}
	}

	// Transport-level failure: connection refused, reset, DNS.
	return resilience.Class{Retryable: true, RecordFailure: true}
}

// modelUnavailable reports whether the failure points at the model ID rather
// than the request, which is the trigger for walking the candidate list.
func modelUnavailable(err error) bool {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == 404 || statusErr.StatusCode == 400
	}
	return false
}
