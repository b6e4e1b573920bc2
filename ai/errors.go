package ai

import "errors"

var (
	// ErrUpstreamUnavailable indicates that an AI service could not be
	// reached or kept failing after the configured retry budget.
	ErrUpstreamUnavailable = errors.New("ai service unavailable")

	// ErrInvalidMaxAttempts indicates maxAttempts <= 0 was passed to a retry helper.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
