package llm

import "errors"

// Classified provider failures. Callers branch with errors.Is; the wrapped
// message carries upstream detail when there is any.
var (
	// ErrMissingAPIKey means no credential is configured; raised before
	// any request is made.
	ErrMissingAPIKey = errors.New("api key is not configured")

	// ErrUnauthorized maps a 401: the configured credential was rejected.
	ErrUnauthorized = errors.New("invalid api key")

	// ErrRateLimited maps a 429.
	ErrRateLimited = errors.New("rate limit exceeded, try again later")

	// ErrBadRequest maps a 400: the provider rejected the request shape.
	ErrBadRequest = errors.New("provider rejected the request")
)
