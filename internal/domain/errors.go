package domain

import "errors"

var (
	// ErrInvalidInput is returned for malformed input: a threshold outside
	// [0,1], a missing anchor source, or an empty match group reaching the
	// comparison builder.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProductNotFound is returned when a requested listing does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrSourceUnavailable is returned when a scrape source cannot be reached.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited is returned when the per-client rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)
