package identify

import "errors"

var (
	// ErrRateLimited marks a transient 429 from a source; retried with backoff.
	ErrRateLimited = errors.New("rate limited")
	// ErrQuotaExhausted marks a source whose daily quota is spent; further
	// calls short-circuit until the flag is reset at the next scan.
	ErrQuotaExhausted = errors.New("daily quota exhausted")
	// ErrInvalidAPIKey marks credentials the source rejected; terminal for
	// the session.
	ErrInvalidAPIKey = errors.New("invalid api key")
)
