package identify

import "context"

// Cache stores lookup outcomes keyed by source-specific strings. Explicit
// no-match records are stored too, so repeated scans of the same term never
// re-query.
type Cache interface {
	Get(key string) (Record, bool)
	Put(key string, record Record)
}

// Request describes one lookup against an online source.
type Request struct {
	// Term is the series guess to search for.
	Term string
	// VolumeNumber optionally constrains the lookup to a specific volume.
	VolumeNumber string
	// NumberPrefix is the numbering prefix used when synthesizing titles
	// from structured results (e.g. "#", "Vol. ").
	NumberPrefix string
}

// Source resolves a search request to a verified Record. Implementations
// return the null record, never an unverified candidate, when nothing
// relevant is found; errors classify terminal conditions (quota, bad key)
// without aborting the caller's scan.
type Source interface {
	Name() string
	Lookup(ctx context.Context, req Request) (Record, error)
}
