// Package identify implements the series identification engine: heuristic
// filename parsing, series/subtitle extraction from free-text bibliographic
// titles, relevance verification between a search term and a candidate
// result, and the source adapters that resolve a parsed filename against
// online catalogs with caching, rate limiting, and quota backoff.
//
// The engine processes one lookup at a time. Adapters own their rate-limit
// and quota state explicitly so tests can construct independent instances
// with independent clocks.
package identify
