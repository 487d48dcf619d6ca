// Package googlebooks provides a typed client for the Google Books volumes
// search API. Query planning, retries, and quota handling live in the
// identify package; this client only issues single requests.
package googlebooks
