// Package lookupcache stores resolved lookup records, including explicit
// no-match entries, keyed by source-specific strings.
//
// The cache is an in-memory map optionally backed by a JSON file on disk.
// The file maps each key to a 4-element array
// [series|null, rawTitle|null, subtitle|null, separator] and is loaded
// wholesale at startup and rewritten wholesale at the end of a scan. A
// corrupt or missing file degrades to an empty cache, never an error.
package lookupcache
