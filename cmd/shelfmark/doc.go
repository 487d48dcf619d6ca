// Command shelfmark scans a directory of comic archives, proposes
// standardized filenames verified against online catalogs, applies them,
// and can undo applied batches.
package main
