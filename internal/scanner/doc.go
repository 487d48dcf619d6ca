// Package scanner walks a directory of comic archives, parses each filename,
// consults the configured lookup source, and produces one reconciliation row
// per file. Files are processed sequentially in sorted order so online
// sources see a predictable, rate-limit-friendly request stream.
package scanner
