// Package textutil provides text processing utilities for title comparison
// and filename sanitization.
//
// The primary use cases are:
//   - Normalizing titles and filenames so different formattings of the same
//     series compare equal
//   - Tokenizing series names for overlap-based relevance checks
//   - Sanitizing proposed filenames for safe filesystem use
//
// Normalization lowercases text, strips the archive extension, removes
// non-alphanumeric characters, and drops volume/chapter marker words so that
// "Berserk, Vol. 03.cbz" and "Berserk Volume 3" normalize identically.
package textutil
