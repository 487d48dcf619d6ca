package textutil

import (
	"regexp"
	"strings"
)

var (
	archiveExtPattern  = regexp.MustCompile(`(?i)\.cbz$`)
	nonAlphanumPattern = regexp.MustCompile(`[^a-z0-9]`)
	markerWordPattern  = regexp.MustCompile(`(volume|vol|chapter)`)
	leadingArticle     = regexp.MustCompile(`^(the|a|an)\s+`)
)

// Normalize reduces a filename or title to a comparison key: lowercase,
// archive extension stripped, non-alphanumerics removed, and the words
// "volume", "vol", and "chapter" dropped. Two names that differ only in
// casing, punctuation, or volume-word spelling normalize identically.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = archiveExtPattern.ReplaceAllString(s, "")
	s = nonAlphanumPattern.ReplaceAllString(s, "")
	return markerWordPattern.ReplaceAllString(s, "")
}

// NormalizeSearch prepares a search term or candidate title for relevance
// comparison: lowercase, a single leading article (the/a/an) removed, and
// all non-alphanumeric characters stripped.
func NormalizeSearch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = leadingArticle.ReplaceAllString(s, "")
	return nonAlphanumPattern.ReplaceAllString(s, "")
}
