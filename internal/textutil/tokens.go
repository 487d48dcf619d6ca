package textutil

import (
	"regexp"
	"strings"
)

// tokenStripPattern removes characters that are neither alphanumeric nor spaces.
var tokenStripPattern = regexp.MustCompile(`[^a-z0-9\s]`)

// TokenSet splits text into a set of lowercase alphanumeric tokens.
func TokenSet(text string) map[string]struct{} {
	cleaned := tokenStripPattern.ReplaceAllString(strings.ToLower(text), "")
	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(cleaned) {
		tokens[token] = struct{}{}
	}
	return tokens
}

// TokenOverlap counts how many tokens of a appear in b.
func TokenOverlap(a, b map[string]struct{}) int {
	var common int
	for token := range a {
		if _, ok := b[token]; ok {
			common++
		}
	}
	return common
}
