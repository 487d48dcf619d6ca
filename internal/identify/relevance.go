package identify

import (
	"strings"

	"shelfmark/internal/textutil"
)

// Relevant reports whether a candidate title plausibly matches a search
// term. The containment rule is deliberately asymmetric: the normalized
// search term must appear inside the normalized candidate. A candidate that
// is merely a prefix of a longer, more specific search term is rejected:
// searching "Solo Leveling Ragnarok" must not accept "Solo Leveling".
// The flip side is that "Fullmetal Alchemist: Brotherhood" will reject a
// result titled "Fullmetal Alchemist"; that tension is accepted as is.
func Relevant(searchTerm, candidate string) bool {
	search := textutil.NormalizeSearch(searchTerm)
	result := textutil.NormalizeSearch(candidate)
	if search == "" || result == "" {
		return false
	}
	return strings.Contains(result, search)
}

// RelevantLoose is the symmetric variant: either side containing the other
// counts as a match. Nothing in the adapters uses it; it exists for hosts
// that explicitly opt into looser matching.
func RelevantLoose(searchTerm, candidate string) bool {
	search := textutil.NormalizeSearch(searchTerm)
	result := textutil.NormalizeSearch(candidate)
	if search == "" || result == "" {
		return false
	}
	return strings.Contains(result, search) || strings.Contains(search, result)
}
