package identify

import (
	"regexp"
	"strings"
)

var (
	titleVolumeCut  = regexp.MustCompile(`(?i)[,:\-]?\s*(?:Vol\.?|Volume|v\.)\s*\d`)
	titleChapterCut = regexp.MustCompile(`(?i)[,:\-]?\s*(?:Chapter|Ch\.?)\s*\d`)
	trailingNumber  = regexp.MustCompile(`\s+\d+\s*$`)
	subtitleMarker  = regexp.MustCompile(`(?i)(?:Vol\.?|Volume|v\.)\s*\d+\s*([:\-–—])\s*(.+)`)
)

// ExtractTitle pulls a clean series name and optional subtitle out of a raw
// bibliographic title string, verifying the result against the search term.
// Titles that fail verification, or that reduce to nothing once markers and
// numbers are stripped, yield the null record.
func ExtractTitle(rawTitle, searchTerm string) Record {
	clean := cutAt(rawTitle, titleVolumeCut)
	clean = cutAt(clean, titleChapterCut)
	clean = trailingNumber.ReplaceAllString(clean, "")
	clean = strings.Trim(clean, " ,:-")
	if clean == "" {
		return NullRecord()
	}

	subtitle := ""
	separator := defaultSeparator
	if m := subtitleMarker.FindStringSubmatch(rawTitle); m != nil {
		subtitle = strings.TrimSpace(m[2])
		if m[1] == ":" {
			separator = ": "
		}
	}

	if !Relevant(searchTerm, clean) {
		return NullRecord()
	}

	return Record{
		Series:    clean,
		RawTitle:  rawTitle,
		Subtitle:  subtitle,
		Separator: separator,
	}
}

// cutAt truncates s at the first match of pattern.
func cutAt(s string, pattern *regexp.Regexp) string {
	if loc := pattern.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}
