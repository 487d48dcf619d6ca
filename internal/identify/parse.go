package identify

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind distinguishes volume-numbered archives from chapter-numbered ones.
type Kind string

const (
	KindVolume  Kind = "Volume"
	KindChapter Kind = "Chapter"
)

// ParsedFilename is the local guess derived from a filename alone, before
// any online lookup.
type ParsedFilename struct {
	Series string
	Number string
	Kind   Kind
}

var (
	archiveExtPattern   = regexp.MustCompile(`(?i)\.cbz$`)
	bracketGroupPattern = regexp.MustCompile(`[\(\[][^\]\)]*[\)\]]`)

	volumeMarkerPattern  = regexp.MustCompile(`(?i)(?:v|vol\.?|volume)\s*(\d+)`)
	chapterMarkerPattern = regexp.MustCompile(`(?i)(?:c|ch\.?|chapter|#)\s*(\d+)`)
	bareNumberPattern    = regexp.MustCompile(`\d+`)

	trailingSeparators = regexp.MustCompile(`[\s_-]+$`)
	leadingSeparators  = regexp.MustCompile(`^[\s_-]+`)
	underscoreRuns     = regexp.MustCompile(`_+`)
	whitespaceRuns     = regexp.MustCompile(`\s{2,}`)
)

// Parse turns a bare archive filename into a series guess plus volume or
// chapter number. Volume markers win over chapter markers when both appear.
// A filename with no marker falls back to its first bare number (treated as
// a chapter) and finally to number "0" with the whole name as the series.
func Parse(filename string) ParsedFilename {
	base := archiveExtPattern.ReplaceAllString(filename, "")
	cleaned := strings.TrimSpace(bracketGroupPattern.ReplaceAllString(base, ""))

	var series, number string
	var kind Kind

	if m := volumeMarkerPattern.FindStringSubmatchIndex(cleaned); m != nil {
		number = cleaned[m[2]:m[3]]
		kind = KindVolume
		// Slice the series from the original string so release-group tags
		// ahead of the marker keep their exact width.
		if orig := volumeMarkerPattern.FindStringIndex(base); orig != nil {
			series = base[:orig[0]]
		} else {
			series = cleaned[:m[0]]
		}
	} else if m := chapterMarkerPattern.FindStringSubmatchIndex(cleaned); m != nil {
		number = cleaned[m[2]:m[3]]
		kind = KindChapter
		if orig := chapterMarkerPattern.FindStringIndex(base); orig != nil {
			series = base[:orig[0]]
		} else {
			series = cleaned[:m[0]]
		}
	} else if m := bareNumberPattern.FindStringIndex(cleaned); m != nil {
		number = cleaned[m[0]:m[1]]
		kind = KindChapter
		series = cleaned[:m[0]]
	} else {
		number = "0"
		kind = KindVolume
		series = cleaned
	}

	series = cleanSeriesGuess(series)
	if series == "" {
		series = archiveExtPattern.ReplaceAllString(filename, "")
	}

	return ParsedFilename{Series: series, Number: normalizeNumber(number), Kind: kind}
}

// normalizeNumber drops leading zeros from integer numbers so "03" and "3"
// produce the same guess. Non-numeric numbers pass through unchanged.
func normalizeNumber(number string) string {
	if n, err := strconv.Atoi(number); err == nil {
		return strconv.Itoa(n)
	}
	return number
}

func cleanSeriesGuess(series string) string {
	series = bracketGroupPattern.ReplaceAllString(series, "")
	series = strings.TrimSpace(series)
	series = trailingSeparators.ReplaceAllString(series, "")
	series = leadingSeparators.ReplaceAllString(series, "")
	series = underscoreRuns.ReplaceAllString(series, " ")
	series = whitespaceRuns.ReplaceAllString(series, " ")
	return strings.Trim(series, " ,.-")
}
