package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"shelfmark/internal/config"
	"shelfmark/internal/identify"
)

const archiveExt = ".cbz"

var (
	volumeNumberPattern  = regexp.MustCompile(`(?i)((?:Vol\.?|Volume|v\.)\s*)\d+`)
	chapterNumberPattern = regexp.MustCompile(`(?i)((?:Chapter|Ch\.?)\s*)\d+`)
	hashNumberPattern    = regexp.MustCompile(`(#)\d+`)

	volumeSubtitlePattern = regexp.MustCompile(`(?i)((?:Vol\.?|Volume|v\.)\s*\d+)\s*[:\-–—]\s*.+`)
	hashSubtitlePattern   = regexp.MustCompile(`(#\d+)\s*[:\-–—]\s*.+`)
)

// PadNumber zero-pads an integer number string to width. Non-numeric
// numbers pass through unchanged.
func PadNumber(number string, width int) string {
	n, err := strconv.Atoi(number)
	if err != nil {
		return number
	}
	return fmt.Sprintf("%0*d", width, n)
}

// numberPrefix returns the standardized prefix word for a parse kind.
func numberPrefix(kind identify.Kind) string {
	if kind == identify.KindVolume {
		return "Vol."
	}
	return "Chapter"
}

// LocalName builds the standardized offline name for a parsed filename.
func LocalName(parsed identify.ParsedFilename, paddedNumber string) string {
	return fmt.Sprintf("%s, %s %s%s", parsed.Series, numberPrefix(parsed.Kind), paddedNumber, archiveExt)
}

// OnlineName builds the proposed name for a resolved online record,
// honoring the source-format and subtitle settings.
func OnlineName(record identify.Record, parsed identify.ParsedFilename, paddedNumber string, naming config.Naming) string {
	if naming.UseSourceFormat && record.RawTitle != "" {
		name := PadNumberInTitle(record.RawTitle, paddedNumber)
		if !naming.IncludeSubtitle {
			name = StripSubtitle(name)
		}
		return name + archiveExt
	}

	name := fmt.Sprintf("%s, %s %s", record.Series, numberPrefix(parsed.Kind), paddedNumber)
	if naming.IncludeSubtitle && record.Subtitle != "" {
		separator := " - "
		switch naming.SubtitleSeparator {
		case config.SeparatorColon:
			separator = ": "
		case config.SeparatorSource:
			if record.Separator != "" {
				separator = record.Separator
			}
		}
		name += separator + record.Subtitle
	}
	return name + archiveExt
}

// PadNumberInTitle replaces the volume/chapter/issue number inside a raw
// source title with the zero-padded version, e.g.
// "Berserk Volume 1" + "01" -> "Berserk Volume 01".
func PadNumberInTitle(rawTitle, paddedNumber string) string {
	for _, pattern := range []*regexp.Regexp{volumeNumberPattern, chapterNumberPattern, hashNumberPattern} {
		if m := pattern.FindStringSubmatchIndex(rawTitle); m != nil {
			return rawTitle[:m[3]] + paddedNumber + rawTitle[m[1]:]
		}
	}
	return rawTitle
}

// StripSubtitle removes the subtitle portion from a raw title, e.g.
// "Berserk, Vol. 1: The Black Swordsman" -> "Berserk, Vol. 1".
func StripSubtitle(rawTitle string) string {
	for _, pattern := range []*regexp.Regexp{volumeSubtitlePattern, hashSubtitlePattern} {
		if m := pattern.FindStringSubmatchIndex(rawTitle); m != nil {
			return rawTitle[:m[0]] + rawTitle[m[2]:m[3]]
		}
	}
	return rawTitle
}

// EnsureExtension makes sure a final name carries the archive extension
// exactly once regardless of how the user typed it.
func EnsureExtension(name string) string {
	if strings.HasSuffix(strings.ToLower(name), archiveExt) {
		return name
	}
	return name + archiveExt
}
