package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// illegalCharReplacer strips characters no filesystem accepts in a single
// path component. Colons are left alone so the colon subtitle separator
// survives into the final name.
var illegalCharReplacer = strings.NewReplacer(
	"/", "-",
	"*", "",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName rewrites a proposed filename so it is legal on every
// supported filesystem.
func SanitizeFileName(name string) string {
	return illegalCharReplacer.Replace(name)
}

var titleCaser = cases.Title(language.Und)

// TitleCase re-cases a series guess parsed from an all-lowercase or
// SHOUTING filename into title case.
func TitleCase(s string) string {
	return titleCaser.String(s)
}
