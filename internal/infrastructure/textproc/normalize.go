// Package textproc canonicalizes extracted document text before it enters a
// session. Persian sources frequently carry Arabic-script variant glyphs that
// break exact matching, so those are folded to their canonical forms.
package textproc

import (
	"regexp"
	"strings"
)

var (
	glyphFolder = strings.NewReplacer(
		"ي", "ی", // ARABIC YEH -> FARSI YEH
		"ك", "ک", // ARABIC KAF -> KEHEH
	)
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
	blankLineRuns  = regexp.MustCompile(`\n{2,}`)
)

// Normalize folds script-variant glyphs, collapses runs of horizontal
// whitespace to a single space, collapses runs of blank lines to a single
// newline, and trims the result. Total and idempotent on any input.
func Normalize(text string) string {
	text = glyphFolder.Replace(text)
	text = horizontalRuns.ReplaceAllString(text, " ")
	text = blankLineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
