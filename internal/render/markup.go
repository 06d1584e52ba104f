// Package render provides the pure display transforms applied to transcript
// text: inline chat markup to presentational HTML, an ANSI variant for
// terminal display, and human-readable byte sizes.
package render

import (
	"regexp"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`_(.+?)_`)
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
)

// FormatMessage translates inline chat markup into presentational HTML:
// **bold** becomes <strong>, _italic_ becomes <em>, [label](url) becomes an
// anchor that opens in a new tab, and literal newlines become <br>.
//
// The transform is pure and total but NOT idempotent: running it over
// already-transformed output can mangle the produced markup. Callers must
// apply it exactly once, at render time, and never store the result.
func FormatMessage(text string) string {
	out := boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	out = linkPattern.ReplaceAllString(out, `<a href="$2" target="_blank">$1</a>`)
	out = strings.ReplaceAll(out, "\n", "<br>")
	return out
}
