package render

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiItalic = "\x1b[3m"
)

// TerminalMessage renders the same inline markup as FormatMessage for an
// ANSI terminal: bold and italic become escape sequences and links collapse
// to "label (url)". Like FormatMessage it is not idempotent and must be
// applied once, at display time.
func TerminalMessage(text string) string {
	out := boldPattern.ReplaceAllString(text, ansiBold+"$1"+ansiReset)
	out = italicPattern.ReplaceAllString(out, ansiItalic+"$1"+ansiReset)
	out = linkPattern.ReplaceAllString(out, "$1 ($2)")
	return out
}
