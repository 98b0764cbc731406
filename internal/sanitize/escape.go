package sanitize

import "strings"

// EscapeControlChars escapes raw newlines, carriage returns, and tabs that
// appear inside double-quoted string spans. Spans are inferred by tracking
// quote and backslash state rather than reparsing, so the transformation is
// safe to run on text that does not parse at all.
func EscapeControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString := false
	escaped := false

	for _, r := range text {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		switch {
		case r == '\\':
			b.WriteRune(r)
			escaped = true
		case r == '"':
			inString = !inString
			b.WriteRune(r)
		case inString && r == '\n':
			b.WriteString(`\n`)
		case inString && r == '\r':
			b.WriteString(`\r`)
		case inString && r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
