package render

import "strings"

// htmlEntities maps each HTML-sensitive byte to its entity form.
//
//nolint:gochecknoglobals // Read-only lookup table.
var htmlEntities = [256]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#39;",
	'/':  "&#x2f;",
}

// EscapeHTML replaces &, <, >, ", ' and / with their entity forms.
// All other characters pass through unchanged.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	writeEscaped(&b, s)
	return b.String()
}

// writeEscaped appends s to b, escaping HTML-sensitive bytes.
// Multi-byte UTF-8 sequences never contain ASCII bytes, so working on bytes is safe.
func writeEscaped(b *strings.Builder, s string) {
	last := 0
	for i := 0; i < len(s); i++ {
		entity := htmlEntities[s[i]]
		if entity == "" {
			continue
		}
		b.WriteString(s[last:i])
		b.WriteString(entity)
		last = i + 1
	}
	b.WriteString(s[last:])
}
