package render

import "strings"

// mathKind distinguishes inline from display math spans.
type mathKind uint8

const (
	inlineMath mathKind = iota
	displayMath
)

// delimiter returns the marker that opens and closes a span of this kind.
// The escape sequence is a backslash followed by the delimiter.
func (k mathKind) delimiter() string {
	if k == displayMath {
		return "$$"
	}
	return "$"
}

func (k mathKind) displayMode() bool {
	return k == displayMath
}

func (k mathKind) String() string {
	if k == displayMath {
		return "display"
	}
	return "inline"
}

// mathSpan is the raw source of one math span and where scanning resumes.
type mathSpan struct {
	// Source is the TeX source with escapes resolved. It is not HTML-escaped.
	Source string

	// Next is the offset just past the closing delimiter, or len(text)
	// when the span runs to end of input.
	Next int

	// Terminated is false when end of input was reached before a closing delimiter.
	Terminated bool
}

// extractMath scans a math span whose opening delimiter ends at start.
//
// An escaped delimiter contributes the literal delimiter to the source, an
// unescaped delimiter ends the span and every other byte is copied verbatim.
// A span without escapes is returned as a substring of text.
func extractMath(text string, start int, kind mathKind) mathSpan {
	delim := kind.delimiter()

	var (
		buf     strings.Builder
		escaped bool
		seg     = start
	)

	source := func(end int) string {
		if !escaped {
			return text[start:end]
		}
		buf.WriteString(text[seg:end])
		return buf.String()
	}

	for pos := start; pos < len(text); {
		switch {
		case text[pos] == '\\' && strings.HasPrefix(text[pos+1:], delim):
			buf.WriteString(text[seg:pos])
			buf.WriteString(delim)
			escaped = true
			pos += 1 + len(delim)
			seg = pos
		case strings.HasPrefix(text[pos:], delim):
			return mathSpan{Source: source(pos), Next: pos + len(delim), Terminated: true}
		default:
			pos++
		}
	}

	return mathSpan{Source: source(len(text)), Next: len(text)}
}
