// Package module reads module documents and composes rendered modules into pages.
package module

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrFrontMatter is returned when a document's front matter is not valid YAML.
var ErrFrontMatter = errors.New("invalid front matter")

// frontMatterDelimiter opens and closes the YAML header of a module file.
const frontMatterDelimiter = "---"

// Module is one authored unit of content.
type Module struct {
	// Title is shown as the page heading. It comes from front matter.
	Title string `yaml:"title"`

	// Text is the module body in the text/math grammar understood by package render.
	Text string `yaml:"-"`
}

// ParseOptions controls how a module document is read.
type ParseOptions struct {
	// NormalizeUnicode converts the body to Unicode NFC before rendering.
	NormalizeUnicode bool
}

// Parse reads a module document: an optional YAML front matter block
// delimited by "---" lines, followed by the body.
//
// Line endings are normalized to "\n" so blank-line paragraph breaks work
// for files written on any platform. A leading byte order mark is dropped.
func Parse(content []byte, opts ParseOptions) (*Module, error) {
	text := strings.TrimPrefix(string(content), "\ufeff")
	text = normalizeNewlines(text)
	if opts.NormalizeUnicode {
		text = norm.NFC.String(text)
	}

	mod := &Module{}

	header, body, ok := splitFrontMatter(text)
	if ok {
		if err := yaml.Unmarshal([]byte(header), mod); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFrontMatter, err)
		}
	}
	mod.Text = body

	return mod, nil
}

// normalizeNewlines rewrites CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splitFrontMatter separates a leading "---" block from the body.
// A document whose opening delimiter is never closed has no front matter.
func splitFrontMatter(text string) (header, body string, ok bool) {
	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimRight(first, " \t") != frontMatterDelimiter {
		return "", text, false
	}

	offset := 0
	for offset <= len(rest) {
		line, next, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, " \t") == frontMatterDelimiter {
			header = rest[:offset]
			if more {
				body = next
			}
			return header, body, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}

	return "", text, false
}
