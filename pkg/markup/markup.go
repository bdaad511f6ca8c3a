// Package markup checks rendered output for structural well-formedness.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Error describes the first structural problem found in a fragment.
type Error struct {
	// Offset is the byte offset of the offending token.
	Offset int

	// Tag is the element involved, lower-cased.
	Tag string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: <%s>: %s", e.Offset, e.Tag, e.Message)
}

// voidElements never take an end tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

type openTag struct {
	name   string
	offset int
}

// Validate reports whether every non-void start tag in s is closed, in order.
// Self-closing tags (as produced by MathML typesetters) are accepted.
// It returns nil or an *Error.
func Validate(s string) error {
	tokenizer := html.NewTokenizer(strings.NewReader(s))

	var (
		stack  []openTag
		offset int
	)

	for {
		tokenType := tokenizer.Next()
		start := offset
		offset += len(tokenizer.Raw())

		switch tokenType {
		case html.ErrorToken:
			if !errors.Is(tokenizer.Err(), io.EOF) {
				return fmt.Errorf("tokenize: %w", tokenizer.Err())
			}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				return &Error{Offset: top.offset, Tag: top.name, Message: "element is never closed"}
			}
			return nil

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if voidElements[atom.Lookup(name)] {
				continue
			}
			stack = append(stack, openTag{name: tag, offset: start})

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if voidElements[atom.Lookup(name)] {
				return &Error{Offset: start, Tag: tag, Message: "end tag for void element"}
			}
			if len(stack) == 0 {
				return &Error{Offset: start, Tag: tag, Message: "end tag without matching start tag"}
			}
			top := stack[len(stack)-1]
			if top.name != tag {
				return &Error{
					Offset:  start,
					Tag:     tag,
					Message: fmt.Sprintf("end tag does not match open <%s> at offset %d", top.name, top.offset),
				}
			}
			stack = stack[:len(stack)-1]

		case html.SelfClosingTagToken, html.TextToken, html.CommentToken, html.DoctypeToken:
			// Nothing to balance.
		}
	}
}
