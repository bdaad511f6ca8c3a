package render

import "strings"

// Container markup emitted by the assembler.
const (
	paragraphOpen  = "<p>"
	paragraphClose = "</p>"
	inlineOpen     = "<span>"
	inlineClose    = "</span>"
)

// assembler collects fragments into paragraphs and paragraphs into output.
//
// Fragments for the open paragraph are buffered and wrapped when the
// paragraph closes. Display blocks bypass the buffer entirely.
type assembler struct {
	out   strings.Builder
	para  strings.Builder
	open  bool
	stats *Stats
}

func newAssembler(sizeHint int, stats *Stats) *assembler {
	a := &assembler{stats: stats}
	a.out.Grow(sizeHint + sizeHint/4)
	return a
}

// openParagraph starts a paragraph. It is a no-op when one is already open.
func (a *assembler) openParagraph() {
	if a.open {
		return
	}
	a.open = true
	a.para.Reset()
}

// closeParagraph wraps the buffered fragments and appends them to the output.
// It is a no-op when no paragraph is open.
func (a *assembler) closeParagraph() {
	if !a.open {
		return
	}
	a.out.WriteString(paragraphOpen)
	a.out.WriteString(a.para.String())
	a.out.WriteString(paragraphClose)
	a.open = false
	a.stats.Paragraphs++
}

// appendText escapes prose into the open paragraph.
func (a *assembler) appendText(s string) {
	a.mustBeOpen()
	writeEscaped(&a.para, s)
}

// appendRaw appends trusted markup to the open paragraph.
func (a *assembler) appendRaw(s string) {
	a.mustBeOpen()
	a.para.WriteString(s)
}

// appendInline wraps rendered inline math and appends it to the open paragraph.
func (a *assembler) appendInline(markup string) {
	a.mustBeOpen()
	a.para.WriteString(inlineOpen)
	a.para.WriteString(markup)
	a.para.WriteString(inlineClose)
}

// appendBlock closes any open paragraph and appends rendered display math
// as a top-level sibling. It never opens a paragraph.
func (a *assembler) appendBlock(markup string) {
	a.closeParagraph()
	a.out.WriteString(markup)
}

// finish force-closes an open paragraph and returns the document.
func (a *assembler) finish() string {
	a.closeParagraph()
	return a.out.String()
}

func (a *assembler) mustBeOpen() {
	if !a.open {
		panic("render: fragment appended outside a paragraph")
	}
}
