package render

import "strings"

// mode is the scanner's top-level state.
type mode uint8

const (
	// modeOutside means no paragraph is open.
	modeOutside mode = iota
	// modeTextOpen means a paragraph is open and accepting prose.
	modeTextOpen
)

func (m mode) String() string {
	if m == modeTextOpen {
		return "text"
	}
	return "outside"
}

// tokenKind classifies the lookahead at the cursor.
type tokenKind uint8

const (
	tokText          tokenKind = iota // run of ordinary characters
	tokEscapedDollar                  // \$
	tokEscapedDouble                  // \$$
	tokBackslash                      // \ not followed by $
	tokLineFold                       // \n followed by something other than \n
	tokBlankLine                      // \n\n, or \n as the last character
	tokInlineMath                     // $
	tokDisplayMath                    // $$
)

type token struct {
	kind  tokenKind
	width int
}

// specialBytes are the bytes that end a run of ordinary text.
const specialBytes = "\\\n$"

// lex classifies the input at pos, which must be within text.
func lex(text string, pos int) token {
	next := func(c byte) bool { return pos+1 < len(text) && text[pos+1] == c }

	switch text[pos] {
	case '\\':
		if strings.HasPrefix(text[pos+1:], "$$") {
			return token{kind: tokEscapedDouble, width: 3}
		}
		if next('$') {
			return token{kind: tokEscapedDollar, width: 2}
		}
		return token{kind: tokBackslash, width: 1}
	case '\n':
		if pos+1 == len(text) {
			return token{kind: tokBlankLine, width: 1}
		}
		if next('\n') {
			return token{kind: tokBlankLine, width: 2}
		}
		return token{kind: tokLineFold, width: 1}
	case '$':
		if next('$') {
			return token{kind: tokDisplayMath, width: 2}
		}
		return token{kind: tokInlineMath, width: 1}
	}

	run := strings.IndexAny(text[pos:], specialBytes)
	if run < 0 {
		run = len(text) - pos
	}
	return token{kind: tokText, width: run}
}

// scanner drives one render pass over text.
type scanner struct {
	text  string
	pos   int
	mode  mode
	math  MathRenderer
	asm   *assembler
	stats *Stats
}

func newScanner(text string, math MathRenderer) *scanner {
	stats := &Stats{}
	return &scanner{
		text:  text,
		math:  math,
		asm:   newAssembler(len(text), stats),
		stats: stats,
	}
}

// run consumes the whole input and returns the assembled markup.
func (s *scanner) run() (string, error) {
	for s.pos < len(s.text) {
		if err := s.step(lex(s.text, s.pos)); err != nil {
			return "", err
		}
	}
	s.mode = modeOutside
	s.stats.Bytes = s.pos
	return s.asm.finish(), nil
}

// step performs the transition for one token and advances the cursor past it.
func (s *scanner) step(tok token) error {
	start := s.pos
	s.pos += tok.width

	switch tok.kind {
	case tokText:
		s.enterText()
		s.asm.appendText(s.text[start:s.pos])
	case tokEscapedDollar:
		s.enterText()
		s.asm.appendText("$")
	case tokEscapedDouble:
		s.enterText()
		s.asm.appendText("$$")
	case tokBackslash:
		s.enterText()
		s.asm.appendText(`\`)
	case tokLineFold:
		if s.mode == modeTextOpen {
			s.asm.appendRaw(" ")
		}
	case tokBlankLine:
		s.leaveText()
	case tokInlineMath:
		s.enterText()
		markup, err := s.renderSpan(inlineMath)
		if err != nil {
			return err
		}
		s.asm.appendInline(markup)
	case tokDisplayMath:
		markup, err := s.renderSpan(displayMath)
		if err != nil {
			return err
		}
		s.leaveText()
		s.asm.appendBlock(markup)
	}

	return nil
}

func (s *scanner) enterText() {
	s.asm.openParagraph()
	s.mode = modeTextOpen
}

func (s *scanner) leaveText() {
	s.asm.closeParagraph()
	s.mode = modeOutside
}

// renderSpan extracts the span starting at the cursor and hands it to the
// math renderer. Collaborator errors are returned as-is.
func (s *scanner) renderSpan(kind mathKind) (string, error) {
	span := extractMath(s.text, s.pos, kind)
	s.pos = span.Next
	s.stats.countSpan(kind, span.Terminated)
	return s.math.RenderMath(span.Source, kind.displayMode())
}
