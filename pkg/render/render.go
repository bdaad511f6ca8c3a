package render

import "errors"

// ErrNilMathRenderer is returned when no MathRenderer is supplied.
var ErrNilMathRenderer = errors.New("render: nil math renderer")

// MathRenderer typesets one math span.
//
// source is the raw TeX with delimiter escapes already resolved. The returned
// markup is inserted into the output without further escaping, so
// implementations own the safety of what they return. Implementations are
// expected to degrade malformed math to a visible error fragment rather than
// return an error; a returned error aborts the render and reaches the caller
// unchanged.
type MathRenderer interface {
	RenderMath(source string, displayMode bool) (string, error)
}

// MathRendererFunc adapts an ordinary function to MathRenderer.
type MathRendererFunc func(source string, displayMode bool) (string, error)

// RenderMath calls f(source, displayMode).
func (f MathRendererFunc) RenderMath(source string, displayMode bool) (string, error) {
	return f(source, displayMode)
}

// Stats describes what a render pass produced.
type Stats struct {
	// Bytes is the number of input bytes consumed. It always equals the input length.
	Bytes int `json:"bytes"`

	// Paragraphs is the number of <p> containers emitted.
	Paragraphs int `json:"paragraphs"`

	// InlineMath is the number of inline spans handed to the math renderer.
	InlineMath int `json:"inlineMath"`

	// DisplayMath is the number of display spans handed to the math renderer.
	DisplayMath int `json:"displayMath"`

	// Unterminated counts spans of either kind that ran to end of input.
	Unterminated int `json:"unterminated"`
}

func (s *Stats) countSpan(kind mathKind, terminated bool) {
	if kind == displayMath {
		s.DisplayMath++
	} else {
		s.InlineMath++
	}
	if !terminated {
		s.Unterminated++
	}
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Bytes += other.Bytes
	s.Paragraphs += other.Paragraphs
	s.InlineMath += other.InlineMath
	s.DisplayMath += other.DisplayMath
	s.Unterminated += other.Unterminated
}

// Result is the output of RenderDocument.
type Result struct {
	// HTML is the rendered markup, safe to insert into a page.
	HTML string

	// Stats describes the pass that produced HTML.
	Stats Stats
}

// Render converts module text to HTML, typesetting math through math.
//
// Every input has a defined output: stray delimiters are literal or open a
// span, and an unterminated span extends to end of input. The only error
// source is math itself.
func Render(text string, math MathRenderer) (string, error) {
	result, err := RenderDocument(text, math)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// RenderDocument is like Render but also reports statistics about the pass.
func RenderDocument(text string, math MathRenderer) (*Result, error) {
	if math == nil {
		return nil, ErrNilMathRenderer
	}

	sc := newScanner(text, math)
	html, err := sc.run()
	if err != nil {
		return nil, err
	}

	return &Result{HTML: html, Stats: *sc.stats}, nil
}
