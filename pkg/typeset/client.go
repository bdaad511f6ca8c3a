package typeset

import "github.com/yaklabco/modtex/pkg/render"

// Client leaves typesetting to the browser. It emits the escaped TeX inside
// \( \) or \[ \] delimiters, the default markers of the KaTeX and MathJax
// auto-render scripts.
type Client struct{}

// NewClient returns a Client engine.
func NewClient() Client {
	return Client{}
}

// RenderMath implements render.MathRenderer. It never returns an error.
func (Client) RenderMath(source string, displayMode bool) (string, error) {
	escaped := render.EscapeHTML(source)
	if displayMode {
		return `<div class="math math-display">\[` + escaped + `\]</div>`, nil
	}
	return `<span class="math math-inline">\(` + escaped + `\)</span>`, nil
}
