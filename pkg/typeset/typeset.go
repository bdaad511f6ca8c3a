// Package typeset provides math engines that satisfy render.MathRenderer.
//
// Every engine here honors the renderer contract: malformed TeX never
// produces an error, it produces a visibly marked fragment instead.
package typeset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yaklabco/modtex/pkg/render"
)

// Engine names accepted by New.
const (
	EngineMathML = "mathml"
	EngineClient = "client"
)

// ErrUnknownEngine is returned by New for an unrecognized engine name.
var ErrUnknownEngine = errors.New("unknown math engine")

// Engines returns the supported engine names in sorted order.
func Engines() []string {
	names := []string{EngineMathML, EngineClient}
	sort.Strings(names)
	return names
}

// New returns the engine registered under name.
// macros maps TeX macro names (with leading backslash) to their expansions;
// engines that cannot expand macros ignore them.
func New(name string, macros map[string]string) (render.MathRenderer, error) {
	switch name {
	case EngineMathML, "":
		return NewMathML(macros), nil
	case EngineClient:
		return NewClient(), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownEngine, name, Engines())
	}
}

// ErrorFragment is the markup an engine returns for math it cannot typeset.
// The source is shown escaped so the author can find the mistake.
func ErrorFragment(source string, displayMode bool, cause error) string {
	title := "math error"
	if cause != nil {
		title = cause.Error()
	}

	tag := "span"
	if displayMode {
		tag = "div"
	}

	return "<" + tag + ` class="math-error" title="` + render.EscapeHTML(title) + `">` +
		render.EscapeHTML(source) +
		"</" + tag + ">"
}
