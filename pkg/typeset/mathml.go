package typeset

import (
	"fmt"
	"sync"

	"github.com/wyatt915/treeblood"
)

// MathML typesets TeX to MathML on the server using treeblood.
// It is safe for concurrent use.
type MathML struct {
	mu  sync.Mutex
	doc *treeblood.Pitziil
}

// NewMathML returns a MathML engine that expands the given macros.
func NewMathML(macros map[string]string) *MathML {
	return &MathML{doc: treeblood.NewDocument(macros, false)}
}

// RenderMath implements render.MathRenderer. Display math is wrapped in a
// block-level container. It never returns an error.
func (m *MathML) RenderMath(source string, displayMode bool) (out string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			out = ErrorFragment(source, displayMode, fmt.Errorf("typesetter panic: %v", r))
		}
	}()

	var (
		mml string
		err error
	)
	if displayMode {
		mml, err = m.doc.DisplayStyle(source)
	} else {
		mml, err = m.doc.TextStyle(source)
	}
	if err != nil {
		return ErrorFragment(source, displayMode, err), nil
	}

	if displayMode {
		return `<div class="math math-display">` + mml + `</div>`, nil
	}
	return mml, nil
}
