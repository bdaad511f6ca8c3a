// Package render turns module text into display-ready HTML.
//
// Module text is free prose with embedded TeX math. A single dollar sign
// delimits inline math ($x^2$) and a doubled one delimits display math
// ($$\int f$$). A backslash before the delimiter produces the delimiter
// literally: \$ in prose and inline math, \$$ in prose and display math.
//
// Prose is grouped into <p> paragraphs. A blank line closes the current
// paragraph and a single newline folds into a space. Inline math is spliced
// into the open paragraph wrapped in a <span>. Display math closes the open
// paragraph and is emitted as a top-level sibling.
//
// Every prose character is HTML-escaped. Math source is never escaped by this
// package: it is handed verbatim to a MathRenderer, whose output is trusted
// and inserted as-is.
//
// The transform is one left-to-right pass with no backtracking and no state
// shared between calls, so Render is safe for concurrent use as long as the
// MathRenderer is.
package render
