package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/modtex/pkg/render"
	"github.com/yaklabco/modtex/pkg/runner"
)

// Status words shown at the start of each file line.
const (
	StatusWrote     = "wrote"
	StatusUnchanged = "unchanged"
	StatusRendered  = "rendered"
	StatusFailed    = "failed"

	statusWidth = len(StatusUnchanged) + 1
)

// OutcomeStatus classifies a file outcome for display.
func OutcomeStatus(outcome runner.FileOutcome, dryRun bool) string {
	switch {
	case outcome.Error != nil:
		return StatusFailed
	case outcome.Written:
		return StatusWrote
	case dryRun:
		return StatusRendered
	default:
		return StatusUnchanged
	}
}

// FormatFileLine formats one file outcome as a single line. path and
// outputPath are the display forms of the source and output paths.
//
// Example: "wrote  week1/limits.txt -> week1/limits.html (3 paragraphs, 5 inline, 2 display)".
func (s *Styles) FormatFileLine(outcome runner.FileOutcome, path, outputPath string, dryRun bool) string {
	status := OutcomeStatus(outcome, dryRun)
	pad := strings.Repeat(" ", statusWidth-len(status))

	if outcome.Error != nil {
		return s.Error.Render(status) + pad + s.FilePath.Render(path) + ": " + outcome.Error.Error() + "\n"
	}

	style := s.Dim
	if status == StatusWrote {
		style = s.Written
	}

	return style.Render(status) + pad +
		s.FilePath.Render(path) +
		s.Arrow.Render(" -> ") + outputPath + " " +
		s.Detail.Render("("+FormatRenderStats(outcome.Stats)+")") + "\n"
}

// FormatRenderStats describes render statistics in a short phrase.
func FormatRenderStats(stats render.Stats) string {
	parts := []string{
		plural(stats.Paragraphs, "paragraph", "paragraphs"),
		fmt.Sprintf("%d inline", stats.InlineMath),
		fmt.Sprintf("%d display", stats.DisplayMath),
	}
	if stats.Unterminated > 0 {
		parts = append(parts, fmt.Sprintf("%d unterminated", stats.Unterminated))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
