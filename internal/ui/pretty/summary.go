package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/modtex/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 3 files (2 written, 1 unchanged), 12 inline and 4 display math spans".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.FilesDiscovered == 0 {
		return s.Warning.Render("No module files found") + "\n"
	}

	head := "Rendered " + plural(stats.FilesRendered, "file", "files")
	if stats.FilesErrored == 0 {
		head = s.Success.Render(head)
	}

	var detail []string
	if dryRun {
		detail = append(detail, "dry run")
	} else {
		detail = append(detail,
			fmt.Sprintf("%d written", stats.FilesWritten),
			fmt.Sprintf("%d unchanged", stats.FilesUnchanged),
		)
	}

	line := head + s.Dim.Render(" ("+strings.Join(detail, ", ")+")")
	line += fmt.Sprintf(", %d inline and %d display math spans", stats.Render.InlineMath, stats.Render.DisplayMath)

	if stats.FilesErrored > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", style(strconv.Itoa(value))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files found", stats.FilesDiscovered, s.SummaryValue.Render)
	row("Files rendered", stats.FilesRendered, s.SummaryValue.Render)
	if stats.FilesWritten > 0 {
		row("Files written", stats.FilesWritten, s.Success.Render)
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", stats.FilesUnchanged, s.Dim.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	row("Paragraphs", stats.Render.Paragraphs, s.SummaryValue.Render)
	row("Inline math", stats.Render.InlineMath, s.SummaryValue.Render)
	row("Display math", stats.Render.DisplayMath, s.SummaryValue.Render)
	if stats.Render.Unterminated > 0 {
		row("Unterminated", stats.Render.Unterminated, s.Warning.Render)
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Render failed"))
	} else {
		builder.WriteString(s.Success.Render("Render succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
