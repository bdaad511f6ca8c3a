package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/modtex/internal/ui/pretty"
	"github.com/yaklabco/modtex/pkg/render"
	"github.com/yaklabco/modtex/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		stats  runner.Stats
		dryRun bool
		want   string
	}{
		{
			name: "no files",
			want: "No module files found\n",
		},
		{
			name: "written and unchanged",
			stats: runner.Stats{
				FilesDiscovered: 3, FilesRendered: 3, FilesWritten: 2, FilesUnchanged: 1,
				Render: render.Stats{InlineMath: 12, DisplayMath: 4},
			},
			want: "Rendered 3 files (2 written, 1 unchanged), 12 inline and 4 display math spans\n",
		},
		{
			name: "dry run with failure",
			stats: runner.Stats{
				FilesDiscovered: 2, FilesRendered: 1, FilesErrored: 1,
				Render: render.Stats{InlineMath: 1},
			},
			dryRun: true,
			want:   "Rendered 1 file (dry run), 1 inline and 0 display math spans, 1 failed\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.FormatSummaryOneLine(tc.stats, tc.dryRun))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		out := styles.FormatSummary(runner.Stats{
			FilesDiscovered: 2, FilesRendered: 2, FilesWritten: 2,
			Render: render.Stats{Paragraphs: 5, InlineMath: 3, DisplayMath: 1},
		})
		assert.Contains(t, out, "Files written:     2")
		assert.Contains(t, out, "Paragraphs:        5")
		assert.NotContains(t, out, "Files failed")
		assert.Contains(t, out, "Render succeeded")
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		out := styles.FormatSummary(runner.Stats{
			FilesDiscovered: 1, FilesErrored: 1,
			Render: render.Stats{Unterminated: 1},
		})
		assert.Contains(t, out, "Files failed:      1")
		assert.Contains(t, out, "Unterminated:      1")
		assert.Contains(t, out, "Render failed")
	})
}

func TestFormatFileLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	stats := render.Stats{Paragraphs: 1, InlineMath: 2, DisplayMath: 0}

	tests := []struct {
		name    string
		outcome runner.FileOutcome
		dryRun  bool
		want    string
	}{
		{
			name:    "written",
			outcome: runner.FileOutcome{Written: true, Stats: stats},
			want:    "wrote     a.txt -> a.html (1 paragraph, 2 inline, 0 display)\n",
		},
		{
			name:    "unchanged",
			outcome: runner.FileOutcome{Stats: stats},
			want:    "unchanged a.txt -> a.html (1 paragraph, 2 inline, 0 display)\n",
		},
		{
			name:    "dry run",
			outcome: runner.FileOutcome{Stats: render.Stats{Paragraphs: 2, Unterminated: 1}},
			dryRun:  true,
			want:    "rendered  a.txt -> a.html (2 paragraphs, 0 inline, 0 display, 1 unterminated)\n",
		},
		{
			name:    "failed",
			outcome: runner.FileOutcome{Error: errors.New("engine down")},
			want:    "failed    a.txt: engine down\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.FormatFileLine(tc.outcome, "a.txt", "a.html", tc.dryRun))
		})
	}
}
