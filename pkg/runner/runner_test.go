package runner_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/modtex/internal/logging"
	"github.com/yaklabco/modtex/pkg/config"
	"github.com/yaklabco/modtex/pkg/markup"
	"github.com/yaklabco/modtex/pkg/module"
	"github.com/yaklabco/modtex/pkg/render"
	"github.com/yaklabco/modtex/pkg/runner"
)

// italic is a deterministic typesetter for tests.
var italic = render.MathRendererFunc(func(source string, displayMode bool) (string, error) {
	if displayMode {
		return `<div class="eq">` + render.EscapeHTML(source) + `</div>`, nil
	}
	return "<i>" + render.EscapeHTML(source) + "</i>", nil
})

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_WritesNextToSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"intro.txt": "Let $x$ be real.\n\n$$x^2$$\n",
	})

	result, err := runner.New(italic).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, filepath.Join(dir, "intro.html"), outcome.OutputPath)
	assert.True(t, outcome.Written)
	assert.Equal(t, 1, outcome.Stats.InlineMath)
	assert.Equal(t, 1, outcome.Stats.DisplayMath)

	want := `<p>Let <span><i>x</i></span> be real.</p><div class="eq">x^2</div>`
	assert.Equal(t, want, readString(t, outcome.OutputPath))

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 1,
		FilesRendered:   1,
		FilesWritten:    1,
		Render:          outcome.Stats,
	}, result.Stats)
	assert.False(t, result.HasFailures())
}

func TestRenderFile_LogsSourcePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"intro.txt": "Let $x$ be real."})
	source := filepath.Join(dir, "intro.txt")

	var logs bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&logs, "debug"))

	outcome := runner.New(italic).RenderFile(ctx, source, runner.Options{WorkingDir: dir, DryRun: true})
	require.NoError(t, outcome.Error)

	assert.Contains(t, logs.String(), "rendered module")
	assert.Contains(t, logs.String(), logging.FieldPath+"="+source)
}

func TestRun_UnchangedOutputNotRewritten(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "Same text.\n"})

	r := runner.New(italic)
	opts := runner.Options{WorkingDir: dir}

	_, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.False(t, result.Files[0].Written)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
	assert.Equal(t, 0, result.Stats.FilesWritten)
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "Cost: \\$5.\n"})

	result, err := runner.New(italic).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		DryRun:     true,
	})
	require.NoError(t, err)

	outcome := result.Files[0]
	assert.Equal(t, "<p>Cost: $5.</p>", string(outcome.Output))
	assert.False(t, outcome.Written)
	assert.NoFileExists(t, outcome.OutputPath)
	assert.Equal(t, 0, result.Stats.FilesUnchanged)
}

func TestRun_OutputDirMirrorsTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/week1/limits.txt": "Limits.\n",
		"src/intro.module":     "Intro.\n",
	})

	result, err := runner.New(italic).Run(context.Background(), runner.Options{
		Paths:      []string{"src"},
		WorkingDir: dir,
		OutputDir:  "public",
	})
	require.NoError(t, err)
	require.False(t, result.HasFailures())

	assert.Equal(t, "<p>Intro.</p>", readString(t, filepath.Join(dir, "public/src/intro.html")))
	assert.Equal(t, "<p>Limits.</p>", readString(t, filepath.Join(dir, "public/src/week1/limits.html")))
}

func TestRun_Page(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"limits.txt": "---\ntitle: Limits & Continuity\n---\nLet $x$ be real.\n",
	})

	result, err := runner.New(italic).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		DryRun:     true,
		Verify:     true,
		Page:       &module.PageOptions{Lang: "fi"},
	})
	require.NoError(t, err)

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, "Limits & Continuity", outcome.Title)

	page := string(outcome.Output)
	assert.Contains(t, page, `<html lang="fi">`)
	assert.Contains(t, page, "<h1>Limits &amp; Continuity</h1>")
	assert.Contains(t, page, "<p>Let <span><i>x</i></span> be real.</p>")
}

func TestRun_MathErrorIsReported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"bad.txt":  "Oops $x$\n",
		"good.txt": "Fine.\n",
	})

	errEngine := errors.New("engine down")
	failing := render.MathRendererFunc(func(string, bool) (string, error) {
		return "", errEngine
	})

	result, err := runner.New(failing).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	require.ErrorIs(t, result.Files[0].Error, errEngine)
	assert.NoFileExists(t, filepath.Join(dir, "bad.html"))
	require.NoError(t, result.Files[1].Error)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesRendered)
}

func TestRun_VerifyRejectsMalformedMarkup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "$x$\n"})

	unclosed := render.MathRendererFunc(func(source string, _ bool) (string, error) {
		return "<b>" + source, nil
	})

	result, err := runner.New(unclosed).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Verify:     true,
	})
	require.NoError(t, err)

	var markupErr *markup.Error
	require.ErrorAs(t, result.Files[0].Error, &markupErr)
	assert.NoFileExists(t, filepath.Join(dir, "a.html"))
}

func TestRun_FrontMatterError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "---\ntitle: [oops\n---\nbody\n"})

	result, err := runner.New(italic).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.ErrorIs(t, result.Files[0].Error, module.ErrFrontMatter)
}

func TestRun_ConcurrentDeterministicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 40 {
		files[fmt.Sprintf("m%02d.txt", i)] = fmt.Sprintf("Module $%d$.\n", i)
	}
	writeTree(t, dir, files)

	var mu sync.Mutex
	calls := 0
	counting := render.MathRendererFunc(func(source string, displayMode bool) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return italic(source, displayMode)
	})

	result, err := runner.New(counting).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       4,
		DryRun:     true,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 40)

	for i, outcome := range result.Files {
		assert.Equal(t, filepath.Join(dir, fmt.Sprintf("m%02d.txt", i)), outcome.Path)
		assert.Equal(t, fmt.Sprintf("<p>Module <span><i>%d</i></span>.</p>", i), string(outcome.Output))
	}
	assert.Equal(t, 40, calls)
	assert.Equal(t, 40, result.Stats.Render.InlineMath)
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(italic).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(italic).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/course")

	tests := []struct {
		name      string
		source    string
		outputDir string
		want      string
	}{
		{"next to source", "/course/week1/limits.txt", "", "/course/week1/limits.html"},
		{"relative output dir", "/course/week1/limits.txt", "public", "/course/public/week1/limits.html"},
		{"absolute output dir", "/course/intro.module", "/srv/www", "/srv/www/intro.html"},
		{"source outside root", "/elsewhere/notes.txt", "public", "/course/public/notes.html"},
		{"no extension", "/course/README", "", "/course/README.html"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := runner.OutputPath(filepath.FromSlash(tc.source), root, filepath.FromSlash(tc.outputDir))
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tc.want), got)
		})
	}

	t.Run("refuses to overwrite source", func(t *testing.T) {
		t.Parallel()

		_, err := runner.OutputPath(filepath.FromSlash("/course/page.html"), root, "")
		require.ErrorIs(t, err, runner.ErrOutputIsSource)
	})
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"drafts/**"}
	cfg.OutputDir = "public"
	cfg.Verify = true
	cfg.Jobs = 3
	cfg.Stdout = true
	cfg.Page.Enabled = true
	cfg.Page.Stylesheet = "/course.css"

	opts := runner.OptionsFromConfig(cfg, []string{"week1"})

	assert.Equal(t, []string{"week1"}, opts.Paths)
	assert.Equal(t, cfg.Extensions, opts.Extensions)
	assert.Equal(t, []string{"drafts/**"}, opts.ExcludeGlobs)
	assert.Equal(t, "public", opts.OutputDir)
	assert.Equal(t, 3, opts.Jobs)
	assert.True(t, opts.Verify)
	assert.True(t, opts.DryRun, "stdout output implies no file writes")
	require.NotNil(t, opts.Page)
	assert.Equal(t, "/course.css", opts.Page.Stylesheet)
	assert.Equal(t, config.DefaultLang, opts.Page.Lang)

	cfg.Page.Enabled = false
	assert.Nil(t, runner.OptionsFromConfig(cfg, nil).Page)
}
