package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/modtex/internal/cli"
	"github.com/yaklabco/modtex/internal/configloader"
	"github.com/yaklabco/modtex/pkg/reporter"
)

const testModule = "---\ntitle: Limits\n---\nLet $x^2$ grow.\n\n$$\\lim_{n} a_n$$\n"

// execute runs the root command with args and returns its stdout and stderr.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// setup writes a module and an explicit config file into a temp dir.
func setup(t *testing.T, configYAML string) (dir, source, cfgFile string) {
	t.Helper()

	dir = t.TempDir()
	source = filepath.Join(dir, "limits.txt")
	require.NoError(t, os.WriteFile(source, []byte(testModule), 0644))

	cfgFile = filepath.Join(dir, "modtex.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(configYAML), 0644))

	return dir, source, cfgFile
}

func TestIntegration_RenderWritesOutput(t *testing.T) {
	t.Parallel()

	dir, source, cfgFile := setup(t, "engine: mathml\n")

	stdout, _, err := execute(t, "render", "--config", cfgFile, "--color", "never", source)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "limits.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<p>Let <span>")
	assert.Contains(t, string(content), "<math")
	assert.NotContains(t, string(content), "Limits", "front matter is not part of a fragment")

	assert.Contains(t, stdout, "wrote")
	assert.Contains(t, stdout, "limits.html")
	assert.Contains(t, stdout, "Rendered 1 file")
}

func TestIntegration_RenderUnchangedOnSecondRun(t *testing.T) {
	t.Parallel()

	_, source, cfgFile := setup(t, "engine: mathml\n")

	_, _, err := execute(t, "render", "--config", cfgFile, "--color", "never", source)
	require.NoError(t, err)

	stdout, _, err := execute(t, "render", "--config", cfgFile, "--color", "never", source)
	require.NoError(t, err)
	assert.Contains(t, stdout, "unchanged")
}

func TestIntegration_ConfigSelectsEngine(t *testing.T) {
	t.Parallel()

	_, source, cfgFile := setup(t, "engine: client\n")

	stdout, stderr, err := execute(t, "render", "--config", cfgFile, "--stdout", "--color", "never", source)
	require.NoError(t, err)

	assert.Contains(t, stdout, `<span class="math math-inline">\(x^2\)</span>`)
	assert.Contains(t, stdout, `<div class="math math-display">\[\lim_{n} a_n\]</div>`)
	assert.Contains(t, stderr, "Rendered 1 file")
}

func TestIntegration_FlagOverridesConfig(t *testing.T) {
	t.Parallel()

	_, source, cfgFile := setup(t, "engine: mathml\n")

	stdout, _, err := execute(t, "render", "--config", cfgFile, "--engine", "client", "--stdout", source)
	require.NoError(t, err)
	assert.Contains(t, stdout, "math-inline")
	assert.NotContains(t, stdout, "<math")
}

func TestIntegration_StdoutDoesNotWrite(t *testing.T) {
	t.Parallel()

	dir, source, cfgFile := setup(t, "engine: client\n")

	stdout, _, err := execute(t, "render", "--config", cfgFile, "--stdout", source)
	require.NoError(t, err)
	assert.Contains(t, stdout, "<p>Let <span>")

	_, statErr := os.Stat(filepath.Join(dir, "limits.html"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestIntegration_PageAndVerify(t *testing.T) {
	t.Parallel()

	dir, source, cfgFile := setup(t, "engine: client\npage:\n  enabled: true\n  lang: fi\n")

	_, _, err := execute(t, "render", "--config", cfgFile, "--verify", source)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "limits.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<!DOCTYPE html>")
	assert.Contains(t, string(content), `lang="fi"`)
	assert.Contains(t, string(content), "<h1>Limits</h1>")
}

func TestIntegration_OutputDir(t *testing.T) {
	t.Parallel()

	dir, _, cfgFile := setup(t, "engine: client\n")
	site := filepath.Join(t.TempDir(), "site")

	_, _, err := execute(t, "render", "--config", cfgFile, "--output-dir", site, filepath.Join(dir, "limits.txt"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(site, "limits.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "limits.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIntegration_JSONFormat(t *testing.T) {
	t.Parallel()

	_, source, cfgFile := setup(t, "engine: client\n")

	stdout, _, err := execute(t, "render", "--config", cfgFile, "--format", "json", "--dry-run", source)
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.True(t, out.DryRun)
	require.Len(t, out.Files, 1)
	assert.Equal(t, "Limits", out.Files[0].Title)
	assert.False(t, out.Files[0].Written)
	require.NotNil(t, out.Files[0].Stats)
	assert.Equal(t, 1, out.Files[0].Stats.InlineMath)
	assert.Equal(t, 1, out.Files[0].Stats.DisplayMath)
	assert.Equal(t, 1, out.Summary.FilesRendered)
}

func TestIntegration_RenderFailure(t *testing.T) {
	t.Parallel()

	dir, _, cfgFile := setup(t, "engine: client\n")
	broken := filepath.Join(dir, "broken.txt")
	require.NoError(t, os.WriteFile(broken, []byte("---\ntitle: [unclosed\n---\nbody\n"), 0644))

	stdout, _, err := execute(t, "render", "--config", cfgFile, "--color", "never", dir)
	require.ErrorIs(t, err, cli.ErrRenderFailed)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))

	assert.Contains(t, stdout, "failed")
	assert.Contains(t, stdout, "broken.txt")
	assert.Contains(t, stdout, "1 failed")

	_, statErr := os.Stat(filepath.Join(dir, "limits.html"))
	assert.NoError(t, statErr, "other files are still rendered")
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, source, cfgFile := setup(t, "engine: pdflatex\n")

	_, _, err := execute(t, "render", "--config", cfgFile, source)
	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrRenderFailed)
	assert.Contains(t, err.Error(), "engine")
}

func TestIntegration_InvalidFormatFlag(t *testing.T) {
	t.Parallel()

	_, source, cfgFile := setup(t, "engine: client\n")

	_, _, err := execute(t, "render", "--config", cfgFile, "--format", "sarif", source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestIntegration_InitWritesTemplate(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "course", ".modtex.yml")

	_, _, err := execute(t, "init", "--output", out)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "engine: mathml")

	// The written template loads cleanly.
	result, err := configloader.Load(t.Context(), configloader.LoadOptions{
		WorkingDir:          filepath.Dir(out),
		ExplicitPath:        out,
		IgnoreSystemConfig:  true,
		IgnoreUserConfig:    true,
		IgnoreProjectConfig: true,
		IgnoreEnv:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, "mathml", result.Config.Engine)
}

func TestIntegration_InitExistingFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), ".modtex.yml")
	require.NoError(t, os.WriteFile(out, []byte("engine: client\n"), 0644))

	t.Run("force overwrites", func(t *testing.T) {
		t.Parallel()

		forced := filepath.Join(t.TempDir(), ".modtex.yml")
		require.NoError(t, os.WriteFile(forced, []byte("engine: client\n"), 0644))

		_, _, err := execute(t, "init", "--force", "--output", forced)
		require.NoError(t, err)

		content, err := os.ReadFile(forced)
		require.NoError(t, err)
		assert.Contains(t, string(content), "engine: mathml")
	})

	t.Run("refuses without force", func(t *testing.T) {
		t.Parallel()

		if configloader.IsInteractive() {
			t.Skip("stdin is a terminal; init would prompt")
		}

		_, _, err := execute(t, "init", "--output", out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "engine: client\n", string(content))
	})
}
