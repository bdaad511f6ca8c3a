package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/modtex/internal/logging"
	"github.com/yaklabco/modtex/pkg/config"
	"github.com/yaklabco/modtex/pkg/reporter"
	"github.com/yaklabco/modtex/pkg/runner"
	"github.com/yaklabco/modtex/pkg/typeset"
)

// ErrRenderFailed is returned when at least one file failed to render.
var ErrRenderFailed = errors.New("render failed")

type renderFlags struct {
	compact bool
}

func newRenderCommand() *cobra.Command {
	var cfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render module files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &cfg, flags)
		},
	}

	addRenderFlags(cmd, &cfg, flags)

	return cmd
}

const renderLongDescription = `Render module files to HTML.

By default, renders every .txt and .module file under the current directory
and writes <name>.html next to each source. Files whose rendered output has
not changed are left untouched.

Examples:
  modtex render                          # Render current directory
  modtex render week1/                   # Render one directory
  modtex render intro.txt --stdout       # Print HTML instead of writing it
  modtex render --output-dir site/       # Mirror output into site/
  modtex render --page --verify          # Full pages, checked for well-formed markup
  modtex render --engine client          # Leave math to KaTeX/MathJax
  modtex render --format json            # Machine-readable report`

func runRender(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *renderFlags) error {
	logger := logging.Default()
	ctx := cmd.Context()

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldEngine, cfg.Engine,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldPage, cfg.Page.Enabled,
		logging.FieldVerify, cfg.Verify,
	)

	math, err := typeset.New(cfg.Engine, cfg.Macros)
	if err != nil {
		return fmt.Errorf("create math engine: %w", err)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New(math).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("render run failed"), err)
	}

	// With --stdout the HTML owns standard output and the report moves to stderr.
	reportWriter := cmd.OutOrStdout()
	if cfg.Stdout {
		reportWriter = cmd.ErrOrStderr()
		for _, outcome := range result.Files {
			if outcome.Error != nil {
				continue
			}
			if _, err := cmd.OutOrStdout().Write(outcome.Output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      reportWriter,
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrRenderFailed
	}
	return nil
}

// addRenderFlags binds flags directly onto cfg. Unset flags keep their zero
// value so lower configuration layers show through.
func addRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	cmd.Flags().StringVar(&cfg.Engine, "engine", "", "math engine: mathml, client (default mathml)")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "render without writing output files")
	cmd.Flags().BoolVar(&cfg.Stdout, "stdout", false, "write rendered HTML to standard output")
	cmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", "mirror rendered files into this directory")
	cmd.Flags().BoolVar(&cfg.Page.Enabled, "page", false, "wrap output in a standalone HTML page")
	cmd.Flags().BoolVar(&cfg.Verify, "verify", false, "check rendered output for well-formed markup")
	cmd.Flags().BoolVar(&cfg.NormalizeUnicode, "normalize-unicode", false, "convert module text to Unicode NFC")
	cmd.Flags().StringVar(&cfg.Format, "format", "", "report format: text, json, summary (default text)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "module file extensions (default .txt,.module)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "emit minified JSON reports")
}
