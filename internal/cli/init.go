package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/modtex/internal/configloader"
	"github.com/yaklabco/modtex/internal/logging"
	"github.com/yaklabco/modtex/pkg/config"
	"github.com/yaklabco/modtex/pkg/fsutil"
)

// ErrInitAborted is returned when the user declines to overwrite a config file.
var ErrInitAborted = errors.New("init aborted")

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a modtex configuration file",
		Long: `Create a .modtex.yml configuration file in the current directory.

Every option is written out, commented where it is unset, so the file
documents what can be configured.

Examples:
  modtex init                     Create .modtex.yml
  modtex init --force             Overwrite an existing file
  modtex init -o course.yml       Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0],
		"output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !configloader.IsInteractive() {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		ok, err := configloader.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite?", flags.output))
		if err != nil {
			return err
		}
		if !ok {
			return ErrInitAborted
		}
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, config.Template(config.NewConfig()), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'modtex render' to render modules under this directory")

	return nil
}
