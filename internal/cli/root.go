// Package cli provides the Cobra command structure for modtex.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/modtex/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root modtex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "modtex",
		Short: "Render module text with TeX math into HTML",
		Long: `modtex renders module text into display-ready HTML.

Module text is plain prose with embedded TeX math: $...$ for inline math
and $$...$$ for display math. Blank lines separate paragraphs, \$ is a
literal dollar sign, and everything else is escaped. Math is typeset to
MathML on the server or left for KaTeX/MathJax in the browser.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
