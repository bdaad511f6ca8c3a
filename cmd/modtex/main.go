// Package main is the entry point for the modtex CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/modtex/internal/cli"
	"github.com/yaklabco/modtex/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	// Failed renders were already reported file by file.
	if err != nil && !errors.Is(err, cli.ErrRenderFailed) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
