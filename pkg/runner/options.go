// Package runner renders trees of module files concurrently.
package runner

import (
	"github.com/yaklabco/modtex/pkg/config"
	"github.com/yaklabco/modtex/pkg/module"
)

// Options controls a multi-file render run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// OutputDir. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) treated as
	// module sources. Defaults to config.DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs caps the number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutputDir mirrors output files under this directory. Empty means
	// each output is written next to its source.
	OutputDir string

	// DryRun renders everything but writes nothing.
	DryRun bool

	// Page wraps each rendered body in a standalone document when non-nil.
	Page *module.PageOptions

	// Verify checks each output for well-formed markup.
	Verify bool

	// NormalizeUnicode converts sources to NFC before rendering.
	NormalizeUnicode bool
}

// OptionsFromConfig builds run options for paths from a resolved config.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{
		Paths:            paths,
		Extensions:       cfg.Extensions,
		ExcludeGlobs:     cfg.Ignore,
		Jobs:             cfg.Jobs,
		OutputDir:        cfg.OutputDir,
		DryRun:           cfg.DryRun || cfg.Stdout,
		Verify:           cfg.Verify,
		NormalizeUnicode: cfg.NormalizeUnicode,
	}
	if cfg.Page.Enabled {
		opts.Page = &module.PageOptions{
			Lang:       cfg.Page.Lang,
			Stylesheet: cfg.Page.Stylesheet,
		}
	}
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
