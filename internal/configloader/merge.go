package configloader

import (
	"maps"

	"github.com/yaklabco/modtex/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero
//   - Booleans: override can only switch a setting on
//   - Macros: merged key by key, override wins
//   - Slices: override replaces base entirely if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a later layer cannot turn these back off.
	if override.Verify {
		result.Verify = true
	}
	if override.NormalizeUnicode {
		result.NormalizeUnicode = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.Stdout {
		result.Stdout = true
	}

	if override.Page.Enabled {
		result.Page.Enabled = true
	}
	if override.Page.Stylesheet != "" {
		result.Page.Stylesheet = override.Page.Stylesheet
	}
	if override.Page.Lang != "" {
		result.Page.Lang = override.Page.Lang
	}

	if override.Serve.Addr != "" {
		result.Serve.Addr = override.Serve.Addr
	}
	if override.Serve.MaxBodyBytes != 0 {
		result.Serve.MaxBodyBytes = override.Serve.MaxBodyBytes
	}

	result.Macros = mergeMacros(base.Macros, override.Macros)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeMacros returns a fresh map holding base's macros overlaid with override's.
func mergeMacros(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
