package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/modtex/pkg/config"
)

// envVarPrefix is the prefix for all modtex environment variables.
const envVarPrefix = "MODTEX_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"ENGINE":               {"engine", envTypeString, "Math engine: mathml or client"},
	"EXTENSIONS":           {"extensions", envTypeSlice, "Comma-separated module file extensions"},
	"IGNORE":               {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"OUTPUT_DIR":           {"output_dir", envTypeString, "Directory to mirror rendered files into"},
	"VERIFY":               {"verify", envTypeBool, "Check output markup: true or false"},
	"NORMALIZE_UNICODE":    {"normalize_unicode", envTypeBool, "Normalize sources to NFC: true or false"},
	"PAGE":                 {"page.enabled", envTypeBool, "Write standalone pages: true or false"},
	"PAGE_STYLESHEET":      {"page.stylesheet", envTypeString, "Stylesheet URL linked from pages"},
	"PAGE_LANG":            {"page.lang", envTypeString, "Page language attribute"},
	"SERVE_ADDR":           {"serve.addr", envTypeString, "Listen address for modtex serve"},
	"SERVE_MAX_BODY_BYTES": {"serve.max_body_bytes", envTypeInt, "Request body limit for modtex serve"},
	"JOBS":                 {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"DRY_RUN":              {"dry_run", envTypeBool, "Render without writing: true or false"},
	"FORMAT":               {"format", envTypeString, "Report format: text, json, or summary"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with MODTEX_ (e.g., MODTEX_ENGINE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a trimmed slice.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "engine":
		cfg.Engine = value
	case "output_dir":
		cfg.OutputDir = value
	case "page.stylesheet":
		cfg.Page.Stylesheet = value
	case "page.lang":
		cfg.Page.Lang = value
	case "serve.addr":
		cfg.Serve.Addr = value
	case "format":
		cfg.Format = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "verify":
		cfg.Verify = value
	case "normalize_unicode":
		cfg.NormalizeUnicode = value
	case "page.enabled":
		cfg.Page.Enabled = value
	case "dry_run":
		cfg.DryRun = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "jobs":
		cfg.Jobs = int(value)
	case "serve.max_body_bytes":
		cfg.Serve.MaxBodyBytes = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables, sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
