package config

import (
	"fmt"
	"sort"
	"strings"
)

// TemplateHeader is written at the top of generated configuration files.
const TemplateHeader = `# modtex configuration
# Settings here apply to every module under this directory.
`

// Template renders a commented YAML configuration from cfg, suitable for
// "modtex init". Zero-valued optional fields are written as commented
// examples so the file documents every option.
func Template(cfg *Config) []byte {
	if cfg == nil {
		cfg = NewConfig()
	}

	var b strings.Builder
	b.WriteString(TemplateHeader)
	b.WriteString("\n")

	b.WriteString("# Math typesetter: mathml (server-side MathML) or client (KaTeX/MathJax in the browser).\n")
	fmt.Fprintf(&b, "engine: %s\n\n", cfg.Engine)

	b.WriteString("# TeX macros expanded by the mathml engine.\n")
	if len(cfg.Macros) == 0 {
		b.WriteString("# macros:\n#   \\R: \\mathbb{R}\n\n")
	} else {
		b.WriteString("macros:\n")
		names := make([]string, 0, len(cfg.Macros))
		for name := range cfg.Macros {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %q: %q\n", name, cfg.Macros[name])
		}
		b.WriteString("\n")
	}

	b.WriteString("# File extensions rendered by \"modtex render\".\n")
	writeList(&b, "extensions", cfg.Extensions, ".txt")

	b.WriteString("# Glob patterns to skip.\n")
	writeList(&b, "ignore", cfg.Ignore, "drafts/**")

	b.WriteString("# Write rendered files under this directory instead of next to their sources.\n")
	if cfg.OutputDir == "" {
		b.WriteString("# output_dir: public\n\n")
	} else {
		fmt.Fprintf(&b, "output_dir: %s\n\n", cfg.OutputDir)
	}

	b.WriteString("# Check rendered output for well-formed markup.\n")
	fmt.Fprintf(&b, "verify: %t\n\n", cfg.Verify)

	b.WriteString("# Normalize module text to Unicode NFC before rendering.\n")
	fmt.Fprintf(&b, "normalize_unicode: %t\n\n", cfg.NormalizeUnicode)

	b.WriteString("# Wrap each module in a standalone HTML page.\n")
	b.WriteString("page:\n")
	fmt.Fprintf(&b, "  enabled: %t\n", cfg.Page.Enabled)
	fmt.Fprintf(&b, "  lang: %s\n", cfg.Page.Lang)
	if cfg.Page.Stylesheet == "" {
		b.WriteString("  # stylesheet: /static/module.css\n")
	} else {
		fmt.Fprintf(&b, "  stylesheet: %s\n", cfg.Page.Stylesheet)
	}
	b.WriteString("\n")

	b.WriteString("# HTTP endpoint used by \"modtex serve\".\n")
	b.WriteString("serve:\n")
	fmt.Fprintf(&b, "  addr: %q\n", cfg.Serve.Addr)
	fmt.Fprintf(&b, "  max_body_bytes: %d\n", cfg.Serve.MaxBodyBytes)

	return []byte(b.String())
}

func writeList(b *strings.Builder, key string, values []string, example string) {
	if len(values) == 0 {
		fmt.Fprintf(b, "# %s:\n#   - %q\n\n", key, example)
		return
	}
	fmt.Fprintf(b, "%s:\n", key)
	for _, v := range values {
		fmt.Fprintf(b, "  - %q\n", v)
	}
	b.WriteString("\n")
}
