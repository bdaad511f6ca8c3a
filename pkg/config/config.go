// Package config defines core configuration types for modtex.
// These types are pure data structures with no dependency on the loader.
package config

// Default values used by NewConfig.
const (
	DefaultEngine       = "mathml"
	DefaultLang         = "en"
	DefaultServeAddr    = "127.0.0.1:8080"
	DefaultMaxBodyBytes = 1 << 20
	DefaultFormat       = "text"
)

// PageConfig controls standalone HTML page output.
type PageConfig struct {
	// Enabled wraps each rendered module in a full HTML document.
	Enabled bool `yaml:"enabled"`

	// Stylesheet is linked from every page head when set.
	Stylesheet string `yaml:"stylesheet,omitempty"`

	// Lang is the page language attribute.
	Lang string `yaml:"lang,omitempty"`
}

// ServeConfig controls the HTTP render endpoint.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr,omitempty"`

	// MaxBodyBytes caps the size of a render request body.
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`
}

// Config is the root configuration structure for modtex.
type Config struct {
	// Engine selects the math typesetter ("mathml" or "client").
	Engine string `yaml:"engine"`

	// Macros are TeX macro definitions, keyed by name with leading backslash.
	Macros map[string]string `yaml:"macros,omitempty"`

	// Extensions are the file extensions treated as module sources.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// OutputDir mirrors rendered files into this directory instead of
	// writing them next to their sources.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Verify checks every rendered file for well-formed markup.
	Verify bool `yaml:"verify"`

	// NormalizeUnicode converts module text to NFC before rendering.
	NormalizeUnicode bool `yaml:"normalize_unicode"`

	// Page configures standalone page output.
	Page PageConfig `yaml:"page"`

	// Serve configures the HTTP endpoint.
	Serve ServeConfig `yaml:"serve"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// DryRun renders without writing output files.
	DryRun bool `yaml:"-"`

	// Stdout writes rendered output to standard output instead of files.
	Stdout bool `yaml:"-"`

	// Format specifies the report format.
	Format string `yaml:"-"`
}

// DefaultExtensions returns the default set of module file extensions.
func DefaultExtensions() []string {
	return []string{".txt", ".module"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Engine:     DefaultEngine,
		Macros:     make(map[string]string),
		Extensions: DefaultExtensions(),
		Page: PageConfig{
			Lang: DefaultLang,
		},
		Serve: ServeConfig{
			Addr:         DefaultServeAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Format: DefaultFormat,
		Jobs:   0, // 0 means use NumCPU
	}
}
