// Package config defines core configuration types for pytidy.
// These types are pure data structures; discovery and merging live in internal/configloader.
package config

// BackupsConfig controls backup behavior when formatting files.
type BackupsConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Mode    string `toml:"mode"    yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies how results are printed.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTable:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for pytidy.
type Config struct {
	// IgnoreSingleLineBody skips the body-end check for one-line bodies.
	IgnoreSingleLineBody bool `toml:"ignore_single_line_body" yaml:"ignore_single_line_body"`

	// PythonVersion selects the grammar ("3.12"). Empty means the newest supported.
	PythonVersion string `toml:"python_version" yaml:"python_version,omitempty"`

	// Exclude contains glob patterns for files to skip during discovery.
	Exclude []string `toml:"exclude" yaml:"exclude,omitempty"`

	// Extensions lists file suffixes picked up when walking directories.
	Extensions []string `toml:"extensions" yaml:"extensions"`

	// RespectGitignore excludes paths matched by ./.gitignore during discovery.
	RespectGitignore bool `toml:"respect_gitignore" yaml:"respect_gitignore"`

	// DetectShebang also picks up extension-less files with a python shebang.
	DetectShebang bool `toml:"detect_shebang" yaml:"detect_shebang"`

	// KeepGoing reports parse failures and continues instead of aborting the run.
	KeepGoing bool `toml:"keep_going" yaml:"keep_going"`

	// Backups configures backup behavior when formatting.
	Backups BackupsConfig `toml:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix rewrites files in place (the format command).
	Fix bool `toml:"-" yaml:"-"`

	// Diff prints a unified diff instead of writing files.
	Diff bool `toml:"-" yaml:"-"`

	// Output specifies the output format.
	Output OutputFormat `toml:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `toml:"-" yaml:"-"`
}

// DefaultExtensions are the suffixes discovered when walking directories.
func DefaultExtensions() []string {
	return []string{".py"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Extensions:       DefaultExtensions(),
		RespectGitignore: true,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Output: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}
