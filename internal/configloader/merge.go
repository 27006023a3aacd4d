package configloader

import (
	"slices"

	"github.com/yaklabco/pytidy/pkg/config"
)

// Layer is one configuration source. Nil fields are unset and leave the
// value from lower-precedence sources in place, so an explicit false in a
// config file or on the command line is honored.
type Layer struct {
	IgnoreSingleLineBody *bool         `toml:"ignore_single_line_body" yaml:"ignore_single_line_body"`
	PythonVersion        *string       `toml:"python_version"          yaml:"python_version"`
	Exclude              []string      `toml:"exclude"                 yaml:"exclude"`
	Extensions           []string      `toml:"extensions"              yaml:"extensions"`
	RespectGitignore     *bool         `toml:"respect_gitignore"       yaml:"respect_gitignore"`
	DetectShebang        *bool         `toml:"detect_shebang"          yaml:"detect_shebang"`
	KeepGoing            *bool         `toml:"keep_going"              yaml:"keep_going"`
	Backups              *BackupsLayer `toml:"backups"                 yaml:"backups"`

	// CLI and environment only.
	Fix    *bool                `toml:"-" yaml:"-"`
	Diff   *bool                `toml:"-" yaml:"-"`
	Output *config.OutputFormat `toml:"-" yaml:"-"`
	Jobs   *int                 `toml:"-" yaml:"-"`
}

// BackupsLayer is the backups section of a Layer.
type BackupsLayer struct {
	Enabled *bool   `toml:"enabled" yaml:"enabled"`
	Mode    *string `toml:"mode"    yaml:"mode"`
}

// merge applies override on top of base and returns the result.
// Slices in override replace those in base entirely.
func merge(base *config.Config, override *Layer) *config.Config {
	if base == nil {
		base = config.NewConfig()
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	setIf(&result.IgnoreSingleLineBody, override.IgnoreSingleLineBody)
	setIf(&result.PythonVersion, override.PythonVersion)
	setIf(&result.RespectGitignore, override.RespectGitignore)
	setIf(&result.DetectShebang, override.DetectShebang)
	setIf(&result.KeepGoing, override.KeepGoing)
	setIf(&result.Fix, override.Fix)
	setIf(&result.Diff, override.Diff)
	setIf(&result.Output, override.Output)
	setIf(&result.Jobs, override.Jobs)

	if override.Exclude != nil {
		result.Exclude = slices.Clone(override.Exclude)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	if override.Backups != nil {
		setIf(&result.Backups.Enabled, override.Backups.Enabled)
		setIf(&result.Backups.Mode, override.Backups.Mode)
	}

	return result
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Ptr returns a pointer to v. It is a convenience for building layers.
func Ptr[T any](v T) *T {
	return &v
}
