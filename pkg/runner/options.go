// Package runner finds Python files and runs the lint pipeline over them.
package runner

import (
	"github.com/yaklabco/pytidy/pkg/config"
	"github.com/yaklabco/pytidy/pkg/lint"
)

// Options controls multi-file processing.
type Options struct {
	// Paths are the user-specified files or directories. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and holds the .gitignore that is
	// honored. Empty means the process working directory.
	WorkingDir string

	// Extensions selects files during directory walks (lowercase, leading dot).
	Extensions []string

	// ExcludeGlobs skip files or directories during walks. Patterns are
	// matched against slash-separated paths relative to WorkingDir.
	ExcludeGlobs []string

	// RespectGitignore excludes walked paths matched by WorkingDir/.gitignore.
	RespectGitignore bool

	// DetectShebang also selects extension-less files with a Python shebang.
	DetectShebang bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds parallel parsing. 0 or negative means runtime.NumCPU().
	Jobs int

	// KeepGoing records per-file failures and continues instead of stopping
	// at the first one.
	KeepGoing bool

	// Pipeline is passed to every Prepare and Commit call.
	Pipeline lint.PipelineOptions
}

// OptionsFromConfig builds runner options for paths from a resolved config.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:            paths,
		Extensions:       cfg.Extensions,
		ExcludeGlobs:     cfg.Exclude,
		RespectGitignore: cfg.RespectGitignore,
		DetectShebang:    cfg.DetectShebang,
		Jobs:             cfg.Jobs,
		KeepGoing:        cfg.KeepGoing,
		Pipeline:         lint.PipelineOptionsFromConfig(cfg),
	}
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
