package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/pytidy/pkg/config"
	"github.com/yaklabco/pytidy/pkg/pyast"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Output != "" && !cfg.Output.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output",
			Value:   cfg.Output,
			Message: fmt.Sprintf("invalid output format %q; must be one of: text, json, table", cfg.Output),
		})
	}

	if version, err := pyast.ParseVersion(cfg.PythonVersion); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "python_version",
			Value:   cfg.PythonVersion,
			Message: err.Error(),
		})
	} else if pyast.Latest.Less(version) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "python_version",
			Value:   cfg.PythonVersion,
			Message: fmt.Sprintf("newer than %s; newer syntax is parsed with the %s grammar", pyast.Latest, pyast.Latest),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	validateExcludePatterns(cfg, result)
	validateExtensions(cfg, result)

	return result
}

// validateExcludePatterns checks that exclude patterns compile.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	if len(cfg.Extensions) == 0 && !cfg.DetectShebang {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "extensions",
			Message: "no extensions configured; directory walks will find nothing",
		})
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q must start with '.'", ext),
			})
		}
	}
}
