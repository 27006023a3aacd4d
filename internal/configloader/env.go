package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/pytidy/pkg/config"
)

// envVarPrefix is the prefix for all pytidy environment variables.
const envVarPrefix = "PYTIDY_"

// envVar describes one supported environment variable.
type envVar struct {
	description string
	apply       func(layer *Layer, value string) error
}

// envVars maps environment variable names (without prefix) to layer setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"IGNORE_SINGLE_LINE_BODY": {
		description: "Skip the body-end check for one-line bodies: true or false",
		apply:       boolSetter(func(l *Layer) **bool { return &l.IgnoreSingleLineBody }),
	},
	"PYTHON_VERSION": {
		description: "Python grammar version, e.g. 3.12",
		apply: func(l *Layer, v string) error {
			l.PythonVersion = &v
			return nil
		},
	},
	"EXCLUDE": {
		description: "Comma-separated list of exclude globs",
		apply: func(l *Layer, v string) error {
			l.Exclude = parseSliceValue(v)
			return nil
		},
	},
	"EXTENSIONS": {
		description: "Comma-separated list of file extensions to discover",
		apply: func(l *Layer, v string) error {
			l.Extensions = parseSliceValue(v)
			return nil
		},
	},
	"RESPECT_GITIGNORE": {
		description: "Exclude paths matched by ./.gitignore: true or false",
		apply:       boolSetter(func(l *Layer) **bool { return &l.RespectGitignore }),
	},
	"DETECT_SHEBANG": {
		description: "Also check extension-less python scripts: true or false",
		apply:       boolSetter(func(l *Layer) **bool { return &l.DetectShebang }),
	},
	"KEEP_GOING": {
		description: "Continue after parse failures: true or false",
		apply:       boolSetter(func(l *Layer) **bool { return &l.KeepGoing }),
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(l *Layer, v string) error {
			jobs, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			l.Jobs = &jobs
			return nil
		},
	},
	"OUTPUT": {
		description: "Output format: text, json or table",
		apply: func(l *Layer, v string) error {
			format := config.OutputFormat(v)
			l.Output = &format
			return nil
		},
	},
	"BACKUPS_ENABLED": {
		description: "Write backups before formatting: true or false",
		apply: boolSetter(func(l *Layer) **bool {
			if l.Backups == nil {
				l.Backups = &BackupsLayer{}
			}
			return &l.Backups.Enabled
		}),
	},
	"BACKUPS_MODE": {
		description: "Backup mode: sidecar or none",
		apply: func(l *Layer, v string) error {
			if l.Backups == nil {
				l.Backups = &BackupsLayer{}
			}
			l.Backups.Mode = &v
			return nil
		},
	},
}

func boolSetter(field func(*Layer) **bool) func(*Layer, string) error {
	return func(l *Layer, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		*field(l) = &b
		return nil
	}
}

// LoadFromEnv builds a layer from PYTIDY_* environment variables.
// It returns nil when none are set.
func LoadFromEnv() (*Layer, error) {
	return loadFromLookup(os.LookupEnv)
}

func loadFromLookup(lookup func(string) (string, bool)) (*Layer, error) {
	layer := &Layer{}
	found := false

	for _, suffix := range sortedEnvSuffixes() {
		name := envVarPrefix + suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := envVars[suffix].apply(layer, value); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		found = true
	}

	if !found {
		return nil, nil
	}
	return layer, nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace; empty elements are dropped.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	result := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		result[envVarPrefix+suffix] = v.description
	}
	return result
}
