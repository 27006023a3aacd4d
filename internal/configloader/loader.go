// Package configloader provides configuration loading and resolution.
// It implements config file discovery (YAML and pyproject.toml), layered
// merging, environment variable support and validation.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/pytidy/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrConfigExists is returned by WriteConfig when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is loaded after discovered files.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips pyproject.toml and .pytidy.yml.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLI contains values from command-line flags. These take highest precedence.
	CLI *Layer
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLI)
//  2. Environment variables (PYTIDY_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.pytidy.yml upward search)
//  5. pyproject.toml [tool.pytidy] (upward search)
//  6. User config ($XDG_CONFIG_HOME/pytidy/config.yaml)
//  7. System config (/etc/pytidy/config.yaml)
//  8. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	var sources []string
	if !opts.IgnoreSystemConfig && paths.System != "" {
		sources = append(sources, paths.System)
	}
	if !opts.IgnoreUserConfig && paths.User != "" {
		sources = append(sources, paths.User)
	}
	if !opts.IgnoreProjectConfig {
		if paths.Pyproject != "" {
			sources = append(sources, paths.Pyproject)
		}
		if paths.Project != "" {
			sources = append(sources, paths.Project)
		}
	}
	if opts.ExplicitPath != "" {
		sources = append(sources, opts.ExplicitPath)
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, path := range sources {
		layer, warnings, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = merge(cfg, layer)
		result.LoadedFrom = append(result.LoadedFrom, path)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if !opts.IgnoreEnv {
		envLayer, err := LoadFromEnv()
		if err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		cfg = merge(cfg, envLayer)
	}

	cfg = merge(cfg, opts.CLI)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads one configuration layer. Files ending in .toml are
// read as pyproject-style documents; everything else is YAML.
func loadConfigFile(path string) (*Layer, []string, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return loadPyproject(path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	layer, err := decodeYAMLLayer(content)
	if err != nil {
		return nil, nil, err
	}
	return layer, nil, nil
}

// decodeYAMLLayer decodes YAML into a Layer, rejecting unknown keys.
// An empty document yields an empty layer.
func decodeYAMLLayer(content []byte) (*Layer, error) {
	layer := &Layer{}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(layer); err != nil {
		if errors.Is(err, io.EOF) {
			return layer, nil
		}
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return layer, nil
}

// WriteConfig writes content to path unless the file exists and force is false.
func WriteConfig(path string, content []byte, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
