package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/pytidy/pkg/config"
)

// newRepo creates a temporary directory marked as a VCS root so upward
// searches stop inside it.
func newRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newRepo(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.IgnoreSingleLineBody {
		t.Error("expected ignore_single_line_body to default to false")
	}
	if !result.Config.RespectGitignore {
		t.Error("expected respect_gitignore to default to true")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), `
ignore_single_line_body: true
python_version: "3.9"
exclude:
  - "build/**"
`)

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if !cfg.IgnoreSingleLineBody {
		t.Error("expected ignore_single_line_body from project config")
	}
	if cfg.PythonVersion != "3.9" {
		t.Errorf("expected python_version 3.9, got %q", cfg.PythonVersion)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "build/**" {
		t.Errorf("unexpected exclude: %v", cfg.Exclude)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected one loaded file, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), "keep_going: true\n")
	sub := filepath.Join(dir, "src", "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !result.Config.KeepGoing {
		t.Error("expected keep_going from parent directory config")
	}
}

func TestLoad_Pyproject(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, "pyproject.toml"), `
[project]
name = "demo"

[tool.pytidy]
ignore_single_line_body = true
extensions = [".py", ".pyi"]
`)

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !result.Config.IgnoreSingleLineBody {
		t.Error("expected ignore_single_line_body from pyproject.toml")
	}
	if got := strings.Join(result.Config.Extensions, ","); got != ".py,.pyi" {
		t.Errorf("unexpected extensions: %s", got)
	}
}

func TestLoad_PyprojectWithoutToolTableIsIgnored(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, "pyproject.toml"), "[project]\nname = \"demo\"\n")

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Paths.Pyproject != "" {
		t.Errorf("expected no pyproject path, got %q", result.Paths.Pyproject)
	}
}

func TestLoad_PyprojectUnknownKeyWarns(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, "pyproject.toml"), "[tool.pytidy]\nline_length = 88\n")

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "line_length") {
		t.Errorf("expected unknown key warning, got %v", result.Warnings)
	}
}

func TestLoad_ProjectConfigOverridesPyproject(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, "pyproject.toml"), "[tool.pytidy]\nignore_single_line_body = true\n")
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), "ignore_single_line_body: false\n")

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.IgnoreSingleLineBody {
		t.Error("explicit false in .pytidy.yml should override pyproject.toml")
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected two loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), "python_version: \"3.8\"\n")
	explicit := filepath.Join(dir, "ci", "pytidy.yaml")
	writeFile(t, explicit, "python_version: \"3.12\"\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.PythonVersion != "3.12" {
		t.Errorf("expected explicit python_version 3.12, got %q", result.Config.PythonVersion)
	}
}

func TestLoad_ExplicitTOMLConfig(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	explicit := filepath.Join(dir, "other.toml")
	writeFile(t, explicit, "[tool.pytidy]\nkeep_going = true\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !result.Config.KeepGoing {
		t.Error("expected keep_going from explicit TOML config")
	}
}

func TestLoad_CLIOverridesEverything(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), "ignore_single_line_body: true\n")

	opts := isolated(dir)
	opts.CLI = &Layer{
		IgnoreSingleLineBody: Ptr(false),
		Jobs:                 Ptr(3),
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.IgnoreSingleLineBody {
		t.Error("CLI false should override config file true")
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", result.Config.Jobs)
	}
}

func TestLoad_UnknownYAMLKey(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), "unknown_option: 1\n")

	if _, err := Load(context.Background(), isolated(dir)); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_EmptyYAML(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), "")

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.PythonVersion != config.NewConfig().PythonVersion {
		t.Errorf("empty config should keep defaults, got %q", result.Config.PythonVersion)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), "python_version: \"two\"\n")

	_, err := Load(context.Background(), isolated(dir))
	if err == nil {
		t.Fatal("expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if vErr.Field != "python_version" {
		t.Errorf("expected python_version field, got %q", vErr.Field)
	}
}

func TestLoad_IgnoreProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".pytidy.yml"), "keep_going: true\n")

	opts := isolated(dir)
	opts.IgnoreProjectConfig = true

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.KeepGoing {
		t.Error("project config should have been ignored")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(newRepo(t))); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".pytidy.yml")

	if err := WriteConfig(path, []byte("keep_going: true\n"), false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	err := WriteConfig(path, []byte("keep_going: false\n"), false)
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}

	if err := WriteConfig(path, []byte("keep_going: false\n"), true); err != nil {
		t.Fatalf("WriteConfig(force) error = %v", err)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "keep_going: false\n" {
		t.Errorf("unexpected content %q", content)
	}
}
