package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pytidy/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "pytidy", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color", "no-config"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"lint", "format", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %q", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestCheckCommandFlags(t *testing.T) {
	t.Parallel()

	shared := []string{
		"ignore-single-line-body",
		"output",
		"exclude",
		"extensions",
		"jobs",
		"python-version",
		"no-gitignore",
		"detect-shebang",
		"keep-going",
		"summary",
		"compact",
	}

	cmd := cli.NewRootCommand(testInfo())

	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)
	for _, name := range shared {
		assert.NotNil(t, lintCmd.Flags().Lookup(name), "lint is missing --%s", name)
	}
	assert.Nil(t, lintCmd.Flags().Lookup("diff"), "lint must not accept --diff")

	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)
	for _, name := range append(shared, "diff", "backup") {
		assert.NotNil(t, formatCmd.Flags().Lookup(name), "format is missing --%s", name)
	}

	output := lintCmd.Flags().Lookup("output")
	assert.Equal(t, "text", output.DefValue)
	assert.Equal(t, "o", output.Shorthand)
}

func TestInitCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	initCmd, _, err := cmd.Find([]string{"init"})
	require.NoError(t, err)

	assert.NotNil(t, initCmd.Flags().Lookup("force"))
	assert.NotNil(t, initCmd.Flags().Lookup("full"))
	assert.Equal(t, ".pytidy.yml", initCmd.Flags().Lookup("output").DefValue)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "test-version")
	assert.Contains(t, output, "test-commit")
	assert.Contains(t, output, "test-date")
	assert.Contains(t, output, "python_version=3.13")
}

func TestUnknownSubcommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"tidy-up"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(cli.ErrLintIssuesFound))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(errors.New("boom")))
}

func TestIsReported(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsReported(cli.ErrLintIssuesFound))
	assert.True(t, cli.IsReported(fmt.Errorf("wrapped: %w", cli.ErrFilesFailed)))
	assert.False(t, cli.IsReported(errors.New("parse failure")))
	assert.False(t, cli.IsReported(nil))
}
