package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pytidy/internal/configloader"
	"github.com/yaklabco/pytidy/internal/logging"
	"github.com/yaklabco/pytidy/pkg/config"
	"github.com/yaklabco/pytidy/pkg/lint"
	"github.com/yaklabco/pytidy/pkg/parser/python"
	"github.com/yaklabco/pytidy/pkg/pyast"
	"github.com/yaklabco/pytidy/pkg/reporter"
	"github.com/yaklabco/pytidy/pkg/runner"
	"github.com/yaklabco/pytidy/pkg/spacer"
)

// checkFlags holds the flags shared by lint and format. Only flags the user
// actually set are layered over the loaded configuration.
type checkFlags struct {
	ignoreSingleLineBody bool
	output               string
	exclude              []string
	extensions           []string
	jobs                 int
	pythonVersion        string
	noGitignore          bool
	detectShebang        bool
	keepGoing            bool
	summary              bool
	compact              bool

	// format only
	diff   bool
	backup bool
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().BoolVar(&flags.ignoreSingleLineBody, "ignore-single-line-body", false,
		"do not require an empty line after a body that is a single one-line statement")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "text", "output format: text, json, table")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions picked up in directories (default .py)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.pythonVersion, "python-version", "", "Python grammar version, e.g. 3.9 (default: newest)")
	cmd.Flags().BoolVar(&flags.noGitignore, "no-gitignore", false, "do not exclude paths listed in ./.gitignore")
	cmd.Flags().BoolVar(&flags.detectShebang, "detect-shebang", false, "also check extension-less files with a python shebang")
	cmd.Flags().BoolVar(&flags.keepGoing, "keep-going", false, "report files that fail to parse and continue")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print run statistics after the results")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print JSON on a single line")
}

// layer converts the flags that were set on the command line into a
// configuration layer.
func (f *checkFlags) layer(cmd *cobra.Command) *configloader.Layer {
	changed := cmd.Flags().Changed
	layer := &configloader.Layer{}

	if changed("ignore-single-line-body") {
		layer.IgnoreSingleLineBody = configloader.Ptr(f.ignoreSingleLineBody)
	}
	if changed("output") {
		layer.Output = configloader.Ptr(config.OutputFormat(f.output))
	}
	if changed("exclude") {
		layer.Exclude = f.exclude
	}
	if changed("extensions") {
		layer.Extensions = f.extensions
	}
	if changed("jobs") {
		layer.Jobs = configloader.Ptr(f.jobs)
	}
	if changed("python-version") {
		layer.PythonVersion = configloader.Ptr(f.pythonVersion)
	}
	if changed("no-gitignore") {
		layer.RespectGitignore = configloader.Ptr(!f.noGitignore)
	}
	if changed("detect-shebang") {
		layer.DetectShebang = configloader.Ptr(f.detectShebang)
	}
	if changed("keep-going") {
		layer.KeepGoing = configloader.Ptr(f.keepGoing)
	}
	if changed("diff") {
		layer.Diff = configloader.Ptr(f.diff)
	}
	if changed("backup") {
		layer.Backups = &configloader.BackupsLayer{Enabled: configloader.Ptr(f.backup)}
	}

	return layer
}

// runCheck loads configuration, runs the pipeline over args and reports the
// result. fix selects the format command.
func runCheck(cmd *cobra.Command, args []string, globals *globalFlags, flags *checkFlags, fix bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cliLayer := flags.layer(cmd)
	cliLayer.Fix = configloader.Ptr(fix)
	if !fix {
		cliLayer.Diff = configloader.Ptr(false)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        globals.configPath,
		IgnoreSystemConfig:  globals.noConfig,
		IgnoreUserConfig:    globals.noConfig,
		IgnoreProjectConfig: globals.noConfig,
		CLI:                 cliLayer,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	version, err := pyast.ParseVersion(cfg.PythonVersion)
	if err != nil {
		return fmt.Errorf("python version: %w", err)
	}

	format, err := reporter.ParseFormat(string(cfg.Output))
	if err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}

	mode := reporter.ModeLint
	switch {
	case cfg.Diff:
		mode = reporter.ModeDiff
	case cfg.Fix:
		mode = reporter.ModeFormat
	}

	engine := lint.NewEngine(python.New(version), spacer.Options{
		IgnoreSingleLineBody: cfg.IgnoreSingleLineBody,
	})
	pyRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting run",
		logging.FieldCommand, cmd.Name(),
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldPythonVersion, version.String(),
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldKeepGoing, runOpts.KeepGoing,
		logging.FieldDiff, cfg.Diff,
		logging.FieldBackup, cfg.Backups.Enabled,
	)

	result, runErr := pyRunner.Run(ctx, runOpts)
	if result == nil {
		return runErr
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Mode:        mode,
		Color:       globals.color,
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		Partial:     runErr != nil,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if runErr != nil {
		return runErr
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	switch {
	case result.HasErrors():
		return ErrFilesFailed
	case mode == reporter.ModeLint && result.HasIssues():
		return ErrLintIssuesFound
	default:
		return nil
	}
}
