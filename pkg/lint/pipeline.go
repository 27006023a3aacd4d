package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/pytidy/pkg/config"
	"github.com/yaklabco/pytidy/pkg/fix"
	"github.com/yaklabco/pytidy/pkg/fsutil"
)

// PipelineResult contains the result of processing a single file.
type PipelineResult struct {
	*FileResult

	// Snapshot is the file state when it was read. Nil for in-memory content.
	Snapshot *fsutil.Snapshot

	// Original is the content as read.
	Original []byte

	// Fixed is the rewritten content. Nil unless fixing was requested and
	// at least one line was flagged.
	Fixed []byte

	// Diff previews the rewrite. Only set in diff mode.
	Diff *fix.Diff

	// BackupPath is the backup written before the file was replaced.
	BackupPath string

	// Written is true if the file was written to disk.
	Written bool

	// Skipped is true if the file changed on disk before it could be written.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string
}

// FixCount returns the number of empty lines inserted, or that would be
// inserted in diff mode.
func (pr *PipelineResult) FixCount() int {
	if pr.Fixed == nil {
		return 0
	}
	return pr.IssueCount()
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupPath != "":
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Fixed != nil:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// Fix computes the rewritten content.
	Fix bool

	// Diff generates a diff instead of writing. Implies Fix.
	Diff bool

	// Backup configures backups written before replacing a file.
	Backup fsutil.BackupConfig
}

func (o PipelineOptions) fixing() bool {
	return o.Fix || o.Diff
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{}
	}
	return PipelineOptions{
		Fix:  cfg.Fix,
		Diff: cfg.Diff,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.Backups.Enabled,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
	}
}

// Pipeline wraps an Engine with reading and safe writing.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a new pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// Prepare reads and lints path and computes the rewrite in memory. It does
// not touch the file system beyond reading, so it is safe to run for many
// files in parallel.
func (p *Pipeline) Prepare(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	return p.PrepareAs(ctx, path, path, opts)
}

// PrepareAs is Prepare for a file read from path but reported as name.
func (p *Pipeline) PrepareAs(ctx context.Context, path, name string, opts PipelineOptions) (*PipelineResult, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, name, content, opts)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snap
	return result, nil
}

// Commit writes a prepared result back to disk. It refuses to overwrite a
// file that changed since it was read, marking the result skipped instead.
// Nothing is written in diff mode or when there is nothing to fix.
func (p *Pipeline) Commit(ctx context.Context, result *PipelineResult, opts PipelineOptions) error {
	if opts.Diff || result.Fixed == nil || result.Snapshot == nil {
		return nil
	}

	changed, err := result.Snapshot.Changed(ctx)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return nil
	}

	backup, err := fsutil.Backup(ctx, result.Snapshot, result.Original, opts.Backup)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.BackupPath = backup

	if err := fsutil.Replace(ctx, result.Snapshot, result.Fixed); err != nil {
		if errors.Is(err, fsutil.ErrModified) {
			result.Skipped = true
			result.SkipReason = "file modified during processing"
			return nil
		}
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return nil
}

// ProcessFile runs Prepare and Commit for a single file.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	result, err := p.Prepare(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if err := p.Commit(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessContent lints in-memory content without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	fileResult, err := p.Engine.LintFile(ctx, path, content)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{
		FileResult: fileResult,
		Original:   content,
	}

	if !opts.fixing() || !fileResult.HasIssues() {
		return result, nil
	}

	result.Fixed = insertBlankLines(content, fileResult.Targets)
	if opts.Diff {
		result.Diff = fix.Insertions(path, fileResult.Lines, lineNumbers(fileResult.Diagnostics))
	}

	return result, nil
}

func lineNumbers(diags []Diagnostic) []int {
	out := make([]int, len(diags))
	for i, d := range diags {
		out[i] = d.Line
	}
	return out
}
