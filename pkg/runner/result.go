package runner

import "github.com/yaklabco/pytidy/pkg/lint"

// FileOutcome is the committed result for one file.
type FileOutcome struct {
	// Path is the display path.
	Path string

	// Result is nil if the file could not be processed.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files linted successfully.
	FilesProcessed int

	// FilesSkipped counts files that changed on disk before they could be written.
	FilesSkipped int

	// FilesErrored counts files that failed with --keep-going.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one flagged line.
	FilesWithIssues int

	// FilesModified is the number of files rewritten on disk.
	FilesModified int

	// DiagnosticsTotal is the number of flagged lines across all files.
	DiagnosticsTotal int

	// FixesApplied is the number of empty lines inserted, or proposed in diff mode.
	FixesApplied int
}

// Result is the overall runner result.
type Result struct {
	// Files holds outcomes in discovery order. After an abort it ends with
	// the last file committed before the failure.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Written {
		r.Stats.FilesModified++
	}
	r.Stats.FixesApplied += outcome.Result.FixCount()

	if n := outcome.Result.IssueCount(); n > 0 {
		r.Stats.DiagnosticsTotal += n
		r.Stats.FilesWithIssues++
	}
}
