package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/pytidy/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Mode    Mode             `json:"mode"`
	Partial bool             `json:"partial,omitempty"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Fixes       int              `json:"fixes,omitempty"`
	Modified    bool             `json:"modified,omitempty"`
	Backup      string           `json:"backup,omitempty"`
	Skipped     string           `json:"skipped,omitempty"`
	Diff        string           `json:"diff,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single flagged line.
type JSONDiagnostic struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesModified   int `json:"filesModified"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	TotalIssues     int `json:"totalIssues"`
	FixesApplied    int `json:"fixesApplied"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	mode := r.opts.Mode
	if mode == "" {
		mode = ModeLint
	}
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Mode:    mode,
		Partial: r.opts.Partial,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        file.Path,
			Diagnostics: make([]JSONDiagnostic, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			fileResult.Modified = res.Written
			fileResult.Backup = res.BackupPath
			if res.Written {
				fileResult.Fixes = res.FixCount()
			}
			if res.Skipped {
				fileResult.Skipped = res.SkipReason
			}
			if res.Diff.HasChanges() {
				fileResult.Diff = res.Diff.FullString()
			}
			if res.FileResult != nil {
				for _, diag := range res.Diagnostics {
					fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
						Line:    diag.Line,
						Message: diag.Message,
					})
				}
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:    len(result.Files),
		FilesWithIssues: stats.FilesWithIssues,
		FilesModified:   stats.FilesModified,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		TotalIssues:     stats.DiagnosticsTotal,
		FixesApplied:    stats.FixesApplied,
	}

	return output
}
