package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/pytidy/internal/ui/pretty"
	"github.com/yaklabco/pytidy/pkg/runner"
)

// TextReporter writes one line per flagged boundary in lint mode and one
// line per rewritten file in format mode.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		total += r.reportFile(file)
	}

	if !r.opts.Partial && result.Stats.FilesWithIssues == 0 && result.Stats.FilesErrored == 0 {
		fmt.Fprintln(r.bw, r.styles.FormatNoErrors(result.Stats.FilesProcessed))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	if file.Error != nil {
		fmt.Fprintln(r.bw, r.styles.FormatFileError(file.Path, file.Error))
		return 0
	}
	if file.Result == nil || file.Result.FileResult == nil {
		return 0
	}
	if file.Result.Skipped {
		fmt.Fprintln(r.bw, r.styles.FormatSkipped(file.Path, file.Result.SkipReason))
	}

	if r.opts.Mode != ModeLint {
		if file.Result.Written {
			fmt.Fprintln(r.bw, r.styles.FormatFixed(file.Path, file.Result.FixCount()))
		}
		return file.Result.IssueCount()
	}

	for _, diag := range file.Result.Diagnostics {
		fmt.Fprintln(r.bw, r.styles.FormatDiagnostic(file.Path, diag))
	}
	return len(file.Result.Diagnostics)
}
