package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/pytidy/internal/ui/pretty"
	"github.com/yaklabco/pytidy/pkg/fix"
	"github.com/yaklabco/pytidy/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of inserted lines.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var filesWithDiffs, additions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintln(r.bw, r.styles.FormatFileError(file.Path, file.Error))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		additions += file.Result.Diff.Additions
		r.writeDiff(file.Result.Diff)
	}

	if r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, additions)
	}

	return additions, nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(diff.GitHeader()))

	for _, line := range strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n") {
		r.writeDiffLine(line)
	}
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+++"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "---"):
		styled = r.styles.DiffRemove.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.bw, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, additions int) {
	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts := []string{fmt.Sprintf("%d %s changed", files, fileWord)}

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
