package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/pytidy/internal/ui/pretty"
	"github.com/yaklabco/pytidy/pkg/runner"
)

// TableReporter lists flagged and failed files in a table sized to the terminal.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	termWidth int
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	termWidth := pretty.TerminalWidth(opts.Writer)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, termWidth),
		termWidth: termWidth,
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	rows := pretty.Rows(result)
	if len(rows) == 0 {
		if !r.opts.Partial {
			fmt.Fprintln(r.bw, r.styles.FormatNoErrors(result.Stats.FilesProcessed))
		}
	} else {
		fmt.Fprint(r.bw, r.formatter.FormatTable(rows))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, r.termWidth))
	}

	return result.Stats.DiagnosticsTotal, nil
}
