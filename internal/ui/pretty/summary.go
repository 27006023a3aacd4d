package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/pytidy/pkg/runner"
)

const (
	maxDividerWidth = 60
	wordFile        = "file"
	wordFiles       = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 lines need an empty line in 2 files, 4 fixed in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 && stats.FilesModified == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
		if stats.FilesErrored > 0 {
			msg += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
		}
		return msg + "\n"
	}

	parts := []string{fmt.Sprintf("%d %s in %d %s",
		stats.DiagnosticsTotal,
		plural(stats.DiagnosticsTotal, "line needs an empty line", "lines need an empty line"),
		stats.FilesWithIssues,
		plural(stats.FilesWithIssues, wordFile, wordFiles),
	)}

	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.FixesApplied, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block. The divider is
// capped at width columns.
func (s *Styles) FormatSummary(stats runner.Stats, width int) string {
	divider := min(max(width, 1), maxDividerWidth)

	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat("-", divider)))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesModified > 0 {
		builder.WriteString("  Files modified:    " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Skipped.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Lines flagged:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")
	if stats.FilesModified > 0 {
		builder.WriteString("  Empty lines added: " +
			s.Success.Render(strconv.Itoa(stats.FixesApplied)) + "\n")
	}
	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be processed"))
	case stats.FilesWithIssues > stats.FilesModified:
		builder.WriteString(s.Failure.Render("Empty lines required"))
	default:
		builder.WriteString(s.Success.Render("All files tidy"))
	}
	builder.WriteString("\n")

	return builder.String()
}
