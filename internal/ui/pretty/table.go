package pretty

import (
	"strconv"
	"strings"

	"github.com/yaklabco/pytidy/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 16
	minLinesWidth    = 12
	statusWidth      = 22
	countWidth       = 5
	heavySeparator   = "="
	lightSeparator   = "-"
	ellipsis         = "..."
	headerFile       = "FILE"
	headerCount      = "COUNT"
	headerLines      = "LINES"
	headerStatus     = "STATUS"
	tableColumnCount = 4
)

// TableRow is one file in the table.
type TableRow struct {
	File   string
	Count  int
	Lines  string
	Status string
	Failed bool
}

// TableFormatter lays out per-file results as a fixed-width table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

type columnWidths struct {
	file  int
	lines int
}

// NewTableFormatter creates a table formatter for a terminal of termWidth columns.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTerminalWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Rows collects a row for every file that was flagged, failed or skipped.
func Rows(result *runner.Result) []TableRow {
	if result == nil {
		return nil
	}

	var rows []TableRow
	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			rows = append(rows, TableRow{File: file.Path, Status: "error", Failed: true})
		case file.Result == nil:
			continue
		case file.Result.Skipped || file.Result.HasIssues():
			lines := make([]string, 0, len(file.Result.Diagnostics))
			for _, diag := range file.Result.Diagnostics {
				lines = append(lines, strconv.Itoa(diag.Line))
			}
			rows = append(rows, TableRow{
				File:   file.Path,
				Count:  file.Result.IssueCount(),
				Lines:  strings.Join(lines, ","),
				Status: file.Result.Summary(),
			})
		}
	}
	return rows
}

// FormatTable renders rows with a header. It returns "" for no rows.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.columnWidths(rows)
	total := widths.file + countWidth + widths.lines + statusWidth + tablePadding*(tableColumnCount-1)

	var builder strings.Builder
	header := pad(headerFile, widths.file) + gap() +
		padLeft(headerCount, countWidth) + gap() +
		pad(headerLines, widths.lines) + gap() +
		headerStatus
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	for _, row := range rows {
		file := pad(truncatePath(row.File, widths.file), widths.file)
		status := t.styles.Failure.Render(row.Status)
		if !row.Failed {
			status = t.styles.Dim.Render(row.Status)
		}
		builder.WriteString(t.styles.FilePath.Render(file) + gap() +
			padLeft(strconv.Itoa(row.Count), countWidth) + gap() +
			t.styles.Location.Render(pad(truncate(row.Lines, widths.lines), widths.lines)) + gap() +
			status + "\n")
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)) + "\n")
	return builder.String()
}

// columnWidths sizes the FILE and LINES columns to their content, shrinking
// both to fit the terminal.
func (t *TableFormatter) columnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{file: len(headerFile), lines: len(headerLines)}
	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.lines = max(widths.lines, len(row.Lines))
	}

	available := t.termWidth - countWidth - statusWidth - tablePadding*(tableColumnCount-1)
	for widths.file+widths.lines > available {
		switch {
		case widths.lines > minLinesWidth && widths.lines >= widths.file:
			widths.lines--
		case widths.file > minFileWidth:
			widths.file--
		case widths.lines > minLinesWidth:
			widths.lines--
		default:
			return widths
		}
	}
	return widths
}

func gap() string {
	return strings.Repeat(" ", tablePadding)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= len(ellipsis) {
		return s[:maxLen]
	}
	return s[:maxLen-len(ellipsis)] + ellipsis
}

// truncatePath keeps the end of the path, which carries the file name.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return path[len(path)-maxLen:]
	}
	return ellipsis + path[len(path)-maxLen+len(ellipsis):]
}
