package pretty

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/pytidy/pkg/lint"
)

// FormatDiagnostic formats a flagged line as "path:line: message".
func (s *Styles) FormatDiagnostic(path string, diag lint.Diagnostic) string {
	return fmt.Sprintf("%s:%s: %s",
		s.FilePath.Render(path),
		s.Location.Render(strconv.Itoa(diag.Line)),
		s.Message.Render(diag.Message),
	)
}

// FormatFixed formats the per-file line printed after format rewrote a file.
func (s *Styles) FormatFixed(path string, fixes int) string {
	return fmt.Sprintf("%s: %s", s.FilePath.Render(path),
		s.Success.Render(fmt.Sprintf("%d auto fixes applied.", fixes)))
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s", s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatSkipped formats a file that was left untouched.
func (s *Styles) FormatSkipped(path, reason string) string {
	return fmt.Sprintf("%s: %s", s.FilePath.Render(path), s.Skipped.Render("skipped: "+reason))
}

// FormatNoErrors formats the closing line of a run without flagged files.
func (s *Styles) FormatNoErrors(processed int) string {
	return s.Success.Render(fmt.Sprintf("Processed %d files. No errors found.", processed))
}
