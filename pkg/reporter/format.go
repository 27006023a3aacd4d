package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, table", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTable:
		return true
	default:
		return false
	}
}

// Mode is the command whose results are reported.
type Mode string

const (
	// ModeLint reports flagged lines.
	ModeLint Mode = "lint"

	// ModeFormat reports rewritten files.
	ModeFormat Mode = "format"

	// ModeDiff reports the rewrite as unified diffs.
	ModeDiff Mode = "diff"
)
