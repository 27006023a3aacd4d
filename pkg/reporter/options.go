package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Mode selects what is reported for each file.
	Mode Mode

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary appends aggregate statistics after the results.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// Partial marks a run that stopped at a failing file. The closing
	// "No errors found" line is not written for partial runs.
	Partial bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Mode:        ModeLint,
		Color:       "auto",
	}
}
